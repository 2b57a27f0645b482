package order_test

import (
	"context"
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/commerce-management/internal"
	cartDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/cart"
	orderDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/order"
	"github.com/frahmantamala/commerce-management/internal/core/events"
	"github.com/frahmantamala/commerce-management/internal/order"
)

func TestOrderService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Order Service Suite")
}

type mockOrderRepository struct {
	carts       map[int64]*cartDatamodel.Cart
	cartLines   map[int64][]order.CartLine
	orders      map[int64]*orderDatamodel.Order
	orderItems  map[int64][]*orderDatamodel.OrderItem
	nextOrderID int64

	placeErr     error
	cancelErr    error
	setStatusErr error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{
		carts:       make(map[int64]*cartDatamodel.Cart),
		cartLines:   make(map[int64][]order.CartLine),
		orders:      make(map[int64]*orderDatamodel.Order),
		orderItems:  make(map[int64][]*orderDatamodel.OrderItem),
		nextOrderID: 1,
	}
}

func (m *mockOrderRepository) GetCartByUserID(userID int64) (*cartDatamodel.Cart, error) {
	c, ok := m.carts[userID]
	if !ok {
		return nil, internal.ErrCartNotFound
	}
	return c, nil
}

func (m *mockOrderRepository) PlaceOrder(o *orderDatamodel.Order, cartID int64) ([]*orderDatamodel.OrderItem, error) {
	if m.placeErr != nil {
		return nil, m.placeErr
	}

	lines := m.cartLines[cartID]
	if len(lines) == 0 {
		return nil, internal.ErrEmptyCart
	}

	o.ID = m.nextOrderID
	m.nextOrderID++

	var items []*orderDatamodel.OrderItem
	for _, line := range lines {
		o.TotalAmount += line.UnitPrice * line.Quantity
		items = append(items, &orderDatamodel.OrderItem{
			OrderID:         o.ID,
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.UnitPrice,
		})
	}

	m.orders[o.ID] = o
	m.orderItems[o.ID] = items
	m.cartLines[cartID] = nil
	return items, nil
}

func (m *mockOrderRepository) CancelOrder(orderID int64) error {
	if m.cancelErr != nil {
		return m.cancelErr
	}
	o, ok := m.orders[orderID]
	if !ok || o.Status != "pending" {
		return internal.ErrInvalidTransition
	}
	o.Status = "canceled"
	return nil
}

func (m *mockOrderRepository) SetStatus(orderID int64, status string) error {
	if m.setStatusErr != nil {
		return m.setStatusErr
	}
	o, ok := m.orders[orderID]
	if !ok || o.Status != "pending" {
		return internal.ErrInvalidTransition
	}
	o.Status = status
	return nil
}

func (m *mockOrderRepository) GetOrderByID(orderID int64) (*orderDatamodel.Order, error) {
	o, ok := m.orders[orderID]
	if !ok {
		return nil, internal.ErrOrderNotFound
	}
	return o, nil
}

func (m *mockOrderRepository) GetOrderForUser(orderID, userID int64) (*orderDatamodel.Order, error) {
	o, ok := m.orders[orderID]
	if !ok || o.UserID != userID {
		return nil, internal.ErrOrderNotFound
	}
	return o, nil
}

func (m *mockOrderRepository) GetItemsForOrder(orderID int64) ([]*orderDatamodel.OrderItem, error) {
	return m.orderItems[orderID], nil
}

func (m *mockOrderRepository) GetOrdersForUser(userID int64) ([]*orderDatamodel.Order, error) {
	var out []*orderDatamodel.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepository) GetAllOrders(limit, offset int) ([]*orderDatamodel.Order, error) {
	var out []*orderDatamodel.Order
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

var _ = Describe("Order Service", func() {
	var (
		repo    *mockOrderRepository
		service *order.Service
		ctx     context.Context
	)

	const userID = int64(42)

	placeDTO := order.PlaceOrderDTO{Address: "1 Main St", PaymentMethod: "card"}

	BeforeEach(func() {
		repo = newMockOrderRepository()
		service = order.NewService(repo, events.NewEventBus(slog.Default()), slog.Default())
		ctx = context.Background()
	})

	Describe("PlaceOrder", func() {
		It("fails when the user has no cart", func() {
			_, err := service.PlaceOrder(ctx, userID, placeDTO)
			Expect(err).To(MatchError(internal.ErrCartNotFound))
		})

		It("fails when the cart is empty", func() {
			repo.carts[userID] = &cartDatamodel.Cart{ID: 1, UserID: userID}

			_, err := service.PlaceOrder(ctx, userID, placeDTO)
			Expect(err).To(MatchError(internal.ErrEmptyCart))
		})

		It("snapshots prices and computes the total in minor units", func() {
			repo.carts[userID] = &cartDatamodel.Cart{ID: 1, UserID: userID}
			repo.cartLines[1] = []order.CartLine{
				{ProductID: 10, Quantity: 2, UnitPrice: 1500},
				{ProductID: 11, Quantity: 1, UnitPrice: 2500},
			}

			placed, err := service.PlaceOrder(ctx, userID, placeDTO)
			Expect(err).NotTo(HaveOccurred())
			Expect(placed.Status).To(Equal(order.StatusPending))
			Expect(placed.TotalAmount).To(Equal(int64(5500)))
			Expect(placed.Items).To(HaveLen(2))
			Expect(placed.Items[0].PriceAtPurchase).To(Equal(int64(1500)))
		})

		It("surfaces the insufficient stock conflict from the transaction", func() {
			repo.carts[userID] = &cartDatamodel.Cart{ID: 1, UserID: userID}
			repo.cartLines[1] = []order.CartLine{{ProductID: 10, Quantity: 2, UnitPrice: 1500}}
			repo.placeErr = internal.ErrInsufficientStock

			_, err := service.PlaceOrder(ctx, userID, placeDTO)
			Expect(err).To(MatchError(internal.ErrInsufficientStock))
		})

		It("surfaces the double-spend conflict from the transaction", func() {
			repo.carts[userID] = &cartDatamodel.Cart{ID: 1, UserID: userID}
			repo.cartLines[1] = []order.CartLine{{ProductID: 10, Quantity: 1, UnitPrice: 100}}
			repo.placeErr = internal.ErrCartAlreadyOrdered

			_, err := service.PlaceOrder(ctx, userID, placeDTO)
			Expect(err).To(MatchError(internal.ErrCartAlreadyOrdered))
		})
	})

	Describe("CancelOrder", func() {
		placeOne := func() *order.Order {
			repo.carts[userID] = &cartDatamodel.Cart{ID: 1, UserID: userID}
			repo.cartLines[1] = []order.CartLine{{ProductID: 10, Quantity: 1, UnitPrice: 100}}
			placed, err := service.PlaceOrder(ctx, userID, placeDTO)
			Expect(err).NotTo(HaveOccurred())
			return placed
		}

		It("cancels a pending order", func() {
			placed := placeOne()

			canceled, err := service.CancelOrder(ctx, placed.ID, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(canceled.Status).To(Equal(order.StatusCanceled))
		})

		It("rejects canceling another user's order", func() {
			placed := placeOne()

			_, err := service.CancelOrder(ctx, placed.ID, userID+1)
			Expect(err).To(MatchError(internal.ErrOrderNotFound))
		})

		It("rejects canceling a delivered order", func() {
			placed := placeOne()
			repo.orders[placed.ID].Status = "delivered"

			_, err := service.CancelOrder(ctx, placed.ID, userID)
			Expect(err).To(MatchError(internal.ErrInvalidTransition))
		})
	})

	Describe("UpdateOrderStatus", func() {
		placeOne := func() *order.Order {
			repo.carts[userID] = &cartDatamodel.Cart{ID: 1, UserID: userID}
			repo.cartLines[1] = []order.CartLine{{ProductID: 10, Quantity: 1, UnitPrice: 100}}
			placed, err := service.PlaceOrder(ctx, userID, placeDTO)
			Expect(err).NotTo(HaveOccurred())
			return placed
		}

		It("moves a pending order to delivered", func() {
			placed := placeOne()

			updated, err := service.UpdateOrderStatus(ctx, placed.ID, order.UpdateStatusDTO{Status: "delivered"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(order.StatusDelivered))
		})

		It("routes a cancel through the cancel transaction", func() {
			placed := placeOne()

			updated, err := service.UpdateOrderStatus(ctx, placed.ID, order.UpdateStatusDTO{Status: "canceled"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(order.StatusCanceled))
		})

		It("treats a no-op status as success", func() {
			placed := placeOne()

			updated, err := service.UpdateOrderStatus(ctx, placed.ID, order.UpdateStatusDTO{Status: "pending"})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(order.StatusPending))
		})

		It("surfaces the guard conflict when the row left pending underneath", func() {
			placed := placeOne()
			repo.setStatusErr = internal.ErrInvalidTransition

			_, err := service.UpdateOrderStatus(ctx, placed.ID, order.UpdateStatusDTO{Status: "delivered"})
			Expect(err).To(MatchError(internal.ErrInvalidTransition))
		})

		It("rejects leaving a terminal state", func() {
			placed := placeOne()
			repo.orders[placed.ID].Status = "delivered"

			_, err := service.UpdateOrderStatus(ctx, placed.ID, order.UpdateStatusDTO{Status: "pending"})
			Expect(err).To(MatchError(internal.ErrInvalidTransition))
		})

		It("rejects an unknown order", func() {
			_, err := service.UpdateOrderStatus(ctx, 999, order.UpdateStatusDTO{Status: "delivered"})
			Expect(err).To(MatchError(internal.ErrOrderNotFound))
		})
	})

	Describe("GetOrderByID", func() {
		It("scopes lookups to the owner", func() {
			repo.carts[userID] = &cartDatamodel.Cart{ID: 1, UserID: userID}
			repo.cartLines[1] = []order.CartLine{{ProductID: 10, Quantity: 1, UnitPrice: 100}}
			placed, err := service.PlaceOrder(ctx, userID, placeDTO)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.GetOrderByID(placed.ID, userID+1)
			Expect(err).To(MatchError(internal.ErrOrderNotFound))

			found, err := service.GetOrderByID(placed.ID, userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Items).To(HaveLen(1))
		})
	})
})
