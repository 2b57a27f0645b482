package cart_test

import (
	"log/slog"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/commerce-management/internal"
	"github.com/frahmantamala/commerce-management/internal/cart"
	cartDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/cart"
	catalogDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/catalog"
)

func TestCartService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Cart Service Suite")
}

type cartLine struct {
	cartID    int64
	productID int64
}

type mockCartRepository struct {
	carts      map[int64]*cartDatamodel.Cart
	items      map[cartLine]int64
	products   map[int64]*catalogDatamodel.Product
	nextCartID int64
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{
		carts:      make(map[int64]*cartDatamodel.Cart),
		items:      make(map[cartLine]int64),
		products:   make(map[int64]*catalogDatamodel.Product),
		nextCartID: 1,
	}
}

func (m *mockCartRepository) GetOrCreateCart(userID int64) (*cartDatamodel.Cart, error) {
	if c, ok := m.carts[userID]; ok {
		return c, nil
	}
	c := &cartDatamodel.Cart{ID: m.nextCartID, UserID: userID}
	m.nextCartID++
	m.carts[userID] = c
	return c, nil
}

func (m *mockCartRepository) GetCartByUserID(userID int64) (*cartDatamodel.Cart, error) {
	c, ok := m.carts[userID]
	if !ok {
		return nil, internal.ErrCartNotFound
	}
	return c, nil
}

func (m *mockCartRepository) UpsertItem(cartID, productID, quantity int64) error {
	m.items[cartLine{cartID, productID}] += quantity
	return nil
}

func (m *mockCartRepository) SetItemQuantity(cartID, productID, quantity int64) error {
	m.items[cartLine{cartID, productID}] = quantity
	return nil
}

func (m *mockCartRepository) RemoveItem(cartID, productID int64) error {
	delete(m.items, cartLine{cartID, productID})
	return nil
}

func (m *mockCartRepository) GetItems(cartID int64) ([]*cartDatamodel.CartItem, error) {
	var out []*cartDatamodel.CartItem
	for line, qty := range m.items {
		if line.cartID == cartID {
			out = append(out, &cartDatamodel.CartItem{
				CartID:    line.cartID,
				ProductID: line.productID,
				Quantity:  qty,
			})
		}
	}
	return out, nil
}

func (m *mockCartRepository) ClearItems(cartID int64) error {
	for line := range m.items {
		if line.cartID == cartID {
			delete(m.items, line)
		}
	}
	return nil
}

func (m *mockCartRepository) GetProduct(productID int64) (*catalogDatamodel.Product, error) {
	p, ok := m.products[productID]
	if !ok {
		return nil, internal.ErrProductNotFound
	}
	return p, nil
}

var _ = Describe("Cart Service", func() {
	var (
		repo    *mockCartRepository
		service *cart.Service
	)

	const userID = int64(42)

	BeforeEach(func() {
		repo = newMockCartRepository()
		repo.products[1] = &catalogDatamodel.Product{
			ID: 1, Title: "Widget", Slug: "widget", Price: 1500, Stock: 10, IsActive: true,
		}
		repo.products[2] = &catalogDatamodel.Product{
			ID: 2, Title: "Gadget", Slug: "gadget", Price: 2500, Stock: 3, IsActive: true,
		}
		service = cart.NewService(repo, slog.Default())
	})

	Describe("GetCart", func() {
		It("creates an empty cart on first access", func() {
			view, err := service.GetCart(userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.UserID).To(Equal(userID))
			Expect(view.Items).To(BeEmpty())
			Expect(view.Total).To(BeZero())
		})

		It("returns the same cart on repeated access", func() {
			first, err := service.GetCart(userID)
			Expect(err).NotTo(HaveOccurred())
			second, err := service.GetCart(userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ID).To(Equal(first.ID))
		})
	})

	Describe("AddItem", func() {
		It("creates the cart lazily and adds the line", func() {
			view, err := service.AddItem(userID, cart.AddItemDTO{ProductID: 1, Quantity: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Items).To(HaveLen(1))
			Expect(view.Items[0].Quantity).To(Equal(int64(2)))
			Expect(view.Items[0].Subtotal).To(Equal(int64(3000)))
			Expect(view.Total).To(Equal(int64(3000)))
		})

		It("increments the quantity when the product is already in the cart", func() {
			_, err := service.AddItem(userID, cart.AddItemDTO{ProductID: 1, Quantity: 2})
			Expect(err).NotTo(HaveOccurred())

			view, err := service.AddItem(userID, cart.AddItemDTO{ProductID: 1, Quantity: 3})
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Items).To(HaveLen(1))
			Expect(view.Items[0].Quantity).To(Equal(int64(5)))
			Expect(view.Total).To(Equal(int64(7500)))
		})

		It("sums subtotals across distinct products", func() {
			_, err := service.AddItem(userID, cart.AddItemDTO{ProductID: 1, Quantity: 1})
			Expect(err).NotTo(HaveOccurred())

			view, err := service.AddItem(userID, cart.AddItemDTO{ProductID: 2, Quantity: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Items).To(HaveLen(2))
			Expect(view.Total).To(Equal(int64(1500 + 5000)))
		})

		It("rejects an unknown product", func() {
			_, err := service.AddItem(userID, cart.AddItemDTO{ProductID: 99, Quantity: 1})
			Expect(err).To(MatchError(internal.ErrProductNotFound))
		})

		It("rejects an inactive product", func() {
			repo.products[3] = &catalogDatamodel.Product{ID: 3, Title: "Retired", Price: 100, IsActive: false}
			_, err := service.AddItem(userID, cart.AddItemDTO{ProductID: 3, Quantity: 1})
			Expect(err).To(MatchError(internal.ErrProductNotFound))
		})

		It("flags a line whose quantity exceeds current stock", func() {
			view, err := service.AddItem(userID, cart.AddItemDTO{ProductID: 2, Quantity: 5})
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Items[0].OutOfStock).To(BeTrue())
		})
	})

	Describe("SetItemQuantity", func() {
		It("overwrites instead of incrementing", func() {
			_, err := service.AddItem(userID, cart.AddItemDTO{ProductID: 1, Quantity: 5})
			Expect(err).NotTo(HaveOccurred())

			view, err := service.SetItemQuantity(userID, 1, cart.SetQuantityDTO{Quantity: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Items[0].Quantity).To(Equal(int64(2)))
		})

		It("removes the line when quantity is zero", func() {
			_, err := service.AddItem(userID, cart.AddItemDTO{ProductID: 1, Quantity: 5})
			Expect(err).NotTo(HaveOccurred())

			view, err := service.SetItemQuantity(userID, 1, cart.SetQuantityDTO{Quantity: 0})
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Items).To(BeEmpty())
		})

		It("fails when the user has no cart yet", func() {
			_, err := service.SetItemQuantity(userID, 1, cart.SetQuantityDTO{Quantity: 2})
			Expect(err).To(MatchError(internal.ErrCartNotFound))
		})
	})

	Describe("RemoveItem", func() {
		It("is idempotent for a product not in the cart", func() {
			_, err := service.AddItem(userID, cart.AddItemDTO{ProductID: 1, Quantity: 1})
			Expect(err).NotTo(HaveOccurred())

			view, err := service.RemoveItem(userID, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Items).To(HaveLen(1))
		})
	})

	Describe("ClearCart", func() {
		It("empties the cart", func() {
			_, err := service.AddItem(userID, cart.AddItemDTO{ProductID: 1, Quantity: 1})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.ClearCart(userID)).To(Succeed())

			view, err := service.GetCart(userID)
			Expect(err).NotTo(HaveOccurred())
			Expect(view.Items).To(BeEmpty())
		})
	})
})
