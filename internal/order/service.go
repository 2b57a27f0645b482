package order

import (
	"context"
	"log/slog"

	"github.com/frahmantamala/commerce-management/internal"
	cartDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/cart"
	orderDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/order"
	"github.com/frahmantamala/commerce-management/internal/core/events"
)

// CartLine is a cart item joined with the product's current price, the
// input to the checkout snapshot.
type CartLine struct {
	ProductID int64
	Quantity  int64
	UnitPrice int64
}

type RepositoryAPI interface {
	GetCartByUserID(userID int64) (*cartDatamodel.Cart, error)

	// PlaceOrder runs the checkout transaction: read the cart's lines
	// (ErrEmptyCart when there are none), snapshot quantities and
	// current prices into order items, fill o.TotalAmount, decrement
	// stock per line (ErrInsufficientStock when any product cannot
	// cover its quantity) and clear the cart's lines
	// (ErrCartAlreadyOrdered when the deleted count differs from the
	// snapshot). Any failure rolls back the whole transaction.
	PlaceOrder(o *orderDatamodel.Order, cartID int64) ([]*orderDatamodel.OrderItem, error)

	// CancelOrder flips pending → canceled and restores stock from the
	// item snapshot in one transaction. ErrInvalidTransition when the
	// order is not pending.
	CancelOrder(orderID int64) error

	// SetStatus only writes over a pending row; ErrInvalidTransition
	// when the order already left pending.
	SetStatus(orderID int64, status string) error

	GetOrderByID(orderID int64) (*orderDatamodel.Order, error)
	GetOrderForUser(orderID, userID int64) (*orderDatamodel.Order, error)
	GetItemsForOrder(orderID int64) ([]*orderDatamodel.OrderItem, error)
	GetOrdersForUser(userID int64) ([]*orderDatamodel.Order, error)
	GetAllOrders(limit, offset int) ([]*orderDatamodel.Order, error)
}

type Service struct {
	repo     RepositoryAPI
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger.With("component", "order_service"),
	}
}

// PlaceOrder turns the user's cart into an order. Quantities and prices
// are snapshotted inside the checkout transaction; later cart edits or
// product price changes never touch placed orders.
func (s *Service) PlaceOrder(ctx context.Context, userID int64, dto PlaceOrderDTO) (*Order, error) {
	c, err := s.repo.GetCartByUserID(userID)
	if err != nil {
		return nil, internal.ErrCartNotFound
	}

	o := &orderDatamodel.Order{
		UserID:        userID,
		Status:        string(StatusPending),
		Address:       dto.Address,
		PaymentMethod: dto.PaymentMethod,
	}

	items, err := s.repo.PlaceOrder(o, c.ID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			s.logger.Warn("order placement rejected", "user_id", userID, "code", appErr.Code)
			return nil, err
		}
		s.logger.Error("failed to place order", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to place order", err)
	}

	s.logger.Info("order placed",
		"order_id", o.ID,
		"user_id", userID,
		"total_amount", o.TotalAmount,
		"item_count", len(items))

	if err := s.eventBus.Publish(ctx, events.NewOrderPlacedEvent(o.ID, userID, o.TotalAmount, len(items))); err != nil {
		s.logger.Error("failed to publish order placed event", "order_id", o.ID, "error", err)
	}

	placed := FromDataModel(o)
	for _, item := range items {
		placed.Items = append(placed.Items, ItemFromDataModel(item))
	}
	return placed, nil
}

// CancelOrder lets a user cancel their own pending order. Stock is
// restored from the snapshot inside the repository transaction.
func (s *Service) CancelOrder(ctx context.Context, orderID, userID int64) (*Order, error) {
	o, err := s.repo.GetOrderForUser(orderID, userID)
	if err != nil {
		return nil, internal.ErrOrderNotFound
	}

	if !Status(o.Status).CanBeCanceled() {
		return nil, internal.ErrInvalidTransition
	}

	if err := s.repo.CancelOrder(orderID); err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to cancel order", "order_id", orderID, "error", err)
		return nil, internal.NewInternalError("failed to cancel order", err)
	}

	s.logger.Info("order canceled", "order_id", orderID, "user_id", userID)

	if err := s.eventBus.Publish(ctx, events.NewOrderCanceledEvent(orderID, userID, "canceled by customer")); err != nil {
		s.logger.Error("failed to publish order canceled event", "order_id", orderID, "error", err)
	}

	return s.getWithItems(o.ID)
}

// UpdateOrderStatus is the admin path. A transition to canceled routes
// through the cancel transaction so stock is restored exactly once.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID int64, dto UpdateStatusDTO) (*Order, error) {
	o, err := s.repo.GetOrderByID(orderID)
	if err != nil {
		return nil, internal.ErrOrderNotFound
	}

	target := Status(dto.Status)
	if target == Status(o.Status) {
		return s.getWithItems(orderID)
	}
	if !Status(o.Status).CanTransitionTo(target) {
		return nil, internal.ErrInvalidTransition
	}

	if target == StatusCanceled {
		if err := s.repo.CancelOrder(orderID); err != nil {
			if appErr, ok := internal.IsAppError(err); ok {
				return nil, appErr
			}
			s.logger.Error("failed to cancel order", "order_id", orderID, "error", err)
			return nil, internal.NewInternalError("failed to cancel order", err)
		}
		if err := s.eventBus.Publish(ctx, events.NewOrderCanceledEvent(orderID, o.UserID, "canceled by admin")); err != nil {
			s.logger.Error("failed to publish order canceled event", "order_id", orderID, "error", err)
		}
	} else {
		if err := s.repo.SetStatus(orderID, string(target)); err != nil {
			if appErr, ok := internal.IsAppError(err); ok {
				return nil, appErr
			}
			s.logger.Error("failed to update order status", "order_id", orderID, "error", err)
			return nil, internal.NewInternalError("failed to update order status", err)
		}
	}

	s.logger.Info("order status updated", "order_id", orderID, "status", target)
	return s.getWithItems(orderID)
}

func (s *Service) GetMyOrders(userID int64) ([]*Order, error) {
	orders, err := s.repo.GetOrdersForUser(userID)
	if err != nil {
		s.logger.Error("failed to list orders", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to list orders", err)
	}

	out := make([]*Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDataModel(o))
	}
	return out, nil
}

// GetOrderByID returns the order with its items, scoped to the owner.
func (s *Service) GetOrderByID(orderID, userID int64) (*Order, error) {
	if _, err := s.repo.GetOrderForUser(orderID, userID); err != nil {
		return nil, internal.ErrOrderNotFound
	}
	return s.getWithItems(orderID)
}

func (s *Service) GetAllOrders(limit, offset int) ([]*Order, error) {
	orders, err := s.repo.GetAllOrders(limit, offset)
	if err != nil {
		s.logger.Error("failed to list all orders", "error", err)
		return nil, internal.NewInternalError("failed to list orders", err)
	}

	out := make([]*Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDataModel(o))
	}
	return out, nil
}

func (s *Service) getWithItems(orderID int64) (*Order, error) {
	o, err := s.repo.GetOrderByID(orderID)
	if err != nil {
		return nil, internal.ErrOrderNotFound
	}

	items, err := s.repo.GetItemsForOrder(orderID)
	if err != nil {
		s.logger.Error("failed to load order items", "order_id", orderID, "error", err)
		return nil, internal.NewInternalError("failed to load order", err)
	}

	out := FromDataModel(o)
	for _, item := range items {
		out.Items = append(out.Items, ItemFromDataModel(item))
	}
	return out, nil
}
