package cart

import (
	"log/slog"

	"github.com/frahmantamala/commerce-management/internal"
	cartDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/cart"
	catalogDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/catalog"
)

type RepositoryAPI interface {
	// GetOrCreateCart returns the user's cart, creating it if absent.
	GetOrCreateCart(userID int64) (*cartDatamodel.Cart, error)
	GetCartByUserID(userID int64) (*cartDatamodel.Cart, error)

	// UpsertItem adds quantity to an existing line or inserts a new one.
	UpsertItem(cartID, productID, quantity int64) error
	SetItemQuantity(cartID, productID, quantity int64) error
	RemoveItem(cartID, productID int64) error
	GetItems(cartID int64) ([]*cartDatamodel.CartItem, error)
	ClearItems(cartID int64) error

	GetProduct(productID int64) (*catalogDatamodel.Product, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "cart_service"),
	}
}

// AddItem creates the cart on first use. Adding a product already in
// the cart increments its quantity instead of failing.
func (s *Service) AddItem(userID int64, dto AddItemDTO) (*Cart, error) {
	product, err := s.repo.GetProduct(dto.ProductID)
	if err != nil {
		return nil, internal.ErrProductNotFound
	}
	if !product.IsActive {
		return nil, internal.ErrProductNotFound
	}

	c, err := s.repo.GetOrCreateCart(userID)
	if err != nil {
		s.logger.Error("failed to open cart", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to open cart", err)
	}

	if err := s.repo.UpsertItem(c.ID, dto.ProductID, dto.Quantity); err != nil {
		s.logger.Error("failed to add cart item", "cart_id", c.ID, "product_id", dto.ProductID, "error", err)
		return nil, internal.NewInternalError("failed to add cart item", err)
	}

	s.logger.Info("cart item added", "cart_id", c.ID, "product_id", dto.ProductID, "quantity", dto.Quantity)
	return s.buildView(c)
}

// SetItemQuantity overwrites the line quantity. Zero removes the line.
// Unlike AddItem it never creates a cart: there is nothing to update.
func (s *Service) SetItemQuantity(userID, productID int64, dto SetQuantityDTO) (*Cart, error) {
	c, err := s.repo.GetCartByUserID(userID)
	if err != nil {
		return nil, internal.ErrCartNotFound
	}

	if dto.Quantity == 0 {
		if err := s.repo.RemoveItem(c.ID, productID); err != nil {
			s.logger.Error("failed to remove cart item", "cart_id", c.ID, "product_id", productID, "error", err)
			return nil, internal.NewInternalError("failed to remove cart item", err)
		}
		return s.buildView(c)
	}

	if _, err := s.repo.GetProduct(productID); err != nil {
		return nil, internal.ErrProductNotFound
	}

	if err := s.repo.SetItemQuantity(c.ID, productID, dto.Quantity); err != nil {
		s.logger.Error("failed to set cart item quantity", "cart_id", c.ID, "product_id", productID, "error", err)
		return nil, internal.NewInternalError("failed to set cart item quantity", err)
	}

	return s.buildView(c)
}

// RemoveItem is idempotent: removing a product that is not in the cart
// succeeds without effect.
func (s *Service) RemoveItem(userID, productID int64) (*Cart, error) {
	c, err := s.repo.GetCartByUserID(userID)
	if err != nil {
		return nil, internal.ErrCartNotFound
	}

	if err := s.repo.RemoveItem(c.ID, productID); err != nil {
		s.logger.Error("failed to remove cart item", "cart_id", c.ID, "product_id", productID, "error", err)
		return nil, internal.NewInternalError("failed to remove cart item", err)
	}

	return s.buildView(c)
}

// GetCart returns the cart view, creating an empty cart on first access.
func (s *Service) GetCart(userID int64) (*Cart, error) {
	c, err := s.repo.GetOrCreateCart(userID)
	if err != nil {
		s.logger.Error("failed to open cart", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to open cart", err)
	}
	return s.buildView(c)
}

func (s *Service) ClearCart(userID int64) error {
	c, err := s.repo.GetCartByUserID(userID)
	if err != nil {
		return internal.ErrCartNotFound
	}
	if err := s.repo.ClearItems(c.ID); err != nil {
		s.logger.Error("failed to clear cart", "cart_id", c.ID, "error", err)
		return internal.NewInternalError("failed to clear cart", err)
	}
	return nil
}

// buildView joins cart lines against current product data. Prices shown
// here are live; they only become fixed when an order snapshots them.
func (s *Service) buildView(c *cartDatamodel.Cart) (*Cart, error) {
	items, err := s.repo.GetItems(c.ID)
	if err != nil {
		s.logger.Error("failed to load cart items", "cart_id", c.ID, "error", err)
		return nil, internal.NewInternalError("failed to load cart", err)
	}

	view := &Cart{
		ID:        c.ID,
		UserID:    c.UserID,
		Items:     make([]Item, 0, len(items)),
		CreatedAt: c.CreatedAt,
	}

	for _, item := range items {
		product, err := s.repo.GetProduct(item.ProductID)
		if err != nil {
			// product deleted since it was added; drop the line from the view
			continue
		}

		subtotal := product.Price * item.Quantity
		view.Items = append(view.Items, Item{
			ProductID:  product.ID,
			Title:      product.Title,
			Slug:       product.Slug,
			UnitPrice:  product.Price,
			Quantity:   item.Quantity,
			Subtotal:   subtotal,
			Stock:      product.Stock,
			OutOfStock: product.Stock < item.Quantity,
		})
		view.Total += subtotal
	}

	return view, nil
}
