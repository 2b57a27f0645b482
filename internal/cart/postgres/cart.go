package postgres

import (
	"errors"

	cartDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/cart"
	catalogDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/catalog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// GetOrCreateCart relies on the unique index on user_id: a concurrent
// create loses the race and falls back to reading the winner's row.
func (r *CartRepository) GetOrCreateCart(userID int64) (*cartDatamodel.Cart, error) {
	var c cartDatamodel.Cart
	err := r.db.First(&c, "user_id = ?", userID).Error
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	c = cartDatamodel.Cart{UserID: userID}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&c).Error; err != nil {
		return nil, err
	}
	if c.ID == 0 {
		if err := r.db.First(&c, "user_id = ?", userID).Error; err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func (r *CartRepository) GetCartByUserID(userID int64) (*cartDatamodel.Cart, error) {
	var c cartDatamodel.Cart
	if err := r.db.First(&c, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpsertItem increments the quantity when the line already exists.
func (r *CartRepository) UpsertItem(cartID, productID, quantity int64) error {
	item := cartDatamodel.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", quantity),
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(&item).Error
}

func (r *CartRepository) SetItemQuantity(cartID, productID, quantity int64) error {
	item := cartDatamodel.CartItem{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(&item).Error
}

func (r *CartRepository) RemoveItem(cartID, productID int64) error {
	return r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&cartDatamodel.CartItem{}).Error
}

func (r *CartRepository) GetItems(cartID int64) ([]*cartDatamodel.CartItem, error) {
	var items []*cartDatamodel.CartItem
	err := r.db.Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *CartRepository) ClearItems(cartID int64) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&cartDatamodel.CartItem{}).Error
}

func (r *CartRepository) GetProduct(productID int64) (*catalogDatamodel.Product, error) {
	var product catalogDatamodel.Product
	if err := r.db.First(&product, "id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
