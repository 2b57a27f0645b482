package postgres

import (
	catalogDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/catalog"
	wishlistDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/wishlist"
	"github.com/frahmantamala/commerce-management/internal/wishlist"
	"gorm.io/gorm"
)

type WishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

func (r *WishlistRepository) Add(userID, productID int64) error {
	return r.db.Create(&wishlistDatamodel.WishlistItem{
		UserID:    userID,
		ProductID: productID,
	}).Error
}

func (r *WishlistRepository) Remove(userID, productID int64) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&wishlistDatamodel.WishlistItem{}).Error
}

func (r *WishlistRepository) GetForUser(userID int64) ([]*wishlist.Entry, error) {
	var entries []*wishlist.Entry
	err := r.db.
		Table("wishlists w").
		Select("w.product_id, p.title, p.slug, p.price, p.stock > 0 AS in_stock, w.created_at AS added_at").
		Joins("JOIN products p ON p.id = w.product_id").
		Where("w.user_id = ?", userID).
		Order("w.created_at DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *WishlistRepository) Contains(userID, productID int64) (bool, error) {
	var count int64
	err := r.db.Model(&wishlistDatamodel.WishlistItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *WishlistRepository) ProductExists(productID int64) (bool, error) {
	var count int64
	if err := r.db.Model(&catalogDatamodel.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
