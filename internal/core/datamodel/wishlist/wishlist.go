package wishlist

import "time"

type WishlistItem struct {
	UserID    int64     `gorm:"column:user_id;primaryKey"`
	ProductID int64     `gorm:"column:product_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (WishlistItem) TableName() string {
	return "wishlists"
}
