package cart

import "time"

// One cart per user; created lazily on first access.
type Cart struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (Cart) TableName() string {
	return "carts"
}

type CartItem struct {
	CartID    int64     `gorm:"column:cart_id;primaryKey"`
	ProductID int64     `gorm:"column:product_id;primaryKey"`
	Quantity  int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (CartItem) TableName() string {
	return "cart_items"
}
