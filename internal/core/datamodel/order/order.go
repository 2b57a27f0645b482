package order

import "time"

type Order struct {
	ID            int64     `gorm:"primaryKey"`
	UserID        int64     `gorm:"column:user_id;not null"`
	TotalAmount   int64     `gorm:"column:total_amount;not null"`
	Status        string    `gorm:"not null;default:pending"`
	Address       string    `gorm:"not null"`
	PaymentMethod string    `gorm:"column:payment_method;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt     time.Time `gorm:"column:updated_at;default:now()"`
}

func (Order) TableName() string {
	return "orders"
}

// PriceAtPurchase is frozen when the order is placed and never mutated,
// regardless of later product price changes.
type OrderItem struct {
	ID              int64 `gorm:"primaryKey"`
	OrderID         int64 `gorm:"column:order_id;not null;index"`
	ProductID       int64 `gorm:"column:product_id;not null"`
	Quantity        int64 `gorm:"not null"`
	PriceAtPurchase int64 `gorm:"column:price_at_purchase;not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
