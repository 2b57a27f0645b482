// Package cart implements the per-user shopping cart. A cart is created
// lazily the first time a user touches it, and adding a product the
// cart already holds increments its quantity.
package cart

import "time"

type Item struct {
	ProductID  int64  `json:"product_id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	UnitPrice  int64  `json:"unit_price"`
	Quantity   int64  `json:"quantity"`
	Subtotal   int64  `json:"subtotal"`
	Stock      int64  `json:"stock"`
	OutOfStock bool   `json:"out_of_stock"`
}

type Cart struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Items     []Item    `json:"items"`
	Total     int64     `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}
