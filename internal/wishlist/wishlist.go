// Package wishlist is the per-user saved-products list.
package wishlist

import "time"

// Entry is a wishlist row joined with current product data.
type Entry struct {
	ProductID int64     `json:"product_id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Price     int64     `json:"price"`
	InStock   bool      `json:"in_stock"`
	AddedAt   time.Time `json:"added_at"`
}
