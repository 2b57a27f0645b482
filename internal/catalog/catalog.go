// Package catalog exposes the product and category surface: CRUD for
// managers, filtered browsing for everyone else.
package catalog

import (
	"time"

	catalogDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/catalog"
)

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	Price       int64     `json:"price"`
	Stock       int64     `json:"stock"`
	SKU         string    `json:"sku,omitempty"`
	CategoryID  *int64    `json:"category_id,omitempty"`
	IsActive    bool      `json:"is_active"`
	Images      []Image   `json:"images,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Image struct {
	ID        int64  `json:"id"`
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
}

func (p *Product) InStock() bool {
	return p.Stock > 0
}

// ProductFilter is the typed form of the browse query string. Zero
// values mean "no constraint".
type ProductFilter struct {
	Query        string
	CategorySlug string
	MinPrice     int64
	MaxPrice     int64
	InStockOnly  bool
	ActiveOnly   bool
	Sort         ProductSort
	Limit        int
	Offset       int
}

type ProductSort string

const (
	SortNewest    ProductSort = "newest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortTitle     ProductSort = "title"
)

func CategoryFromDataModel(c *catalogDatamodel.Category) *Category {
	return &Category{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func ProductFromDataModel(p *catalogDatamodel.Product) *Product {
	return &Product{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		SKU:         p.SKU,
		CategoryID:  p.CategoryID,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ImageFromDataModel(img *catalogDatamodel.ProductImage) Image {
	return Image{
		ID:        img.ID,
		URL:       img.URL,
		IsPrimary: img.IsPrimary,
	}
}
