package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/frahmantamala/commerce-management/internal"
)

type CreateCategoryDTO struct {
	Name string `json:"name"`
}

func (d *CreateCategoryDTO) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type CreateProductDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int64  `json:"stock"`
	SKU         string `json:"sku"`
	CategoryID  *int64 `json:"category_id"`
}

func (d *CreateProductDTO) Validate() error {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return internal.NewValidationError("title is required", internal.ErrCodeValidationFailed)
	}
	if d.Price < 0 {
		return internal.NewValidationError("price cannot be negative", internal.ErrCodeValidationFailed)
	}
	if d.Stock < 0 {
		return internal.NewValidationError("stock cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateProductDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	Stock       *int64  `json:"stock"`
	SKU         *string `json:"sku"`
	CategoryID  *int64  `json:"category_id"`
	IsActive    *bool   `json:"is_active"`
}

func (d *UpdateProductDTO) Validate() error {
	if d.Title == nil && d.Description == nil && d.Price == nil &&
		d.Stock == nil && d.SKU == nil && d.CategoryID == nil && d.IsActive == nil {
		return internal.NewValidationError("at least one field must be provided", internal.ErrCodeValidationFailed)
	}
	if d.Title != nil && strings.TrimSpace(*d.Title) == "" {
		return internal.NewValidationError("title cannot be empty", internal.ErrCodeValidationFailed)
	}
	if d.Price != nil && *d.Price < 0 {
		return internal.NewValidationError("price cannot be negative", internal.ErrCodeValidationFailed)
	}
	if d.Stock != nil && *d.Stock < 0 {
		return internal.NewValidationError("stock cannot be negative", internal.ErrCodeValidationFailed)
	}
	return nil
}

type AddImageDTO struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
}

func (d *AddImageDTO) Validate() error {
	d.URL = strings.TrimSpace(d.URL)
	if d.URL == "" {
		return internal.NewValidationError("url is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

// FilterFromQuery parses the browse query string into a ProductFilter.
// Malformed numeric values are ignored rather than rejected.
func FilterFromQuery(r *http.Request) ProductFilter {
	q := r.URL.Query()

	filter := ProductFilter{
		Query:        strings.TrimSpace(q.Get("q")),
		CategorySlug: strings.TrimSpace(q.Get("category")),
		ActiveOnly:   true,
		Limit:        20,
	}

	if v, err := strconv.ParseInt(q.Get("min_price"), 10, 64); err == nil && v > 0 {
		filter.MinPrice = v
	}
	if v, err := strconv.ParseInt(q.Get("max_price"), 10, 64); err == nil && v > 0 {
		filter.MaxPrice = v
	}
	if q.Get("in_stock") == "true" {
		filter.InStockOnly = true
	}

	switch ProductSort(q.Get("sort")) {
	case SortPriceAsc:
		filter.Sort = SortPriceAsc
	case SortPriceDesc:
		filter.Sort = SortPriceDesc
	case SortTitle:
		filter.Sort = SortTitle
	default:
		filter.Sort = SortNewest
	}

	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 && v <= 100 {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v >= 0 {
		filter.Offset = v
	}

	return filter
}
