package catalog

import "time"

type Category struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	Slug      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt time.Time `gorm:"column:updated_at;default:now()"`
}

func (Category) TableName() string {
	return "categories"
}

// Product prices are stored in minor units, never floating point.
type Product struct {
	ID          int64     `gorm:"primaryKey"`
	Title       string    `gorm:"not null"`
	Slug        string    `gorm:"uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	Price       int64     `gorm:"not null"`
	Stock       int64     `gorm:"not null;default:0"`
	SKU         string    `gorm:"column:sku"`
	CategoryID  *int64    `gorm:"column:category_id"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
	UpdatedAt   time.Time `gorm:"column:updated_at;default:now()"`
}

func (Product) TableName() string {
	return "products"
}

type ProductImage struct {
	ID        int64     `gorm:"primaryKey"`
	ProductID int64     `gorm:"column:product_id;not null"`
	URL       string    `gorm:"not null"`
	IsPrimary bool      `gorm:"column:is_primary;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;default:now()"`
}

func (ProductImage) TableName() string {
	return "product_images"
}
