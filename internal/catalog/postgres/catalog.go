package postgres

import (
	"github.com/frahmantamala/commerce-management/internal/catalog"
	catalogDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/catalog"
	"gorm.io/gorm"
)

type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) CreateCategory(category *catalogDatamodel.Category) error {
	return r.db.Create(category).Error
}

func (r *CatalogRepository) GetCategoryByID(id int64) (*catalogDatamodel.Category, error) {
	var category catalogDatamodel.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CatalogRepository) GetCategoryBySlug(slug string) (*catalogDatamodel.Category, error) {
	var category catalogDatamodel.Category
	if err := r.db.First(&category, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CatalogRepository) GetAllCategories() ([]*catalogDatamodel.Category, error) {
	var categories []*catalogDatamodel.Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CatalogRepository) UpdateCategory(category *catalogDatamodel.Category) error {
	return r.db.Save(category).Error
}

// DeleteCategory detaches its products rather than deleting them.
func (r *CatalogRepository) DeleteCategory(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&catalogDatamodel.Product{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error
		if err != nil {
			return err
		}
		return tx.Delete(&catalogDatamodel.Category{}, "id = ?", id).Error
	})
}

func (r *CatalogRepository) CreateProduct(product *catalogDatamodel.Product) error {
	return r.db.Create(product).Error
}

func (r *CatalogRepository) GetProductByID(id int64) (*catalogDatamodel.Product, error) {
	var product catalogDatamodel.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *CatalogRepository) GetProductBySlug(slug string) (*catalogDatamodel.Product, error) {
	var product catalogDatamodel.Product
	if err := r.db.First(&product, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// SearchProducts builds the filter as structured predicates and counts
// the full match set before applying the page window.
func (r *CatalogRepository) SearchProducts(filter catalog.ProductFilter) ([]*catalogDatamodel.Product, int64, error) {
	query := r.db.Model(&catalogDatamodel.Product{})

	if filter.ActiveOnly {
		query = query.Where("products.is_active = ?", true)
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("products.title ILIKE ? OR products.description ILIKE ?", pattern, pattern)
	}
	if filter.CategorySlug != "" {
		query = query.
			Joins("JOIN categories c ON c.id = products.category_id").
			Where("c.slug = ?", filter.CategorySlug)
	}
	if filter.MinPrice > 0 {
		query = query.Where("products.price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		query = query.Where("products.price <= ?", filter.MaxPrice)
	}
	if filter.InStockOnly {
		query = query.Where("products.stock > 0")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case catalog.SortPriceAsc:
		query = query.Order("products.price ASC")
	case catalog.SortPriceDesc:
		query = query.Order("products.price DESC")
	case catalog.SortTitle:
		query = query.Order("products.title ASC")
	default:
		query = query.Order("products.created_at DESC")
	}

	var products []*catalogDatamodel.Product
	if err := query.Limit(filter.Limit).Offset(filter.Offset).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *CatalogRepository) UpdateProduct(product *catalogDatamodel.Product) error {
	return r.db.Save(product).Error
}

// DeleteProduct also removes its images. Cart and order rows referencing
// the product are left alone: order items carry their own price
// snapshot, and cart cleanup is the cart domain's concern.
func (r *CatalogRepository) DeleteProduct(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&catalogDatamodel.ProductImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&catalogDatamodel.Product{}, "id = ?", id).Error
	})
}

func (r *CatalogRepository) AddImage(image *catalogDatamodel.ProductImage) error {
	return r.db.Create(image).Error
}

func (r *CatalogRepository) GetImagesForProduct(productID int64) ([]*catalogDatamodel.ProductImage, error) {
	var images []*catalogDatamodel.ProductImage
	err := r.db.Where("product_id = ?", productID).
		Order("is_primary DESC, id ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *CatalogRepository) DeleteImage(id int64) error {
	return r.db.Delete(&catalogDatamodel.ProductImage{}, "id = ?", id).Error
}
