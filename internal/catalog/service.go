package catalog

import (
	"log/slog"

	"github.com/frahmantamala/commerce-management/internal"
	catalogDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/catalog"
	"github.com/frahmantamala/commerce-management/pkg/slug"
)

type RepositoryAPI interface {
	CreateCategory(category *catalogDatamodel.Category) error
	GetCategoryByID(id int64) (*catalogDatamodel.Category, error)
	GetCategoryBySlug(s string) (*catalogDatamodel.Category, error)
	GetAllCategories() ([]*catalogDatamodel.Category, error)
	UpdateCategory(category *catalogDatamodel.Category) error
	DeleteCategory(id int64) error

	CreateProduct(product *catalogDatamodel.Product) error
	GetProductByID(id int64) (*catalogDatamodel.Product, error)
	GetProductBySlug(s string) (*catalogDatamodel.Product, error)
	SearchProducts(filter ProductFilter) ([]*catalogDatamodel.Product, int64, error)
	UpdateProduct(product *catalogDatamodel.Product) error
	DeleteProduct(id int64) error

	AddImage(image *catalogDatamodel.ProductImage) error
	GetImagesForProduct(productID int64) ([]*catalogDatamodel.ProductImage, error)
	DeleteImage(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "catalog_service"),
	}
}

func (s *Service) CreateCategory(dto CreateCategoryDTO) (*Category, error) {
	catSlug := slug.Make(dto.Name)
	if catSlug == "" {
		return nil, internal.NewValidationError("name must contain at least one letter or digit", internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetCategoryBySlug(catSlug); err == nil && existing != nil {
		return nil, internal.ErrDuplicateSlug
	}

	category := &catalogDatamodel.Category{
		Name: dto.Name,
		Slug: catSlug,
	}
	if err := s.repo.CreateCategory(category); err != nil {
		s.logger.Error("failed to create category", "slug", catSlug, "error", err)
		return nil, internal.NewInternalError("failed to create category", err)
	}

	s.logger.Info("category created", "category_id", category.ID, "slug", catSlug)
	return CategoryFromDataModel(category), nil
}

func (s *Service) GetAllCategories() ([]*Category, error) {
	categories, err := s.repo.GetAllCategories()
	if err != nil {
		s.logger.Error("failed to list categories", "error", err)
		return nil, internal.NewInternalError("failed to list categories", err)
	}

	out := make([]*Category, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryFromDataModel(c))
	}
	return out, nil
}

// UpdateCategory renames a category; the slug is re-derived and must not
// collide with another category's.
func (s *Service) UpdateCategory(id int64, dto CreateCategoryDTO) (*Category, error) {
	category, err := s.repo.GetCategoryByID(id)
	if err != nil {
		return nil, internal.NewNotFoundError("category not found", internal.ErrCodeCategoryNotFound)
	}

	catSlug := slug.Make(dto.Name)
	if catSlug == "" {
		return nil, internal.NewValidationError("name must contain at least one letter or digit", internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetCategoryBySlug(catSlug); err == nil && existing != nil && existing.ID != id {
		return nil, internal.ErrDuplicateSlug
	}

	category.Name = dto.Name
	category.Slug = catSlug
	if err := s.repo.UpdateCategory(category); err != nil {
		s.logger.Error("failed to update category", "category_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update category", err)
	}
	return CategoryFromDataModel(category), nil
}

func (s *Service) DeleteCategory(id int64) error {
	if _, err := s.repo.GetCategoryByID(id); err != nil {
		return internal.NewNotFoundError("category not found", internal.ErrCodeCategoryNotFound)
	}
	if err := s.repo.DeleteCategory(id); err != nil {
		s.logger.Error("failed to delete category", "category_id", id, "error", err)
		return internal.NewInternalError("failed to delete category", err)
	}
	return nil
}

func (s *Service) CreateProduct(dto CreateProductDTO) (*Product, error) {
	prodSlug := slug.Make(dto.Title)
	if prodSlug == "" {
		return nil, internal.NewValidationError("title must contain at least one letter or digit", internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetProductBySlug(prodSlug); err == nil && existing != nil {
		return nil, internal.ErrDuplicateSlug
	}

	if dto.CategoryID != nil {
		if _, err := s.repo.GetCategoryByID(*dto.CategoryID); err != nil {
			return nil, internal.NewValidationError("category does not exist", internal.ErrCodeValidationFailed)
		}
	}

	product := &catalogDatamodel.Product{
		Title:       dto.Title,
		Slug:        prodSlug,
		Description: dto.Description,
		Price:       dto.Price,
		Stock:       dto.Stock,
		SKU:         dto.SKU,
		CategoryID:  dto.CategoryID,
		IsActive:    true,
	}
	if err := s.repo.CreateProduct(product); err != nil {
		s.logger.Error("failed to create product", "slug", prodSlug, "error", err)
		return nil, internal.NewInternalError("failed to create product", err)
	}

	s.logger.Info("product created", "product_id", product.ID, "slug", prodSlug)
	return ProductFromDataModel(product), nil
}

func (s *Service) GetProduct(id int64) (*Product, error) {
	product, err := s.repo.GetProductByID(id)
	if err != nil {
		return nil, internal.ErrProductNotFound
	}

	out := ProductFromDataModel(product)
	images, err := s.repo.GetImagesForProduct(id)
	if err != nil {
		s.logger.Error("failed to load product images", "product_id", id, "error", err)
		return nil, internal.NewInternalError("failed to load product", err)
	}
	for _, img := range images {
		out.Images = append(out.Images, ImageFromDataModel(img))
	}
	return out, nil
}

// SearchProducts applies the typed filter and returns the page plus the
// total match count for pagination.
func (s *Service) SearchProducts(filter ProductFilter) ([]*Product, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.MinPrice > 0 && filter.MaxPrice > 0 && filter.MinPrice > filter.MaxPrice {
		return nil, 0, internal.NewValidationError("min_price cannot exceed max_price", internal.ErrCodeValidationFailed)
	}

	products, total, err := s.repo.SearchProducts(filter)
	if err != nil {
		s.logger.Error("failed to search products", "error", err)
		return nil, 0, internal.NewInternalError("failed to search products", err)
	}

	out := make([]*Product, 0, len(products))
	for _, p := range products {
		out = append(out, ProductFromDataModel(p))
	}
	return out, total, nil
}

func (s *Service) UpdateProduct(id int64, dto UpdateProductDTO) (*Product, error) {
	product, err := s.repo.GetProductByID(id)
	if err != nil {
		return nil, internal.ErrProductNotFound
	}

	if dto.Title != nil {
		newSlug := slug.Make(*dto.Title)
		if newSlug == "" {
			return nil, internal.NewValidationError("title must contain at least one letter or digit", internal.ErrCodeValidationFailed)
		}
		if newSlug != product.Slug {
			if existing, err := s.repo.GetProductBySlug(newSlug); err == nil && existing != nil {
				return nil, internal.ErrDuplicateSlug
			}
		}
		product.Title = *dto.Title
		product.Slug = newSlug
	}
	if dto.Description != nil {
		product.Description = *dto.Description
	}
	if dto.Price != nil {
		product.Price = *dto.Price
	}
	if dto.Stock != nil {
		product.Stock = *dto.Stock
	}
	if dto.SKU != nil {
		product.SKU = *dto.SKU
	}
	if dto.CategoryID != nil {
		if _, err := s.repo.GetCategoryByID(*dto.CategoryID); err != nil {
			return nil, internal.NewValidationError("category does not exist", internal.ErrCodeValidationFailed)
		}
		product.CategoryID = dto.CategoryID
	}
	if dto.IsActive != nil {
		product.IsActive = *dto.IsActive
	}

	if err := s.repo.UpdateProduct(product); err != nil {
		s.logger.Error("failed to update product", "product_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update product", err)
	}
	return ProductFromDataModel(product), nil
}

func (s *Service) DeleteProduct(id int64) error {
	if _, err := s.repo.GetProductByID(id); err != nil {
		return internal.ErrProductNotFound
	}
	if err := s.repo.DeleteProduct(id); err != nil {
		s.logger.Error("failed to delete product", "product_id", id, "error", err)
		return internal.NewInternalError("failed to delete product", err)
	}
	s.logger.Info("product deleted", "product_id", id)
	return nil
}

func (s *Service) AddImage(productID int64, dto AddImageDTO) (*Product, error) {
	if _, err := s.repo.GetProductByID(productID); err != nil {
		return nil, internal.ErrProductNotFound
	}

	image := &catalogDatamodel.ProductImage{
		ProductID: productID,
		URL:       dto.URL,
		IsPrimary: dto.IsPrimary,
	}
	if err := s.repo.AddImage(image); err != nil {
		s.logger.Error("failed to add product image", "product_id", productID, "error", err)
		return nil, internal.NewInternalError("failed to add product image", err)
	}

	return s.GetProduct(productID)
}

func (s *Service) DeleteImage(id int64) error {
	if err := s.repo.DeleteImage(id); err != nil {
		s.logger.Error("failed to delete product image", "image_id", id, "error", err)
		return internal.NewInternalError("failed to delete product image", err)
	}
	return nil
}
