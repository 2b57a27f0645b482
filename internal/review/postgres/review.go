package postgres

import (
	catalogDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/catalog"
	reviewDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/review"
	"github.com/frahmantamala/commerce-management/internal/review"
	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(rev *reviewDatamodel.Review) error {
	return r.db.Create(rev).Error
}

func (r *ReviewRepository) GetByID(id int64) (*reviewDatamodel.Review, error) {
	var rev reviewDatamodel.Review
	if err := r.db.First(&rev, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepository) GetForProduct(productID int64) ([]*review.Review, error) {
	var reviews []*review.Review
	err := r.db.
		Table("reviews r").
		Select("r.id, r.user_id, u.fullname AS reviewer_name, r.product_id, r.rating, r.title, r.comment, r.created_at, r.updated_at").
		Joins("JOIN users u ON u.id = r.user_id").
		Where("r.product_id = ?", productID).
		Order("r.created_at DESC").
		Scan(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewRepository) Update(rev *reviewDatamodel.Review) error {
	return r.db.Save(rev).Error
}

func (r *ReviewRepository) Delete(id int64) error {
	return r.db.Delete(&reviewDatamodel.Review{}, "id = ?", id).Error
}

func (r *ReviewRepository) ProductExists(productID int64) (bool, error) {
	var count int64
	if err := r.db.Model(&catalogDatamodel.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
