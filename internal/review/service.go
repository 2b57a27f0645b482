package review

import (
	"log/slog"

	"github.com/frahmantamala/commerce-management/internal"
	reviewDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/review"
)

type RepositoryAPI interface {
	Create(review *reviewDatamodel.Review) error
	GetByID(id int64) (*reviewDatamodel.Review, error)
	// GetForProduct also resolves each reviewer's display name.
	GetForProduct(productID int64) ([]*Review, error)
	Update(review *reviewDatamodel.Review) error
	Delete(id int64) error

	ProductExists(productID int64) (bool, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "review_service"),
	}
}

func (s *Service) Create(userID int64, dto CreateReviewDTO) (*Review, error) {
	exists, err := s.repo.ProductExists(dto.ProductID)
	if err != nil {
		s.logger.Error("failed to check product", "product_id", dto.ProductID, "error", err)
		return nil, internal.NewInternalError("failed to create review", err)
	}
	if !exists {
		return nil, internal.ErrProductNotFound
	}

	r := &reviewDatamodel.Review{
		UserID:    userID,
		ProductID: dto.ProductID,
		Rating:    dto.Rating,
		Title:     dto.Title,
		Comment:   dto.Comment,
	}
	if err := s.repo.Create(r); err != nil {
		s.logger.Error("failed to create review", "product_id", dto.ProductID, "error", err)
		return nil, internal.NewInternalError("failed to create review", err)
	}

	s.logger.Info("review created", "review_id", r.ID, "product_id", dto.ProductID, "rating", dto.Rating)
	return FromDataModel(r), nil
}

func (s *Service) GetByID(id int64) (*Review, error) {
	r, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewNotFoundError("review not found", internal.ErrCodeReviewNotFound)
	}
	return FromDataModel(r), nil
}

func (s *Service) GetForProduct(productID int64) ([]*Review, error) {
	exists, err := s.repo.ProductExists(productID)
	if err != nil {
		return nil, internal.NewInternalError("failed to list reviews", err)
	}
	if !exists {
		return nil, internal.ErrProductNotFound
	}

	reviews, err := s.repo.GetForProduct(productID)
	if err != nil {
		s.logger.Error("failed to list reviews", "product_id", productID, "error", err)
		return nil, internal.NewInternalError("failed to list reviews", err)
	}
	return reviews, nil
}

// Update is owner-only: anyone else gets a 403 even if the review
// exists.
func (s *Service) Update(id, userID int64, dto UpdateReviewDTO) (*Review, error) {
	r, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewNotFoundError("review not found", internal.ErrCodeReviewNotFound)
	}
	if r.UserID != userID {
		return nil, internal.NewForbiddenError("you can only edit your own reviews", internal.ErrCodeMissingPermission)
	}

	if dto.Rating != nil {
		r.Rating = *dto.Rating
	}
	if dto.Title != nil {
		r.Title = *dto.Title
	}
	if dto.Comment != nil {
		r.Comment = *dto.Comment
	}

	if err := s.repo.Update(r); err != nil {
		s.logger.Error("failed to update review", "review_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update review", err)
	}
	return FromDataModel(r), nil
}

func (s *Service) Delete(id, userID int64) error {
	r, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewNotFoundError("review not found", internal.ErrCodeReviewNotFound)
	}
	if r.UserID != userID {
		return internal.NewForbiddenError("you can only delete your own reviews", internal.ErrCodeMissingPermission)
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete review", "review_id", id, "error", err)
		return internal.NewInternalError("failed to delete review", err)
	}
	return nil
}
