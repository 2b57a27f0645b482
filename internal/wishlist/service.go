package wishlist

import (
	"log/slog"

	"github.com/frahmantamala/commerce-management/internal"
)

type RepositoryAPI interface {
	Add(userID, productID int64) error
	Remove(userID, productID int64) error
	GetForUser(userID int64) ([]*Entry, error)
	Contains(userID, productID int64) (bool, error)
	ProductExists(productID int64) (bool, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "wishlist_service"),
	}
}

// Add rejects duplicates with a conflict rather than silently ignoring
// them, so clients can distinguish "saved" from "was already saved".
func (s *Service) Add(userID, productID int64) error {
	exists, err := s.repo.ProductExists(productID)
	if err != nil {
		s.logger.Error("failed to check product", "product_id", productID, "error", err)
		return internal.NewInternalError("failed to add to wishlist", err)
	}
	if !exists {
		return internal.ErrProductNotFound
	}

	already, err := s.repo.Contains(userID, productID)
	if err != nil {
		return internal.NewInternalError("failed to add to wishlist", err)
	}
	if already {
		return internal.ErrAlreadyInWishlist
	}

	if err := s.repo.Add(userID, productID); err != nil {
		s.logger.Error("failed to add to wishlist", "user_id", userID, "product_id", productID, "error", err)
		return internal.NewInternalError("failed to add to wishlist", err)
	}

	s.logger.Info("wishlist entry added", "user_id", userID, "product_id", productID)
	return nil
}

// Remove is idempotent.
func (s *Service) Remove(userID, productID int64) error {
	if err := s.repo.Remove(userID, productID); err != nil {
		s.logger.Error("failed to remove from wishlist", "user_id", userID, "product_id", productID, "error", err)
		return internal.NewInternalError("failed to remove from wishlist", err)
	}
	return nil
}

func (s *Service) GetForUser(userID int64) ([]*Entry, error) {
	entries, err := s.repo.GetForUser(userID)
	if err != nil {
		s.logger.Error("failed to load wishlist", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to load wishlist", err)
	}
	return entries, nil
}
