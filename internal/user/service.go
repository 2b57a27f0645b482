package user

import (
	"log/slog"

	"github.com/frahmantamala/commerce-management/internal"
	userDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	Create(u *userDatamodel.User) error
	GetByID(id int64) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	GetAll(limit, offset int) ([]*userDatamodel.User, error)
	Update(u *userDatamodel.User) error
	// Delete removes the user and everything they own: cart, cart items,
	// wishlist rows and reviews go in the same transaction.
	Delete(id int64) error
}

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo   RepositoryAPI
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	existing, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("failed to check existing email", "error", err)
		return nil, internal.NewInternalError("failed to register user", err)
	}
	if existing != nil {
		return nil, internal.ErrDuplicateEmail
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	record := &userDatamodel.User{
		FullName:     dto.FullName,
		Email:        dto.Email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("failed to register user", err)
	}

	s.logger.Info("user registered", "user_id", record.ID, "email", record.Email)
	return FromDataModel(record), nil
}

func (s *Service) GetByID(id int64) (*User, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if record == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) GetAll(limit, offset int) ([]*User, error) {
	records, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return FromDataModelSlice(records), nil
}

func (s *Service) Update(id int64, dto UpdateDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if record == nil {
		return nil, internal.ErrUserNotFound
	}

	if dto.Email != nil && *dto.Email != record.Email {
		existing, err := s.repo.GetByEmail(*dto.Email)
		if err != nil {
			return nil, internal.NewInternalError("failed to check existing email", err)
		}
		if existing != nil {
			return nil, internal.ErrDuplicateEmail
		}
		record.Email = *dto.Email
	}

	if dto.FullName != nil {
		record.FullName = *dto.FullName
	}

	if dto.Password != nil {
		hash, err := s.hasher.HashPassword(*dto.Password)
		if err != nil {
			return nil, internal.NewInternalError("failed to hash password", err)
		}
		record.PasswordHash = hash
	}

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, internal.NewInternalError("failed to update user", err)
	}

	s.logger.Info("user updated", "user_id", id)
	return FromDataModel(record), nil
}

func (s *Service) Delete(id int64) error {
	record, err := s.repo.GetByID(id)
	if err != nil {
		return internal.NewInternalError("failed to load user", err)
	}
	if record == nil {
		return internal.ErrUserNotFound
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return internal.NewInternalError("failed to delete user", err)
	}

	s.logger.Info("user deleted with owned data", "user_id", id)
	return nil
}
