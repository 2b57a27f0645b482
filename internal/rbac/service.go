package rbac

import (
	"log/slog"

	"github.com/frahmantamala/commerce-management/internal"
	rbacDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/rbac"
	"github.com/frahmantamala/commerce-management/pkg/slug"
)

type RepositoryAPI interface {
	CreateRole(role *rbacDatamodel.Role) error
	GetRoleByID(id int64) (*rbacDatamodel.Role, error)
	GetRoleBySlug(s string) (*rbacDatamodel.Role, error)
	GetAllRoles() ([]*rbacDatamodel.Role, error)
	UpdateRole(role *rbacDatamodel.Role) error
	DeleteRole(id int64) error

	CreatePermission(perm *rbacDatamodel.Permission) error
	GetPermissionByID(id int64) (*rbacDatamodel.Permission, error)
	GetPermissionBySlug(s string) (*rbacDatamodel.Permission, error)
	GetAllPermissions() ([]*rbacDatamodel.Permission, error)
	DeletePermission(id int64) error

	AssignRoleToUser(userID, roleID int64) error
	RevokeRoleFromUser(userID, roleID int64) error
	GetRolesForUser(userID int64) ([]*rbacDatamodel.Role, error)
	UserExists(userID int64) (bool, error)

	GrantPermissionToRole(roleID, permissionID int64) error
	RevokePermissionFromRole(roleID, permissionID int64) error
	GetPermissionsForRole(roleID int64) ([]*rbacDatamodel.Permission, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger.With("component", "rbac_service"),
	}
}

// CreateRole derives the slug from the name; the slug is the stable
// identifier referenced by route guards, so duplicates are a conflict.
func (s *Service) CreateRole(dto CreateRoleDTO) (*Role, error) {
	roleSlug := slug.Make(dto.Name)
	if roleSlug == "" {
		return nil, internal.NewValidationError("name must contain at least one letter or digit", internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetRoleBySlug(roleSlug); err == nil && existing != nil {
		return nil, internal.ErrDuplicateSlug
	}

	role := &rbacDatamodel.Role{
		Name:        dto.Name,
		Slug:        roleSlug,
		Description: dto.Description,
	}
	if err := s.repo.CreateRole(role); err != nil {
		s.logger.Error("failed to create role", "slug", roleSlug, "error", err)
		return nil, internal.NewInternalError("failed to create role", err)
	}

	s.logger.Info("role created", "role_id", role.ID, "slug", roleSlug)
	return RoleFromDataModel(role), nil
}

func (s *Service) GetRole(id int64) (*Role, error) {
	role, err := s.repo.GetRoleByID(id)
	if err != nil {
		return nil, internal.NewNotFoundError("role not found", internal.ErrCodeRoleNotFound)
	}
	return RoleFromDataModel(role), nil
}

func (s *Service) GetAllRoles() ([]*Role, error) {
	roles, err := s.repo.GetAllRoles()
	if err != nil {
		s.logger.Error("failed to list roles", "error", err)
		return nil, internal.NewInternalError("failed to list roles", err)
	}

	out := make([]*Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, RoleFromDataModel(r))
	}
	return out, nil
}

// UpdateRole changes name and/or description. Renaming re-derives the
// slug, which must stay unique across roles.
func (s *Service) UpdateRole(id int64, dto UpdateRoleDTO) (*Role, error) {
	role, err := s.repo.GetRoleByID(id)
	if err != nil {
		return nil, internal.NewNotFoundError("role not found", internal.ErrCodeRoleNotFound)
	}

	if dto.Name != nil {
		newSlug := slug.Make(*dto.Name)
		if newSlug == "" {
			return nil, internal.NewValidationError("name must contain at least one letter or digit", internal.ErrCodeValidationFailed)
		}
		if newSlug != role.Slug {
			if existing, err := s.repo.GetRoleBySlug(newSlug); err == nil && existing != nil {
				return nil, internal.ErrDuplicateSlug
			}
		}
		role.Name = *dto.Name
		role.Slug = newSlug
	}
	if dto.Description != nil {
		role.Description = *dto.Description
	}

	if err := s.repo.UpdateRole(role); err != nil {
		s.logger.Error("failed to update role", "role_id", id, "error", err)
		return nil, internal.NewInternalError("failed to update role", err)
	}
	return RoleFromDataModel(role), nil
}

// DeleteRole removes the role and, through the repository, its
// assignments and grants. Users holding only this role lose access on
// their next request.
func (s *Service) DeleteRole(id int64) error {
	if _, err := s.repo.GetRoleByID(id); err != nil {
		return internal.NewNotFoundError("role not found", internal.ErrCodeRoleNotFound)
	}
	if err := s.repo.DeleteRole(id); err != nil {
		s.logger.Error("failed to delete role", "role_id", id, "error", err)
		return internal.NewInternalError("failed to delete role", err)
	}
	s.logger.Info("role deleted", "role_id", id)
	return nil
}

func (s *Service) CreatePermission(dto CreatePermissionDTO) (*Permission, error) {
	permSlug := slug.Make(dto.Name)
	if permSlug == "" {
		return nil, internal.NewValidationError("name must contain at least one letter or digit", internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetPermissionBySlug(permSlug); err == nil && existing != nil {
		return nil, internal.ErrDuplicateSlug
	}

	perm := &rbacDatamodel.Permission{
		Name:        dto.Name,
		Slug:        permSlug,
		Description: dto.Description,
	}
	if err := s.repo.CreatePermission(perm); err != nil {
		s.logger.Error("failed to create permission", "slug", permSlug, "error", err)
		return nil, internal.NewInternalError("failed to create permission", err)
	}

	s.logger.Info("permission created", "permission_id", perm.ID, "slug", permSlug)
	return PermissionFromDataModel(perm), nil
}

func (s *Service) GetAllPermissions() ([]*Permission, error) {
	perms, err := s.repo.GetAllPermissions()
	if err != nil {
		s.logger.Error("failed to list permissions", "error", err)
		return nil, internal.NewInternalError("failed to list permissions", err)
	}

	out := make([]*Permission, 0, len(perms))
	for _, p := range perms {
		out = append(out, PermissionFromDataModel(p))
	}
	return out, nil
}

func (s *Service) DeletePermission(id int64) error {
	if _, err := s.repo.GetPermissionByID(id); err != nil {
		return internal.NewNotFoundError("permission not found", internal.ErrCodePermissionNotFound)
	}
	if err := s.repo.DeletePermission(id); err != nil {
		s.logger.Error("failed to delete permission", "permission_id", id, "error", err)
		return internal.NewInternalError("failed to delete permission", err)
	}
	s.logger.Info("permission deleted", "permission_id", id)
	return nil
}

// AssignRole is idempotent: assigning a role the user already holds
// succeeds without effect.
func (s *Service) AssignRole(userID, roleID int64) error {
	exists, err := s.repo.UserExists(userID)
	if err != nil {
		s.logger.Error("failed to check user", "user_id", userID, "error", err)
		return internal.NewInternalError("failed to assign role", err)
	}
	if !exists {
		return internal.ErrUserNotFound
	}
	if _, err := s.repo.GetRoleByID(roleID); err != nil {
		return internal.NewNotFoundError("role not found", internal.ErrCodeRoleNotFound)
	}

	if err := s.repo.AssignRoleToUser(userID, roleID); err != nil {
		s.logger.Error("failed to assign role", "user_id", userID, "role_id", roleID, "error", err)
		return internal.NewInternalError("failed to assign role", err)
	}

	s.logger.Info("role assigned", "user_id", userID, "role_id", roleID)
	return nil
}

// RevokeRole is idempotent: revoking a role the user does not hold
// succeeds without effect. The revocation takes effect on the user's
// next request because the principal graph is loaded fresh each time.
func (s *Service) RevokeRole(userID, roleID int64) error {
	if err := s.repo.RevokeRoleFromUser(userID, roleID); err != nil {
		s.logger.Error("failed to revoke role", "user_id", userID, "role_id", roleID, "error", err)
		return internal.NewInternalError("failed to revoke role", err)
	}
	s.logger.Info("role revoked", "user_id", userID, "role_id", roleID)
	return nil
}

func (s *Service) GetUserRoles(userID int64) ([]*Role, error) {
	exists, err := s.repo.UserExists(userID)
	if err != nil {
		return nil, internal.NewInternalError("failed to load user roles", err)
	}
	if !exists {
		return nil, internal.ErrUserNotFound
	}

	roles, err := s.repo.GetRolesForUser(userID)
	if err != nil {
		s.logger.Error("failed to load user roles", "user_id", userID, "error", err)
		return nil, internal.NewInternalError("failed to load user roles", err)
	}

	out := make([]*Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, RoleFromDataModel(r))
	}
	return out, nil
}

// GrantPermission is idempotent, like AssignRole.
func (s *Service) GrantPermission(roleID, permissionID int64) error {
	if _, err := s.repo.GetRoleByID(roleID); err != nil {
		return internal.NewNotFoundError("role not found", internal.ErrCodeRoleNotFound)
	}
	if _, err := s.repo.GetPermissionByID(permissionID); err != nil {
		return internal.NewNotFoundError("permission not found", internal.ErrCodePermissionNotFound)
	}

	if err := s.repo.GrantPermissionToRole(roleID, permissionID); err != nil {
		s.logger.Error("failed to grant permission", "role_id", roleID, "permission_id", permissionID, "error", err)
		return internal.NewInternalError("failed to grant permission", err)
	}

	s.logger.Info("permission granted", "role_id", roleID, "permission_id", permissionID)
	return nil
}

func (s *Service) RevokePermission(roleID, permissionID int64) error {
	if err := s.repo.RevokePermissionFromRole(roleID, permissionID); err != nil {
		s.logger.Error("failed to revoke permission", "role_id", roleID, "permission_id", permissionID, "error", err)
		return internal.NewInternalError("failed to revoke permission", err)
	}
	s.logger.Info("permission revoked", "role_id", roleID, "permission_id", permissionID)
	return nil
}

func (s *Service) GetRolePermissions(roleID int64) ([]*Permission, error) {
	if _, err := s.repo.GetRoleByID(roleID); err != nil {
		return nil, internal.NewNotFoundError("role not found", internal.ErrCodeRoleNotFound)
	}

	perms, err := s.repo.GetPermissionsForRole(roleID)
	if err != nil {
		s.logger.Error("failed to load role permissions", "role_id", roleID, "error", err)
		return nil, internal.NewInternalError("failed to load role permissions", err)
	}

	out := make([]*Permission, 0, len(perms))
	for _, p := range perms {
		out = append(out, PermissionFromDataModel(p))
	}
	return out, nil
}
