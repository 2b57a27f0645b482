package rbac

import (
	"strings"

	"github.com/frahmantamala/commerce-management/internal"
)

type CreateRoleDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d *CreateRoleDTO) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if len(d.Name) > 100 {
		return internal.NewValidationError("name must be at most 100 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateRoleDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (d *UpdateRoleDTO) Validate() error {
	if d.Name == nil && d.Description == nil {
		return internal.NewValidationError("at least one field must be provided", internal.ErrCodeValidationFailed)
	}
	if d.Name != nil {
		trimmed := strings.TrimSpace(*d.Name)
		if trimmed == "" {
			return internal.NewValidationError("name cannot be empty", internal.ErrCodeValidationFailed)
		}
		d.Name = &trimmed
	}
	return nil
}

type CreatePermissionDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (d *CreatePermissionDTO) Validate() error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if len(d.Name) > 100 {
		return internal.NewValidationError("name must be at most 100 characters", internal.ErrCodeValidationFailed)
	}
	return nil
}

type AssignRoleDTO struct {
	RoleID int64 `json:"role_id"`
}

func (d *AssignRoleDTO) Validate() error {
	if d.RoleID <= 0 {
		return internal.NewValidationError("role_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type GrantPermissionDTO struct {
	PermissionID int64 `json:"permission_id"`
}

func (d *GrantPermissionDTO) Validate() error {
	if d.PermissionID <= 0 {
		return internal.NewValidationError("permission_id is required", internal.ErrCodeValidationFailed)
	}
	return nil
}
