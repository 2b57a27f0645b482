package user

import (
	"errors"
	"strings"
)

type RegisterDTO struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto RegisterDTO) Validate() error {
	if strings.TrimSpace(dto.FullName) == "" {
		return errors.New("fullname is required")
	}
	if strings.TrimSpace(dto.Email) == "" {
		return errors.New("email is required")
	}
	if !strings.Contains(dto.Email, "@") {
		return errors.New("email is not valid")
	}
	if len(dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// UpdateDTO fields are pointers so an omitted field means "leave unchanged".
type UpdateDTO struct {
	FullName *string `json:"fullname,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (dto UpdateDTO) Validate() error {
	if dto.FullName == nil && dto.Email == nil && dto.Password == nil {
		return errors.New("nothing to update")
	}
	if dto.FullName != nil && strings.TrimSpace(*dto.FullName) == "" {
		return errors.New("fullname cannot be empty")
	}
	if dto.Email != nil && !strings.Contains(*dto.Email, "@") {
		return errors.New("email is not valid")
	}
	if dto.Password != nil && len(*dto.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}
