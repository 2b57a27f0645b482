package order

import (
	"strings"

	"github.com/frahmantamala/commerce-management/internal"
)

type PlaceOrderDTO struct {
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
}

func (d *PlaceOrderDTO) Validate() error {
	d.Address = strings.TrimSpace(d.Address)
	d.PaymentMethod = strings.TrimSpace(d.PaymentMethod)

	if d.Address == "" {
		return internal.NewValidationError("address is required", internal.ErrCodeValidationFailed)
	}
	if d.PaymentMethod == "" {
		return internal.NewValidationError("payment_method is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (d *UpdateStatusDTO) Validate() error {
	if !Status(d.Status).Valid() {
		return internal.NewValidationError("status must be one of pending, delivered, canceled", internal.ErrCodeInvalidOrderStatus)
	}
	return nil
}
