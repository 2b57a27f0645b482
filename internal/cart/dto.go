package cart

import "github.com/frahmantamala/commerce-management/internal"

type AddItemDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

func (d *AddItemDTO) Validate() error {
	if d.ProductID <= 0 {
		return internal.NewValidationError("product_id is required", internal.ErrCodeValidationFailed)
	}
	if d.Quantity <= 0 {
		return internal.NewValidationError("quantity must be positive", internal.ErrCodeInvalidQuantity)
	}
	return nil
}

// SetQuantityDTO overwrites the line quantity; zero removes the line.
type SetQuantityDTO struct {
	Quantity int64 `json:"quantity"`
}

func (d *SetQuantityDTO) Validate() error {
	if d.Quantity < 0 {
		return internal.NewValidationError("quantity cannot be negative", internal.ErrCodeInvalidQuantity)
	}
	return nil
}
