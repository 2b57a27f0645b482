package review

import (
	"strings"

	"github.com/frahmantamala/commerce-management/internal"
)

type CreateReviewDTO struct {
	ProductID int64  `json:"product_id"`
	Rating    int    `json:"rating"`
	Title     string `json:"title"`
	Comment   string `json:"comment"`
}

func (d *CreateReviewDTO) Validate() error {
	if d.ProductID <= 0 {
		return internal.NewValidationError("product_id is required", internal.ErrCodeValidationFailed)
	}
	if d.Rating < 1 || d.Rating > 5 {
		return internal.NewValidationError("rating must be between 1 and 5", internal.ErrCodeValidationFailed)
	}
	d.Title = strings.TrimSpace(d.Title)
	d.Comment = strings.TrimSpace(d.Comment)
	return nil
}

type UpdateReviewDTO struct {
	Rating  *int    `json:"rating"`
	Title   *string `json:"title"`
	Comment *string `json:"comment"`
}

func (d *UpdateReviewDTO) Validate() error {
	if d.Rating == nil && d.Title == nil && d.Comment == nil {
		return internal.NewValidationError("at least one field must be provided", internal.ErrCodeValidationFailed)
	}
	if d.Rating != nil && (*d.Rating < 1 || *d.Rating > 5) {
		return internal.NewValidationError("rating must be between 1 and 5", internal.ErrCodeValidationFailed)
	}
	return nil
}
