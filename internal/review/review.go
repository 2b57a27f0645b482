// Package review holds product reviews. Updates are owner-only.
package review

import (
	"time"

	reviewDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/review"
)

type Review struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	ReviewerName string    `json:"reviewer_name,omitempty"`
	ProductID    int64     `json:"product_id"`
	Rating       int       `json:"rating"`
	Title        string    `json:"title,omitempty"`
	Comment      string    `json:"comment,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func FromDataModel(r *reviewDatamodel.Review) *Review {
	return &Review{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Rating:    r.Rating,
		Title:     r.Title,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
