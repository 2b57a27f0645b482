// Package order implements checkout and the order lifecycle. Placing an
// order snapshots cart prices, decrements stock and clears the cart in
// one transaction; cancellation restores stock from the snapshot.
package order

import (
	"time"

	orderDatamodel "github.com/frahmantamala/commerce-management/internal/core/datamodel/order"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusDelivered Status = "delivered"
	StatusCanceled  Status = "canceled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

// delivered and canceled are terminal; every transition starts at
// pending.
var validTransitions = map[Status][]Status{
	StatusPending: {StatusDelivered, StatusCanceled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) CanBeCanceled() bool {
	return s == StatusPending
}

type Item struct {
	ID              int64 `json:"id"`
	ProductID       int64 `json:"product_id"`
	Quantity        int64 `json:"quantity"`
	PriceAtPurchase int64 `json:"price_at_purchase"`
}

type Order struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	TotalAmount   int64     `json:"total_amount"`
	Status        Status    `json:"status"`
	Address       string    `json:"address"`
	PaymentMethod string    `json:"payment_method"`
	Items         []Item    `json:"items,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromDataModel(o *orderDatamodel.Order) *Order {
	return &Order{
		ID:            o.ID,
		UserID:        o.UserID,
		TotalAmount:   o.TotalAmount,
		Status:        Status(o.Status),
		Address:       o.Address,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func ItemFromDataModel(i *orderDatamodel.OrderItem) Item {
	return Item{
		ID:              i.ID,
		ProductID:       i.ProductID,
		Quantity:        i.Quantity,
		PriceAtPurchase: i.PriceAtPurchase,
	}
}
