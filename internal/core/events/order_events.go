package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeOrderPlaced   = "order.placed"
	EventTypeOrderCanceled = "order.canceled"
)

type OrderPlacedEvent struct {
	BaseEvent
	OrderID     int64 `json:"order_id"`
	UserID      int64 `json:"user_id"`
	TotalAmount int64 `json:"total_amount"`
	ItemCount   int   `json:"item_count"`
}

func NewOrderPlacedEvent(orderID, userID, totalAmount int64, itemCount int) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeOrderPlaced,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"order_id":     orderID,
				"user_id":      userID,
				"total_amount": totalAmount,
				"item_count":   itemCount,
			},
		},
		OrderID:     orderID,
		UserID:      userID,
		TotalAmount: totalAmount,
		ItemCount:   itemCount,
	}
}

type OrderCanceledEvent struct {
	BaseEvent
	OrderID int64  `json:"order_id"`
	UserID  int64  `json:"user_id"`
	Reason  string `json:"reason"`
}

func NewOrderCanceledEvent(orderID, userID int64, reason string) *OrderCanceledEvent {
	return &OrderCanceledEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeOrderCanceled,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"order_id": orderID,
				"user_id":  userID,
				"reason":   reason,
			},
		},
		OrderID: orderID,
		UserID:  userID,
		Reason:  reason,
	}
}
