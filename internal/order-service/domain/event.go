package domain

import (
	"encoding/json"
	"time"
)

type EventType string

const (
	EventOrderCreated       EventType = "order.created"
	EventOrderStatusChanged EventType = "order.status_changed"
)

// Event is a notification about an order that already happened.
type Event struct {
	Type           EventType   `json:"type"`
	OrderID        string      `json:"order_id"`
	Status         OrderStatus `json:"status"`
	PreviousStatus OrderStatus `json:"previous_status,omitempty"`
	TotalAmount    string      `json:"total_amount"`
	TotalItems     int         `json:"total_items"`
	OccurredAt     time.Time   `json:"occurred_at"`
}

func NewOrderCreatedEvent(o *Order) Event {
	return Event{
		Type:        EventOrderCreated,
		OrderID:     o.ID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount.StringFixed(2),
		TotalItems:  o.TotalItems,
		OccurredAt:  o.CreatedAt,
	}
}

func NewStatusChangedEvent(o *Order, previous OrderStatus) Event {
	return Event{
		Type:           EventOrderStatusChanged,
		OrderID:        o.ID,
		Status:         o.Status,
		PreviousStatus: previous,
		TotalAmount:    o.TotalAmount.StringFixed(2),
		TotalItems:     o.TotalItems,
		OccurredAt:     o.UpdatedAt,
	}
}

func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}
