package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := fmt.Errorf("create: %w", NewError(KindNotFound, "Order with id 1 not found", cause))

	assert.Equal(t, KindNotFound, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(cause))
	assert.ErrorIs(t, wrapped, cause)
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "boom", NewError(KindInternal, "boom", nil).Error())
	assert.Equal(t, "boom: cause", NewError(KindInternal, "boom", errors.New("cause")).Error())
	assert.Equal(t, "invalid_argument", KindInvalidArgument.String())
}

func TestEvents(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	o := &Order{
		ID:          "o-1",
		TotalAmount: decimal.NewFromFloat(25.5),
		TotalItems:  3,
		Status:      StatusDelivered,
		CreatedAt:   created,
		UpdatedAt:   created.Add(time.Hour),
	}

	ev := NewStatusChangedEvent(o, StatusPending)
	assert.Equal(t, EventOrderStatusChanged, ev.Type)
	assert.Equal(t, StatusPending, ev.PreviousStatus)
	assert.Equal(t, o.UpdatedAt, ev.OccurredAt)

	raw, err := NewOrderCreatedEvent(o).Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "order.created",
		"order_id": "o-1",
		"status": "DELIVERED",
		"total_amount": "25.50",
		"total_items": 3,
		"occurred_at": "2026-03-01T12:00:00Z"
	}`, string(raw))
}
