package mappers

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/metadata"

	"github.com/jcmexdev/orders-microservice/internal/order-service/app"
	"github.com/jcmexdev/orders-microservice/internal/order-service/domain"
	"github.com/jcmexdev/orders-microservice/internal/pkg/interceptors/constants"
	orderv1 "github.com/jcmexdev/orders-microservice/internal/rpc/order/v1"
)

func TestCreateInputFromProto(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(),
		metadata.Pairs(constants.HeaderXIdempotencyKey, "idem-1"))

	in := CreateInputFromProto(ctx, &orderv1.CreateOrderRequest{Items: []*orderv1.CreateOrderItem{
		{ProductId: "P1", Quantity: 2},
		nil,
	}})

	assert.Equal(t, "idem-1", in.IdempotencyKey)
	require.Len(t, in.Items, 2)
	assert.Equal(t, app.CreateOrderItem{ProductID: "P1", Quantity: 2}, in.Items[0])
	assert.Equal(t, app.CreateOrderItem{}, in.Items[1], "a nil item is left empty for validation")
}

func TestOrderToProto(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	info := OrderToProto(&domain.Order{
		ID:          "o-1",
		TotalAmount: decimal.RequireFromString("25.50"),
		TotalItems:  3,
		Status:      domain.StatusPending,
		CreatedAt:   created,
		UpdatedAt:   created,
		Items: []domain.OrderItem{
			{ProductID: "P1", Name: "Keyboard", Quantity: 2, Price: decimal.NewFromInt(10)},
		},
	})

	assert.Equal(t, "o-1", info.Id)
	assert.Equal(t, 25.5, info.TotalAmount)
	assert.Equal(t, int32(3), info.TotalItems)
	assert.Equal(t, orderv1.Status_PENDING, info.Status)
	assert.Equal(t, "2026-03-01T12:00:00Z", info.CreatedAt)
	require.Len(t, info.Items, 1)
	assert.Equal(t, &orderv1.OrderItem{ProductId: "P1", Name: "Keyboard", Quantity: 2, Price: 10}, info.Items[0])

	assert.Nil(t, OrderToProto(nil))
}

func TestPageToProto(t *testing.T) {
	resp := PageToProto(&app.OrderPage{
		Data: []domain.Order{{ID: "a"}, {ID: "b"}},
		Meta: app.PageMeta{Page: 2, Limit: 2, TotalPages: 3, TotalItems: 5},
	})

	require.Len(t, resp.Data, 2)
	assert.Equal(t, "b", resp.Data[1].Id)
	assert.Nil(t, resp.Data[0].Items)
	assert.Equal(t, &orderv1.PageMeta{Page: 2, Limit: 2, TotalPages: 3, TotalItems: 5}, resp.Meta)
}

func TestPageToProto_SaturatesCounts(t *testing.T) {
	resp := PageToProto(&app.OrderPage{
		Meta: app.PageMeta{Page: 1, Limit: 10, TotalPages: 1 << 33, TotalItems: 1<<32 + 1},
	})

	assert.Equal(t, int32(math.MaxInt32), resp.Meta.TotalPages)
	assert.Equal(t, int32(math.MaxInt32), resp.Meta.TotalItems)
}
