package mappers

import (
	"context"
	"math"
	"time"

	"github.com/jcmexdev/orders-microservice/internal/order-service/app"
	"github.com/jcmexdev/orders-microservice/internal/order-service/domain"
	"github.com/jcmexdev/orders-microservice/internal/pkg/interceptors"
	"github.com/jcmexdev/orders-microservice/internal/pkg/interceptors/constants"
	orderv1 "github.com/jcmexdev/orders-microservice/internal/rpc/order/v1"
)

// TimeLayout is the wire format of order timestamps.
const TimeLayout = time.RFC3339Nano

func CreateInputFromProto(ctx context.Context, req *orderv1.CreateOrderRequest) app.CreateOrderInput {
	pbItems := req.GetItems()
	items := make([]app.CreateOrderItem, len(pbItems))
	for i, item := range pbItems {
		if item == nil {
			continue
		}
		items[i] = app.CreateOrderItem{
			ProductID: item.ProductId,
			Quantity:  int(item.Quantity),
		}
	}
	return app.CreateOrderInput{
		Items:          items,
		IdempotencyKey: interceptors.GetMetadataValue(ctx, constants.HeaderXIdempotencyKey),
	}
}

func ListQueryFromProto(req *orderv1.FindAllOrdersRequest) app.ListOrdersQuery {
	if req == nil {
		return app.ListOrdersQuery{}
	}
	return app.ListOrdersQuery{
		Page:   int(req.Page),
		Limit:  int(req.Limit),
		Status: domain.OrderStatus(req.Status),
	}
}

func OrderToProto(o *domain.Order) *orderv1.OrderInfo {
	if o == nil {
		return nil
	}
	return &orderv1.OrderInfo{
		Id:          o.ID,
		TotalAmount: o.TotalAmount.InexactFloat64(),
		TotalItems:  clampInt32(o.TotalItems),
		Status:      string(o.Status),
		Paid:        o.Paid,
		CreatedAt:   o.CreatedAt.UTC().Format(TimeLayout),
		UpdatedAt:   o.UpdatedAt.UTC().Format(TimeLayout),
		Items:       mapItemsToProto(o.Items),
	}
}

func PageToProto(p *app.OrderPage) *orderv1.FindAllOrdersResponse {
	data := make([]*orderv1.OrderInfo, len(p.Data))
	for i := range p.Data {
		data[i] = OrderToProto(&p.Data[i])
	}
	return &orderv1.FindAllOrdersResponse{
		Data: data,
		Meta: &orderv1.PageMeta{
			Page:       clampInt32(p.Meta.Page),
			Limit:      clampInt32(p.Meta.Limit),
			TotalPages: clampInt32(p.Meta.TotalPages),
			TotalItems: clampInt32(p.Meta.TotalItems),
		},
	}
}

func mapItemsToProto(items []domain.OrderItem) []*orderv1.OrderItem {
	if len(items) == 0 {
		return nil
	}
	pbItems := make([]*orderv1.OrderItem, len(items))
	for i, item := range items {
		pbItems[i] = &orderv1.OrderItem{
			ProductId: item.ProductID,
			Name:      item.Name,
			Quantity:  clampInt32(item.Quantity),
			Price:     item.Price.InexactFloat64(),
		}
	}
	return pbItems
}

// clampInt32 saturates n to the int32 wire type.
func clampInt32(n int) int32 {
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < math.MinInt32:
		return math.MinInt32
	default:
		return int32(n)
	}
}
