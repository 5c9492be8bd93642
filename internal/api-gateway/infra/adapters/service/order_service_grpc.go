package service

import (
	"context"
	"fmt"
	"math"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/jcmexdev/orders-microservice/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/orders-microservice/internal/api-gateway/core/ports"
	"github.com/jcmexdev/orders-microservice/internal/pkg/interceptors/constants"
	orderv1 "github.com/jcmexdev/orders-microservice/internal/rpc/order/v1"
)

// GRPCOrderService implements ports.OrderService on top of order.v1.Order.
// Errors keep the gRPC status so callers can map its code.
type GRPCOrderService struct {
	client orderv1.OrderClient
}

var _ ports.OrderService = (*GRPCOrderService)(nil)

func NewGRPCOrderClient(client orderv1.OrderClient) *GRPCOrderService {
	return &GRPCOrderService{client: client}
}

func (s *GRPCOrderService) CreateOrder(ctx context.Context, idempotencyKey string, items []entity.CreateOrderItem) (*entity.Order, error) {
	protoItems := make([]*orderv1.CreateOrderItem, 0, len(items))
	for _, it := range items {
		qty, err := toInt32("quantity", it.Quantity)
		if err != nil {
			return nil, err
		}
		protoItems = append(protoItems, &orderv1.CreateOrderItem{
			ProductId: it.ProductID,
			Quantity:  qty,
		})
	}

	if idempotencyKey != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, constants.HeaderXIdempotencyKey, idempotencyKey)
	}

	res, err := s.client.CreateOrder(ctx, &orderv1.CreateOrderRequest{Items: protoItems})
	if err != nil {
		return nil, fmt.Errorf("grpc CreateOrder: %w", err)
	}
	return orderFromResponse("CreateOrder", res)
}

func (s *GRPCOrderService) ListOrders(ctx context.Context, q entity.ListQuery) (*entity.OrderPage, error) {
	page, err := toInt32("page", q.Page)
	if err != nil {
		return nil, err
	}
	limit, err := toInt32("limit", q.Limit)
	if err != nil {
		return nil, err
	}

	res, err := s.client.FindAllOrders(ctx, &orderv1.FindAllOrdersRequest{
		Page:   page,
		Limit:  limit,
		Status: q.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("grpc FindAllOrders: %w", err)
	}

	out := &entity.OrderPage{Data: make([]entity.Order, 0, len(res.Data))}
	for _, po := range res.Data {
		if po != nil {
			out.Data = append(out.Data, *mapProtoOrderToEntity(po))
		}
	}
	if m := res.Meta; m != nil {
		out.Meta = entity.PageMeta{
			Page:       int(m.Page),
			Limit:      int(m.Limit),
			TotalPages: int(m.TotalPages),
			TotalItems: int(m.TotalItems),
		}
	}
	return out, nil
}

func (s *GRPCOrderService) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	res, err := s.client.FindOneOrder(ctx, &orderv1.FindOneOrderRequest{Id: id})
	if err != nil {
		return nil, fmt.Errorf("grpc FindOneOrder: %w", err)
	}
	return orderFromResponse("FindOneOrder", res)
}

func (s *GRPCOrderService) ChangeOrderStatus(ctx context.Context, id, status string) (*entity.Order, error) {
	res, err := s.client.ChangeOrderStatus(ctx, &orderv1.ChangeOrderStatusRequest{Id: id, Status: status})
	if err != nil {
		return nil, fmt.Errorf("grpc ChangeOrderStatus: %w", err)
	}
	return orderFromResponse("ChangeOrderStatus", res)
}

func orderFromResponse(method string, res *orderv1.OrderResponse) (*entity.Order, error) {
	po := res.GetOrder()
	if po == nil {
		return nil, fmt.Errorf("grpc %s: empty order in response", method)
	}
	return mapProtoOrderToEntity(po), nil
}

func mapProtoOrderToEntity(po *orderv1.OrderInfo) *entity.Order {
	return &entity.Order{
		ID:          po.Id,
		Status:      po.Status,
		TotalAmount: po.TotalAmount,
		TotalItems:  int(po.TotalItems),
		Paid:        po.Paid,
		Items:       mapProtoItemsToEntity(po.Items),
		CreatedAt:   po.CreatedAt,
		UpdatedAt:   po.UpdatedAt,
	}
}

func mapProtoItemsToEntity(items []*orderv1.OrderItem) []entity.OrderItem {
	out := make([]entity.OrderItem, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		out = append(out, entity.OrderItem{
			ProductID: it.ProductId,
			Name:      it.Name,
			Quantity:  int(it.Quantity),
			Price:     it.Price,
		})
	}
	return out
}

// toInt32 narrows n to the wire type, failing with InvalidArgument instead of
// wrapping around.
func toInt32(name string, n int) (int32, error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, status.Errorf(codes.InvalidArgument, "%s %d is out of range", name, n)
	}
	return int32(n), nil
}
