// Package server exposes the order lifecycle service as order.v1.Order.
package server

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jcmexdev/orders-microservice/internal/order-service/adapters/grpc/mappers"
	"github.com/jcmexdev/orders-microservice/internal/order-service/app"
	"github.com/jcmexdev/orders-microservice/internal/order-service/domain"
	orderv1 "github.com/jcmexdev/orders-microservice/internal/rpc/order/v1"
)

// OrderService is the application API served over gRPC.
type OrderService interface {
	Create(ctx context.Context, in app.CreateOrderInput) (*domain.Order, error)
	FindAll(ctx context.Context, q app.ListOrdersQuery) (*app.OrderPage, error)
	FindOne(ctx context.Context, id string) (*domain.Order, error)
	ChangeStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}

var (
	_ OrderService        = (*app.OrderService)(nil)
	_ orderv1.OrderServer = (*orderServer)(nil)
)

type orderServer struct {
	orderv1.UnimplementedOrderServer
	svc OrderService
}

func NewOrderServer(svc OrderService) orderv1.OrderServer {
	return &orderServer{svc: svc}
}

func (s *orderServer) CreateOrder(ctx context.Context, req *orderv1.CreateOrderRequest) (*orderv1.OrderResponse, error) {
	order, err := s.svc.Create(ctx, mappers.CreateInputFromProto(ctx, req))
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &orderv1.OrderResponse{Order: mappers.OrderToProto(order)}, nil
}

func (s *orderServer) FindAllOrders(ctx context.Context, req *orderv1.FindAllOrdersRequest) (*orderv1.FindAllOrdersResponse, error) {
	page, err := s.svc.FindAll(ctx, mappers.ListQueryFromProto(req))
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return mappers.PageToProto(page), nil
}

func (s *orderServer) FindOneOrder(ctx context.Context, req *orderv1.FindOneOrderRequest) (*orderv1.OrderResponse, error) {
	if req.GetId() == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	order, err := s.svc.FindOne(ctx, req.GetId())
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &orderv1.OrderResponse{Order: mappers.OrderToProto(order)}, nil
}

func (s *orderServer) ChangeOrderStatus(ctx context.Context, req *orderv1.ChangeOrderStatusRequest) (*orderv1.OrderResponse, error) {
	if req.GetId() == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	order, err := s.svc.ChangeStatus(ctx, req.GetId(), domain.OrderStatus(req.GetStatus()))
	if err != nil {
		return nil, toStatus(ctx, err)
	}
	return &orderv1.OrderResponse{Order: mappers.OrderToProto(order)}, nil
}

// toStatus maps a service error to a gRPC status. Internal errors are logged
// and replaced by a generic message.
func toStatus(ctx context.Context, err error) error {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		domainErr = domain.NewError(domain.KindInternal, "", err)
	}

	switch domainErr.Kind {
	case domain.KindInvalidArgument:
		st := status.New(codes.InvalidArgument, domainErr.Message)
		var missing *domain.MissingProductsError
		if errors.As(err, &missing) {
			st = withProductViolations(st, missing.IDs)
		}
		return st.Err()
	case domain.KindNotFound:
		return status.Error(codes.NotFound, domainErr.Message)
	case domain.KindConflict:
		return status.Error(codes.Aborted, domainErr.Message)
	default:
		slog.ErrorContext(ctx, "internal error", "message", domainErr.Message, "error", err)
		return status.Error(codes.Internal, "internal server error")
	}
}

func withProductViolations(st *status.Status, ids []string) *status.Status {
	br := &errdetails.BadRequest{}
	for _, id := range ids {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       "items.product_id",
			Description: "unknown product " + id,
		})
	}
	detailed, err := st.WithDetails(br)
	if err != nil {
		return st
	}
	return detailed
}
