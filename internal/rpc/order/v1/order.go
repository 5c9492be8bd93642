// Package orderv1 holds the wire contract of the order service
// (order.v1.Order): messages, client stub and service descriptor.
//
// The types mirror the order.v1 protobuf schema, with the protoc-gen-go
// names and getters. They are maintained by hand and travel with the codec
// in internal/rpc/codec until generated protobuf code replaces them.
package orderv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jcmexdev/orders-microservice/internal/rpc/codec"
)

const (
	ServiceName                      = "order.v1.Order"
	Order_CreateOrder_FullName       = "/order.v1.Order/CreateOrder"
	Order_FindAllOrders_FullName     = "/order.v1.Order/FindAllOrders"
	Order_FindOneOrder_FullName      = "/order.v1.Order/FindOneOrder"
	Order_ChangeOrderStatus_FullName = "/order.v1.Order/ChangeOrderStatus"
)

// Status values accepted on the wire.
const (
	Status_PENDING   = "PENDING"
	Status_CANCELLED = "CANCELLED"
	Status_DELIVERED = "DELIVERED"
)

type CreateOrderItem struct {
	ProductId string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

type CreateOrderRequest struct {
	Items []*CreateOrderItem `json:"items"`
}

func (r *CreateOrderRequest) GetItems() []*CreateOrderItem {
	if r == nil {
		return nil
	}
	return r.Items
}

type OrderItem struct {
	ProductId string  `json:"product_id"`
	Name      string  `json:"name,omitempty"`
	Quantity  int32   `json:"quantity"`
	Price     float64 `json:"price"`
}

type OrderInfo struct {
	Id          string       `json:"id"`
	TotalAmount float64      `json:"total_amount"`
	TotalItems  int32        `json:"total_items"`
	Status      string       `json:"status"`
	Paid        bool         `json:"paid"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   string       `json:"updated_at"`
	Items       []*OrderItem `json:"items,omitempty"`
}

type OrderResponse struct {
	Order *OrderInfo `json:"order"`
}

func (r *OrderResponse) GetOrder() *OrderInfo {
	if r == nil {
		return nil
	}
	return r.Order
}

type FindAllOrdersRequest struct {
	Page   int32  `json:"page,omitempty"`
	Limit  int32  `json:"limit,omitempty"`
	Status string `json:"status,omitempty"`
}

type PageMeta struct {
	Page       int32 `json:"page"`
	Limit      int32 `json:"limit"`
	TotalPages int32 `json:"total_pages"`
	TotalItems int32 `json:"total_items"`
}

type FindAllOrdersResponse struct {
	Data []*OrderInfo `json:"data"`
	Meta *PageMeta    `json:"meta"`
}

type FindOneOrderRequest struct {
	Id string `json:"id"`
}

type ChangeOrderStatusRequest struct {
	Id     string `json:"id"`
	Status string `json:"status,omitempty"`
}

func (r *FindOneOrderRequest) GetId() string {
	if r == nil {
		return ""
	}
	return r.Id
}

func (r *ChangeOrderStatusRequest) GetId() string {
	if r == nil {
		return ""
	}
	return r.Id
}

func (r *ChangeOrderStatusRequest) GetStatus() string {
	if r == nil {
		return ""
	}
	return r.Status
}

// OrderClient is the client API for the order.v1.Order service.
type OrderClient interface {
	CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error)
	FindAllOrders(ctx context.Context, in *FindAllOrdersRequest, opts ...grpc.CallOption) (*FindAllOrdersResponse, error)
	FindOneOrder(ctx context.Context, in *FindOneOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error)
	ChangeOrderStatus(ctx context.Context, in *ChangeOrderStatusRequest, opts ...grpc.CallOption) (*OrderResponse, error)
}

type orderClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderClient(cc grpc.ClientConnInterface) OrderClient {
	return &orderClient{cc: cc}
}

func (c *orderClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *orderClient) CreateOrder(ctx context.Context, in *CreateOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	out := new(OrderResponse)
	if err := c.invoke(ctx, Order_CreateOrder_FullName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderClient) FindAllOrders(ctx context.Context, in *FindAllOrdersRequest, opts ...grpc.CallOption) (*FindAllOrdersResponse, error) {
	out := new(FindAllOrdersResponse)
	if err := c.invoke(ctx, Order_FindAllOrders_FullName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderClient) FindOneOrder(ctx context.Context, in *FindOneOrderRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	out := new(OrderResponse)
	if err := c.invoke(ctx, Order_FindOneOrder_FullName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *orderClient) ChangeOrderStatus(ctx context.Context, in *ChangeOrderStatusRequest, opts ...grpc.CallOption) (*OrderResponse, error) {
	out := new(OrderResponse)
	if err := c.invoke(ctx, Order_ChangeOrderStatus_FullName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

// OrderServer is the server API for the order.v1.Order service.
type OrderServer interface {
	CreateOrder(context.Context, *CreateOrderRequest) (*OrderResponse, error)
	FindAllOrders(context.Context, *FindAllOrdersRequest) (*FindAllOrdersResponse, error)
	FindOneOrder(context.Context, *FindOneOrderRequest) (*OrderResponse, error)
	ChangeOrderStatus(context.Context, *ChangeOrderStatusRequest) (*OrderResponse, error)
}

// UnimplementedOrderServer can be embedded to satisfy OrderServer.
type UnimplementedOrderServer struct{}

func (UnimplementedOrderServer) CreateOrder(context.Context, *CreateOrderRequest) (*OrderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateOrder not implemented")
}

func (UnimplementedOrderServer) FindAllOrders(context.Context, *FindAllOrdersRequest) (*FindAllOrdersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindAllOrders not implemented")
}

func (UnimplementedOrderServer) FindOneOrder(context.Context, *FindOneOrderRequest) (*OrderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method FindOneOrder not implemented")
}

func (UnimplementedOrderServer) ChangeOrderStatus(context.Context, *ChangeOrderStatusRequest) (*OrderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ChangeOrderStatus not implemented")
}

func RegisterOrderServer(s grpc.ServiceRegistrar, srv OrderServer) {
	s.RegisterService(&Order_ServiceDesc, srv)
}

// unaryHandler builds a grpc.MethodDesc handler for one request type.
func unaryHandler[Req any](method string, call func(OrderServer, context.Context, *Req) (any, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(OrderServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(OrderServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var Order_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrderServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateOrder",
			Handler: unaryHandler(Order_CreateOrder_FullName, func(s OrderServer, ctx context.Context, in *CreateOrderRequest) (any, error) {
				return s.CreateOrder(ctx, in)
			}),
		},
		{
			MethodName: "FindAllOrders",
			Handler: unaryHandler(Order_FindAllOrders_FullName, func(s OrderServer, ctx context.Context, in *FindAllOrdersRequest) (any, error) {
				return s.FindAllOrders(ctx, in)
			}),
		},
		{
			MethodName: "FindOneOrder",
			Handler: unaryHandler(Order_FindOneOrder_FullName, func(s OrderServer, ctx context.Context, in *FindOneOrderRequest) (any, error) {
				return s.FindOneOrder(ctx, in)
			}),
		},
		{
			MethodName: "ChangeOrderStatus",
			Handler: unaryHandler(Order_ChangeOrderStatus_FullName, func(s OrderServer, ctx context.Context, in *ChangeOrderStatusRequest) (any, error) {
				return s.ChangeOrderStatus(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "order/v1/order.proto",
}
