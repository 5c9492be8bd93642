// Package productv1 holds the wire contract of the product catalog service
// (product.v1.Product) with its client stub and service descriptor.
//
// Like orderv1, the types mirror a protobuf schema and are maintained by hand
// until generated protobuf code replaces them.
package productv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jcmexdev/orders-microservice/internal/rpc/codec"
)

const (
	ServiceName                       = "product.v1.Product"
	Product_ValidateProducts_FullName = "/product.v1.Product/ValidateProducts"
)

type ValidateProductsRequest struct {
	Ids []string `json:"ids"`
}

func (r *ValidateProductsRequest) GetIds() []string {
	if r == nil {
		return nil
	}
	return r.Ids
}

type ProductInfo struct {
	Id    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type ValidateProductsResponse struct {
	Products []*ProductInfo `json:"products"`
	// MissingIds lists requested ids the catalog does not know.
	MissingIds []string `json:"missing_ids,omitempty"`
}

func (r *ValidateProductsResponse) GetProducts() []*ProductInfo {
	if r == nil {
		return nil
	}
	return r.Products
}

func (r *ValidateProductsResponse) GetMissingIds() []string {
	if r == nil {
		return nil
	}
	return r.MissingIds
}

// ProductClient is the client API for the product.v1.Product service.
type ProductClient interface {
	ValidateProducts(ctx context.Context, in *ValidateProductsRequest, opts ...grpc.CallOption) (*ValidateProductsResponse, error)
}

type productClient struct {
	cc grpc.ClientConnInterface
}

func NewProductClient(cc grpc.ClientConnInterface) ProductClient {
	return &productClient{cc: cc}
}

func (c *productClient) ValidateProducts(ctx context.Context, in *ValidateProductsRequest, opts ...grpc.CallOption) (*ValidateProductsResponse, error) {
	out := new(ValidateProductsResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
	if err := c.cc.Invoke(ctx, Product_ValidateProducts_FullName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductServer is the server API for the product.v1.Product service.
type ProductServer interface {
	ValidateProducts(context.Context, *ValidateProductsRequest) (*ValidateProductsResponse, error)
}

// UnimplementedProductServer can be embedded to satisfy ProductServer.
type UnimplementedProductServer struct{}

func (UnimplementedProductServer) ValidateProducts(context.Context, *ValidateProductsRequest) (*ValidateProductsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ValidateProducts not implemented")
}

func RegisterProductServer(s grpc.ServiceRegistrar, srv ProductServer) {
	s.RegisterService(&Product_ServiceDesc, srv)
}

func _Product_ValidateProducts_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ValidateProductsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ProductServer).ValidateProducts(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Product_ValidateProducts_FullName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ProductServer).ValidateProducts(ctx, req.(*ValidateProductsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var Product_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProductServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ValidateProducts", Handler: _Product_ValidateProducts_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "product/v1/product.proto",
}
