package interceptors

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/jcmexdev/orders-microservice/internal/pkg/interceptors/constants"
)

// RequestIDServerInterceptor copies x-request-id and x-idempotency-key from
// the incoming metadata into the context. A request without an id gets a new
// one, which is echoed back in the response header.
func RequestIDServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		requestID := incoming(ctx, constants.HeaderXRequestId)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		_ = grpc.SetHeader(ctx, metadata.Pairs(constants.HeaderXRequestId, requestID))

		ctx = WithRequestID(ctx, requestID)
		if key := incoming(ctx, constants.HeaderXIdempotencyKey); key != "" {
			ctx = context.WithValue(ctx, constants.ContextKeyIdempotencyKey, key)
		}
		return handler(ctx, req)
	}
}

// RequestIDClientInterceptor forwards the request id of ctx to the callee.
func RequestIDClientInterceptor() grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		return invoker(ContextWithPropagatedID(ctx), method, req, reply, cc, opts...)
	}
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constants.ContextKeyRequestID, id)
}

// GetIDFromContext returns the request id of ctx or "unknown".
func GetIDFromContext(ctx context.Context) string {
	if id := GetMetadataValue(ctx, constants.HeaderXRequestId); id != "" {
		return id
	}
	return "unknown"
}

// ContextWithPropagatedID adds the request id to the outgoing metadata unless
// it is already there.
func ContextWithPropagatedID(ctx context.Context) context.Context {
	if md, ok := metadata.FromOutgoingContext(ctx); ok && len(md.Get(constants.HeaderXRequestId)) > 0 {
		return ctx
	}
	id := GetMetadataValue(ctx, constants.HeaderXRequestId)
	if id == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, constants.HeaderXRequestId, id)
}

// GetMetadataValue looks key up in the context values set by the server
// interceptor, then in the incoming and outgoing metadata.
func GetMetadataValue(ctx context.Context, key string) string {
	if ck, ok := constants.ContextKeyFor(key); ok {
		if v, ok := ctx.Value(ck).(string); ok && v != "" {
			return v
		}
	}
	if v := incoming(ctx, key); v != "" {
		return v
	}
	if md, ok := metadata.FromOutgoingContext(ctx); ok {
		if ids := md.Get(key); len(ids) > 0 {
			return ids[0]
		}
	}
	return ""
}

func incoming(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(key); len(ids) > 0 {
			return ids[0]
		}
	}
	return ""
}
