package interceptors

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/jcmexdev/orders-microservice/internal/pkg/interceptors/constants"
)

// LoggingServerInterceptor logs every unary call with its outcome. Install it
// after RequestIDServerInterceptor so the record carries the request id.
func LoggingServerInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		attrs := []any{
			"method", info.FullMethod,
			"code", code.String(),
			"duration", time.Since(start),
			"request_id", GetIDFromContext(ctx),
		}
		if key := GetMetadataValue(ctx, constants.HeaderXIdempotencyKey); key != "" {
			attrs = append(attrs, "idempotency_key", key)
		}

		switch code {
		case codes.OK:
			logger.InfoContext(ctx, "grpc call", attrs...)
		case codes.Internal, codes.Unknown, codes.Unavailable, codes.DeadlineExceeded:
			logger.ErrorContext(ctx, "grpc call failed", append(attrs, "error", err)...)
		default:
			logger.WarnContext(ctx, "grpc call rejected", append(attrs, "error", err)...)
		}
		return resp, err
	}
}
