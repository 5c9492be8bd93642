package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/orders-microservice/internal/pkg/interceptors"
	"github.com/jcmexdev/orders-microservice/internal/pkg/interceptors/constants"
)

// AttachTracingMetadata stores the chi request id in the context, from where
// the gRPC client interceptor forwards it, and echoes it to the caller.
func AttachTracingMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		if requestID == "" {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set(constants.HeaderXRequestId, requestID)
		next.ServeHTTP(w, r.WithContext(interceptors.WithRequestID(r.Context(), requestID)))
	})
}

// Logger logs one structured record per request.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			slog.InfoContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
