package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// httpStatus maps an order service gRPC code to the HTTP status and error
// code of the response.
func httpStatus(code codes.Code) (int, string) {
	switch code {
	case codes.InvalidArgument:
		return http.StatusBadRequest, "invalid_request"
	case codes.NotFound:
		return http.StatusNotFound, "not_found"
	case codes.Aborted, codes.AlreadyExists:
		return http.StatusConflict, "conflict"
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout, "timeout"
	case codes.Unavailable:
		return http.StatusServiceUnavailable, "order_service_unavailable"
	case codes.Internal:
		return http.StatusInternalServerError, "internal_error"
	default:
		return http.StatusBadGateway, "order_service_error"
	}
}

// writeServiceError writes an order service error. Messages of invalid
// argument, not found and conflict errors are safe to show; any other message
// is logged and replaced.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	st := grpcStatus(err)
	httpCode, errCode := httpStatus(st.Code())

	resp := ErrorResponse{Error: errCode}
	switch st.Code() {
	case codes.InvalidArgument, codes.NotFound, codes.Aborted, codes.AlreadyExists:
		resp.Message = st.Message()
		resp.Details = violations(st)
	default:
		slog.ErrorContext(r.Context(), "order service call failed", "code", st.Code().String(), "error", err)
		resp.Message = http.StatusText(httpCode)
	}
	writeJSON(w, httpCode, resp)
}

func violations(st *status.Status) []string {
	var out []string
	for _, d := range st.Details() {
		if br, ok := d.(*errdetails.BadRequest); ok {
			for _, v := range br.GetFieldViolations() {
				out = append(out, v.GetDescription())
			}
		}
	}
	return out
}

// grpcStatus returns the status wrapped in err with its original message.
// status.FromError would replace the message with the whole error chain.
func grpcStatus(err error) *status.Status {
	var se interface{ GRPCStatus() *status.Status }
	if errors.As(err, &se) {
		if st := se.GRPCStatus(); st != nil {
			return st
		}
	}
	return status.New(codes.Unknown, err.Error())
}
