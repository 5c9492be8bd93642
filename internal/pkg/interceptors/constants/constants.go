package constants

// contextKey is an unexported type for context keys in this package.
// Using a custom type prevents collisions with keys from other packages
// that might use the same underlying string value.
type contextKey string

const (
	HeaderXRequestId      = "x-request-id"
	HeaderXIdempotencyKey = "x-idempotency-key"

	// ContextKeyRequestID is the context key for the request ID.
	ContextKeyRequestID contextKey = HeaderXRequestId
	// ContextKeyIdempotencyKey is the context key for the idempotency key.
	ContextKeyIdempotencyKey contextKey = HeaderXIdempotencyKey
)

// ContextKeyFor returns the context key that carries the given header, or
// false for headers that are not kept in the context.
func ContextKeyFor(header string) (contextKey, bool) {
	switch header {
	case HeaderXRequestId:
		return ContextKeyRequestID, true
	case HeaderXIdempotencyKey:
		return ContextKeyIdempotencyKey, true
	default:
		return "", false
	}
}
