// Package ports declares what the order lifecycle service needs from the
// outside world. Adapters in the sibling packages implement them.
package ports

import (
	"context"
	"time"

	"github.com/jcmexdev/orders-microservice/internal/order-service/domain"
)

// OrderStore persists orders and their items.
type OrderStore interface {
	// CreateOrder inserts the order and all of its items atomically.
	CreateOrder(ctx context.Context, order domain.NewOrder) (*domain.Order, error)
	// CountOrders counts orders, optionally filtered by status ("" = all).
	CountOrders(ctx context.Context, status domain.OrderStatus) (int, error)
	// FindOrders returns one page of order summaries (items not loaded).
	FindOrders(ctx context.Context, page, limit int, status domain.OrderStatus) ([]domain.Order, error)
	// FindOrderByID returns the order with its items or domain.ErrOrderNotFound.
	FindOrderByID(ctx context.Context, id string) (*domain.Order, error)
	// UpdateOrderStatus moves the order from one status to another. It fails
	// with domain.ErrStatusConflict when the stored status is no longer from.
	UpdateOrderStatus(ctx context.Context, id string, from, to domain.OrderStatus) (*domain.Order, error)
}

// ProductValidator resolves product ids against the product catalog. Ids the
// catalog does not know are listed in ProductLookup.Missing; the error is
// reserved for failed calls.
type ProductValidator interface {
	ValidateProducts(ctx context.Context, ids []string) (*domain.ProductLookup, error)
}

// Cache stores idempotency keys. Get returns "" on a miss. SetNX writes only
// when the key is absent and reports whether it did.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	GenerateKey(operation, key string) string
}

// EventPublisher emits order lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
	Close() error
}
