package ports

import (
	"context"

	"github.com/jcmexdev/orders-microservice/internal/api-gateway/core/domain/entity"
)

type OrderService interface {
	CreateOrder(ctx context.Context, idempotencyKey string, items []entity.CreateOrderItem) (*entity.Order, error)
	ListOrders(ctx context.Context, q entity.ListQuery) (*entity.OrderPage, error)
	GetOrder(ctx context.Context, id string) (*entity.Order, error)
	ChangeOrderStatus(ctx context.Context, id, status string) (*entity.Order, error)
}
