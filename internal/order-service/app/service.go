package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/jcmexdev/orders-microservice/internal/order-service/domain"
	"github.com/jcmexdev/orders-microservice/internal/order-service/ports"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	// MaxLimit bounds the page size of FindAll.
	MaxLimit = 100
	// MaxTotalItems bounds the sum of quantities of one order so it fits the
	// 32-bit wire and column types.
	MaxTotalItems = math.MaxInt32

	MsgValidatingProducts = "Error validating products, please check logs"

	defaultIdempotencyTTL = 24 * time.Hour
	defaultPublishTimeout = 5 * time.Second

	// A reservation marks a key whose create is still running. It outlives
	// a slow create and expires if the process dies mid-way.
	idempotencyReserved = "reserved"
	reservationTTL      = time.Minute
)

type CreateOrderItem struct {
	ProductID string
	Quantity  int
}

type CreateOrderInput struct {
	Items []CreateOrderItem
	// IdempotencyKey, when set, makes repeated creates return the first order.
	// The key is reserved before the order is created, so a concurrent retry
	// with the same key fails with KindConflict instead of creating a second
	// order. Without a reachable cache the key is ignored.
	IdempotencyKey string
}

type ListOrdersQuery struct {
	Page   int
	Limit  int
	Status domain.OrderStatus
}

type PageMeta struct {
	Page       int
	Limit      int
	TotalPages int
	TotalItems int
}

type OrderPage struct {
	Data []domain.Order
	Meta PageMeta
}

// OrderService orchestrates the order lifecycle on top of the store and the
// product catalog.
type OrderService struct {
	store     ports.OrderStore
	products  ports.ProductValidator
	cache     ports.Cache
	publisher ports.EventPublisher

	idempotencyTTL time.Duration
	publishTimeout time.Duration
}

type Option func(*OrderService)

// WithCache enables idempotent creates keyed by CreateOrderInput.IdempotencyKey.
func WithCache(c ports.Cache) Option {
	return func(s *OrderService) { s.cache = c }
}

// WithPublisher enables lifecycle event publishing.
func WithPublisher(p ports.EventPublisher) Option {
	return func(s *OrderService) { s.publisher = p }
}

func WithIdempotencyTTL(ttl time.Duration) Option {
	return func(s *OrderService) { s.idempotencyTTL = ttl }
}

func NewOrderService(store ports.OrderStore, products ports.ProductValidator, opts ...Option) *OrderService {
	s := &OrderService{
		store:          store,
		products:       products,
		idempotencyTTL: defaultIdempotencyTTL,
		publishTimeout: defaultPublishTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the requested products, prices the items with the catalog
// prices of this moment and persists the order with its items.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}

	if order, err := s.replay(ctx, in.IdempotencyKey); err != nil || order != nil {
		return order, err
	}

	reserved, err := s.reserve(ctx, in.IdempotencyKey)
	if err != nil {
		return nil, err
	}

	order, err := s.create(ctx, in)
	if err != nil {
		if reserved {
			s.release(ctx, in.IdempotencyKey)
		}
		return nil, err
	}

	s.remember(ctx, in.IdempotencyKey, order.ID)
	s.publish(ctx, domain.NewOrderCreatedEvent(order))

	return order, nil
}

func (s *OrderService) create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	items := make([]domain.NewOrderItem, len(in.Items))
	ids := make([]string, len(in.Items))
	for i, it := range in.Items {
		items[i] = domain.NewOrderItem{ProductID: it.ProductID, Quantity: it.Quantity}
		ids[i] = it.ProductID
	}
	ids = domain.DistinctProductIDs(ids)

	lookup, err := s.products.ValidateProducts(ctx, ids)
	if err != nil {
		slog.ErrorContext(ctx, "product validation failed", "product_ids", ids, "error", err)
		return nil, domain.NewError(domain.KindInvalidArgument, MsgValidatingProducts, err)
	}
	if len(lookup.Missing) > 0 {
		missing := &domain.MissingProductsError{IDs: lookup.Missing}
		return nil, domain.NewError(domain.KindInvalidArgument, missing.Error(), missing)
	}

	priced, err := domain.PriceItems(items, lookup.Products)
	if err != nil {
		slog.ErrorContext(ctx, "catalog response did not cover every product", "error", err)
		return nil, domain.NewError(domain.KindInvalidArgument, err.Error(), err)
	}

	order, err := s.store.CreateOrder(ctx, priced)
	if err != nil {
		slog.ErrorContext(ctx, "failed to persist order", "error", err)
		return nil, domain.NewError(domain.KindInternal, "Error creating order", err)
	}
	order.AttachNames(lookup.Products)

	slog.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"total_amount", order.TotalAmount.String(),
		"total_items", order.TotalItems,
	)
	return order, nil
}

// FindAll returns one page of order summaries and pagination metadata. The
// status filter, when set, applies to both the page and the total count.
func (s *OrderService) FindAll(ctx context.Context, q ListOrdersQuery) (*OrderPage, error) {
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	if q.Page < 0 || q.Limit < 0 {
		return nil, domain.NewError(domain.KindInvalidArgument, "page and limit must be positive numbers", nil)
	}
	if q.Limit > MaxLimit {
		return nil, domain.NewError(domain.KindInvalidArgument, fmt.Sprintf("limit must not exceed %d", MaxLimit), nil)
	}
	if q.Status != "" && !q.Status.Valid() {
		return nil, invalidStatus(q.Status)
	}

	total, err := s.store.CountOrders(ctx, q.Status)
	if err != nil {
		return nil, domain.NewError(domain.KindInternal, "Error counting orders", err)
	}

	orders, err := s.store.FindOrders(ctx, q.Page, q.Limit, q.Status)
	if err != nil {
		return nil, domain.NewError(domain.KindInternal, "Error listing orders", err)
	}

	return &OrderPage{
		Data: orders,
		Meta: PageMeta{
			Page:       q.Page,
			Limit:      q.Limit,
			TotalPages: (total + q.Limit - 1) / q.Limit,
			TotalItems: total,
		},
	}, nil
}

// FindOne loads an order with its items and attaches the current product
// names from the catalog.
func (s *OrderService) FindOne(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.store.FindOrderByID(ctx, id)
	if errors.Is(err, domain.ErrOrderNotFound) {
		return nil, domain.NewError(domain.KindNotFound, fmt.Sprintf("Order with id %s not found", id), err)
	}
	if err != nil {
		return nil, domain.NewError(domain.KindInternal, "Error fetching order", err)
	}

	lookup, err := s.products.ValidateProducts(ctx, order.ProductIDs())
	if err != nil {
		slog.ErrorContext(ctx, "product lookup failed", "order_id", id, "error", err)
		return nil, domain.NewError(domain.KindInternal, "Error fetching products for order", err)
	}

	if unknown := order.AttachNames(lookup.Products); len(unknown) > 0 {
		slog.WarnContext(ctx, "order references products unknown to the catalog",
			"order_id", id, "product_ids", unknown)
	}
	return order, nil
}

// ChangeStatus moves the order to status. Any status may follow any other.
// An empty status or the current status leaves the order untouched.
func (s *OrderService) ChangeStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if status != "" && !status.Valid() {
		return nil, invalidStatus(status)
	}

	order, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == "" || order.Status == status {
		return order, nil
	}

	updated, err := s.store.UpdateOrderStatus(ctx, id, order.Status, status)
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return nil, domain.NewError(domain.KindNotFound, fmt.Sprintf("Order with id %s not found", id), err)
	case errors.Is(err, domain.ErrStatusConflict):
		return nil, domain.NewError(domain.KindConflict,
			fmt.Sprintf("Order with id %s was modified concurrently, please retry", id), err)
	case err != nil:
		return nil, domain.NewError(domain.KindInternal, "Error updating order status", err)
	}

	slog.InfoContext(ctx, "order status changed", "order_id", id, "from", order.Status, "to", status)
	s.publish(ctx, domain.NewStatusChangedEvent(updated, order.Status))

	return updated, nil
}

func validateItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return domain.NewError(domain.KindInvalidArgument, "order must contain at least one item", nil)
	}
	total := 0
	for i, it := range items {
		if strings.TrimSpace(it.ProductID) == "" {
			return domain.NewError(domain.KindInvalidArgument, fmt.Sprintf("item %d has no product id", i), nil)
		}
		if it.Quantity < 1 || it.Quantity > MaxTotalItems-total {
			return domain.NewError(domain.KindInvalidArgument, fmt.Sprintf("item %d has invalid quantity", i), nil)
		}
		total += it.Quantity
	}
	return nil
}

func invalidStatus(status domain.OrderStatus) error {
	valid := make([]string, len(domain.Statuses))
	for i, st := range domain.Statuses {
		valid[i] = string(st)
	}
	return domain.NewError(domain.KindInvalidArgument,
		fmt.Sprintf("invalid status %q, valid status are: %s", status, strings.Join(valid, ", ")), nil)
}

// replay returns the order previously created for key, or nil when there is
// none. Cache failures never block a create.
func (s *OrderService) replay(ctx context.Context, key string) (*domain.Order, error) {
	if s.cache == nil || key == "" {
		return nil, nil
	}

	id, err := s.cache.Get(ctx, s.cache.GenerateKey("create", key))
	if err != nil {
		slog.WarnContext(ctx, "idempotency cache read failed", "idempotency_key", key, "error", err)
		return nil, nil
	}
	if id == "" {
		return nil, nil
	}
	if id == idempotencyReserved {
		return nil, inProgress(key)
	}

	order, err := s.FindOne(ctx, id)
	if domain.KindOf(err) == domain.KindNotFound {
		slog.WarnContext(ctx, "idempotency key points to a missing order", "idempotency_key", key, "order_id", id)
		s.release(ctx, key)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "replaying order for idempotency key", "idempotency_key", key, "order_id", id)
	return order, nil
}

// reserve claims key for the create about to run. It reports whether a
// reservation was taken; a cache failure skips the reservation.
func (s *OrderService) reserve(ctx context.Context, key string) (bool, error) {
	if s.cache == nil || key == "" {
		return false, nil
	}

	ok, err := s.cache.SetNX(ctx, s.cache.GenerateKey("create", key), idempotencyReserved, reservationTTL)
	if err != nil {
		slog.WarnContext(ctx, "idempotency reservation failed", "idempotency_key", key, "error", err)
		return false, nil
	}
	if !ok {
		return false, inProgress(key)
	}
	return true, nil
}

// release drops the entry of key so the client can retry with it.
func (s *OrderService) release(ctx context.Context, key string) {
	if err := s.cache.Delete(context.WithoutCancel(ctx), s.cache.GenerateKey("create", key)); err != nil {
		slog.WarnContext(ctx, "idempotency reservation release failed", "idempotency_key", key, "error", err)
	}
}

func inProgress(key string) error {
	return domain.NewError(domain.KindConflict,
		fmt.Sprintf("An order for idempotency key %s is already being created, please retry", key), nil)
}

func (s *OrderService) remember(ctx context.Context, key, orderID string) {
	if s.cache == nil || key == "" {
		return
	}
	if err := s.cache.Set(ctx, s.cache.GenerateKey("create", key), orderID, s.idempotencyTTL); err != nil {
		slog.WarnContext(ctx, "idempotency cache write failed", "idempotency_key", key, "error", err)
	}
}

// publish is best effort: the order is already stored when it runs.
func (s *OrderService) publish(ctx context.Context, event domain.Event) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish order event", "event", event.Type, "order_id", event.OrderID, "error", err)
	}
}
