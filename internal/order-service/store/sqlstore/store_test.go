package sqlstore

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/orders-microservice/internal/order-service/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	st, err := Open(ctx, "sqlite", filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Migrate(ctx))

	// A ticking clock keeps created_at strictly increasing.
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return st
}

func newOrder(items ...domain.NewOrderItem) domain.NewOrder {
	o := domain.NewOrder{TotalAmount: decimal.Zero}
	for _, it := range items {
		o.TotalAmount = o.TotalAmount.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		o.TotalItems += it.Quantity
		o.Items = append(o.Items, it)
	}
	return o
}

func sampleOrder() domain.NewOrder {
	return newOrder(
		domain.NewOrderItem{ProductID: "P1", Quantity: 2, Price: decimal.NewFromFloat(10.0)},
		domain.NewOrderItem{ProductID: "P2", Quantity: 1, Price: decimal.NewFromFloat(5.5)},
	)
}

func TestStore_CreateAndFind(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	created, err := st.CreateOrder(ctx, sampleOrder())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, domain.StatusPending, created.Status)
	assert.False(t, created.Paid)
	assert.Len(t, created.Items, 2)

	found, err := st.FindOrderByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, found.ID)
	assert.True(t, found.TotalAmount.Equal(decimal.NewFromFloat(25.5)), "total %s", found.TotalAmount)
	assert.Equal(t, 3, found.TotalItems)
	assert.Equal(t, domain.StatusPending, found.Status)
	assert.False(t, found.Paid)
	assert.True(t, created.CreatedAt.Equal(found.CreatedAt))

	require.Len(t, found.Items, 2)
	assert.Equal(t, "P1", found.Items[0].ProductID)
	assert.Equal(t, 2, found.Items[0].Quantity)
	assert.True(t, found.Items[0].Price.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "P2", found.Items[1].ProductID)
	assert.Equal(t, 1, found.Items[1].Quantity)
	assert.True(t, found.Items[1].Price.Equal(decimal.NewFromFloat(5.5)))
	assert.Equal(t, created.Items[0].ID, found.Items[0].ID)
}

func TestStore_CreateIsAtomic(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	// The second item violates the quantity CHECK constraint.
	bad := newOrder(
		domain.NewOrderItem{ProductID: "P1", Quantity: 1, Price: decimal.NewFromInt(10)},
		domain.NewOrderItem{ProductID: "P2", Quantity: 0, Price: decimal.NewFromInt(5)},
	)

	_, err := st.CreateOrder(ctx, bad)
	require.Error(t, err)

	n, err := st.CountOrders(ctx, "")
	require.NoError(t, err)
	assert.Zero(t, n, "no order row may survive a failed create")

	var items int
	require.NoError(t, st.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM order_items`).Scan(&items))
	assert.Zero(t, items)
}

func TestStore_FindOrderByID_NotFound(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{uuid.NewString(), "not-a-uuid", ""} {
		order, err := st.FindOrderByID(ctx, id)
		assert.Nil(t, order)
		assert.ErrorIs(t, err, domain.ErrOrderNotFound, "id %q", id)
	}
}

func TestStore_PaginationAndFilter(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 15; i++ {
		o, err := st.CreateOrder(ctx, sampleOrder())
		require.NoError(t, err)
		ids = append(ids, o.ID)
	}
	// Every third order is delivered: 5 of 15.
	for i := 0; i < 15; i += 3 {
		_, err := st.UpdateOrderStatus(ctx, ids[i], domain.StatusPending, domain.StatusDelivered)
		require.NoError(t, err)
	}

	total, err := st.CountOrders(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 15, total)

	first, err := st.FindOrders(ctx, 1, 10, "")
	require.NoError(t, err)
	assert.Len(t, first, 10)
	assert.Equal(t, ids[0], first[0].ID)
	assert.Empty(t, first[0].Items, "summaries do not load items")

	second, err := st.FindOrders(ctx, 2, 10, "")
	require.NoError(t, err)
	require.Len(t, second, 5)
	assert.Equal(t, ids[10], second[0].ID)
	assert.Equal(t, ids[14], second[4].ID)

	beyond, err := st.FindOrders(ctx, 3, 10, "")
	require.NoError(t, err)
	assert.Empty(t, beyond)

	delivered, err := st.CountOrders(ctx, domain.StatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, 5, delivered)

	filtered, err := st.FindOrders(ctx, 1, 10, domain.StatusDelivered)
	require.NoError(t, err)
	require.Len(t, filtered, 5)
	for _, o := range filtered {
		assert.Equal(t, domain.StatusDelivered, o.Status)
	}

	pending, err := st.CountOrders(ctx, domain.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, 10, pending)
}

func TestStore_FindOrders_LimitDoesNotPreallocate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	_, err := st.CreateOrder(ctx, sampleOrder())
	require.NoError(t, err)

	orders, err := st.FindOrders(ctx, 1, math.MaxInt32, "")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestStore_FindOrders_InvalidPage(t *testing.T) {
	st := newTestStore(t)

	_, err := st.FindOrders(context.Background(), 0, 10, "")
	assert.Error(t, err)
}

func TestStore_UpdateOrderStatus(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	created, err := st.CreateOrder(ctx, sampleOrder())
	require.NoError(t, err)

	updated, err := st.UpdateOrderStatus(ctx, created.ID, domain.StatusPending, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.Len(t, updated.Items, 2)

	found, err := st.FindOrderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, found.Status)
}

func TestStore_UpdateOrderStatus_Conflict(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	created, err := st.CreateOrder(ctx, sampleOrder())
	require.NoError(t, err)

	_, err = st.UpdateOrderStatus(ctx, created.ID, domain.StatusPending, domain.StatusDelivered)
	require.NoError(t, err)

	// A second writer that still believes the order is PENDING loses.
	_, err = st.UpdateOrderStatus(ctx, created.ID, domain.StatusPending, domain.StatusCancelled)
	assert.ErrorIs(t, err, domain.ErrStatusConflict)

	found, err := st.FindOrderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelivered, found.Status)
}

func TestStore_UpdateOrderStatus_NotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.UpdateOrderStatus(context.Background(), uuid.NewString(), domain.StatusPending, domain.StatusCancelled)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestStore_MigrateIsIdempotent(t *testing.T) {
	st := newTestStore(t)

	assert.NoError(t, st.Migrate(context.Background()))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "whatever")
	assert.ErrorContains(t, err, "unsupported driver")
}
