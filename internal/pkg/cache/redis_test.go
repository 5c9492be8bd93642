package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	c := NewRedisCache("localhost:0", "order")
	t.Cleanup(func() { _ = c.Close() })

	assert.Equal(t, "order:create:abc-123", c.GenerateKey("create", "abc-123"))
}

// Runs against a live server when REDIS_TEST_ADDR is set.
func TestRedisCache_SetGet(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	ctx := context.Background()
	c := NewRedisCache(addr, "order-test")
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Ping(ctx))

	key := c.GenerateKey("create", uuid.NewString())

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, got, "a miss is not an error")

	require.NoError(t, c.Set(ctx, key, "order-1", time.Minute))
	got, err = c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "order-1", got)

	ok, err := c.SetNX(ctx, key, "reserved", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "an existing key is kept")

	require.NoError(t, c.Delete(ctx, key))
	ok, err = c.SetNX(ctx, key, "reserved", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, c.Delete(ctx, key))
}
