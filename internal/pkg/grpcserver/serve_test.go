package grpcserver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	lis := bufconn.Listen(1 << 16)
	srv := grpc.NewServer()

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, srv, lis, time.Second) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServe_ReportsServeError(t *testing.T) {
	lis := bufconn.Listen(1 << 16)
	require.NoError(t, lis.Close())

	err := Serve(context.Background(), grpc.NewServer(), lis, time.Second)
	assert.Error(t, err)
}
