// Package grpcserver runs a gRPC server until its context is cancelled.
package grpcserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
)

// DefaultStopTimeout bounds GracefulStop before in-flight calls are cut.
const DefaultStopTimeout = 10 * time.Second

// Serve blocks serving lis. When ctx is done it stops accepting calls, waits
// up to stopTimeout for in-flight ones and then forces the stop.
func Serve(ctx context.Context, srv *grpc.Server, lis net.Listener, stopTimeout time.Duration) error {
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("starting gRPC server", "addr", lis.Addr().String())
		serverErrors <- srv.Serve(lis)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("grpc server: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutdown signal received, stopping gRPC server gracefully")
	stopped := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		slog.Info("gRPC server stopped")
	case <-time.After(stopTimeout):
		slog.Warn("graceful stop timed out, forcing stop", "timeout", stopTimeout)
		srv.Stop()
	}
	return nil
}
