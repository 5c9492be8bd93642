package main

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"

	"github.com/jcmexdev/orders-microservice/internal/config"
	"github.com/jcmexdev/orders-microservice/internal/pkg/grpcserver"
	"github.com/jcmexdev/orders-microservice/internal/pkg/interceptors"
	"github.com/jcmexdev/orders-microservice/internal/pkg/telemetry"
	productservice "github.com/jcmexdev/orders-microservice/internal/product-service"
	productv1 "github.com/jcmexdev/orders-microservice/internal/rpc/product/v1"
)

func main() {
	cfg, err := config.LoadProduct()
	if err != nil {
		telemetry.InitLogger("product-service", "info")
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := telemetry.InitLogger(cfg.Telemetry.ServiceName, cfg.Telemetry.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.SetupTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.Environment)
		if err != nil {
			slog.Error("failed to initialise tracer", "error", err)
			os.Exit(1)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Error("tracer shutdown error", "error", err)
			}
		}()
	}

	addr := ":" + cfg.GRPCPort
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		slog.Error("failed to listen", "addr", addr, "error", err)
		os.Exit(1)
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			interceptors.RequestIDServerInterceptor(),
			interceptors.LoggingServerInterceptor(logger),
		),
	)
	productv1.RegisterProductServer(grpcServer, productservice.NewCatalog(productservice.SeedProducts...))

	slog.Info("product service gRPC running", "addr", addr, "products", len(productservice.SeedProducts))
	if err := grpcserver.Serve(ctx, grpcServer, lis, grpcserver.DefaultStopTimeout); err != nil {
		slog.Error("failed to serve", "error", err)
		os.Exit(1)
	}
}
