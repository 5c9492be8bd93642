package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/jcmexdev/orders-microservice/internal/api-gateway/infra/adapters/service"
	"github.com/jcmexdev/orders-microservice/internal/api-gateway/infra/httpx"
	"github.com/jcmexdev/orders-microservice/internal/config"
	"github.com/jcmexdev/orders-microservice/internal/pkg/interceptors"
	"github.com/jcmexdev/orders-microservice/internal/pkg/telemetry"
	orderv1 "github.com/jcmexdev/orders-microservice/internal/rpc/order/v1"
)

func main() {
	cfg, err := config.LoadGateway()
	if err != nil {
		telemetry.InitLogger("api-gateway", "info")
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	telemetry.InitLogger(cfg.Telemetry.ServiceName, cfg.Telemetry.LogLevel)

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

	orderConn, err := grpc.NewClient(cfg.OrderServiceAddr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithUnaryInterceptor(interceptors.RequestIDClientInterceptor()),
	)
	if err != nil {
		slog.Error("could not connect to order service", "addr", cfg.OrderServiceAddr, "error", err)
		os.Exit(1)
	}
	defer orderConn.Close()

	orderService := service.NewGRPCOrderClient(orderv1.NewOrderClient(orderConn))
	router := httpx.NewRouter(httpx.NewHandler(orderService), cfg.RequestTimeout)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("http shutdown error", "error", err)
		}
	}()

	slog.Info("API gateway running", "addr", srv.Addr, "order_service", cfg.OrderServiceAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("http server failed", "error", err)
		os.Exit(1)
	}
	<-shutdownDone
}
