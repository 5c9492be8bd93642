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
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/jcmexdev/orders-microservice/internal/config"
	"github.com/jcmexdev/orders-microservice/internal/order-service/adapters/catalog"
	"github.com/jcmexdev/orders-microservice/internal/order-service/adapters/events"
	"github.com/jcmexdev/orders-microservice/internal/order-service/adapters/grpc/server"
	"github.com/jcmexdev/orders-microservice/internal/order-service/app"
	"github.com/jcmexdev/orders-microservice/internal/order-service/store/sqlstore"
	"github.com/jcmexdev/orders-microservice/internal/pkg/cache"
	"github.com/jcmexdev/orders-microservice/internal/pkg/grpcserver"
	"github.com/jcmexdev/orders-microservice/internal/pkg/interceptors"
	"github.com/jcmexdev/orders-microservice/internal/pkg/telemetry"
	orderv1 "github.com/jcmexdev/orders-microservice/internal/rpc/order/v1"
	productv1 "github.com/jcmexdev/orders-microservice/internal/rpc/product/v1"
)

func main() {
	if err := run(); err != nil {
		slog.Error("order service stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		telemetry.InitLogger("order-service", "info")
		return err
	}
	logger := telemetry.InitLogger(cfg.Telemetry.ServiceName, cfg.Telemetry.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown := telemetry.ShutdownFunc(telemetry.NoopShutdown)
	if cfg.Telemetry.Enabled {
		shutdown, err = telemetry.SetupTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.Environment)
		if err != nil {
			return err
		}
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Error("tracer shutdown error", "error", err)
		}
	}()

	store, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		return err
	}
	slog.Info("database ready", "driver", cfg.Database.Driver)

	productConn, err := grpc.NewClient(cfg.Product.Addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithStatsHandler(otelgrpc.NewClientHandler()),
		grpc.WithUnaryInterceptor(interceptors.RequestIDClientInterceptor()),
	)
	if err != nil {
		return err
	}
	defer productConn.Close()
	products := catalog.NewClient(productv1.NewProductClient(productConn), cfg.Product.Timeout)

	opts := []app.Option{}
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis.Addr, "order")
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			slog.Warn("redis unreachable at startup", "addr", cfg.Redis.Addr, "error", err)
		}
		opts = append(opts, app.WithCache(redisCache))
	}

	publisher, err := events.New(ctx, cfg.Events)
	if err != nil {
		slog.Warn("event broker unavailable, continuing without event publishing", "broker", cfg.Events.Broker, "error", err)
		publisher = events.NoopPublisher{}
	}
	defer publisher.Close()
	opts = append(opts, app.WithPublisher(publisher))

	orderService := app.NewOrderService(store, products, opts...)

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			interceptors.RequestIDServerInterceptor(),
			interceptors.LoggingServerInterceptor(logger),
		),
	)
	orderv1.RegisterOrderServer(grpcServer, server.NewOrderServer(orderService))

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(orderv1.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthSrv)

	addr := ":" + cfg.GRPC.Port
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	slog.Info("order service gRPC running", "addr", addr)

	err = grpcserver.Serve(ctx, grpcServer, lis, grpcserver.DefaultStopTimeout)
	healthSrv.Shutdown()
	return err
}
