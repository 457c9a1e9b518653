package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gateway "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/project/catalog/config"
	"github.com/project/catalog/internal/controller"
	"github.com/project/catalog/internal/usecase/catalog"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const (
	serviceName          = "catalog"
	shutDownSeconds      = 3
	healthPeriodSeconds  = 10
	readHeaderTimeoutSec = 5
)

func Run(logger *zap.Logger, cfg *config.Config) {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdownTracing := initTracing(cfg, logger)
	defer shutdownTracing()

	store, err := newStorage(ctx, cfg, layerLogger(logger, cfg.Log.LogStorage))
	if err != nil {
		logger.Error("can not initialize storage", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
		os.Exit(-1)
	}
	defer store.Close()

	useCases := catalog.New(layerLogger(logger, cfg.Log.LogUseCase), store.authors, store.books)
	ctrl := controller.New(layerLogger(logger, cfg.Log.LogController), useCases, useCases)

	mux := gateway.NewServeMux()
	if err = ctrl.Register(mux); err != nil {
		logger.Error("can not register routes", zap.Error(err))
		os.Exit(-1)
	}

	healthServer := health.NewServer()
	go watchHealth(ctx, logger, store, healthServer)

	servers := []*http.Server{newHTTPServer(":"+cfg.HTTP.Port, mux)}
	if cfg.Observability.MetricsPort != "" {
		metrics := http.NewServeMux()
		metrics.Handle("/metrics", promhttp.Handler())
		servers = append(servers, newHTTPServer(":"+cfg.Observability.MetricsPort, metrics))
	}
	for _, server := range servers {
		go runHTTP(logger, server)
	}

	var grpcServer *grpc.Server
	if cfg.GRPC.Port != "" {
		grpcServer = newGrpcServer(healthServer)
		go runGrpc(cfg, logger, grpcServer)
	}

	logger.Info("catalog started", zap.String("backend", cfg.Storage.Backend))
	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutDownSeconds*time.Second)
	defer shutdownCancel()

	healthServer.Shutdown()
	for _, server := range servers {
		if err = server.Shutdown(shutdownCtx); err != nil {
			logger.Error("can not stop http server", zap.String("addr", server.Addr), zap.Error(err))
		}
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
}

// layerLogger returns nil for disabled layers; every helper treats a nil logger as silent.
func layerLogger(logger *zap.Logger, enabled bool) *zap.Logger {
	if enabled {
		return logger
	}
	return nil
}

func initTracing(cfg *config.Config, logger *zap.Logger) func() {
	if cfg.Observability.JaegerURL == "" {
		return func() {}
	}

	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.Observability.JaegerURL)))
	if err != nil {
		logger.Error("can not create jaeger exporter, tracing disabled", zap.Error(err))
		return func() {}
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
	)
	otel.SetTracerProvider(provider)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutDownSeconds*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.Error("can not flush traces", zap.Error(err))
		}
	}
}

// watchHealth reports NOT_SERVING while any backend fails its ping.
func watchHealth(ctx context.Context, logger *zap.Logger, store *storage, healthServer *health.Server) {
	ticker := time.NewTicker(healthPeriodSeconds * time.Second)
	defer ticker.Stop()

	for {
		status := healthpb.HealthCheckResponse_SERVING
		if err := store.Ping(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("storage backend unreachable", zap.Error(err))
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		healthServer.SetServingStatus("", status)
		healthServer.SetServingStatus(serviceName, status)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeoutSec * time.Second,
	}
}

func runHTTP(logger *zap.Logger, server *http.Server) {
	logger.Info("http server listening", zap.String("addr", server.Addr))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server listen error", zap.String("addr", server.Addr), zap.Error(err))
	}
}

func newGrpcServer(healthServer *health.Server) *grpc.Server {
	s := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthpb.RegisterHealthServer(s, healthServer)
	reflection.Register(s)
	return s
}

func runGrpc(cfg *config.Config, logger *zap.Logger, s *grpc.Server) {
	port := ":" + cfg.GRPC.Port
	lis, err := net.Listen("tcp", port)

	if err != nil {
		logger.Error("can not open tcp socket", zap.Error(err))
		os.Exit(-1)
	}

	logger.Info("grpc server listening at port", zap.String("port", port))

	if err = s.Serve(lis); err != nil {
		logger.Error("grpc server listen error", zap.Error(err))
	}
}
