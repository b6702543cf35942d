package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	pkgobservability "github.com/bibbank/bib/pkg/observability"
	pkgpostgres "github.com/bibbank/bib/pkg/postgres"

	"github.com/abbasmithaiwala/lender-matching-platform/internal/application/usecase"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/matcher"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/port"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/domain/ruleengine"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/infrastructure/config"
	infrakafka "github.com/abbasmithaiwala/lender-matching-platform/internal/infrastructure/kafka"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/abbasmithaiwala/lender-matching-platform/internal/presentation/grpc"
	"github.com/abbasmithaiwala/lender-matching-platform/internal/presentation/rest"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()

	logger := pkgobservability.InitLogger(pkgobservability.LogConfig{Level: "info", Format: "json"})
	slog.SetDefault(logger)

	logger.Info("starting underwriting-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	shutdownTracer, err := pkgobservability.InitTracer(ctx, pkgobservability.TracingConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(ctx) }() //nolint:errcheck // best-effort tracer shutdown
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	pool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
	dbCancel()
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pkgpostgres.HealthCheck(ctx, pool); err != nil {
		logger.Error("database not reachable", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	if migErr := pkgpostgres.RunMigrations(cfg.DatabaseURL, "file://internal/infrastructure/persistence/postgres/migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	applicationRepo := postgres.NewApplicationRepo(pool)
	catalogRepo := postgres.NewCatalogRepo(pool)
	runRepo := postgres.NewRunRepo(pool)

	producer := infrakafka.NewProducer(infrakafka.Config{Brokers: cfg.KafkaBrokers})
	defer producer.Close()
	publisher := infrakafka.NewEventPublisher(producer, cfg.KafkaTopic, logger)

	clock := port.SystemClock{}
	engine := ruleengine.NewEngine(ruleengine.NewDefaultRegistry(), clock)
	m := matcher.New(engine, clock)
	orchestrator := usecase.New(applicationRepo, catalogRepo, runRepo, publisher, m, clock)

	handler := grpcPresentation.NewUnderwritingHandler(orchestrator)
	grpcServer := grpcPresentation.NewServer(handler, logger)

	mux := http.NewServeMux()
	healthHandler := rest.NewHealthHandler(pool, logger)
	healthHandler.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("underwriting-service stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
