package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	ordersmemory "github.com/sokoyetu/soko-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/sokoyetu/soko-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/sokoyetu/soko-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/sokoyetu/soko-api/internal/domains/orders/application"
	orderports "github.com/sokoyetu/soko-api/internal/domains/orders/ports"
	productscatalog "github.com/sokoyetu/soko-api/internal/domains/products/adapters/catalog"
	productsmemory "github.com/sokoyetu/soko-api/internal/domains/products/adapters/memory"
	productspostgres "github.com/sokoyetu/soko-api/internal/domains/products/adapters/persistence/postgres"
	productsapp "github.com/sokoyetu/soko-api/internal/domains/products/application"
	productports "github.com/sokoyetu/soko-api/internal/domains/products/ports"
	"github.com/sokoyetu/soko-api/internal/platform/migrations"
	platformobservability "github.com/sokoyetu/soko-api/internal/platform/observability"
	platformpostgres "github.com/sokoyetu/soko-api/internal/platform/postgres"
	orderactivities "github.com/sokoyetu/soko-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/sokoyetu/soko-api/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "soko-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderRepo, productRepo, cleanupDB := buildRepositories(ctx, logger)
	defer cleanupDB()

	catalog := productscatalog.New(productsapp.NewService(productRepo))
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, catalog),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	activities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderCheckoutTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderCheckoutWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderCheckoutWorkflowName})
	w.RegisterActivityWithOptions(activities.CreateOrder, activity.RegisterOptions{Name: orderactivities.CreateOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderCheckoutTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildRepositories(ctx context.Context, logger *slog.Logger) (orderports.Repository, productports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return ordersmemory.NewRepository(), productsmemory.NewRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("worker failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return ordersmemory.NewRepository(), productsmemory.NewRepository(), func() {}
	}
	logger.Info("worker repositories configured with postgres")
	return orderspostgres.NewRepository(db), productspostgres.NewRepository(db), cleanup
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
