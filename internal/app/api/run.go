package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	sokoserver "github.com/sokoyetu/soko-api/go"

	smsclient "github.com/sokoyetu/soko-api/internal/clients/http/sms"
	messagingmemory "github.com/sokoyetu/soko-api/internal/domains/messaging/adapters/memory"
	messagingapp "github.com/sokoyetu/soko-api/internal/domains/messaging/application"
	ordersmemory "github.com/sokoyetu/soko-api/internal/domains/orders/adapters/memory"
	ordersnotify "github.com/sokoyetu/soko-api/internal/domains/orders/adapters/notify"
	ordersobs "github.com/sokoyetu/soko-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/sokoyetu/soko-api/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/sokoyetu/soko-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/sokoyetu/soko-api/internal/domains/orders/application"
	orderports "github.com/sokoyetu/soko-api/internal/domains/orders/ports"
	productscatalog "github.com/sokoyetu/soko-api/internal/domains/products/adapters/catalog"
	productsmemory "github.com/sokoyetu/soko-api/internal/domains/products/adapters/memory"
	productspostgres "github.com/sokoyetu/soko-api/internal/domains/products/adapters/persistence/postgres"
	productsapp "github.com/sokoyetu/soko-api/internal/domains/products/application"
	productports "github.com/sokoyetu/soko-api/internal/domains/products/ports"
	usersmemory "github.com/sokoyetu/soko-api/internal/domains/users/adapters/memory"
	usersobs "github.com/sokoyetu/soko-api/internal/domains/users/adapters/observability"
	userspostgres "github.com/sokoyetu/soko-api/internal/domains/users/adapters/persistence/postgres"
	usersredis "github.com/sokoyetu/soko-api/internal/domains/users/adapters/redis"
	usersapp "github.com/sokoyetu/soko-api/internal/domains/users/application"
	userports "github.com/sokoyetu/soko-api/internal/domains/users/ports"
	"github.com/sokoyetu/soko-api/internal/platform/migrations"
	platformobservability "github.com/sokoyetu/soko-api/internal/platform/observability"
	platformpostgres "github.com/sokoyetu/soko-api/internal/platform/postgres"
)

// Run boots the marketplace HTTP API with observability, repositories,
// and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "soko-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	var (
		orderRepo    orderports.Repository
		productRepo  productports.Repository
		userRepo     userports.Repository
		sessionStore userports.SessionStore
	)
	if db != nil {
		orderRepo = orderspostgres.NewRepository(db)
		productRepo = productspostgres.NewRepository(db)
		userRepo = userspostgres.NewRepository(db)
		sessionStore = userspostgres.NewSessionStore(db)
	} else {
		orderRepo = ordersmemory.NewRepository()
		productRepo = productsmemory.NewRepository()
		userRepo = usersmemory.NewRepository()
		sessionStore = usersmemory.NewSessionStore()
	}

	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis unavailable, keeping configured session store", slog.String("error", err.Error()))
		} else {
			defer redisClient.Close()
			sessionStore = usersredis.NewSessionStore(redisClient)
			logger.Info("session store configured with redis", slog.String("addr", cfg.RedisAddr))
		}
	}

	productService := productsapp.NewService(productRepo)
	catalog := productscatalog.New(productService)

	orderOpts := []ordersapp.Option{}
	if cfg.SMSEnabled() {
		smsClient, err := smsclient.NewClient(cfg.SMSBaseURL, cfg.SMSAPIKey, cfg.SMSUsername, smsclient.WithSenderID(cfg.SMSSenderID))
		if err != nil {
			logger.Warn("sms gateway misconfigured, lifecycle alerts disabled", slog.String("error", err.Error()))
		} else {
			orderOpts = append(orderOpts, ordersapp.WithNotifier(ordersnotify.NewSMSNotifier(smsClient, userRepo)))
			logger.Info("sms lifecycle alerts enabled")
		}
	}

	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, catalog, orderOpts...),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	userService := usersobs.New(
		usersapp.NewService(userRepo, sessionStore, usersapp.WithSessionTTL(cfg.SessionTTL)),
		usersobs.WithLogger(logger),
		usersobs.WithTracer(instruments.Tracer("internal.users.application")),
		usersobs.WithMeter(instruments.Meter("internal.users.application")),
	)

	messagingService := messagingapp.NewService(messagingmemory.NewRepository())

	var checkout orderports.CheckoutOrchestrator = ordersworkflows.NewInlineCheckout(orderService)
	if cfg.TemporalDisabled {
		logger.Info("Temporal disabled, running checkout inline")
	} else if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal unavailable, running checkout inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		checkout = ordersworkflows.NewTemporalCheckout(temporalClient)
		logger.Info("Temporal checkout enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := sokoserver.ApiHandleFunctions{
		OrdersAPI:   sokoserver.NewOrdersAPI(orderService, checkout),
		ProductsAPI: sokoserver.NewProductsAPI(productService),
		UsersAPI:    sokoserver.NewUsersAPI(userService),
		MessagesAPI: sokoserver.NewMessagesAPI(messagingService),
	}

	router := newHTTPEngine(handlers, userService, serviceName)
	addr := ":" + cfg.Port
	logger.Info("soko API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("soko API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// newHTTPEngine builds the gin engine with tracing attached before any route
// is registered. Gin snapshots the handler chain per route, so middleware
// added afterwards never runs for them.
func newHTTPEngine(handlers sokoserver.ApiHandleFunctions, users userports.Service, serviceName string, opts ...otelgin.Option) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(otelgin.Middleware(serviceName, opts...))
	return sokoserver.NewRouterWithGinEngine(engine, handlers, users)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
