package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	sokoserver "github.com/sokoyetu/soko-api/go"
	messagingmemory "github.com/sokoyetu/soko-api/internal/domains/messaging/adapters/memory"
	messagingapp "github.com/sokoyetu/soko-api/internal/domains/messaging/application"
	ordersmemory "github.com/sokoyetu/soko-api/internal/domains/orders/adapters/memory"
	ordersworkflows "github.com/sokoyetu/soko-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/sokoyetu/soko-api/internal/domains/orders/application"
	productscatalog "github.com/sokoyetu/soko-api/internal/domains/products/adapters/catalog"
	productsmemory "github.com/sokoyetu/soko-api/internal/domains/products/adapters/memory"
	productsapp "github.com/sokoyetu/soko-api/internal/domains/products/application"
	usersmemory "github.com/sokoyetu/soko-api/internal/domains/users/adapters/memory"
	usersapp "github.com/sokoyetu/soko-api/internal/domains/users/application"
)

func newMemoryHandlers() (sokoserver.ApiHandleFunctions, *usersapp.Service) {
	productService := productsapp.NewService(productsmemory.NewRepository())
	orderService := ordersapp.NewService(ordersmemory.NewRepository(), productscatalog.New(productService))
	userService := usersapp.NewService(usersmemory.NewRepository(), usersmemory.NewSessionStore())
	messagingService := messagingapp.NewService(messagingmemory.NewRepository())

	return sokoserver.ApiHandleFunctions{
		OrdersAPI:   sokoserver.NewOrdersAPI(orderService, ordersworkflows.NewInlineCheckout(orderService)),
		ProductsAPI: sokoserver.NewProductsAPI(productService),
		UsersAPI:    sokoserver.NewUsersAPI(userService),
		MessagesAPI: sokoserver.NewMessagesAPI(messagingService),
	}, userService
}

func TestHTTPEngineTracesRegisteredRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	handlers, userService := newMemoryHandlers()
	engine := newHTTPEngine(handlers, userService, "soko-api-test", otelgin.WithTracerProvider(provider))

	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	engine.ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "/healthz", spans[0].Name())
}

func TestHTTPEngineTracesAuthRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	handlers, userService := newMemoryHandlers()
	engine := newHTTPEngine(handlers, userService, "soko-api-test", otelgin.WithTracerProvider(provider))

	res := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	engine.ServeHTTP(res, req)
	require.Equal(t, http.StatusUnauthorized, res.Code)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "/v1/users/me", spans[0].Name())
}
