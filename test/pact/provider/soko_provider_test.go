//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/sokoyetu/soko-api/test/pact"

	sokoserver "github.com/sokoyetu/soko-api/go"
	messagingmemory "github.com/sokoyetu/soko-api/internal/domains/messaging/adapters/memory"
	messagingapp "github.com/sokoyetu/soko-api/internal/domains/messaging/application"
	ordersmemory "github.com/sokoyetu/soko-api/internal/domains/orders/adapters/memory"
	ordersworkflows "github.com/sokoyetu/soko-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/sokoyetu/soko-api/internal/domains/orders/application"
	productscatalog "github.com/sokoyetu/soko-api/internal/domains/products/adapters/catalog"
	productsmemory "github.com/sokoyetu/soko-api/internal/domains/products/adapters/memory"
	productsapp "github.com/sokoyetu/soko-api/internal/domains/products/application"
	productdomain "github.com/sokoyetu/soko-api/internal/domains/products/domain"
	usersmemory "github.com/sokoyetu/soko-api/internal/domains/users/adapters/memory"
	usersapp "github.com/sokoyetu/soko-api/internal/domains/users/application"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestSokoProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateProductExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedProduct(t, pacttest.ExistingProductID)
			}
			return nil, nil
		},
		pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	products *productsmemory.Repository
	server   *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	productRepo := productsmemory.NewRepository()
	productService := productsapp.NewService(productRepo)
	orderService := ordersapp.NewService(ordersmemory.NewRepository(), productscatalog.New(productService))
	userService := usersapp.NewService(usersmemory.NewRepository(), usersmemory.NewSessionStore())
	messagingService := messagingapp.NewService(messagingmemory.NewRepository())

	handlers := sokoserver.ApiHandleFunctions{
		OrdersAPI:   sokoserver.NewOrdersAPI(orderService, ordersworkflows.NewInlineCheckout(orderService)),
		ProductsAPI: sokoserver.NewProductsAPI(productService),
		UsersAPI:    sokoserver.NewUsersAPI(userService),
		MessagesAPI: sokoserver.NewMessagesAPI(messagingService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = sokoserver.NewRouterWithGinEngine(router, handlers, userService)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		products: productRepo,
		server:   server,
	}
}

func (a *contractProviderApp) seedProduct(t testing.TB, id string) {
	t.Helper()
	product, err := productdomain.NewProduct(id, pacttest.FarmerID, "Hass Avocado", productdomain.CategoryFruits, 25.0, "kg", 200, 10, time.Now().UTC())
	require.NoError(t, err)
	_, err = a.products.Save(context.Background(), product)
	require.NoError(t, err)
}
