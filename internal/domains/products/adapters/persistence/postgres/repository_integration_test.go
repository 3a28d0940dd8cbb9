//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sokoyetu/soko-api/internal/domains/products/domain"
	"github.com/sokoyetu/soko-api/internal/domains/products/ports"
	"github.com/sokoyetu/soko-api/internal/platform/migrations"
)

func setupProductsPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("soko_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedListing(t *testing.T, id, farmerID, name string, category domain.Category, county string, quantity int32, created time.Time) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(id, farmerID, name, category, 50, "kg", quantity, 1, created)
	require.NoError(t, err)
	product.Location = domain.Location{County: county}
	product.Tags = []string{"fresh", "local"}
	return product
}

func TestRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupProductsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	listing := seedListing(t, "prod-1", "farmer-1", "Sukuma Wiki", domain.CategoryVegetables, "Kiambu", 30, time.Now().UTC().Truncate(time.Millisecond))
	saved, err := repo.Save(ctx, listing)
	require.NoError(t, err)
	assert.Equal(t, listing.ID, saved.ID)

	fetched, err := repo.GetByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sukuma Wiki", fetched.Name)
	assert.Equal(t, []string{"fresh", "local"}, fetched.Tags)
	assert.True(t, fetched.IsAvailable)
}

func TestRepository_UpdatePersistsStockLevel(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupProductsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	listing := seedListing(t, "prod-2", "farmer-1", "Managu", domain.CategoryVegetables, "Kiambu", 5, time.Now().UTC().Truncate(time.Millisecond))
	_, err := repo.Save(ctx, listing)
	require.NoError(t, err)

	require.NoError(t, listing.Reserve(5, time.Now().UTC()))

	saved, err := repo.Save(ctx, listing)
	require.NoError(t, err)
	assert.Equal(t, int32(0), saved.Quantity)
	assert.False(t, saved.IsAvailable)
}

func TestRepository_SearchFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupProductsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	_, err := repo.Save(ctx, seedListing(t, "prod-1", "farmer-1", "Sukuma Wiki", domain.CategoryVegetables, "Kiambu", 30, base))
	require.NoError(t, err)
	_, err = repo.Save(ctx, seedListing(t, "prod-2", "farmer-2", "Apple Mango", domain.CategoryFruits, "Makueni", 100, base.Add(time.Second)))
	require.NoError(t, err)

	fruits, err := repo.Search(ctx, ports.SearchQuery{Category: domain.CategoryFruits})
	require.NoError(t, err)
	require.Len(t, fruits, 1)
	assert.Equal(t, "prod-2", fruits[0].ID)

	byCounty, err := repo.Search(ctx, ports.SearchQuery{County: "kiambu"})
	require.NoError(t, err)
	require.Len(t, byCounty, 1)
	assert.Equal(t, "prod-1", byCounty[0].ID)

	byText, err := repo.Search(ctx, ports.SearchQuery{Text: "mango"})
	require.NoError(t, err)
	require.Len(t, byText, 1)
	assert.Equal(t, "prod-2", byText[0].ID)
}

func TestRepository_GetByIDNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupProductsPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
