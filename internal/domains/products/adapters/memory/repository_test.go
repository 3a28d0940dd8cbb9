package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokoyetu/soko-api/internal/domains/products/domain"
	"github.com/sokoyetu/soko-api/internal/domains/products/ports"
)

var testNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newListing(t *testing.T, id, farmerID, name string, category domain.Category, county string, quantity int32) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(id, farmerID, name, category, 50, "kg", quantity, 1, testNow)
	require.NoError(t, err)
	product.Location = domain.Location{County: county}
	return product
}

func TestSaveAndGetByID(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	listing := newListing(t, "prod-1", "farmer-1", "Sukuma Wiki", domain.CategoryVegetables, "Kiambu", 30)
	saved, err := repo.Save(ctx, listing)
	require.NoError(t, err)
	assert.Equal(t, "prod-1", saved.ID)

	found, err := repo.GetByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, "Sukuma Wiki", found.Name)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := NewRepository()
	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSaveUpdatesInPlace(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.Save(ctx, newListing(t, "prod-1", "farmer-1", "Sukuma Wiki", domain.CategoryVegetables, "Kiambu", 30))
	require.NoError(t, err)
	_, err = repo.Save(ctx, newListing(t, "prod-2", "farmer-1", "Managu", domain.CategoryVegetables, "Kiambu", 20))
	require.NoError(t, err)

	updated := newListing(t, "prod-1", "farmer-1", "Sukuma Wiki", domain.CategoryVegetables, "Kiambu", 10)
	_, err = repo.Save(ctx, updated)
	require.NoError(t, err)

	all, err := repo.Search(ctx, ports.SearchQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "prod-1", all[0].ID)
	assert.Equal(t, int32(10), all[0].Quantity)
	assert.Equal(t, "prod-2", all[1].ID)
}

func TestSearchFilters(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	kale := newListing(t, "prod-1", "farmer-1", "Sukuma Wiki", domain.CategoryVegetables, "Kiambu", 30)
	kale.Description = "Fresh kale from Limuru"
	mango := newListing(t, "prod-2", "farmer-2", "Apple Mango", domain.CategoryFruits, "Makueni", 100)
	soldOut := newListing(t, "prod-3", "farmer-1", "Managu", domain.CategoryVegetables, "Kiambu", 0)

	for _, p := range []*domain.Product{kale, mango, soldOut} {
		_, err := repo.Save(ctx, p)
		require.NoError(t, err)
	}

	tests := []struct {
		name     string
		query    ports.SearchQuery
		expected []string
	}{
		{"all", ports.SearchQuery{}, []string{"prod-1", "prod-2", "prod-3"}},
		{"by category", ports.SearchQuery{Category: domain.CategoryFruits}, []string{"prod-2"}},
		{"by county case insensitive", ports.SearchQuery{County: "kiambu"}, []string{"prod-1", "prod-3"}},
		{"by farmer", ports.SearchQuery{FarmerID: "farmer-2"}, []string{"prod-2"}},
		{"available only", ports.SearchQuery{OnlyAvailable: true}, []string{"prod-1", "prod-2"}},
		{"text in name", ports.SearchQuery{Text: "mango"}, []string{"prod-2"}},
		{"text in description", ports.SearchQuery{Text: "limuru"}, []string{"prod-1"}},
		{"no match", ports.SearchQuery{Category: domain.CategoryDairy}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			results, err := repo.Search(ctx, tc.query)
			require.NoError(t, err)
			ids := make([]string, 0, len(results))
			for _, p := range results {
				ids = append(ids, p.ID)
			}
			if tc.expected == nil {
				assert.Empty(t, ids)
				return
			}
			assert.Equal(t, tc.expected, ids)
		})
	}
}

func TestCloneOnReadAndWrite(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	listing := newListing(t, "prod-1", "farmer-1", "Sukuma Wiki", domain.CategoryVegetables, "Kiambu", 30)
	listing.Tags = []string{"greens"}
	_, err := repo.Save(ctx, listing)
	require.NoError(t, err)

	listing.Name = "mutated"
	listing.Tags[0] = "mutated"

	found, err := repo.GetByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, "Sukuma Wiki", found.Name)
	assert.Equal(t, []string{"greens"}, found.Tags)

	found.Quantity = 0
	again, err := repo.GetByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, int32(30), again.Quantity)
}
