package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokoyetu/soko-api/internal/domains/products/domain"
	"github.com/sokoyetu/soko-api/internal/domains/products/ports"
)

type fakeProductRepo struct {
	products map[string]*domain.Product
	order    []string
	saveErr  error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*domain.Product)}
}

func (f *fakeProductRepo) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	copied := *product
	if _, ok := f.products[copied.ID]; !ok {
		f.order = append(f.order, copied.ID)
	}
	f.products[copied.ID] = &copied
	result := copied
	return &result, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductRepo) Search(_ context.Context, query ports.SearchQuery) ([]*domain.Product, error) {
	var matches []*domain.Product
	for _, id := range f.order {
		product := f.products[id]
		if query.FarmerID != "" && product.FarmerID != query.FarmerID {
			continue
		}
		if query.OnlyAvailable && !product.IsAvailable {
			continue
		}
		copied := *product
		matches = append(matches, &copied)
	}
	return matches, nil
}

var fixedNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newTestService(repo *fakeProductRepo) *Service {
	var seq int
	return NewService(repo,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("prod-%d", seq)
		}),
	)
}

func validCreateInput() ports.CreateProductInput {
	return ports.CreateProductInput{
		FarmerID:  "farmer-1",
		Name:      "Hass Avocado",
		Category:  "fruits",
		Price:     15,
		Unit:      "piece",
		Quantity:  200,
		MinOrder:  10,
		County:    "Murang'a",
		SubCounty: "Kandara",
		IsFresh:   true,
		Tags:      []string{"avocado", "export-grade"},
	}
}

func TestCreatePersistsListing(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestService(repo)

	product, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, "prod-1", product.ID)
	assert.Equal(t, domain.CategoryFruits, product.Category)
	assert.Equal(t, "Murang'a", product.Location.County)
	assert.Equal(t, []string{"avocado", "export-grade"}, product.Tags)
	assert.True(t, product.IsAvailable)
	assert.Equal(t, fixedNow, product.CreatedAt)

	stored, err := repo.GetByID(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, "Hass Avocado", stored.Name)
}

func TestCreateRejectsInvalidListing(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestService(repo)

	input := validCreateInput()
	input.Price = 0

	_, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)
	assert.Empty(t, repo.products)
}

func TestGetByIDCountsView(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	first, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Views)

	second, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Views)
}

func TestGetByIDUnknownProduct(t *testing.T) {
	svc := newTestService(newFakeProductRepo())

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestReserveDecrementsAndPersists(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	reserved, err := svc.Reserve(context.Background(), created.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, int32(150), reserved.Quantity)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(150), stored.Quantity)
}

func TestReserveLeavesStockOnDomainError(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	_, err = svc.Reserve(context.Background(), created.ID, 500)
	assert.ErrorIs(t, err, domain.ErrInsufficientQty)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(200), stored.Quantity)
}

func TestReleaseRestoresAndPersists(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestService(repo)

	created, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	_, err = svc.Reserve(context.Background(), created.ID, 50)
	require.NoError(t, err)

	require.NoError(t, svc.Release(context.Background(), created.ID, 50))

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(200), stored.Quantity)
	assert.True(t, stored.IsAvailable)
}

func TestReleaseUnknownProduct(t *testing.T) {
	svc := newTestService(newFakeProductRepo())
	err := svc.Release(context.Background(), "ghost", 5)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSearchDelegatesToRepository(t *testing.T) {
	repo := newFakeProductRepo()
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), validCreateInput())
	require.NoError(t, err)

	other := validCreateInput()
	other.FarmerID = "farmer-2"
	other.Name = "Tomatoes"
	_, err = svc.Create(context.Background(), other)
	require.NoError(t, err)

	results, err := svc.Search(context.Background(), ports.SearchQuery{FarmerID: "farmer-2"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Tomatoes", results[0].Name)
}
