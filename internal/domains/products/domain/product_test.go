package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newTestProduct(t *testing.T, quantity int32) *Product {
	t.Helper()
	product, err := NewProduct("prod-1", "farmer-1", "Sukuma Wiki", CategoryVegetables, 40, "bunch", quantity, 2, testNow)
	require.NoError(t, err)
	return product
}

func TestNewProductDefaults(t *testing.T) {
	product, err := NewProduct("prod-1", "farmer-1", "Maize", CategoryGrains, 65, "", 100, 0, testNow)
	require.NoError(t, err)

	assert.Equal(t, "kg", product.Unit)
	assert.Equal(t, int32(1), product.MinOrder)
	assert.True(t, product.IsAvailable)
}

func TestNewProductZeroStockIsUnavailable(t *testing.T) {
	product, err := NewProduct("prod-1", "farmer-1", "Maize", CategoryGrains, 65, "kg", 0, 1, testNow)
	require.NoError(t, err)
	assert.False(t, product.IsAvailable)
}

func TestNewProductValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(p *Product)
		expected error
	}{
		{"empty name", func(p *Product) { p.Name = " " }, ErrEmptyName},
		{"missing farmer", func(p *Product) { p.FarmerID = "" }, ErrMissingFarmer},
		{"bad category", func(p *Product) { p.Category = "machinery" }, ErrInvalidCategory},
		{"zero price", func(p *Product) { p.Price = 0 }, ErrInvalidPrice},
		{"negative quantity", func(p *Product) { p.Quantity = -1 }, ErrNegativeQuantity},
		{"zero min order", func(p *Product) { p.MinOrder = 0 }, ErrInvalidMinOrder},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			product := newTestProduct(t, 10)
			tc.mutate(product)
			assert.ErrorIs(t, product.Validate(), tc.expected)
		})
	}
}

func TestReserveDecrementsStock(t *testing.T) {
	product := newTestProduct(t, 10)
	later := testNow.Add(time.Hour)

	require.NoError(t, product.Reserve(4, later))

	assert.Equal(t, int32(6), product.Quantity)
	assert.True(t, product.IsAvailable)
	assert.Equal(t, later, product.UpdatedAt)
}

func TestReserveExhaustsListing(t *testing.T) {
	product := newTestProduct(t, 5)

	require.NoError(t, product.Reserve(5, testNow))

	assert.Equal(t, int32(0), product.Quantity)
	assert.False(t, product.IsAvailable)

	assert.ErrorIs(t, product.Reserve(2, testNow), ErrUnavailable)
}

func TestReserveRejectsBelowMinOrder(t *testing.T) {
	product := newTestProduct(t, 10)
	assert.ErrorIs(t, product.Reserve(1, testNow), ErrBelowMinOrder)
	assert.Equal(t, int32(10), product.Quantity)
}

func TestReserveRejectsOverStock(t *testing.T) {
	product := newTestProduct(t, 3)
	assert.ErrorIs(t, product.Reserve(4, testNow), ErrInsufficientQty)
	assert.Equal(t, int32(3), product.Quantity)
}

func TestReleaseRestoresStock(t *testing.T) {
	product := newTestProduct(t, 10)
	later := testNow.Add(time.Hour)

	require.NoError(t, product.Reserve(4, testNow))
	product.Release(4, later)

	assert.Equal(t, int32(10), product.Quantity)
	assert.True(t, product.IsAvailable)
	assert.Equal(t, later, product.UpdatedAt)
}

func TestReleaseRevivesExhaustedListing(t *testing.T) {
	product := newTestProduct(t, 5)
	require.NoError(t, product.Reserve(5, testNow))
	require.False(t, product.IsAvailable)

	product.Release(5, testNow)

	assert.Equal(t, int32(5), product.Quantity)
	assert.True(t, product.IsAvailable)
}

func TestReleaseIgnoresNonPositiveQuantity(t *testing.T) {
	product := newTestProduct(t, 10)
	product.Release(0, testNow.Add(time.Hour))
	product.Release(-3, testNow.Add(time.Hour))
	assert.Equal(t, int32(10), product.Quantity)
	assert.Equal(t, testNow, product.UpdatedAt)
}

func TestRecordView(t *testing.T) {
	product := newTestProduct(t, 3)
	product.RecordView()
	product.RecordView()
	assert.Equal(t, int64(2), product.Views)
}
