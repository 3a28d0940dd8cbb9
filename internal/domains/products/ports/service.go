package ports

import (
	"context"
	"time"

	"github.com/sokoyetu/soko-api/internal/domains/products/domain"
)

// CreateProductInput carries everything a farmer submits for a new listing.
type CreateProductInput struct {
	FarmerID    string
	Name        string
	Description string
	Category    string
	Subcategory string
	Price       float64
	Unit        string
	Quantity    int32
	MinOrder    int32
	County      string
	SubCounty   string
	IsOrganic   bool
	IsFresh     bool
	Tags        []string
	HarvestDate *time.Time
	ExpiryDate  *time.Time
}

// Service exposes the catalog use cases to adapters.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Search(ctx context.Context, query SearchQuery) ([]*domain.Product, error)
	Reserve(ctx context.Context, productID string, quantity int32) (*domain.Product, error)
	Release(ctx context.Context, productID string, quantity int32) error
}
