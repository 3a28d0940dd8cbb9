package ports

import (
	"context"
	"errors"

	"github.com/sokoyetu/soko-api/internal/domains/products/domain"
)

var ErrNotFound = errors.New("product not found")

// SearchQuery narrows a catalog listing. Zero values match everything.
type SearchQuery struct {
	Category      domain.Category
	County        string
	FarmerID      string
	Text          string
	OnlyAvailable bool
}

// Repository persists catalog listings.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Search(ctx context.Context, query SearchQuery) ([]*domain.Product, error)
}
