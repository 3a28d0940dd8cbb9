package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/sokoyetu/soko-api/internal/domains/products/domain"
	"github.com/sokoyetu/soko-api/internal/domains/products/ports"
)

// Repository keeps catalog listings in memory, newest first.
type Repository struct {
	mu       sync.RWMutex
	products []*domain.Product
	byID     map[string]int
}

func NewRepository() *Repository {
	return &Repository{byID: make(map[string]int)}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := clone(product)
	if idx, ok := r.byID[stored.ID]; ok {
		r.products[idx] = stored
	} else {
		r.byID[stored.ID] = len(r.products)
		r.products = append(r.products, stored)
	}
	return clone(stored), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return clone(r.products[idx]), nil
}

func (r *Repository) Search(_ context.Context, query ports.SearchQuery) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		if matchesQuery(product, query) {
			matches = append(matches, clone(product))
		}
	}
	return matches, nil
}

func matchesQuery(product *domain.Product, query ports.SearchQuery) bool {
	if query.Category != "" && product.Category != query.Category {
		return false
	}
	if query.County != "" && !strings.EqualFold(product.Location.County, query.County) {
		return false
	}
	if query.FarmerID != "" && product.FarmerID != query.FarmerID {
		return false
	}
	if query.OnlyAvailable && !product.IsAvailable {
		return false
	}
	if query.Text != "" {
		needle := strings.ToLower(query.Text)
		if !strings.Contains(strings.ToLower(product.Name), needle) &&
			!strings.Contains(strings.ToLower(product.Description), needle) {
			return false
		}
	}
	return true
}

func clone(product *domain.Product) *domain.Product {
	copied := *product
	copied.Tags = append([]string{}, product.Tags...)
	return &copied
}

var _ ports.Repository = (*Repository)(nil)
