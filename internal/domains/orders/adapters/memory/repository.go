package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/sokoyetu/soko-api/internal/domains/orders/domain"
	"github.com/sokoyetu/soko-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order store. Orders keep their creation order
// so listings iterate append-ordered, matching what the board projection
// expects.
type Repository struct {
	mu     sync.RWMutex
	orders []*domain.Order
	byID   map[string]int
}

func NewRepository() *Repository {
	return &Repository{byID: map[string]int{}}
}

func (r *Repository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := *order
	clone.Items = append([]domain.OrderItem{}, order.Items...)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if idx, ok := r.byID[clone.ID]; ok {
		r.orders[idx] = &clone
	} else {
		r.byID[clone.ID] = len(r.orders)
		r.orders = append(r.orders, &clone)
	}
	out := clone
	out.Items = append([]domain.OrderItem{}, clone.Items...)
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(r.orders[idx]), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, cloneOrder(order))
	}
	return list, nil
}

func (r *Repository) ListForUser(_ context.Context, userID string) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Order
	for _, order := range r.orders {
		if order.CustomerID == userID || order.FarmerID == userID {
			list = append(list, cloneOrder(order))
		}
	}
	return list, nil
}

func cloneOrder(order *domain.Order) *domain.Order {
	clone := *order
	clone.Items = append([]domain.OrderItem{}, order.Items...)
	return &clone
}
