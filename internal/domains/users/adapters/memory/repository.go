package memory

import (
	"context"
	"sync"

	"github.com/sokoyetu/soko-api/internal/domains/users/domain"
	"github.com/sokoyetu/soko-api/internal/domains/users/ports"
)

// Repository keeps accounts in memory.
type Repository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
}

func NewRepository() *Repository {
	return &Repository{byID: make(map[string]*domain.User), byEmail: make(map[string]string)}
}

func (r *Repository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byID[user.ID]; ok && existing.Email != user.Email {
		delete(r.byEmail, existing.Email)
	}
	stored := *user
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID

	copied := stored
	return &copied, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *Repository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copied := *r.byID[id]
	return &copied, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return ports.ErrNotFound
	}
	delete(r.byEmail, user.Email)
	delete(r.byID, id)
	return nil
}

var _ ports.Repository = (*Repository)(nil)
