package ports

import (
	"context"
	"errors"

	"github.com/sokoyetu/soko-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository is the order store collaborator. Orders are never physically
// deleted; cancellation is a terminal status, not removal. List results are
// append-ordered by creation time.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Order, error)
}
