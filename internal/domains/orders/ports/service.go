package ports

import (
	"context"

	"github.com/sokoyetu/soko-api/internal/domains/orders/application/types"
	"github.com/sokoyetu/soko-api/internal/domains/orders/domain"
)

// Service exposes the order lifecycle use cases to adapters.
type Service interface {
	Checkout(ctx context.Context, input types.CheckoutInput) (*domain.Order, error)
	GetByID(ctx context.Context, input types.OrderIdentifier) (*domain.Order, error)
	Board(ctx context.Context, input types.BoardInput) (*types.Board, error)
	TransitionStatus(ctx context.Context, input types.TransitionStatusInput) (*domain.Order, error)
	TransitionPayment(ctx context.Context, input types.TransitionPaymentInput) (*domain.Order, error)
}
