package ports

import (
	"context"

	"github.com/sokoyetu/soko-api/internal/domains/orders/application/types"
	"github.com/sokoyetu/soko-api/internal/domains/orders/domain"
)

// CheckoutOrchestrator runs the checkout sequence, durably when a workflow
// engine is available and inline otherwise.
type CheckoutOrchestrator interface {
	Checkout(ctx context.Context, input types.CheckoutInput) (*domain.Order, error)
}
