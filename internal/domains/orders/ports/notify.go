package ports

import (
	"context"

	"github.com/sokoyetu/soko-api/internal/domains/orders/domain"
)

// Notifier pushes order lifecycle alerts to the affected parties. Delivery
// is best effort: a failed alert never rolls back the transition it reports.
type Notifier interface {
	OrderStatusChanged(ctx context.Context, order *domain.Order) error
	PaymentStatusChanged(ctx context.Context, order *domain.Order) error
}
