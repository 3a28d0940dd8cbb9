package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/sokoyetu/soko-api/internal/domains/orders/application"
	ordertypes "github.com/sokoyetu/soko-api/internal/domains/orders/application/types"
	"github.com/sokoyetu/soko-api/internal/domains/orders/domain"
	orderports "github.com/sokoyetu/soko-api/internal/domains/orders/ports"
)

// CreateOrderActivityName reserves stock and persists the checkout order.
const CreateOrderActivityName = "orders.activities.CreateOrder"

// CheckoutRejectedErrorType is the application failure type carried by
// checkout rejections. Rejections are deterministic, so retrying them only
// repeats the same refusal.
const CheckoutRejectedErrorType = "orders.CheckoutRejected"

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service orderports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
func NewActivities(service orderports.Service) *Activities {
	return &Activities{service: service}
}

// CreateOrder runs the checkout use case: every line is reserved against the
// catalog and the resulting order persisted. Validation-class refusals come
// back as non-retryable application failures; only store-class errors stay
// retryable.
func (a *Activities) CreateOrder(ctx context.Context, input ordertypes.CheckoutInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order create activity not initialized", "customerId", input.Actor.UserID)
		return nil, errors.New("order create activity not initialized")
	}
	logger.Info("CreateOrder activity started", "customerId", input.Actor.UserID, "lines", len(input.Items))
	order, err := a.service.Checkout(ctx, input)
	if err != nil {
		logger.Error("CreateOrder activity failed", "customerId", input.Actor.UserID, "error", err)
		if isCheckoutRejection(err) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), CheckoutRejectedErrorType, err)
		}
		return nil, err
	}
	logger.Info("CreateOrder activity completed", "orderId", order.ID, "orderNumber", order.OrderNumber)
	return order, nil
}

func isCheckoutRejection(err error) bool {
	return errors.Is(err, ordersapp.ErrInvalidInput) ||
		errors.Is(err, orderports.ErrProductUnavailable) ||
		errors.Is(err, orderports.ErrInsufficientStock)
}
