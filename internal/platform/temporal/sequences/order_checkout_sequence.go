package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/sokoyetu/soko-api/internal/domains/orders/application/types"
	"github.com/sokoyetu/soko-api/internal/domains/orders/domain"
	orderactivities "github.com/sokoyetu/soko-api/internal/platform/temporal/activities/orders"
)

// RunOrderCheckoutSequence executes the activities needed to place an order.
// Validation rejections are not retryable; only store-class failures are.
func RunOrderCheckoutSequence(ctx workflow.Context, input ordertypes.CheckoutInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order checkout sequence started", "customerId", input.Actor.UserID)
	createOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				orderactivities.CheckoutRejectedErrorType,
			},
		},
	}

	var order domain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, createOptions), orderactivities.CreateOrderActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("order checkout sequence failed", "customerId", input.Actor.UserID, "error", err)
		return nil, err
	}
	logger.Info("order checkout sequence persisted", "orderId", order.ID, "orderNumber", order.OrderNumber)
	return &order, nil
}
