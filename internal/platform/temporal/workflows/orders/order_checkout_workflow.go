package orders

import (
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/sokoyetu/soko-api/internal/domains/orders/application/types"
	"github.com/sokoyetu/soko-api/internal/domains/orders/domain"
	"github.com/sokoyetu/soko-api/internal/platform/temporal/sequences"
)

const (
	// OrderCheckoutWorkflowName is the public identifier for registering the workflow.
	OrderCheckoutWorkflowName = "orders.workflows.Checkout"
	// OrderCheckoutTaskQueue is the queue consumed by the worker processing checkouts.
	OrderCheckoutTaskQueue = "ORDER_CHECKOUT"
)

// OrderCheckoutWorkflowInput captures the payload required to place an order.
type OrderCheckoutWorkflowInput struct {
	Command ordertypes.CheckoutInput
	TraceID string
}

// OrderCheckoutWorkflow orchestrates the activities needed to place an order.
func OrderCheckoutWorkflow(ctx workflow.Context, input OrderCheckoutWorkflowInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	customerID := input.Command.Actor.UserID
	logger.Info("OrderCheckoutWorkflow started", withTraceID(input.TraceID, "customerId", customerID)...)
	order, err := sequences.RunOrderCheckoutSequence(ctx, input.Command)
	if err != nil {
		logger.Error("OrderCheckoutWorkflow failed", withTraceID(input.TraceID, "customerId", customerID, "error", err)...)
		return nil, err
	}
	if order != nil {
		logger.Info("OrderCheckoutWorkflow completed", withTraceID(input.TraceID, "orderId", order.ID)...)
	} else {
		logger.Info("OrderCheckoutWorkflow completed", withTraceID(input.TraceID)...)
	}
	return order, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
