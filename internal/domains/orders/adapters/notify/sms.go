package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/sokoyetu/soko-api/internal/domains/orders/domain"
	"github.com/sokoyetu/soko-api/internal/domains/orders/ports"
	userports "github.com/sokoyetu/soko-api/internal/domains/users/ports"
)

// Sender pushes one SMS to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// SMSNotifier alerts order participants over SMS. Phone numbers are
// resolved through the accounts repository at send time.
type SMSNotifier struct {
	sender Sender
	users  userports.Repository
}

// NewSMSNotifier wires the gateway client into a lifecycle notifier.
func NewSMSNotifier(sender Sender, users userports.Repository) *SMSNotifier {
	return &SMSNotifier{sender: sender, users: users}
}

// OrderStatusChanged alerts the buyer, or the farmer once the buyer has
// confirmed delivery.
func (n *SMSNotifier) OrderStatusChanged(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	recipientID := order.CustomerID
	if order.Status == domain.StatusDelivered {
		recipientID = order.FarmerID
	}
	message := fmt.Sprintf("Soko: order %s is now %s.", order.OrderNumber, statusLabel(order.Status))
	return n.send(ctx, recipientID, message)
}

// PaymentStatusChanged alerts the farmer about money movement on the order.
func (n *SMSNotifier) PaymentStatusChanged(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	message := fmt.Sprintf("Soko: payment for order %s is now %s (KSh %.2f).", order.OrderNumber, order.PaymentStatus, order.TotalAmount)
	if order.PaymentStatus == domain.PaymentPaid && order.MpesaCode != "" {
		message = fmt.Sprintf("Soko: order %s paid via M-Pesa %s (KSh %.2f).", order.OrderNumber, order.MpesaCode, order.TotalAmount)
	}
	return n.send(ctx, order.FarmerID, message)
}

func (n *SMSNotifier) send(ctx context.Context, userID, message string) error {
	if n == nil || n.sender == nil || n.users == nil {
		return errors.New("sms notifier not configured")
	}
	user, err := n.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("resolve alert recipient: %w", err)
	}
	if user.Phone == "" {
		// No number on file means nothing to deliver.
		return nil
	}
	return n.sender.Send(ctx, user.Phone, message)
}

func statusLabel(status domain.Status) string {
	switch status {
	case domain.StatusInTransit:
		return "on the way"
	case domain.StatusReady:
		return "ready for pickup"
	default:
		return string(status)
	}
}

var _ ports.Notifier = (*SMSNotifier)(nil)
