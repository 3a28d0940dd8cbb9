package domain

import (
	"errors"
	"strings"
	"time"
)

// Status enumerates the fulfillment lifecycle of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// PaymentStatus tracks financial settlement independently of fulfillment.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// DeliveryMethod is fixed at checkout.
type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "pickup"
	DeliveryDoorstep DeliveryMethod = "delivery"
)

var (
	ErrEmptyID               = errors.New("order id is required")
	ErrEmptyOrderNumber      = errors.New("order number is required")
	ErrMissingCustomer       = errors.New("customer reference is required")
	ErrMissingFarmer         = errors.New("farmer reference is required")
	ErrNoItems               = errors.New("order must contain at least one item")
	ErrInvalidQuantity       = errors.New("item quantity must be greater than zero")
	ErrNegativePrice         = errors.New("item unit price must not be negative")
	ErrInvalidStatus         = errors.New("order status is invalid")
	ErrInvalidPaymentStatus  = errors.New("payment status is invalid")
	ErrInvalidDeliveryMethod = errors.New("delivery method must be pickup or delivery")
)

// OrderItem is a snapshot of one product line at checkout time. The unit
// price is captured from the catalog when the order is created and never
// recomputed afterward.
type OrderItem struct {
	ProductID   string
	ProductName string
	Quantity    int32
	UnitPrice   float64
}

// Address locates a delivery destination.
type Address struct {
	County    string
	SubCounty string
	Street    string
}

// Order models one transaction between a customer (wholesaler or retailer)
// and a farmer. Items and TotalAmount are immutable after creation; the two
// status axes change only through validated transitions.
type Order struct {
	ID              string
	OrderNumber     string
	CustomerID      string
	FarmerID        string
	Items           []OrderItem
	TotalAmount     float64
	Status          Status
	PaymentStatus   PaymentStatus
	MpesaCode       string
	DeliveryMethod  DeliveryMethod
	ShippingAddress Address
	DeliveryDate    time.Time
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewOrder validates the line items and constructs a pending order. The
// total amount is the sum of quantity times unit price over the items.
func NewOrder(id, orderNumber, customerID, farmerID string, items []OrderItem, method DeliveryMethod, address Address, notes string, now time.Time) (*Order, error) {
	order := &Order{
		ID:              strings.TrimSpace(id),
		OrderNumber:     strings.TrimSpace(orderNumber),
		CustomerID:      strings.TrimSpace(customerID),
		FarmerID:        strings.TrimSpace(farmerID),
		Items:           append([]OrderItem{}, items...),
		Status:          StatusPending,
		PaymentStatus:   PaymentPending,
		DeliveryMethod:  method,
		ShippingAddress: address,
		Notes:           strings.TrimSpace(notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	for _, item := range order.Items {
		order.TotalAmount += float64(item.Quantity) * item.UnitPrice
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.ID == "" {
		return ErrEmptyID
	}
	if o.OrderNumber == "" {
		return ErrEmptyOrderNumber
	}
	if o.CustomerID == "" {
		return ErrMissingCustomer
	}
	if o.FarmerID == "" {
		return ErrMissingFarmer
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if item.UnitPrice < 0 {
			return ErrNegativePrice
		}
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	if !isValidPaymentStatus(o.PaymentStatus) {
		return ErrInvalidPaymentStatus
	}
	if o.DeliveryMethod != DeliveryPickup && o.DeliveryMethod != DeliveryDoorstep {
		return ErrInvalidDeliveryMethod
	}
	return nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

func isValidPaymentStatus(status PaymentStatus) bool {
	switch status {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	default:
		return false
	}
}
