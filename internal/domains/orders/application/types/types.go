package types

import (
	"time"

	"github.com/sokoyetu/soko-api/internal/domains/orders/domain"
)

// Actor identifies the user performing an operation, as supplied by the
// session collaborator. The orders context trusts this value as given.
type Actor struct {
	UserID string
	Role   domain.ActorRole
}

// CheckoutItemInput is one requested product line.
type CheckoutItemInput struct {
	ProductID string
	Quantity  int32
}

// AddressInput carries the delivery destination.
type AddressInput struct {
	County    string
	SubCounty string
	Street    string
}

// CheckoutInput captures everything needed to create an order.
type CheckoutInput struct {
	Actor          Actor
	Items          []CheckoutItemInput
	DeliveryMethod string
	Address        AddressInput
	DeliveryDate   *time.Time
	Notes          string
	IdempotencyKey string
}

// OrderIdentifier addresses a single order on behalf of an actor.
type OrderIdentifier struct {
	ID    string
	Actor Actor
}

// TransitionStatusInput requests a fulfillment transition.
type TransitionStatusInput struct {
	OrderID string
	Actor   Actor
	Target  domain.Status
}

// TransitionPaymentInput requests a payment transition with optional evidence.
type TransitionPaymentInput struct {
	OrderID   string
	Actor     Actor
	Target    domain.PaymentStatus
	MpesaCode string
}

// BoardInput selects the actor's order board view.
type BoardInput struct {
	Actor  Actor
	Filter FilterKey
}
