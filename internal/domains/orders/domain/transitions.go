package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ActorRole is the permission class of the user requesting a transition.
// Wholesalers and retailers both act as customers on their orders.
type ActorRole string

const (
	ActorCustomer ActorRole = "customer"
	ActorFarmer   ActorRole = "farmer"
)

var (
	// ErrIllegalTransition signals the requested edge is not in the
	// transition table, including any transition out of a terminal state.
	ErrIllegalTransition = errors.New("transition not available in the order's current state")
	// ErrUnauthorizedActor signals the edge exists but the actor's role may not trigger it.
	ErrUnauthorizedActor = errors.New("actor role is not permitted to perform this transition")
	// ErrMissingEvidence signals a payment confirmation without a transaction reference.
	ErrMissingEvidence = errors.New("a transaction reference is required to confirm payment")
)

type statusEdge struct {
	from Status
	to   Status
}

// statusTransitions is the authoritative fulfillment table. It is consulted
// before any mutation, never only when rendering an action.
var statusTransitions = map[statusEdge][]ActorRole{
	{StatusPending, StatusConfirmed}:   {ActorFarmer},
	{StatusPending, StatusCancelled}:   {ActorFarmer, ActorCustomer},
	{StatusConfirmed, StatusPreparing}: {ActorFarmer},
	{StatusPreparing, StatusReady}:     {ActorFarmer},
	{StatusReady, StatusInTransit}:     {ActorFarmer},
	{StatusInTransit, StatusDelivered}: {ActorCustomer},
}

type paymentEdge struct {
	from PaymentStatus
	to   PaymentStatus
}

type paymentRule struct {
	requiresEvidence bool
}

var paymentTransitions = map[paymentEdge]paymentRule{
	{PaymentPending, PaymentPaid}:   {requiresEvidence: true},
	{PaymentPending, PaymentFailed}: {},
	{PaymentPaid, PaymentRefunded}:  {},
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(status Status) bool {
	return status == StatusDelivered || status == StatusCancelled
}

// CanTransition decides whether the requested status change is legal for
// the actor. Illegal edges and unauthorized actors are reported distinctly.
func CanTransition(from, to Status, actor ActorRole) error {
	roles, ok := statusTransitions[statusEdge{from: from, to: to}]
	if !ok {
		return fmt.Errorf("%w: %s cannot move to %s", ErrIllegalTransition, from, to)
	}
	for _, role := range roles {
		if role == actor {
			return nil
		}
	}
	return fmt.Errorf("%w: role %s cannot move order from %s to %s", ErrUnauthorizedActor, actor, from, to)
}

// CanTransitionPayment decides whether the requested payment change is legal
// given the supplied evidence.
func CanTransitionPayment(from, to PaymentStatus, evidence string) error {
	rule, ok := paymentTransitions[paymentEdge{from: from, to: to}]
	if !ok {
		return fmt.Errorf("%w: payment %s cannot move to %s", ErrIllegalTransition, from, to)
	}
	if rule.requiresEvidence && strings.TrimSpace(evidence) == "" {
		return ErrMissingEvidence
	}
	return nil
}

// TransitionStatus applies a validated fulfillment transition in place.
func (o *Order) TransitionStatus(to Status, actor ActorRole, now time.Time) error {
	if err := CanTransition(o.Status, to, actor); err != nil {
		return err
	}
	o.Status = to
	o.UpdatedAt = now
	return nil
}

// TransitionPayment applies a validated payment transition in place,
// retaining any supplied evidence on the record.
func (o *Order) TransitionPayment(to PaymentStatus, evidence string, now time.Time) error {
	if err := CanTransitionPayment(o.PaymentStatus, to, evidence); err != nil {
		return err
	}
	o.PaymentStatus = to
	if trimmed := strings.TrimSpace(evidence); trimmed != "" {
		o.MpesaCode = trimmed
	}
	o.UpdatedAt = now
	return nil
}
