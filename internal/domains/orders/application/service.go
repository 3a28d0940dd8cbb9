package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sokoyetu/soko-api/internal/domains/orders/application/types"
	"github.com/sokoyetu/soko-api/internal/domains/orders/domain"
	"github.com/sokoyetu/soko-api/internal/domains/orders/ports"
)

// Service orchestrates the order lifecycle use cases. All mutations are
// validated against the transition tables before the repository is asked to
// persist; a store failure leaves no partial update behind.
type Service struct {
	repo     ports.Repository
	catalog  ports.Catalog
	notifier ports.Notifier
	now      func() time.Time
	newID    func() string
}

// Option customizes service construction.
type Option func(*Service)

// WithClock overrides the time source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides order id generation, used in tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// WithNotifier enables lifecycle alerts to the affected parties.
func WithNotifier(notifier ports.Notifier) Option {
	return func(s *Service) { s.notifier = notifier }
}

// NewService wires the orders service with its collaborators.
func NewService(repo ports.Repository, catalog ports.Catalog, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		catalog: catalog,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Checkout reserves stock for every requested line, snapshots catalog prices
// into an order, and persists it. All lines must belong to a single farmer.
func (s *Service) Checkout(ctx context.Context, input types.CheckoutInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrNoItems)
	}
	var (
		farmerID string
		items    []domain.OrderItem
		reserved []types.CheckoutItemInput
	)
	// A rejected checkout hands every reservation back so failed orders
	// never consume stock.
	releaseReserved := func() {
		for _, line := range reserved {
			_ = s.catalog.Release(ctx, line.ProductID, line.Quantity)
		}
	}
	for _, line := range input.Items {
		snapshot, err := s.catalog.Reserve(ctx, line.ProductID, line.Quantity)
		if err != nil {
			releaseReserved()
			return nil, err
		}
		reserved = append(reserved, line)
		if farmerID == "" {
			farmerID = snapshot.FarmerID
		} else if farmerID != snapshot.FarmerID {
			releaseReserved()
			return nil, fmt.Errorf("%w: order lines span multiple farmers", ErrInvalidInput)
		}
		items = append(items, domain.OrderItem{
			ProductID:   snapshot.ProductID,
			ProductName: snapshot.Name,
			Quantity:    line.Quantity,
			UnitPrice:   snapshot.UnitPrice,
		})
	}
	now := s.now()
	order, err := domain.NewOrder(
		s.newID(),
		fmt.Sprintf("UK%d", now.UnixMilli()),
		input.Actor.UserID,
		farmerID,
		items,
		domain.DeliveryMethod(input.DeliveryMethod),
		domain.Address{County: input.Address.County, SubCounty: input.Address.SubCounty, Street: input.Address.Street},
		input.Notes,
		now,
	)
	if err != nil {
		releaseReserved()
		return nil, mapError(err)
	}
	if input.DeliveryDate != nil {
		order.DeliveryDate = *input.DeliveryDate
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		releaseReserved()
		return nil, err
	}
	return saved, nil
}

// GetByID loads a single order the actor participates in.
func (s *Service) GetByID(ctx context.Context, input types.OrderIdentifier) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeParticipant(order, input.Actor); err != nil {
		return nil, err
	}
	return order, nil
}

// Board lists the actor's orders under the selected filter, with live
// per-bucket counts derived from the actor's full order set.
func (s *Service) Board(ctx context.Context, input types.BoardInput) (*types.Board, error) {
	orders, err := s.repo.ListForUser(ctx, input.Actor.UserID)
	if err != nil {
		return nil, err
	}
	return ProjectBoard(orders, input.Filter), nil
}

// TransitionStatus applies a fulfillment transition. The in-memory record is
// only considered mutated once the repository accepts the update.
func (s *Service) TransitionStatus(ctx context.Context, input types.TransitionStatusInput) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeParticipant(order, input.Actor); err != nil {
		return nil, err
	}
	if err := order.TransitionStatus(input.Target, input.Actor.Role, s.now()); err != nil {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		// Alerts are best effort; the transition already happened.
		_ = s.notifier.OrderStatusChanged(ctx, saved)
	}
	return saved, nil
}

// TransitionPayment applies a payment transition, retaining the supplied
// evidence on the record.
func (s *Service) TransitionPayment(ctx context.Context, input types.TransitionPaymentInput) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeParticipant(order, input.Actor); err != nil {
		return nil, err
	}
	if err := order.TransitionPayment(input.Target, input.MpesaCode, s.now()); err != nil {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		_ = s.notifier.PaymentStatusChanged(ctx, saved)
	}
	return saved, nil
}

func (s *Service) authorizeParticipant(order *domain.Order, actor types.Actor) error {
	switch actor.Role {
	case domain.ActorFarmer:
		if order.FarmerID == actor.UserID {
			return nil
		}
	case domain.ActorCustomer:
		if order.CustomerID == actor.UserID {
			return nil
		}
	}
	return ErrNotParticipant
}

var _ ports.Service = (*Service)(nil)
