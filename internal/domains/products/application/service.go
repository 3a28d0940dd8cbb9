package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sokoyetu/soko-api/internal/domains/products/domain"
	"github.com/sokoyetu/soko-api/internal/domains/products/ports"
)

// ErrInvalidInput signals the request violated a catalog invariant.
var ErrInvalidInput = errors.New("invalid product input")

// Service orchestrates the catalog use cases.
type Service struct {
	repo  ports.Repository
	now   func() time.Time
	newID func() string
}

type Option func(*Service)

// WithClock overrides the time source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides product id generation, used in tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService wires the catalog service with its repository.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Create publishes a new listing for a farmer.
func (s *Service) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(
		s.newID(),
		input.FarmerID,
		input.Name,
		domain.Category(input.Category),
		input.Price,
		input.Unit,
		input.Quantity,
		input.MinOrder,
		s.now(),
	)
	if err != nil {
		return nil, mapError(err)
	}
	product.Description = input.Description
	product.Subcategory = input.Subcategory
	product.Location = domain.Location{County: input.County, SubCounty: input.SubCounty}
	product.IsOrganic = input.IsOrganic
	product.IsFresh = input.IsFresh
	product.Tags = append([]string{}, input.Tags...)
	product.HarvestDate = input.HarvestDate
	product.ExpiryDate = input.ExpiryDate
	return s.repo.Save(ctx, product)
}

// GetByID loads a listing and counts the detail view.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.RecordView()
	// View counting is best effort; the listing itself is what matters.
	if saved, err := s.repo.Save(ctx, product); err == nil {
		return saved, nil
	}
	return product, nil
}

// Search lists the catalog under the given filters.
func (s *Service) Search(ctx context.Context, query ports.SearchQuery) ([]*domain.Product, error) {
	return s.repo.Search(ctx, query)
}

// Reserve removes stock for a checkout line and persists the new level.
func (s *Service) Reserve(ctx context.Context, productID string, quantity int32) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := product.Reserve(quantity, s.now()); err != nil {
		return nil, err
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Release returns previously reserved stock to a listing and persists the
// restored level.
func (s *Service) Release(ctx context.Context, productID string, quantity int32) error {
	product, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	product.Release(quantity, s.now())
	_, err = s.repo.Save(ctx, product)
	return err
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrMissingFarmer) ||
		errors.Is(err, domain.ErrInvalidCategory) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrNegativeQuantity) ||
		errors.Is(err, domain.ErrInvalidMinOrder) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
