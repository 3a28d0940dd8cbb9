package catalog

import (
	"context"
	"errors"
	"fmt"

	orderports "github.com/sokoyetu/soko-api/internal/domains/orders/ports"
	"github.com/sokoyetu/soko-api/internal/domains/products/domain"
	"github.com/sokoyetu/soko-api/internal/domains/products/ports"
)

var _ orderports.Catalog = (*Adapter)(nil)

// Adapter lets the order context reserve stock from the product catalog.
type Adapter struct {
	products ports.Service
}

func New(products ports.Service) *Adapter {
	return &Adapter{products: products}
}

// Reserve decrements stock for one checkout line and reports the listing
// snapshot the order should price against.
func (a *Adapter) Reserve(ctx context.Context, productID string, quantity int32) (*orderports.CatalogItem, error) {
	product, err := a.products.Reserve(ctx, productID, quantity)
	if err != nil {
		return nil, mapError(err)
	}
	return &orderports.CatalogItem{
		ProductID: product.ID,
		Name:      product.Name,
		FarmerID:  product.FarmerID,
		UnitPrice: product.Price,
	}, nil
}

// Release returns stock that was reserved for a checkout rejected later in
// the sequence.
func (a *Adapter) Release(ctx context.Context, productID string, quantity int32) error {
	if err := a.products.Release(ctx, productID, quantity); err != nil {
		return mapError(err)
	}
	return nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ports.ErrNotFound), errors.Is(err, domain.ErrUnavailable):
		return fmt.Errorf("%w: %w", orderports.ErrProductUnavailable, err)
	case errors.Is(err, domain.ErrInsufficientQty), errors.Is(err, domain.ErrBelowMinOrder):
		return fmt.Errorf("%w: %w", orderports.ErrInsufficientStock, err)
	default:
		return err
	}
}
