package ports

import (
	"context"
	"errors"
)

var (
	ErrProductUnavailable = errors.New("product is not available")
	ErrInsufficientStock  = errors.New("requested quantity exceeds available stock")
)

// CatalogItem is the snapshot of a product line captured at checkout.
type CatalogItem struct {
	ProductID string
	Name      string
	FarmerID  string
	UnitPrice float64
}

// Catalog reserves stock from the products context during checkout and
// returns the price snapshot used to build order lines. Release hands a
// reservation back when the checkout it belongs to is rejected afterwards.
type Catalog interface {
	Reserve(ctx context.Context, productID string, quantity int32) (*CatalogItem, error)
	Release(ctx context.Context, productID string, quantity int32) error
}
