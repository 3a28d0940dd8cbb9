package domain

import (
	"errors"
	"strings"
	"time"
)

// Category groups produce the way the marketplace browses it.
type Category string

const (
	CategoryVegetables Category = "vegetables"
	CategoryFruits     Category = "fruits"
	CategoryGrains     Category = "grains"
	CategoryDairy      Category = "dairy"
	CategoryPoultry    Category = "poultry"
	CategoryLivestock  Category = "livestock"
	CategoryOther      Category = "other"
)

var (
	ErrEmptyID          = errors.New("product id is required")
	ErrEmptyName        = errors.New("product name is required")
	ErrMissingFarmer    = errors.New("farmer reference is required")
	ErrInvalidCategory  = errors.New("product category is invalid")
	ErrInvalidPrice     = errors.New("price must be greater than zero")
	ErrNegativeQuantity = errors.New("quantity must not be negative")
	ErrInvalidMinOrder  = errors.New("minimum order must be at least one")
	ErrUnavailable      = errors.New("product is not available")
	ErrBelowMinOrder    = errors.New("requested quantity is below the minimum order")
	ErrInsufficientQty  = errors.New("requested quantity exceeds available stock")
)

// Location places a listing within a county.
type Location struct {
	County    string
	SubCounty string
}

// Product is one farmer's catalog listing.
type Product struct {
	ID           string
	Name         string
	Description  string
	Category     Category
	Subcategory  string
	Price        float64
	Unit         string
	Quantity     int32
	MinOrder     int32
	Location     Location
	FarmerID     string
	IsOrganic    bool
	IsFresh      bool
	Tags         []string
	Rating       float64
	TotalReviews int32
	IsAvailable  bool
	Views        int64
	HarvestDate  *time.Time
	ExpiryDate   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewProduct validates and constructs an available listing.
func NewProduct(id, farmerID, name string, category Category, price float64, unit string, quantity, minOrder int32, now time.Time) (*Product, error) {
	product := &Product{
		ID:          strings.TrimSpace(id),
		FarmerID:    strings.TrimSpace(farmerID),
		Name:        strings.TrimSpace(name),
		Category:    category,
		Price:       price,
		Unit:        strings.TrimSpace(unit),
		Quantity:    quantity,
		MinOrder:    minOrder,
		IsAvailable: quantity > 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if product.Unit == "" {
		product.Unit = "kg"
	}
	if product.MinOrder == 0 {
		product.MinOrder = 1
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the listing.
func (p *Product) Validate() error {
	if p.ID == "" {
		return ErrEmptyID
	}
	if p.FarmerID == "" {
		return ErrMissingFarmer
	}
	if p.Name == "" {
		return ErrEmptyName
	}
	if !isValidCategory(p.Category) {
		return ErrInvalidCategory
	}
	if p.Price <= 0 {
		return ErrInvalidPrice
	}
	if p.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if p.MinOrder < 1 {
		return ErrInvalidMinOrder
	}
	return nil
}

// Reserve removes quantity from stock for a checkout line. The listing
// becomes unavailable when stock reaches zero.
func (p *Product) Reserve(quantity int32, now time.Time) error {
	if !p.IsAvailable {
		return ErrUnavailable
	}
	if quantity < p.MinOrder {
		return ErrBelowMinOrder
	}
	if quantity > p.Quantity {
		return ErrInsufficientQty
	}
	p.Quantity -= quantity
	if p.Quantity == 0 {
		p.IsAvailable = false
	}
	p.UpdatedAt = now
	return nil
}

// Release returns quantity reserved by a checkout that did not complete.
// Restored stock makes a sold-out listing available again.
func (p *Product) Release(quantity int32, now time.Time) {
	if quantity <= 0 {
		return
	}
	p.Quantity += quantity
	p.IsAvailable = true
	p.UpdatedAt = now
}

// RecordView counts one catalog detail view.
func (p *Product) RecordView() {
	p.Views++
}

func isValidCategory(category Category) bool {
	switch category {
	case CategoryVegetables, CategoryFruits, CategoryGrains, CategoryDairy, CategoryPoultry, CategoryLivestock, CategoryOther:
		return true
	default:
		return false
	}
}
