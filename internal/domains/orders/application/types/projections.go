package types

import "github.com/sokoyetu/soko-api/internal/domains/orders/domain"

// FilterKey selects one bucket of the order board.
type FilterKey string

const (
	FilterAll       FilterKey = "all"
	FilterPending   FilterKey = "pending"
	FilterActive    FilterKey = "active"
	FilterCompleted FilterKey = "completed"
	FilterCancelled FilterKey = "cancelled"
)

// BucketCounts are live totals per filter bucket, always computed from the
// full order set regardless of the active filter.
type BucketCounts struct {
	All       int
	Pending   int
	Active    int
	Completed int
	Cancelled int
}

// Board is the filtered order listing plus its tab counts.
type Board struct {
	Filter FilterKey
	Orders []*domain.Order
	Counts BucketCounts
}
