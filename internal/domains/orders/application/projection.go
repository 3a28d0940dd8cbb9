package application

import (
	"github.com/sokoyetu/soko-api/internal/domains/orders/application/types"
	"github.com/sokoyetu/soko-api/internal/domains/orders/domain"
)

// activeStatuses are the in-flight fulfillment states shown under the
// "active" tab.
var activeStatuses = map[domain.Status]bool{
	domain.StatusConfirmed: true,
	domain.StatusPreparing: true,
	domain.StatusReady:     true,
	domain.StatusInTransit: true,
}

func bucketFor(status domain.Status) types.FilterKey {
	switch {
	case status == domain.StatusPending:
		return types.FilterPending
	case activeStatuses[status]:
		return types.FilterActive
	case status == domain.StatusDelivered:
		return types.FilterCompleted
	default:
		return types.FilterCancelled
	}
}

// ProjectBoard derives the filtered subset plus live per-bucket counts from
// the full order set. The input slice is not mutated and its iteration order
// (append-ordered by creation) is preserved.
func ProjectBoard(orders []*domain.Order, filter types.FilterKey) *types.Board {
	board := &types.Board{Filter: filter}
	if filter == "" {
		board.Filter = types.FilterAll
	}
	for _, order := range orders {
		bucket := bucketFor(order.Status)
		board.Counts.All++
		switch bucket {
		case types.FilterPending:
			board.Counts.Pending++
		case types.FilterActive:
			board.Counts.Active++
		case types.FilterCompleted:
			board.Counts.Completed++
		case types.FilterCancelled:
			board.Counts.Cancelled++
		}
		if board.Filter == types.FilterAll || board.Filter == bucket {
			board.Orders = append(board.Orders, order)
		}
	}
	return board
}
