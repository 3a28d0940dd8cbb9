package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokoyetu/soko-api/internal/domains/orders/domain"
	"github.com/sokoyetu/soko-api/internal/domains/orders/ports"
)

func newOrder(t *testing.T, id, customerID string) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(
		id, "UK"+id, customerID, "farm-1",
		[]domain.OrderItem{{ProductID: "p1", ProductName: "Tomatoes", Quantity: 1, UnitPrice: 100}},
		domain.DeliveryPickup, domain.Address{County: "Nairobi"}, "", time.Now(),
	)
	require.NoError(t, err)
	return order
}

func TestRepository_SaveAndGet(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	saved, err := repo.Save(ctx, newOrder(t, "ord-1", "cust-1"))
	require.NoError(t, err)
	assert.Equal(t, "ord-1", saved.ID)

	fetched, err := repo.GetByID(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, saved.OrderNumber, fetched.OrderNumber)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ListPreservesInsertionOrder(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	for _, id := range []string{"ord-1", "ord-2", "ord-3"} {
		_, err := repo.Save(ctx, newOrder(t, id, "cust-1"))
		require.NoError(t, err)
	}
	// Updating an existing order must not move it to the tail.
	updated := newOrder(t, "ord-1", "cust-1")
	updated.Status = domain.StatusConfirmed
	_, err := repo.Save(ctx, updated)
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "ord-1", list[0].ID)
	assert.Equal(t, domain.StatusConfirmed, list[0].Status)
	assert.Equal(t, "ord-2", list[1].ID)
	assert.Equal(t, "ord-3", list[2].ID)
}

func TestRepository_ListForUserMatchesEitherParty(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	_, err := repo.Save(ctx, newOrder(t, "ord-1", "cust-1"))
	require.NoError(t, err)
	_, err = repo.Save(ctx, newOrder(t, "ord-2", "cust-2"))
	require.NoError(t, err)

	asCustomer, err := repo.ListForUser(ctx, "cust-1")
	require.NoError(t, err)
	assert.Len(t, asCustomer, 1)

	asFarmer, err := repo.ListForUser(ctx, "farm-1")
	require.NoError(t, err)
	assert.Len(t, asFarmer, 2)
}

func TestRepository_ClonesOnReadAndWrite(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	original := newOrder(t, "ord-1", "cust-1")
	_, err := repo.Save(ctx, original)
	require.NoError(t, err)

	original.Status = domain.StatusCancelled
	fetched, err := repo.GetByID(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, fetched.Status)

	fetched.Items[0].Quantity = 99
	again, err := repo.GetByID(ctx, "ord-1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), again.Items[0].Quantity)
}
