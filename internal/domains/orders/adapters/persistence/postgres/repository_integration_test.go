//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/sokoyetu/soko-api/internal/domains/orders/domain"
	"github.com/sokoyetu/soko-api/internal/domains/orders/ports"
	"github.com/sokoyetu/soko-api/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("soko_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedOrder(t *testing.T, id string, created time.Time) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(
		id, "UK"+id, "cust-1", "farm-1",
		[]domain.OrderItem{{ProductID: "p1", ProductName: "Tomatoes", Quantity: 2, UnitPrice: 150}},
		domain.DeliveryDoorstep,
		domain.Address{County: "Nairobi", SubCounty: "Westlands", Street: "Demo Street"},
		"leave at gate", created,
	)
	require.NoError(t, err)
	return order
}

func TestRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, "ord-1", time.Now().UTC().Truncate(time.Millisecond))
	saved, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, order.ID, saved.ID)
	assert.Equal(t, order.TotalAmount, saved.TotalAmount)

	fetched, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, fetched.OrderNumber)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "Tomatoes", fetched.Items[0].ProductName)
	assert.Equal(t, domain.StatusPending, fetched.Status)
}

func TestRepository_UpdatePersistsTransition(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, "ord-2", time.Now().UTC().Truncate(time.Millisecond))
	_, err := repo.Save(ctx, order)
	require.NoError(t, err)

	require.NoError(t, order.TransitionStatus(domain.StatusConfirmed, domain.ActorFarmer, time.Now().UTC()))
	require.NoError(t, order.TransitionPayment(domain.PaymentPaid, "QWE123", time.Now().UTC()))

	saved, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, saved.Status)
	assert.Equal(t, domain.PaymentPaid, saved.PaymentStatus)
	assert.Equal(t, "QWE123", saved.MpesaCode)
}

func TestRepository_ListForUserAppendOrdered(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"ord-a", "ord-b", "ord-c"} {
		_, err := repo.Save(ctx, seedOrder(t, id, base.Add(time.Duration(i)*time.Second)))
		require.NoError(t, err)
	}

	list, err := repo.ListForUser(ctx, "farm-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "ord-a", list[0].ID)
	assert.Equal(t, "ord-c", list[2].ID)

	none, err := repo.ListForUser(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRepository_GetByIDNotFound(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
