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

	"github.com/sokoyetu/soko-api/internal/domains/users/domain"
	"github.com/sokoyetu/soko-api/internal/domains/users/ports"
	"github.com/sokoyetu/soko-api/internal/platform/migrations"
)

func setupUsersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
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

func seedUser(t *testing.T, id, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(id, "Wanjiku Kamau", email, "+254712345678", domain.RoleFarmer, "hunter22", time.Now().UTC())
	require.NoError(t, err)
	user.County = "Kiambu"
	return user
}

func TestRepository_SaveAndGetByEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	user := seedUser(t, "user-1", "wanjiku@example.com")
	saved, err := repo.Save(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user.ID, saved.ID)

	fetched, err := repo.GetByEmail(ctx, "wanjiku@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", fetched.ID)
	assert.Equal(t, domain.RoleFarmer, fetched.Role)
	assert.True(t, fetched.CheckPassword("hunter22"))
}

func TestRepository_UpdateProfilePersisted(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	user := seedUser(t, "user-2", "kamau@example.com")
	_, err := repo.Save(ctx, user)
	require.NoError(t, err)

	require.NoError(t, user.UpdateProfile("", "+254700000000", "Nakuru", "", time.Now().UTC()))
	saved, err := repo.Save(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "+254700000000", saved.Phone)
	assert.Equal(t, "Nakuru", saved.County)
}

func TestSessionStore_SaveGetDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	store := NewSessionStore(db)
	ctx := context.Background()

	session := ports.Session{Token: "tok-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour).UTC()}
	require.NoError(t, store.Save(ctx, session))

	fetched, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", fetched.UserID)

	require.NoError(t, store.Delete(ctx, "tok-1"))
	_, err = store.Get(ctx, "tok-1")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_PurgeExpired(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupUsersPostgresContainer(t)
	defer cleanup()

	store := NewSessionStore(db)
	ctx := context.Background()

	expired := ports.Session{Token: "tok-old", UserID: "user-1", ExpiresAt: time.Now().Add(-time.Hour).UTC()}
	live := ports.Session{Token: "tok-new", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour).UTC()}
	require.NoError(t, store.Save(ctx, expired))
	require.NoError(t, store.Save(ctx, live))

	require.NoError(t, store.PurgeExpired(ctx))

	_, err := store.Get(ctx, "tok-old")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
	_, err = store.Get(ctx, "tok-new")
	require.NoError(t, err)
}
