package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	userspostgres "github.com/sokoyetu/soko-api/internal/domains/users/adapters/persistence/postgres"
	platformpostgres "github.com/sokoyetu/soko-api/internal/platform/postgres"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge sessions")
	}
	store := userspostgres.NewSessionStore(db)

	interval := purgeIntervalFromEnv()
	if interval <= 0 {
		if err := purgeOnce(ctx, store); err != nil {
			log.Fatalf("failed to purge sessions: %v", err)
		}
		logger.Info("session purge completed")
		return
	}

	logger.Info("session purger running", slog.Duration("interval", interval))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := purgeOnce(ctx, store); err != nil {
			logger.Error("session purge failed", slog.String("error", err.Error()))
		}
		<-ticker.C
	}
}

func purgeOnce(ctx context.Context, store *userspostgres.SessionStore) error {
	purgeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return store.PurgeExpired(purgeCtx)
}

func purgeIntervalFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("SESSION_PURGE_INTERVAL_MINUTES"))
	if raw == "" {
		return 0
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}
