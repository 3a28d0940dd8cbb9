package ports

import (
	"context"
	"errors"

	"github.com/sokoyetu/soko-api/internal/domains/messaging/domain"
)

var ErrNotFound = errors.New("message not found")

// Repository persists direct messages, append-ordered by send time.
type Repository interface {
	Save(ctx context.Context, message *domain.Message) (*domain.Message, error)
	ListBetween(ctx context.Context, userID, peerID string) ([]*domain.Message, error)
	ListForUser(ctx context.Context, userID string) ([]*domain.Message, error)
	MarkRead(ctx context.Context, recipientID, peerID string) error
}
