package memory

import (
	"context"
	"sync"

	"github.com/sokoyetu/soko-api/internal/domains/messaging/domain"
	"github.com/sokoyetu/soko-api/internal/domains/messaging/ports"
)

// Repository keeps direct messages in memory, append-ordered by send time.
type Repository struct {
	mu       sync.RWMutex
	messages []*domain.Message
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) Save(_ context.Context, message *domain.Message) (*domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *message
	r.messages = append(r.messages, &stored)
	copied := stored
	return &copied, nil
}

func (r *Repository) ListBetween(_ context.Context, userID, peerID string) ([]*domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var thread []*domain.Message
	for _, message := range r.messages {
		if (message.SenderID == userID && message.RecipientID == peerID) ||
			(message.SenderID == peerID && message.RecipientID == userID) {
			copied := *message
			thread = append(thread, &copied)
		}
	}
	return thread, nil
}

func (r *Repository) ListForUser(_ context.Context, userID string) ([]*domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*domain.Message
	for _, message := range r.messages {
		if message.Involves(userID) {
			copied := *message
			matches = append(matches, &copied)
		}
	}
	return matches, nil
}

func (r *Repository) MarkRead(_ context.Context, recipientID, peerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, message := range r.messages {
		if message.RecipientID == recipientID && message.SenderID == peerID {
			message.MarkRead()
		}
	}
	return nil
}

var _ ports.Repository = (*Repository)(nil)
