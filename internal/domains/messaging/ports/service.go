package ports

import (
	"context"

	"github.com/sokoyetu/soko-api/internal/domains/messaging/domain"
)

// SendInput carries one outgoing direct message.
type SendInput struct {
	SenderID    string
	RecipientID string
	OrderID     string
	Body        string
}

// Conversation summarizes the thread with one peer.
type Conversation struct {
	PeerID      string
	LastMessage *domain.Message
	UnreadCount int
}

// Service exposes the messaging use cases to adapters.
type Service interface {
	Send(ctx context.Context, input SendInput) (*domain.Message, error)
	ListBetween(ctx context.Context, userID, peerID string) ([]*domain.Message, error)
	Conversations(ctx context.Context, userID string) ([]Conversation, error)
	MarkRead(ctx context.Context, recipientID, peerID string) error
}
