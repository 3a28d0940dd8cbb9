package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/sokoyetu/soko-api/internal/domains/messaging/domain"
	"github.com/sokoyetu/soko-api/internal/domains/messaging/ports"
)

// ErrInvalidInput signals the request violated a messaging invariant.
var ErrInvalidInput = errors.New("invalid message input")

// Service orchestrates direct messaging between accounts.
type Service struct {
	repo  ports.Repository
	now   func() time.Time
	newID func() string
}

type Option func(*Service)

// WithClock overrides the time source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides message id generation, used in tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService wires the messaging service with its repository.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Send validates and persists one direct message.
func (s *Service) Send(ctx context.Context, input ports.SendInput) (*domain.Message, error) {
	message, err := domain.NewMessage(s.newID(), input.SenderID, input.RecipientID, input.OrderID, input.Body, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, message)
}

// ListBetween returns the thread between two accounts, oldest first.
func (s *Service) ListBetween(ctx context.Context, userID, peerID string) ([]*domain.Message, error) {
	return s.repo.ListBetween(ctx, userID, peerID)
}

// Conversations folds the account's messages into one summary per peer,
// ordered by most recent activity.
func (s *Service) Conversations(ctx context.Context, userID string) ([]ports.Conversation, error) {
	messages, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byPeer := make(map[string]*ports.Conversation)
	var order []string
	for _, message := range messages {
		peerID := message.SenderID
		if peerID == userID {
			peerID = message.RecipientID
		}
		conv, ok := byPeer[peerID]
		if !ok {
			conv = &ports.Conversation{PeerID: peerID}
			byPeer[peerID] = conv
			order = append(order, peerID)
		}
		conv.LastMessage = message
		if message.RecipientID == userID && !message.Read {
			conv.UnreadCount++
		}
	}
	conversations := make([]ports.Conversation, 0, len(byPeer))
	for _, peerID := range order {
		conversations = append(conversations, *byPeer[peerID])
	}
	// Most recent thread first.
	sort.SliceStable(conversations, func(i, j int) bool {
		return conversations[i].LastMessage.CreatedAt.After(conversations[j].LastMessage.CreatedAt)
	})
	return conversations, nil
}

// MarkRead flags every message from the peer to the recipient as seen.
func (s *Service) MarkRead(ctx context.Context, recipientID, peerID string) error {
	return s.repo.MarkRead(ctx, recipientID, peerID)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingSender) ||
		errors.Is(err, domain.ErrMissingRecipient) ||
		errors.Is(err, domain.ErrSelfMessage) ||
		errors.Is(err, domain.ErrEmptyBody) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

var _ ports.Service = (*Service)(nil)
