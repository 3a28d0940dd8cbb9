package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyID          = errors.New("message id is required")
	ErrMissingSender    = errors.New("sender reference is required")
	ErrMissingRecipient = errors.New("recipient reference is required")
	ErrSelfMessage      = errors.New("sender and recipient must differ")
	ErrEmptyBody        = errors.New("message body is required")
)

// Message is one direct message between two accounts, optionally pinned
// to an order.
type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	OrderID     string
	Body        string
	Read        bool
	CreatedAt   time.Time
}

// NewMessage validates and constructs an unread message.
func NewMessage(id, senderID, recipientID, orderID, body string, now time.Time) (*Message, error) {
	message := &Message{
		ID:          strings.TrimSpace(id),
		SenderID:    strings.TrimSpace(senderID),
		RecipientID: strings.TrimSpace(recipientID),
		OrderID:     strings.TrimSpace(orderID),
		Body:        strings.TrimSpace(body),
		CreatedAt:   now,
	}
	if message.ID == "" {
		return nil, ErrEmptyID
	}
	if message.SenderID == "" {
		return nil, ErrMissingSender
	}
	if message.RecipientID == "" {
		return nil, ErrMissingRecipient
	}
	if message.SenderID == message.RecipientID {
		return nil, ErrSelfMessage
	}
	if message.Body == "" {
		return nil, ErrEmptyBody
	}
	return message, nil
}

// Involves reports whether the account is either party of the message.
func (m *Message) Involves(userID string) bool {
	return m.SenderID == userID || m.RecipientID == userID
}

// MarkRead flags the message as seen by its recipient.
func (m *Message) MarkRead() {
	m.Read = true
}
