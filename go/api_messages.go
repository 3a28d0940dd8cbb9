package sokoserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	messagingdomain "github.com/sokoyetu/soko-api/internal/domains/messaging/domain"
	messagingports "github.com/sokoyetu/soko-api/internal/domains/messaging/ports"
	apierrors "github.com/sokoyetu/soko-api/internal/shared/errors"
	"github.com/sokoyetu/soko-api/internal/validation"
)

// MessagesAPI wires HTTP transport with the messaging service.
type MessagesAPI struct {
	service   messagingports.Service
	validator *validatorv10.Validate
}

// NewMessagesAPI creates a MessagesAPI backed by the provided service.
func NewMessagesAPI(service messagingports.Service) MessagesAPI {
	return MessagesAPI{service: service, validator: validation.New()}
}

// SendMessageRequest is one outgoing direct message.
type SendMessageRequest struct {
	RecipientID string `json:"recipientId" validate:"required"`
	OrderID     string `json:"orderId"`
	Body        string `json:"body" validate:"required"`
}

// Message is the transport-level message payload.
type Message struct {
	ID          string    `json:"id"`
	SenderID    string    `json:"senderId"`
	RecipientID string    `json:"recipientId"`
	OrderID     string    `json:"orderId,omitempty"`
	Body        string    `json:"body"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Conversation is the transport-level thread summary.
type Conversation struct {
	PeerID      string   `json:"peerId"`
	LastMessage *Message `json:"lastMessage,omitempty"`
	UnreadCount int      `json:"unreadCount"`
}

func fromDomainMessage(message *messagingdomain.Message) Message {
	if message == nil {
		return Message{}
	}
	return Message{
		ID:          message.ID,
		SenderID:    message.SenderID,
		RecipientID: message.RecipientID,
		OrderID:     message.OrderID,
		Body:        message.Body,
		Read:        message.Read,
		CreatedAt:   message.CreatedAt,
	}
}

// Post /v1/messages
// Send a direct message
func (api *MessagesAPI) Send(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return
	}
	var payload SendMessageRequest
	if err := validation.BindAndValidate(c, &payload, api.validator); err != nil {
		return
	}
	message, err := api.service.Send(c.Request.Context(), messagingports.SendInput{
		SenderID:    user.ID,
		RecipientID: payload.RecipientID,
		OrderID:     payload.OrderID,
		Body:        payload.Body,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomainMessage(message))
}

// Get /v1/messages/:peerId
// Fetch the thread with one peer, oldest first
func (api *MessagesAPI) Thread(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return
	}
	thread, err := api.service.ListBetween(c.Request.Context(), user.ID, c.Param("peerId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result := make([]Message, 0, len(thread))
	for _, message := range thread {
		result = append(result, fromDomainMessage(message))
	}
	c.JSON(http.StatusOK, result)
}

// Get /v1/conversations
// Summarize the account's threads, most recent first
func (api *MessagesAPI) Conversations(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return
	}
	conversations, err := api.service.Conversations(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result := make([]Conversation, 0, len(conversations))
	for _, conv := range conversations {
		mapped := Conversation{PeerID: conv.PeerID, UnreadCount: conv.UnreadCount}
		if conv.LastMessage != nil {
			last := fromDomainMessage(conv.LastMessage)
			mapped.LastMessage = &last
		}
		result = append(result, mapped)
	}
	c.JSON(http.StatusOK, result)
}

// Post /v1/conversations/:peerId/read
// Mark every message from the peer as seen
func (api *MessagesAPI) MarkRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		respondProblem(c, apierrors.ErrUnauthorized)
		return
	}
	if err := api.service.MarkRead(c.Request.Context(), user.ID, c.Param("peerId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
