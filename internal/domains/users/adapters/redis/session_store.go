package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/sokoyetu/soko-api/internal/domains/users/ports"
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore persists session tokens in Redis. Expiry is enforced by
// the key TTL, so expired sessions vanish without housekeeping.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore wires a Redis-backed session store. Caller owns the
// client lifecycle.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(token string) string { return fmt.Sprintf("session:%s", token) }

func userSessionsKey(userID string) string { return fmt.Sprintf("user-sessions:%s", userID) }

// Save stores the session under its token with a TTL matching the expiry,
// and indexes the token under its account for bulk deletion.
func (s *SessionStore) Save(ctx context.Context, session ports.Session) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session is already expired")
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKey(session.Token), session.UserID, ttl)
	pipe.SAdd(ctx, userSessionsKey(session.UserID), session.Token)
	pipe.Expire(ctx, userSessionsKey(session.UserID), ttl)
	_, err := pipe.Exec(ctx)
	return err
}

// Get fetches a session by token.
func (s *SessionStore) Get(ctx context.Context, token string) (*ports.Session, error) {
	if err := s.ensureClient(); err != nil {
		return nil, err
	}
	userID, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrSessionNotFound
		}
		return nil, err
	}
	ttl, err := s.client.TTL(ctx, sessionKey(token)).Result()
	if err != nil {
		return nil, err
	}
	session := &ports.Session{Token: token, UserID: userID}
	if ttl > 0 {
		session.ExpiresAt = time.Now().Add(ttl)
	}
	return session, nil
}

// Delete removes a session by token.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	userID, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKey(token))
	pipe.SRem(ctx, userSessionsKey(userID), token)
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteForUser removes every session belonging to an account.
func (s *SessionStore) DeleteForUser(ctx context.Context, userID string) error {
	if err := s.ensureClient(); err != nil {
		return err
	}
	tokens, err := s.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, sessionKey(token))
	}
	keys = append(keys, userSessionsKey(userID))
	return s.client.Del(ctx, keys...).Err()
}

func (s *SessionStore) ensureClient() error {
	if s == nil || s.client == nil {
		return errors.New("redis session store not configured")
	}
	return nil
}
