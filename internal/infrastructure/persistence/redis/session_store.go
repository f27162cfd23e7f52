package redis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// SessionStore implements user.SessionStore on Redis. Tokens are opaque
// UUIDs mapping to the user ID, refreshed on every resolve.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) key(token string) string {
	return PrefixSession + token
}

// Create mints a session token for the user.
func (s *SessionStore) Create(ctx context.Context, userID shared.UserID) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, s.key(token), userID.String(), TTLSession).Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return token, nil
}

// Resolve returns the user behind a token and slides its expiry.
func (s *SessionStore) Resolve(ctx context.Context, token string) (shared.UserID, error) {
	value, err := s.client.GetEx(ctx, s.key(token), TTLSession).Result()
	if err == redis.Nil {
		return "", shared.ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return shared.UserID(value), nil
}

// Revoke invalidates a token. Revoking an unknown token is a no-op.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}
