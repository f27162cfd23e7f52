package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// SessionStore implements user.SessionStore in memory. Sessions do not
// expire; restarting the process logs everyone out.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]shared.UserID
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]shared.UserID)}
}

// Create mints a session token for the user.
func (s *SessionStore) Create(_ context.Context, userID shared.UserID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	token := uuid.NewString()
	s.sessions[token] = userID
	return token, nil
}

// Resolve returns the user behind a token.
func (s *SessionStore) Resolve(_ context.Context, token string) (shared.UserID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	userID, ok := s.sessions[token]
	if !ok {
		return "", shared.ErrSessionNotFound
	}
	return userID, nil
}

// Revoke invalidates a token. Revoking an unknown token is a no-op.
func (s *SessionStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
