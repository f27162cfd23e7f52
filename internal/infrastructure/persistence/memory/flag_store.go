// Package memory implements in-memory stand-ins for the persistence layer,
// used in tests and in development with Redis disabled. State lives for the
// process lifetime only, which for notification flags means the earned signal
// re-triggers once after a restart - the same documented limitation as a
// flushed Redis.
package memory

import (
	"context"
	"sync"

	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// FlagStore implements notification.FlagStore in memory.
type FlagStore struct {
	mu    sync.Mutex
	flags map[string]struct{}
}

// NewFlagStore creates an empty FlagStore.
func NewFlagStore() *FlagStore {
	return &FlagStore{flags: make(map[string]struct{})}
}

func flagKey(userID shared.UserID, flag string) string {
	return userID.String() + ":" + flag
}

// Has reports whether the flag is set for the user.
func (s *FlagStore) Has(_ context.Context, userID shared.UserID, flag string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.flags[flagKey(userID, flag)]
	return ok, nil
}

// SetIfAbsent atomically sets the flag and reports whether this call set it.
func (s *FlagStore) SetIfAbsent(_ context.Context, userID shared.UserID, flag string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := flagKey(userID, flag)
	if _, ok := s.flags[key]; ok {
		return false, nil
	}
	s.flags[key] = struct{}{}
	return true, nil
}
