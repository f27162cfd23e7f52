package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// FlagStore implements notification.FlagStore on Redis.
//
// SetIfAbsent maps to SETNX, so two concurrent earned-notification checks for
// the same (user, seal) resolve in Redis: exactly one caller observes the set
// and fires the signal. Flags have no TTL; a flushed Redis re-triggers the
// signal once, which the gate documents as acceptable.
type FlagStore struct {
	client *redis.Client
}

// NewFlagStore creates a new FlagStore.
func NewFlagStore(client *redis.Client) *FlagStore {
	return &FlagStore{client: client}
}

// key namespaces a user-scoped flag, e.g.
// "notification:3f2a...:seal-earned:first-steps".
func (s *FlagStore) key(userID shared.UserID, flag string) string {
	return fmt.Sprintf("%s%s:%s", PrefixNotification, userID, flag)
}

// Has reports whether the flag is set for the user.
func (s *FlagStore) Has(ctx context.Context, userID shared.UserID, flag string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(userID, flag)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return n > 0, nil
}

// SetIfAbsent atomically sets the flag and reports whether this call set it.
func (s *FlagStore) SetIfAbsent(ctx context.Context, userID shared.UserID, flag string) (bool, error) {
	set, err := s.client.SetNX(ctx, s.key(userID, flag), "1", 0).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return set, nil
}
