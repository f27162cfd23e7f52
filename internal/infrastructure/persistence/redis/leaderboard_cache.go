package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/seal-hub/seal-progress-hub/internal/domain/leaderboard"
	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// leaderboardKey holds the single global standings snapshot.
const leaderboardKey = PrefixLeaderboard + "global"

// LeaderboardCache implements leaderboard.Cache on Redis with a short TTL.
type LeaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache creates a new LeaderboardCache.
func NewLeaderboardCache(client *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{client: client}
}

// cachedEntry is the wire form of one ranked entry.
type cachedEntry struct {
	Rank                int    `json:"rank"`
	UserID              string `json:"user_id"`
	Username            string `json:"username"`
	SealsEarned         int    `json:"seals_earned"`
	ObjectivesCompleted int    `json:"objectives_completed"`
}

// Get returns the cached standings, or ok=false on a miss.
func (c *LeaderboardCache) Get(ctx context.Context) ([]leaderboard.RankedEntry, bool, error) {
	data, err := c.client.Get(ctx, leaderboardKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	var cached []cachedEntry
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupt payload is treated as a miss; the next Set overwrites it.
		return nil, false, nil
	}

	standings := make([]leaderboard.RankedEntry, 0, len(cached))
	for _, e := range cached {
		standings = append(standings, leaderboard.RankedEntry{
			Rank: leaderboard.Rank(e.Rank),
			Entry: leaderboard.Entry{
				UserID:              shared.UserID(e.UserID),
				Username:            shared.Username(e.Username),
				SealsEarned:         e.SealsEarned,
				ObjectivesCompleted: e.ObjectivesCompleted,
			},
		})
	}
	return standings, true, nil
}

// Set stores freshly computed standings.
func (c *LeaderboardCache) Set(ctx context.Context, standings []leaderboard.RankedEntry) error {
	cached := make([]cachedEntry, 0, len(standings))
	for _, e := range standings {
		cached = append(cached, cachedEntry{
			Rank:                int(e.Rank),
			UserID:              e.UserID.String(),
			Username:            e.Username.String(),
			SealsEarned:         e.SealsEarned,
			ObjectivesCompleted: e.ObjectivesCompleted,
		})
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("redis: failed to marshal standings: %w", err)
	}
	if err := c.client.Set(ctx, leaderboardKey, data, TTLLeaderboard).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Invalidate drops the cached standings after a completion write.
func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, leaderboardKey).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}
