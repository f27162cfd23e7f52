// Package leaderboard contains the ranking policy: a fixed multi-key
// comparator producing a total order over all users with a profile, so rank
// is well-defined and stable across recomputation.
package leaderboard

import (
	"fmt"
	"sort"

	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// Rank represents a position in the leaderboard, starting at 1.
type Rank int

// IsValid checks that the rank is positive.
func (r Rank) IsValid() bool {
	return r > 0
}

// String returns the string representation, e.g. "#3".
func (r Rank) String() string {
	return fmt.Sprintf("#%d", r)
}

// Entry is one user's aggregated standing. Every user with a profile has an
// entry, whether or not they have any progress.
type Entry struct {
	UserID              shared.UserID
	Username            shared.Username
	SealsEarned         int
	ObjectivesCompleted int
}

// Before is the ranking comparator, applied lexicographically:
//
//  1. seals earned, descending
//  2. objectives completed, descending
//  3. username, ascending, case-sensitive code-point order
//
// The username tie-break guarantees a strict total order: no two entries ever
// compare equal, because usernames are unique.
func (e Entry) Before(other Entry) bool {
	if e.SealsEarned != other.SealsEarned {
		return e.SealsEarned > other.SealsEarned
	}
	if e.ObjectivesCompleted != other.ObjectivesCompleted {
		return e.ObjectivesCompleted > other.ObjectivesCompleted
	}
	return e.Username < other.Username
}

// RankedEntry is an entry with its assigned rank.
type RankedEntry struct {
	Rank Rank
	Entry
}

// Standings orders entries by the ranking comparator and assigns ranks.
// The input slice is not modified. Because the comparator is a strict total
// order, rank i+1 equals 1 + the number of entries strictly before it.
func Standings(entries []Entry) []RankedEntry {
	ordered := make([]Entry, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Before(ordered[j])
	})

	ranked := make([]RankedEntry, len(ordered))
	for i, e := range ordered {
		ranked[i] = RankedEntry{Rank: Rank(i + 1), Entry: e}
	}
	return ranked
}

// RankOf returns the user's rank within the ranked standings. The second
// return value is false when the user has no entry; rank is undefined for
// users without a profile, not zero.
func RankOf(standings []RankedEntry, userID shared.UserID) (Rank, bool) {
	for _, e := range standings {
		if e.UserID == userID {
			return e.Rank, true
		}
	}
	return 0, false
}
