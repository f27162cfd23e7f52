package leaderboard

import "context"

// Cache holds a recently computed set of standings so the read path does not
// have to re-aggregate every user on every request.
//
// The cache is an optimization only: a miss or an error falls through to
// recomputation, and staleness within the TTL only ever under-reports
// progress because completion is monotonic.
type Cache interface {
	// Get returns the cached standings, or ok=false on a miss.
	Get(ctx context.Context) (standings []RankedEntry, ok bool, err error)

	// Set stores freshly computed standings.
	Set(ctx context.Context, standings []RankedEntry) error

	// Invalidate drops the cached standings after a completion write.
	Invalidate(ctx context.Context) error
}
