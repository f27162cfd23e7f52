package catalog

import "context"

// Repository loads the achievement catalog from persistent storage.
//
// The catalog is small and bounded, so implementations load it whole; callers
// recompute derived state from the snapshot on every read instead of caching
// incrementally maintained counters.
type Repository interface {
	// Load returns a snapshot of all seals and their objectives.
	Load(ctx context.Context) (*Catalog, error)
}
