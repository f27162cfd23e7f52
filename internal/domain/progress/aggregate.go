package progress

import (
	"github.com/seal-hub/seal-progress-hub/internal/domain/catalog"
	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// SealProgress is the derived completion state of one seal for one user.
type SealProgress struct {
	// Total is the number of objectives under the seal.
	Total int

	// Done is the number of those objectives the user has completed.
	Done int
}

// Earned reports whether the seal is earned. A seal with zero objectives is
// never earned.
func (p SealProgress) Earned() bool {
	return p.Total > 0 && p.Done == p.Total
}

// UserStats is the derived progress summary feeding the leaderboard.
type UserStats struct {
	// ObjectivesCompleted counts completed objectives that still exist in
	// the catalog. Records pointing at deleted objectives are ignored.
	ObjectivesCompleted int

	// SealsEarned counts seals whose every objective is completed.
	SealsEarned int
}

// ComputeSealProgress derives one seal's progress from the catalog and the
// user's completed set. Pure and deterministic given its inputs.
func ComputeSealProgress(cat *catalog.Catalog, completed CompletedSet, sealID shared.SealID) SealProgress {
	objectives := cat.Objectives(sealID)
	p := SealProgress{Total: len(objectives)}
	for _, o := range objectives {
		if completed.Has(o.ID) {
			p.Done++
		}
	}
	return p
}

// ComputeUserStats derives the user's totals across the whole catalog.
// Stale objective IDs in the completed set never inflate the counts beyond
// what the current catalog contains.
func ComputeUserStats(cat *catalog.Catalog, completed CompletedSet) UserStats {
	var stats UserStats
	for id := range completed {
		if cat.HasObjective(id) {
			stats.ObjectivesCompleted++
		}
	}
	for _, seal := range cat.Seals() {
		if ComputeSealProgress(cat, completed, seal.ID).Earned() {
			stats.SealsEarned++
		}
	}
	return stats
}
