package memory

import (
	"context"
	"sync"
	"time"

	"github.com/seal-hub/seal-progress-hub/internal/domain/progress"
	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

type progressKey struct {
	userID      shared.UserID
	objectiveID shared.ObjectiveID
}

// ProgressRepository implements progress.Repository in memory with the same
// insert-if-absent semantics as the PostgreSQL repository: the first write
// for a (user, objective) pair wins and later writes return its record.
type ProgressRepository struct {
	mu      sync.Mutex
	records map[progressKey]time.Time
}

// NewProgressRepository creates an empty ProgressRepository.
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{records: make(map[progressKey]time.Time)}
}

// RecordCompletion stores the completion if absent and returns the stored
// record either way.
func (r *ProgressRepository) RecordCompletion(_ context.Context, userID shared.UserID, objectiveID shared.ObjectiveID, at time.Time) (*progress.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := progressKey{userID: userID, objectiveID: objectiveID}
	stored, ok := r.records[key]
	if !ok {
		stored = at.UTC()
		r.records[key] = stored
	}
	return progress.NewRecord(userID, objectiveID, stored)
}

// CompletedSet returns the user's completed objective IDs.
func (r *ProgressRepository) CompletedSet(_ context.Context, userID shared.UserID) (progress.CompletedSet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	set := progress.NewCompletedSet()
	for key := range r.records {
		if key.userID == userID {
			set.Add(key.objectiveID)
		}
	}
	return set, nil
}

// IsCompleted reports whether the user has completed the objective.
func (r *ProgressRepository) IsCompleted(_ context.Context, userID shared.UserID, objectiveID shared.ObjectiveID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.records[progressKey{userID: userID, objectiveID: objectiveID}]
	return ok, nil
}
