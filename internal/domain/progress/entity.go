// Package progress contains the per-user completion state machine and the
// pure aggregation rules derived from it.
//
// Completion is monotonic: a record only ever moves from incomplete to
// completed, and there is no operation anywhere in this package that can move
// it back. Idempotent retries and concurrent duplicates converge on the first
// stored record.
package progress

import (
	"time"

	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// Status is the completion state of one (user, objective) pair, modeled as a
// tagged state: either incomplete, or completed at a fixed timestamp. The
// zero value is incomplete.
type Status struct {
	completed   bool
	completedAt time.Time
}

// Incomplete returns the initial state.
func Incomplete() Status {
	return Status{}
}

// Completed returns the terminal state with the given timestamp.
func Completed(at time.Time) Status {
	return Status{completed: true, completedAt: at.UTC()}
}

// IsCompleted reports whether the objective has been completed.
func (s Status) IsCompleted() bool {
	return s.completed
}

// CompletedAt returns the completion timestamp and whether it is set.
func (s Status) CompletedAt() (time.Time, bool) {
	return s.completedAt, s.completed
}

// Complete performs the only allowed transition, incomplete -> completed.
// Completing an already-completed status is a no-op that keeps the original
// timestamp; the boolean reports whether the state actually changed.
func (s Status) Complete(at time.Time) (Status, bool) {
	if s.completed {
		return s, false
	}
	return Completed(at), true
}

// Record is the persisted completion fact for one (user, objective) pair.
// Absence of a record is equivalent to an incomplete status.
type Record struct {
	UserID      shared.UserID
	ObjectiveID shared.ObjectiveID
	Status      Status
}

// NewRecord creates a completed record. Records are only ever created at the
// moment of completion; there is no such thing as a stored incomplete record.
func NewRecord(userID shared.UserID, objectiveID shared.ObjectiveID, at time.Time) (*Record, error) {
	if userID.IsEmpty() {
		return nil, shared.NewDomainError("progress", "NewRecord", shared.ErrEmptyValue, "user ID is required")
	}
	if objectiveID == "" {
		return nil, shared.NewDomainError("progress", "NewRecord", shared.ErrEmptyValue, "objective ID is required")
	}
	return &Record{
		UserID:      userID,
		ObjectiveID: objectiveID,
		Status:      Completed(at),
	}, nil
}

// CompletedSet is the set of objective IDs a user has completed.
type CompletedSet map[shared.ObjectiveID]struct{}

// NewCompletedSet builds a set from a list of objective IDs.
func NewCompletedSet(ids ...shared.ObjectiveID) CompletedSet {
	set := make(CompletedSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether the objective is in the set.
func (s CompletedSet) Has(id shared.ObjectiveID) bool {
	_, ok := s[id]
	return ok
}

// Add inserts an objective into the set.
func (s CompletedSet) Add(id shared.ObjectiveID) {
	s[id] = struct{}{}
}

// Len returns the raw size of the set, including ids that may no longer exist
// in the catalog. Aggregation restricts counts to the current catalog.
func (s CompletedSet) Len() int {
	return len(s)
}
