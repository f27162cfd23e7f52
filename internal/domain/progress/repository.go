package progress

import (
	"context"
	"time"

	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// Repository persists completion records.
//
// RecordCompletion is the serialization point for concurrent completion
// requests: implementations must use an atomic insert-if-absent keyed on the
// (user, objective) pair, never read-then-write. The first write wins and
// fixes the timestamp; later calls for the same pair return the stored record
// unchanged. A duplicate is a no-op, not an error.
//
// There is deliberately no operation that removes or downgrades a record.
type Repository interface {
	// RecordCompletion marks the objective completed for the user at the
	// given time, or returns the existing record if already completed.
	RecordCompletion(ctx context.Context, userID shared.UserID, objectiveID shared.ObjectiveID, at time.Time) (*Record, error)

	// CompletedSet returns all objective IDs the user has completed.
	CompletedSet(ctx context.Context, userID shared.UserID) (CompletedSet, error)

	// IsCompleted reports whether the user has completed the objective.
	IsCompleted(ctx context.Context, userID shared.UserID, objectiveID shared.ObjectiveID) (bool, error)
}
