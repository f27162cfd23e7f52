package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/seal-hub/seal-progress-hub/internal/domain/progress"
	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// ProgressRepository implements progress.Repository for PostgreSQL.
//
// The completion write is INSERT ... ON CONFLICT DO NOTHING on the
// (user_id, objective_id) primary key: the database, not the caller, is the
// serialization point for concurrent completions, and the first write fixes
// completed_at. No statement in this repository can set completed to false;
// the schema additionally enforces completed = TRUE with a check constraint.
type ProgressRepository struct {
	conn *Connection
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(conn *Connection) *ProgressRepository {
	return &ProgressRepository{conn: conn}
}

// RecordCompletion marks the objective completed, or returns the existing
// record unchanged. A duplicate is absorbed as a no-op, never surfaced as a
// conflict error.
func (r *ProgressRepository) RecordCompletion(ctx context.Context, userID shared.UserID, objectiveID shared.ObjectiveID, at time.Time) (*progress.Record, error) {
	_, err := r.conn.Exec(ctx, `
		INSERT INTO user_objective_progress (user_id, objective_id, completed, completed_at)
		VALUES ($1, $2, TRUE, $3)
		ON CONFLICT (user_id, objective_id) DO NOTHING
	`, userID.String(), objectiveID.String(), at.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to record completion: %w", err)
	}

	// Read back the stored row: on a lost race or a retry this returns the
	// winner's timestamp, which is the contract.
	var completedAt time.Time
	err = r.conn.QueryRow(ctx, `
		SELECT completed_at
		FROM user_objective_progress
		WHERE user_id = $1 AND objective_id = $2 AND completed
	`, userID.String(), objectiveID.String()).Scan(&completedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to read completion record: %w", err)
	}

	return progress.NewRecord(userID, objectiveID, completedAt)
}

// CompletedSet returns all objective IDs the user has completed.
func (r *ProgressRepository) CompletedSet(ctx context.Context, userID shared.UserID) (progress.CompletedSet, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT objective_id
		FROM user_objective_progress
		WHERE user_id = $1 AND completed
	`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to load completed set: %w", err)
	}
	defer rows.Close()

	set := progress.NewCompletedSet()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		set.Add(shared.ObjectiveID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read completed set: %w", err)
	}
	return set, nil
}

// IsCompleted reports whether the user has completed the objective.
func (r *ProgressRepository) IsCompleted(ctx context.Context, userID shared.UserID, objectiveID shared.ObjectiveID) (bool, error) {
	var completed bool
	err := r.conn.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM user_objective_progress
			WHERE user_id = $1 AND objective_id = $2 AND completed
		)
	`, userID.String(), objectiveID.String()).Scan(&completed)
	if err != nil {
		return false, fmt.Errorf("failed to check completion: %w", err)
	}
	return completed, nil
}
