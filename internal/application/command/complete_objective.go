// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"time"

	"github.com/seal-hub/seal-progress-hub/internal/domain/catalog"
	"github.com/seal-hub/seal-progress-hub/internal/domain/leaderboard"
	"github.com/seal-hub/seal-progress-hub/internal/domain/progress"
	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETE OBJECTIVE COMMAND
// The single write path of the core. Idempotent: retries and duplicate client
// actions converge on the first stored record. There is no command that can
// uncomplete an objective.
// ══════════════════════════════════════════════════════════════════════════════

// CompleteObjectiveCommand marks one objective completed for one user.
type CompleteObjectiveCommand struct {
	// UserID is the acting user.
	UserID string

	// ObjectiveID is the objective being completed. Must exist in the catalog.
	ObjectiveID string

	// Revoke requests the completed -> incomplete transition. That transition
	// does not exist; Handle rejects it so a forged downgrade request fails
	// loudly instead of being treated as a completion.
	Revoke bool
}

// Validate validates the command.
func (c CompleteObjectiveCommand) Validate() error {
	if _, err := shared.NewUserID(c.UserID); err != nil {
		return err
	}
	if _, err := shared.NewObjectiveID(c.ObjectiveID); err != nil {
		return err
	}
	return nil
}

// CompleteObjectiveResult reports the stored record and the seal's state
// after the write.
type CompleteObjectiveResult struct {
	// ObjectiveID is the completed objective.
	ObjectiveID string `json:"objective_id"`

	// CompletedAt is the stored completion timestamp. On a duplicate call
	// this is the original timestamp, not the retry's.
	CompletedAt time.Time `json:"completed_at"`

	// AlreadyCompleted is true when this call was a no-op.
	AlreadyCompleted bool `json:"already_completed"`

	// SealID is the owning seal.
	SealID string `json:"seal_id"`

	// SealSlug is the owning seal's slug.
	SealSlug string `json:"seal_slug"`

	// Total and Done describe the seal's progress after this write.
	Total int `json:"total"`
	Done  int `json:"done"`

	// Earned is true when the write completed the seal.
	Earned bool `json:"earned"`
}

// CompleteObjectiveHandler handles objective completion.
type CompleteObjectiveHandler struct {
	catalogRepo  catalog.Repository
	progressRepo progress.Repository
	cache        leaderboard.Cache // optional; invalidated after a write
	now          func() time.Time
}

// NewCompleteObjectiveHandler creates a new handler. cache may be nil.
func NewCompleteObjectiveHandler(
	catalogRepo catalog.Repository,
	progressRepo progress.Repository,
	cache leaderboard.Cache,
) *CompleteObjectiveHandler {
	return &CompleteObjectiveHandler{
		catalogRepo:  catalogRepo,
		progressRepo: progressRepo,
		cache:        cache,
		now:          time.Now,
	}
}

// Handle executes the completion.
func (h *CompleteObjectiveHandler) Handle(ctx context.Context, cmd CompleteObjectiveCommand) (*CompleteObjectiveResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.WrapError("command", "CompleteObjective", shared.ErrValidation, "invalid command", err)
	}
	if cmd.Revoke {
		return nil, shared.ErrDowngradeRejected
	}

	// Use the canonical forms: lookups are keyed on normalized IDs, so the
	// raw command fields must never reach the catalog or the store.
	userID, _ := shared.NewUserID(cmd.UserID)
	objectiveID, _ := shared.NewObjectiveID(cmd.ObjectiveID)

	cat, err := h.catalogRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	objective, ok := cat.ObjectiveByID(objectiveID)
	if !ok {
		return nil, shared.ErrObjectiveNotFound
	}
	seal, ok := cat.SealByID(objective.SealID)
	if !ok {
		return nil, shared.ErrSealNotFound
	}

	// The repository is the serialization point: insert-if-absent on the
	// (user, objective) key. A concurrent duplicate loses the race and gets
	// the winner's record back.
	before, err := h.progressRepo.IsCompleted(ctx, userID, objectiveID)
	if err != nil {
		return nil, err
	}
	record, err := h.progressRepo.RecordCompletion(ctx, userID, objectiveID, h.now().UTC())
	if err != nil {
		return nil, err
	}

	completed, err := h.progressRepo.CompletedSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	sealProgress := progress.ComputeSealProgress(cat, completed, seal.ID)

	if h.cache != nil && !before {
		// Best effort: a stale leaderboard under-reports until the TTL
		// expires, which monotonic completion makes safe.
		_ = h.cache.Invalidate(ctx)
	}

	completedAt, _ := record.Status.CompletedAt()
	return &CompleteObjectiveResult{
		ObjectiveID:      objectiveID.String(),
		CompletedAt:      completedAt,
		AlreadyCompleted: before,
		SealID:           seal.ID.String(),
		SealSlug:         seal.Slug.String(),
		Total:            sealProgress.Total,
		Done:             sealProgress.Done,
		Earned:           sealProgress.Earned(),
	}, nil
}
