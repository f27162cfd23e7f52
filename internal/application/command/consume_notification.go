package command

import (
	"context"

	"github.com/seal-hub/seal-progress-hub/internal/domain/catalog"
	"github.com/seal-hub/seal-progress-hub/internal/domain/notification"
	"github.com/seal-hub/seal-progress-hub/internal/domain/progress"
	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CONSUME EARNED NOTIFICATION COMMAND
// Checks whether the one-time "Seal Earned" signal should fire for a seal the
// user has just observed as earned, and consumes it. Modeled as a command
// because consuming the signal sets the de-duplication flag.
// ══════════════════════════════════════════════════════════════════════════════

// ConsumeEarnedNotificationCommand identifies the (user, seal) pair.
type ConsumeEarnedNotificationCommand struct {
	UserID   string
	SealSlug string
}

// Validate validates the command.
func (c ConsumeEarnedNotificationCommand) Validate() error {
	if _, err := shared.NewUserID(c.UserID); err != nil {
		return err
	}
	if _, err := shared.NewSlug(c.SealSlug); err != nil {
		return err
	}
	return nil
}

// ConsumeEarnedNotificationResult reports whether to surface the signal.
type ConsumeEarnedNotificationResult struct {
	// Earned is the seal's current earned state.
	Earned bool `json:"earned"`

	// Notify is true exactly once per (user, seal) per storage scope, and
	// only when Earned is true.
	Notify bool `json:"notify"`
}

// ConsumeEarnedNotificationHandler handles notification consumption.
type ConsumeEarnedNotificationHandler struct {
	catalogRepo  catalog.Repository
	progressRepo progress.Repository
	gate         *notification.Gate
}

// NewConsumeEarnedNotificationHandler creates a new handler.
func NewConsumeEarnedNotificationHandler(
	catalogRepo catalog.Repository,
	progressRepo progress.Repository,
	gate *notification.Gate,
) *ConsumeEarnedNotificationHandler {
	return &ConsumeEarnedNotificationHandler{
		catalogRepo:  catalogRepo,
		progressRepo: progressRepo,
		gate:         gate,
	}
}

// Handle re-derives the earned state before touching the gate: the gate is
// only consulted when the seal is currently earned, so a premature client
// call can never burn the flag for a seal still in progress.
func (h *ConsumeEarnedNotificationHandler) Handle(ctx context.Context, cmd ConsumeEarnedNotificationCommand) (*ConsumeEarnedNotificationResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, shared.WrapError("command", "ConsumeEarnedNotification", shared.ErrValidation, "invalid command", err)
	}

	userID, _ := shared.NewUserID(cmd.UserID)
	slug, _ := shared.NewSlug(cmd.SealSlug)

	cat, err := h.catalogRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	seal, ok := cat.SealBySlug(slug)
	if !ok {
		return nil, shared.ErrSealNotFound
	}

	completed, err := h.progressRepo.CompletedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !progress.ComputeSealProgress(cat, completed, seal.ID).Earned() {
		return &ConsumeEarnedNotificationResult{Earned: false, Notify: false}, nil
	}

	notify, err := h.gate.ShouldNotify(ctx, userID, slug)
	if err != nil {
		return nil, err
	}
	return &ConsumeEarnedNotificationResult{Earned: true, Notify: notify}, nil
}
