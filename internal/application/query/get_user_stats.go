package query

import (
	"context"

	"github.com/seal-hub/seal-progress-hub/internal/domain/catalog"
	"github.com/seal-hub/seal-progress-hub/internal/domain/leaderboard"
	"github.com/seal-hub/seal-progress-hub/internal/domain/progress"
	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
	"github.com/seal-hub/seal-progress-hub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET USER STATS QUERY
// One user's derived totals plus their leaderboard rank. Backs the dashboard.
// ══════════════════════════════════════════════════════════════════════════════

// GetUserStatsQuery identifies the user.
type GetUserStatsQuery struct {
	UserID string
}

// Validate validates the query parameters.
func (q GetUserStatsQuery) Validate() error {
	_, err := shared.NewUserID(q.UserID)
	return err
}

// GetUserStatsResult is the dashboard payload.
type GetUserStatsResult struct {
	UserID              string `json:"user_id"`
	Username            string `json:"username"`
	ObjectivesCompleted int    `json:"objectives_completed"`
	SealsEarned         int    `json:"seals_earned"`

	// Rank is the user's leaderboard position, starting at 1. Present for
	// every registered profile because every profile has an entry.
	Rank int `json:"rank"`
}

// GetUserStatsHandler handles user stats queries.
type GetUserStatsHandler struct {
	catalogRepo  catalog.Repository
	progressRepo progress.Repository
	userRepo     user.Repository
}

// NewGetUserStatsHandler creates a new handler.
func NewGetUserStatsHandler(
	catalogRepo catalog.Repository,
	progressRepo progress.Repository,
	userRepo user.Repository,
) *GetUserStatsHandler {
	return &GetUserStatsHandler{
		catalogRepo:  catalogRepo,
		progressRepo: progressRepo,
		userRepo:     userRepo,
	}
}

// Handle executes the query.
func (h *GetUserStatsHandler) Handle(ctx context.Context, q GetUserStatsQuery) (*GetUserStatsResult, error) {
	if err := q.Validate(); err != nil {
		return nil, shared.WrapError("query", "GetUserStats", shared.ErrValidation, "invalid query", err)
	}

	userID, _ := shared.NewUserID(q.UserID)

	profile, err := h.userRepo.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cat, err := h.catalogRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := h.progressRepo.CompletedSet(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := progress.ComputeUserStats(cat, completed)

	standings, err := ComputeStandings(ctx, h.catalogRepo, h.progressRepo, h.userRepo)
	if err != nil {
		return nil, err
	}
	rank, _ := leaderboard.RankOf(standings, userID)

	return &GetUserStatsResult{
		UserID:              profile.ID.String(),
		Username:            profile.Username.String(),
		ObjectivesCompleted: stats.ObjectivesCompleted,
		SealsEarned:         stats.SealsEarned,
		Rank:                int(rank),
	}, nil
}
