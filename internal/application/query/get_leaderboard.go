package query

import (
	"context"
	"time"

	"github.com/seal-hub/seal-progress-hub/internal/domain/catalog"
	"github.com/seal-hub/seal-progress-hub/internal/domain/leaderboard"
	"github.com/seal-hub/seal-progress-hub/internal/domain/progress"
	"github.com/seal-hub/seal-progress-hub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET LEADERBOARD QUERY
// Aggregates every registered user's stats and ranks them with the fixed
// three-key comparator. Users with zero progress are included. Results are
// cached briefly; a cache failure falls through to recomputation so a read
// never fails because of the cache.
// ══════════════════════════════════════════════════════════════════════════════

// GetLeaderboardQuery contains leaderboard parameters.
type GetLeaderboardQuery struct {
	// Limit caps the number of returned rows (0 = all).
	Limit int
}

// Validate validates the query parameters.
func (q *GetLeaderboardQuery) Validate() error {
	if q.Limit < 0 {
		q.Limit = 0
	}
	return nil
}

// LeaderboardRowDTO is one ranked leaderboard row.
type LeaderboardRowDTO struct {
	Rank                int    `json:"rank"`
	UserID              string `json:"user_id"`
	Username            string `json:"username"`
	SealsEarned         int    `json:"seals_earned"`
	ObjectivesCompleted int    `json:"objectives_completed"`
}

// GetLeaderboardResult is the leaderboard payload.
type GetLeaderboardResult struct {
	Rows        []LeaderboardRowDTO `json:"rows"`
	TotalCount  int                 `json:"total_count"`
	GeneratedAt time.Time           `json:"generated_at"`
}

// GetLeaderboardHandler handles leaderboard queries.
type GetLeaderboardHandler struct {
	catalogRepo  catalog.Repository
	progressRepo progress.Repository
	userRepo     user.Repository
	cache        leaderboard.Cache // optional
}

// NewGetLeaderboardHandler creates a new handler. cache may be nil.
func NewGetLeaderboardHandler(
	catalogRepo catalog.Repository,
	progressRepo progress.Repository,
	userRepo user.Repository,
	cache leaderboard.Cache,
) *GetLeaderboardHandler {
	return &GetLeaderboardHandler{
		catalogRepo:  catalogRepo,
		progressRepo: progressRepo,
		userRepo:     userRepo,
		cache:        cache,
	}
}

// Handle executes the query.
func (h *GetLeaderboardHandler) Handle(ctx context.Context, q GetLeaderboardQuery) (*GetLeaderboardResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	standings, err := h.standings(ctx)
	if err != nil {
		return nil, err
	}

	total := len(standings)
	if q.Limit > 0 && q.Limit < len(standings) {
		standings = standings[:q.Limit]
	}

	rows := make([]LeaderboardRowDTO, 0, len(standings))
	for _, e := range standings {
		rows = append(rows, LeaderboardRowDTO{
			Rank:                int(e.Rank),
			UserID:              e.UserID.String(),
			Username:            e.Username.String(),
			SealsEarned:         e.SealsEarned,
			ObjectivesCompleted: e.ObjectivesCompleted,
		})
	}

	return &GetLeaderboardResult{
		Rows:        rows,
		TotalCount:  total,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// standings returns cached standings when available and recomputes otherwise.
func (h *GetLeaderboardHandler) standings(ctx context.Context) ([]leaderboard.RankedEntry, error) {
	if h.cache != nil {
		if cached, ok, err := h.cache.Get(ctx); err == nil && ok {
			return cached, nil
		}
	}

	standings, err := ComputeStandings(ctx, h.catalogRepo, h.progressRepo, h.userRepo)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		_ = h.cache.Set(ctx, standings)
	}
	return standings, nil
}

// ComputeStandings aggregates stats for every registered profile and ranks
// them. Shared by the leaderboard and dashboard queries.
func ComputeStandings(
	ctx context.Context,
	catalogRepo catalog.Repository,
	progressRepo progress.Repository,
	userRepo user.Repository,
) ([]leaderboard.RankedEntry, error) {
	cat, err := catalogRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	profiles, err := userRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]leaderboard.Entry, 0, len(profiles))
	for _, p := range profiles {
		completed, err := progressRepo.CompletedSet(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		stats := progress.ComputeUserStats(cat, completed)
		entries = append(entries, leaderboard.Entry{
			UserID:              p.ID,
			Username:            p.Username,
			SealsEarned:         stats.SealsEarned,
			ObjectivesCompleted: stats.ObjectivesCompleted,
		})
	}

	return leaderboard.Standings(entries), nil
}
