package query_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seal-hub/seal-progress-hub/internal/application/query"
	"github.com/seal-hub/seal-progress-hub/internal/domain/catalog"
	"github.com/seal-hub/seal-progress-hub/internal/domain/leaderboard"
	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
	"github.com/seal-hub/seal-progress-hub/internal/domain/user"
	"github.com/seal-hub/seal-progress-hub/internal/infrastructure/persistence/memory"
)

const (
	aliceID = "11111111-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	bobID   = "22222222-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
	carolID = "33333333-cccc-4ccc-8ccc-cccccccccccc"

	sealGoID = "44444444-1111-4111-8111-111111111111"

	objHello = "aaaaaaa1-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	objVars  = "bbbbbbb2-bbbb-4bbb-8bbb-bbbbbbbbbbbb"
)

func testCatalogRepo() *memory.CatalogRepository {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return memory.NewCatalogRepository(
		[]catalog.Seal{
			{ID: shared.SealID(sealGoID), Slug: "go-basics", Name: "Go Basics", CreatedAt: base},
		},
		[]catalog.Objective{
			{ID: shared.ObjectiveID(objHello), SealID: shared.SealID(sealGoID), Title: "Hello", SortOrder: 1, CreatedAt: base},
			{ID: shared.ObjectiveID(objVars), SealID: shared.SealID(sealGoID), Title: "Variables", SortOrder: 2, CreatedAt: base},
		},
	)
}

func registerProfile(t *testing.T, users *memory.ProfileRepository, id, username string, createdAt time.Time) {
	t.Helper()
	profile, err := user.NewProfile(shared.UserID(id), shared.Username(username), []byte("hash"), createdAt)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), profile))
}

func complete(t *testing.T, progressRepo *memory.ProgressRepository, userID, objectiveID string) {
	t.Helper()
	_, err := progressRepo.RecordCompletion(
		context.Background(),
		shared.UserID(userID),
		shared.ObjectiveID(objectiveID),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
}

func TestGetLeaderboard(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	users := memory.NewProfileRepository()
	registerProfile(t, users, aliceID, "alice", base)
	registerProfile(t, users, bobID, "bob", base.Add(time.Minute))
	registerProfile(t, users, carolID, "carol", base.Add(2*time.Minute))

	progressRepo := memory.NewProgressRepository()
	complete(t, progressRepo, aliceID, objHello)
	complete(t, progressRepo, aliceID, objVars) // alice earns the seal
	complete(t, progressRepo, bobID, objHello)

	handler := query.NewGetLeaderboardHandler(testCatalogRepo(), progressRepo, users, nil)

	result, err := handler.Handle(ctx, query.GetLeaderboardQuery{})
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)
	assert.Equal(t, 3, result.TotalCount)

	assert.Equal(t, "alice", result.Rows[0].Username)
	assert.Equal(t, 1, result.Rows[0].SealsEarned)
	assert.Equal(t, 1, result.Rows[0].Rank)

	assert.Equal(t, "bob", result.Rows[1].Username)
	assert.Equal(t, 0, result.Rows[1].SealsEarned)
	assert.Equal(t, 1, result.Rows[1].ObjectivesCompleted)

	// Carol has no progress but still appears.
	assert.Equal(t, "carol", result.Rows[2].Username)
	assert.Equal(t, 0, result.Rows[2].ObjectivesCompleted)
	assert.Equal(t, 3, result.Rows[2].Rank)
}

func TestGetLeaderboard_Limit(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	users := memory.NewProfileRepository()
	registerProfile(t, users, aliceID, "alice", base)
	registerProfile(t, users, bobID, "bob", base.Add(time.Minute))

	handler := query.NewGetLeaderboardHandler(testCatalogRepo(), memory.NewProgressRepository(), users, nil)

	result, err := handler.Handle(ctx, query.GetLeaderboardQuery{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, result.Rows, 1)
	assert.Equal(t, 2, result.TotalCount)
}

// fixedCache always serves one prebuilt entry, proving the handler prefers
// the cache over recomputation.
type fixedCache struct {
	entries []leaderboard.RankedEntry
	sets    int
}

func (c *fixedCache) Get(context.Context) ([]leaderboard.RankedEntry, bool, error) {
	if c.entries == nil {
		return nil, false, nil
	}
	return c.entries, true, nil
}

func (c *fixedCache) Set(_ context.Context, entries []leaderboard.RankedEntry) error {
	c.sets++
	c.entries = entries
	return nil
}

func (c *fixedCache) Invalidate(context.Context) error {
	c.entries = nil
	return nil
}

func TestGetLeaderboard_UsesCache(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	users := memory.NewProfileRepository()
	registerProfile(t, users, aliceID, "alice", base)

	cache := &fixedCache{}
	handler := query.NewGetLeaderboardHandler(testCatalogRepo(), memory.NewProgressRepository(), users, cache)

	// First read misses and populates the cache.
	result, err := handler.Handle(ctx, query.GetLeaderboardQuery{})
	require.NoError(t, err)
	assert.Len(t, result.Rows, 1)
	assert.Equal(t, 1, cache.sets)

	// A later registration is invisible until the cache is invalidated.
	registerProfile(t, users, bobID, "bob", base.Add(time.Minute))

	result, err = handler.Handle(ctx, query.GetLeaderboardQuery{})
	require.NoError(t, err)
	assert.Len(t, result.Rows, 1)
	assert.Equal(t, 1, cache.sets)

	require.NoError(t, cache.Invalidate(ctx))
	result, err = handler.Handle(ctx, query.GetLeaderboardQuery{})
	require.NoError(t, err)
	assert.Len(t, result.Rows, 2)
}

func TestGetUserStats(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	users := memory.NewProfileRepository()
	registerProfile(t, users, aliceID, "alice", base)
	registerProfile(t, users, bobID, "bob", base.Add(time.Minute))

	progressRepo := memory.NewProgressRepository()
	complete(t, progressRepo, bobID, objHello)
	complete(t, progressRepo, bobID, objVars)

	handler := query.NewGetUserStatsHandler(testCatalogRepo(), progressRepo, users)

	result, err := handler.Handle(ctx, query.GetUserStatsQuery{UserID: bobID})
	require.NoError(t, err)
	assert.Equal(t, "bob", result.Username)
	assert.Equal(t, 2, result.ObjectivesCompleted)
	assert.Equal(t, 1, result.SealsEarned)
	assert.Equal(t, 1, result.Rank)

	result, err = handler.Handle(ctx, query.GetUserStatsQuery{UserID: aliceID})
	require.NoError(t, err)
	assert.Equal(t, 0, result.SealsEarned)
	assert.Equal(t, 2, result.Rank)
}

func TestGetUserStats_UnknownUser(t *testing.T) {
	ctx := context.Background()
	handler := query.NewGetUserStatsHandler(testCatalogRepo(), memory.NewProgressRepository(), memory.NewProfileRepository())

	_, err := handler.Handle(ctx, query.GetUserStatsQuery{UserID: carolID})
	assert.ErrorIs(t, err, shared.ErrProfileNotFound)
}
