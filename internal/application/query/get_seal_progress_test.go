package query_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seal-hub/seal-progress-hub/internal/application/query"
	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
	"github.com/seal-hub/seal-progress-hub/internal/infrastructure/persistence/memory"
)

func TestGetSeal(t *testing.T) {
	ctx := context.Background()
	progressRepo := memory.NewProgressRepository()
	complete(t, progressRepo, aliceID, objHello)

	handler := query.NewGetSealHandler(testCatalogRepo(), progressRepo)

	result, err := handler.Handle(ctx, query.GetSealQuery{UserID: aliceID, SealSlug: "go-basics"})
	require.NoError(t, err)

	assert.Equal(t, "go-basics", result.Slug)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Done)
	assert.False(t, result.Earned)

	// Objectives come back in display order with per-objective completion.
	require.Len(t, result.Objectives, 2)
	assert.Equal(t, objHello, result.Objectives[0].ID)
	assert.True(t, result.Objectives[0].Completed)
	assert.Equal(t, objVars, result.Objectives[1].ID)
	assert.False(t, result.Objectives[1].Completed)
}

func TestGetSeal_NormalizesLookupInput(t *testing.T) {
	ctx := context.Background()
	progressRepo := memory.NewProgressRepository()
	complete(t, progressRepo, aliceID, objHello)

	handler := query.NewGetSealHandler(testCatalogRepo(), progressRepo)

	// The validator accepts padded, mixed-case input; the lookup must then
	// resolve against the canonical forms, progress included.
	result, err := handler.Handle(ctx, query.GetSealQuery{
		UserID:   strings.ToUpper(aliceID),
		SealSlug: " Go-Basics ",
	})
	require.NoError(t, err)
	assert.Equal(t, "go-basics", result.Slug)
	assert.Equal(t, 1, result.Done)
}

func TestGetSeal_UnknownSlug(t *testing.T) {
	ctx := context.Background()
	handler := query.NewGetSealHandler(testCatalogRepo(), memory.NewProgressRepository())

	_, err := handler.Handle(ctx, query.GetSealQuery{UserID: aliceID, SealSlug: "no-such-seal"})
	assert.ErrorIs(t, err, shared.ErrSealNotFound)
}

func TestListSeals(t *testing.T) {
	ctx := context.Background()
	progressRepo := memory.NewProgressRepository()
	complete(t, progressRepo, aliceID, objHello)
	complete(t, progressRepo, aliceID, objVars)

	handler := query.NewListSealsHandler(testCatalogRepo(), progressRepo)

	result, err := handler.Handle(ctx, query.ListSealsQuery{UserID: aliceID})
	require.NoError(t, err)
	require.Len(t, result.Seals, 1)

	seal := result.Seals[0]
	assert.Equal(t, "go-basics", seal.Slug)
	assert.Equal(t, 2, seal.Total)
	assert.Equal(t, 2, seal.Done)
	assert.True(t, seal.Earned)
}

func TestListSeals_NoProgress(t *testing.T) {
	ctx := context.Background()
	handler := query.NewListSealsHandler(testCatalogRepo(), memory.NewProgressRepository())

	result, err := handler.Handle(ctx, query.ListSealsQuery{UserID: aliceID})
	require.NoError(t, err)
	require.Len(t, result.Seals, 1)
	assert.Equal(t, 0, result.Seals[0].Done)
	assert.False(t, result.Seals[0].Earned)
}
