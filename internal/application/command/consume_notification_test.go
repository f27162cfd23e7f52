package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seal-hub/seal-progress-hub/internal/application/command"
	"github.com/seal-hub/seal-progress-hub/internal/domain/notification"
	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
	"github.com/seal-hub/seal-progress-hub/internal/infrastructure/persistence/memory"
)

func TestConsumeEarnedNotification_PrematureCallDoesNotBurnTheFlag(t *testing.T) {
	ctx := context.Background()
	catalogRepo := testCatalogRepo()
	progressRepo := memory.NewProgressRepository()
	flags := memory.NewFlagStore()
	gate := notification.NewGate(flags, false)

	complete := command.NewCompleteObjectiveHandler(catalogRepo, progressRepo, nil)
	consume := command.NewConsumeEarnedNotificationHandler(catalogRepo, progressRepo, gate)

	cmd := command.ConsumeEarnedNotificationCommand{UserID: testUserID, SealSlug: "go-basics"}

	// Seal not yet earned: no notification and no flag consumed.
	result, err := consume.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, result.Earned)
	assert.False(t, result.Notify)

	_, err = complete.Handle(ctx, command.CompleteObjectiveCommand{UserID: testUserID, ObjectiveID: objHello})
	require.NoError(t, err)
	_, err = complete.Handle(ctx, command.CompleteObjectiveCommand{UserID: testUserID, ObjectiveID: objVars})
	require.NoError(t, err)

	// Now earned: the premature call above must not have consumed the signal.
	result, err = consume.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, result.Earned)
	assert.True(t, result.Notify)

	result, err = consume.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, result.Earned)
	assert.False(t, result.Notify)
}

func TestConsumeEarnedNotification_NormalizesSlug(t *testing.T) {
	ctx := context.Background()
	catalogRepo := testCatalogRepo()
	progressRepo := memory.NewProgressRepository()
	gate := notification.NewGate(memory.NewFlagStore(), false)

	complete := command.NewCompleteObjectiveHandler(catalogRepo, progressRepo, nil)
	consume := command.NewConsumeEarnedNotificationHandler(catalogRepo, progressRepo, gate)

	_, err := complete.Handle(ctx, command.CompleteObjectiveCommand{UserID: testUserID, ObjectiveID: objHello})
	require.NoError(t, err)
	_, err = complete.Handle(ctx, command.CompleteObjectiveCommand{UserID: testUserID, ObjectiveID: objVars})
	require.NoError(t, err)

	// A padded, mixed-case slug resolves to the same seal and the same
	// de-duplication flag as the canonical one.
	result, err := consume.Handle(ctx, command.ConsumeEarnedNotificationCommand{UserID: testUserID, SealSlug: " Go-Basics "})
	require.NoError(t, err)
	assert.True(t, result.Earned)
	assert.True(t, result.Notify)

	result, err = consume.Handle(ctx, command.ConsumeEarnedNotificationCommand{UserID: testUserID, SealSlug: "go-basics"})
	require.NoError(t, err)
	assert.False(t, result.Notify)
}

func TestConsumeEarnedNotification_UnknownSeal(t *testing.T) {
	ctx := context.Background()
	consume := command.NewConsumeEarnedNotificationHandler(
		testCatalogRepo(),
		memory.NewProgressRepository(),
		notification.NewGate(memory.NewFlagStore(), false),
	)

	_, err := consume.Handle(ctx, command.ConsumeEarnedNotificationCommand{
		UserID:   testUserID,
		SealSlug: "no-such-seal",
	})
	assert.ErrorIs(t, err, shared.ErrSealNotFound)
}
