package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

const (
	sealOneID = shared.SealID("11111111-1111-4111-8111-111111111111")
	sealTwoID = shared.SealID("22222222-2222-4222-8222-222222222222")

	objA = shared.ObjectiveID("aaaaaaa1-aaaa-4aaa-8aaa-aaaaaaaaaaaa")
	objB = shared.ObjectiveID("bbbbbbb2-bbbb-4bbb-8bbb-bbbbbbbbbbbb")
	objC = shared.ObjectiveID("ccccccc3-cccc-4ccc-8ccc-cccccccccccc")
)

func TestNew_SealsOrderedByCreation(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cat := New([]Seal{
		{ID: sealTwoID, Slug: "later", Name: "Later", CreatedAt: base.Add(time.Hour)},
		{ID: sealOneID, Slug: "earlier", Name: "Earlier", CreatedAt: base},
	}, nil)

	seals := cat.Seals()
	require.Len(t, seals, 2)
	assert.Equal(t, shared.Slug("earlier"), seals[0].Slug)
	assert.Equal(t, shared.Slug("later"), seals[1].Slug)
}

func TestNew_ObjectivesOrderedBySortOrderThenCreation(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cat := New(
		[]Seal{{ID: sealOneID, Slug: "go-basics", Name: "Go Basics", CreatedAt: base}},
		[]Objective{
			{ID: objC, SealID: sealOneID, Title: "Third", SortOrder: 2, CreatedAt: base},
			{ID: objB, SealID: sealOneID, Title: "Second", SortOrder: 1, CreatedAt: base.Add(time.Minute)},
			{ID: objA, SealID: sealOneID, Title: "First", SortOrder: 1, CreatedAt: base},
		},
	)

	objectives := cat.Objectives(sealOneID)
	require.Len(t, objectives, 3)
	assert.Equal(t, objA, objectives[0].ID)
	assert.Equal(t, objB, objectives[1].ID)
	assert.Equal(t, objC, objectives[2].ID)
}

func TestNew_OrphanObjectivesDropped(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cat := New(
		[]Seal{{ID: sealOneID, Slug: "go-basics", Name: "Go Basics", CreatedAt: base}},
		[]Objective{
			{ID: objA, SealID: sealOneID, Title: "Kept", SortOrder: 1, CreatedAt: base},
			{ID: objB, SealID: sealTwoID, Title: "Orphan", SortOrder: 1, CreatedAt: base},
		},
	)

	assert.Equal(t, 1, cat.ObjectiveCount(sealOneID))
	assert.True(t, cat.HasObjective(objA))
	assert.False(t, cat.HasObjective(objB))
}

func TestCatalog_Lookups(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cat := New(
		[]Seal{{ID: sealOneID, Slug: "go-basics", Name: "Go Basics", CreatedAt: base}},
		[]Objective{{ID: objA, SealID: sealOneID, Title: "Hello", SortOrder: 1, CreatedAt: base}},
	)

	seal, ok := cat.SealBySlug("go-basics")
	require.True(t, ok)
	assert.Equal(t, sealOneID, seal.ID)

	seal, ok = cat.SealByID(sealOneID)
	require.True(t, ok)
	assert.Equal(t, shared.Slug("go-basics"), seal.Slug)

	objective, ok := cat.ObjectiveByID(objA)
	require.True(t, ok)
	assert.Equal(t, sealOneID, objective.SealID)

	_, ok = cat.SealBySlug("missing")
	assert.False(t, ok)

	_, ok = cat.ObjectiveByID(objC)
	assert.False(t, ok)
}
