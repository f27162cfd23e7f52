// Package catalog contains the static achievement catalog: Seals and the
// Objectives they own. The catalog is created by administration and is
// read-only to this service; everything here is an in-memory view of it.
package catalog

import (
	"sort"
	"time"

	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// Seal is a named achievement group composed of ordered objectives.
// A seal is earned by a user once every objective under it is completed.
type Seal struct {
	// ID is the system identifier.
	ID shared.SealID

	// Slug is the human-stable key used in URLs and notification flags.
	Slug shared.Slug

	// Name is the display name.
	Name string

	// Description is optional flavor text.
	Description string

	// CreatedAt drives the default listing order. It has no effect on ranking.
	CreatedAt time.Time
}

// Objective is an atomic unit of progress belonging to exactly one seal.
// Objectives never move between seals.
type Objective struct {
	// ID is the system identifier.
	ID shared.ObjectiveID

	// SealID is the owning seal.
	SealID shared.SealID

	// Title is the display title.
	Title string

	// Description is optional flavor text.
	Description string

	// SortOrder positions the objective within its seal. Unique per seal;
	// equal values fall back to creation order.
	SortOrder int

	// CreatedAt breaks sort-order ties.
	CreatedAt time.Time
}

// Catalog is an immutable snapshot of all seals and objectives, indexed for
// the lookups the aggregation and query paths need. It is cheap to rebuild
// on every load because the catalog is bounded and small.
type Catalog struct {
	seals      []Seal
	bySlug     map[shared.Slug]*Seal
	bySealID   map[shared.SealID]*Seal
	objectives map[shared.SealID][]Objective
	byObjID    map[shared.ObjectiveID]*Objective
}

// New builds a catalog snapshot from raw seal and objective rows.
// Seals are ordered by creation; objectives by sort order, then creation.
func New(seals []Seal, objectives []Objective) *Catalog {
	c := &Catalog{
		seals:      make([]Seal, len(seals)),
		bySlug:     make(map[shared.Slug]*Seal, len(seals)),
		bySealID:   make(map[shared.SealID]*Seal, len(seals)),
		objectives: make(map[shared.SealID][]Objective),
		byObjID:    make(map[shared.ObjectiveID]*Objective, len(objectives)),
	}

	copy(c.seals, seals)
	sort.SliceStable(c.seals, func(i, j int) bool {
		return c.seals[i].CreatedAt.Before(c.seals[j].CreatedAt)
	})
	for i := range c.seals {
		s := &c.seals[i]
		c.bySlug[s.Slug] = s
		c.bySealID[s.ID] = s
	}

	for _, o := range objectives {
		// Objectives pointing at an unknown seal are dropped: they cannot
		// contribute to any seal's progress and must not inflate counts.
		if _, ok := c.bySealID[o.SealID]; !ok {
			continue
		}
		c.objectives[o.SealID] = append(c.objectives[o.SealID], o)
	}
	for id := range c.objectives {
		objs := c.objectives[id]
		sort.SliceStable(objs, func(i, j int) bool {
			if objs[i].SortOrder != objs[j].SortOrder {
				return objs[i].SortOrder < objs[j].SortOrder
			}
			return objs[i].CreatedAt.Before(objs[j].CreatedAt)
		})
		for i := range objs {
			c.byObjID[objs[i].ID] = &objs[i]
		}
	}

	return c
}

// Seals returns all seals in creation order.
func (c *Catalog) Seals() []Seal {
	return c.seals
}

// SealBySlug returns the seal with the given slug.
func (c *Catalog) SealBySlug(slug shared.Slug) (*Seal, bool) {
	s, ok := c.bySlug[slug]
	return s, ok
}

// SealByID returns the seal with the given ID.
func (c *Catalog) SealByID(id shared.SealID) (*Seal, bool) {
	s, ok := c.bySealID[id]
	return s, ok
}

// Objectives returns the seal's objectives in display order.
func (c *Catalog) Objectives(sealID shared.SealID) []Objective {
	return c.objectives[sealID]
}

// ObjectiveByID returns the objective with the given ID.
func (c *Catalog) ObjectiveByID(id shared.ObjectiveID) (*Objective, bool) {
	o, ok := c.byObjID[id]
	return o, ok
}

// HasObjective reports whether the objective exists in the catalog.
func (c *Catalog) HasObjective(id shared.ObjectiveID) bool {
	_, ok := c.byObjID[id]
	return ok
}

// ObjectiveCount returns the number of objectives under a seal.
func (c *Catalog) ObjectiveCount(sealID shared.SealID) int {
	return len(c.objectives[sealID])
}
