// Package query contains read operations following the CQRS pattern.
// Queries never modify state - they only read and return data. Reads are not
// transactionally consistent with in-flight completions; because completion
// is monotonic, a stale read only ever under-reports progress.
package query

import (
	"context"

	"github.com/seal-hub/seal-progress-hub/internal/domain/catalog"
	"github.com/seal-hub/seal-progress-hub/internal/domain/progress"
	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET SEAL QUERY
// One seal with its objectives in display order and the user's per-objective
// completion. Backs the seal detail page.
// ══════════════════════════════════════════════════════════════════════════════

// GetSealQuery identifies the seal and the viewing user.
type GetSealQuery struct {
	UserID   string
	SealSlug string
}

// Validate validates the query parameters.
func (q GetSealQuery) Validate() error {
	if _, err := shared.NewUserID(q.UserID); err != nil {
		return err
	}
	if _, err := shared.NewSlug(q.SealSlug); err != nil {
		return err
	}
	return nil
}

// ObjectiveDTO is one objective row with the viewer's completion state.
type ObjectiveDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	SortOrder   int    `json:"sort_order"`
	Completed   bool   `json:"completed"`
}

// GetSealResult is the seal detail payload.
type GetSealResult struct {
	SealID      string         `json:"seal_id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Total       int            `json:"total"`
	Done        int            `json:"done"`
	Earned      bool           `json:"earned"`
	Objectives  []ObjectiveDTO `json:"objectives"`
}

// GetSealHandler handles seal detail queries.
type GetSealHandler struct {
	catalogRepo  catalog.Repository
	progressRepo progress.Repository
}

// NewGetSealHandler creates a new handler.
func NewGetSealHandler(catalogRepo catalog.Repository, progressRepo progress.Repository) *GetSealHandler {
	return &GetSealHandler{catalogRepo: catalogRepo, progressRepo: progressRepo}
}

// Handle executes the query.
func (h *GetSealHandler) Handle(ctx context.Context, q GetSealQuery) (*GetSealResult, error) {
	if err := q.Validate(); err != nil {
		return nil, shared.WrapError("query", "GetSeal", shared.ErrValidation, "invalid query", err)
	}

	// Lookups use the canonical forms, not the raw query fields.
	userID, _ := shared.NewUserID(q.UserID)
	slug, _ := shared.NewSlug(q.SealSlug)

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

	sealProgress := progress.ComputeSealProgress(cat, completed, seal.ID)

	objectives := cat.Objectives(seal.ID)
	dtos := make([]ObjectiveDTO, 0, len(objectives))
	for _, o := range objectives {
		dtos = append(dtos, ObjectiveDTO{
			ID:          o.ID.String(),
			Title:       o.Title,
			Description: o.Description,
			SortOrder:   o.SortOrder,
			Completed:   completed.Has(o.ID),
		})
	}

	return &GetSealResult{
		SealID:      seal.ID.String(),
		Slug:        seal.Slug.String(),
		Name:        seal.Name,
		Description: seal.Description,
		Total:       sealProgress.Total,
		Done:        sealProgress.Done,
		Earned:      sealProgress.Earned(),
		Objectives:  dtos,
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// LIST SEALS QUERY
// All seals in creation order with the user's per-seal progress. Backs the
// seals index page.
// ══════════════════════════════════════════════════════════════════════════════

// ListSealsQuery identifies the viewing user.
type ListSealsQuery struct {
	UserID string
}

// Validate validates the query parameters.
func (q ListSealsQuery) Validate() error {
	_, err := shared.NewUserID(q.UserID)
	return err
}

// SealProgressDTO is one seal row with aggregate progress.
type SealProgressDTO struct {
	SealID      string `json:"seal_id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Total       int    `json:"total"`
	Done        int    `json:"done"`
	Earned      bool   `json:"earned"`
}

// ListSealsResult is the seals index payload.
type ListSealsResult struct {
	Seals []SealProgressDTO `json:"seals"`
}

// ListSealsHandler handles seals index queries.
type ListSealsHandler struct {
	catalogRepo  catalog.Repository
	progressRepo progress.Repository
}

// NewListSealsHandler creates a new handler.
func NewListSealsHandler(catalogRepo catalog.Repository, progressRepo progress.Repository) *ListSealsHandler {
	return &ListSealsHandler{catalogRepo: catalogRepo, progressRepo: progressRepo}
}

// Handle executes the query.
func (h *ListSealsHandler) Handle(ctx context.Context, q ListSealsQuery) (*ListSealsResult, error) {
	if err := q.Validate(); err != nil {
		return nil, shared.WrapError("query", "ListSeals", shared.ErrValidation, "invalid query", err)
	}

	userID, _ := shared.NewUserID(q.UserID)

	cat, err := h.catalogRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := h.progressRepo.CompletedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	seals := cat.Seals()
	dtos := make([]SealProgressDTO, 0, len(seals))
	for _, s := range seals {
		p := progress.ComputeSealProgress(cat, completed, s.ID)
		dtos = append(dtos, SealProgressDTO{
			SealID:      s.ID.String(),
			Slug:        s.Slug.String(),
			Name:        s.Name,
			Description: s.Description,
			Total:       p.Total,
			Done:        p.Done,
			Earned:      p.Earned(),
		})
	}

	return &ListSealsResult{Seals: dtos}, nil
}
