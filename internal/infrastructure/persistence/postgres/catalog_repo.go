package postgres

import (
	"context"
	"fmt"

	"github.com/seal-hub/seal-progress-hub/internal/domain/catalog"
	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// CatalogRepository implements catalog.Repository for PostgreSQL.
type CatalogRepository struct {
	conn *Connection
}

// NewCatalogRepository creates a new CatalogRepository.
func NewCatalogRepository(conn *Connection) *CatalogRepository {
	return &CatalogRepository{conn: conn}
}

// Load returns a snapshot of all seals and their objectives.
func (r *CatalogRepository) Load(ctx context.Context) (*catalog.Catalog, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT id, slug, name, COALESCE(description, ''), created_at
		FROM seals
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load seals: %w", err)
	}
	defer rows.Close()

	var seals []catalog.Seal
	for rows.Next() {
		var s catalog.Seal
		var id, slug string
		if err := rows.Scan(&id, &slug, &s.Name, &s.Description, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan seal: %w", err)
		}
		s.ID = shared.SealID(id)
		s.Slug = shared.Slug(slug)
		seals = append(seals, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read seals: %w", err)
	}

	objRows, err := r.conn.Query(ctx, `
		SELECT id, seal_id, title, COALESCE(description, ''), sort_order, created_at
		FROM seal_objectives
		ORDER BY seal_id, sort_order ASC, created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load objectives: %w", err)
	}
	defer objRows.Close()

	var objectives []catalog.Objective
	for objRows.Next() {
		var o catalog.Objective
		var id, sealID string
		if err := objRows.Scan(&id, &sealID, &o.Title, &o.Description, &o.SortOrder, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan objective: %w", err)
		}
		o.ID = shared.ObjectiveID(id)
		o.SealID = shared.SealID(sealID)
		objectives = append(objectives, o)
	}
	if err := objRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read objectives: %w", err)
	}

	return catalog.New(seals, objectives), nil
}
