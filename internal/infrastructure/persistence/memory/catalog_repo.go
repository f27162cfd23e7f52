package memory

import (
	"context"

	"github.com/seal-hub/seal-progress-hub/internal/domain/catalog"
)

// CatalogRepository implements catalog.Repository over a fixed snapshot.
type CatalogRepository struct {
	snapshot *catalog.Catalog
}

// NewCatalogRepository creates a repository serving the given rows.
func NewCatalogRepository(seals []catalog.Seal, objectives []catalog.Objective) *CatalogRepository {
	return &CatalogRepository{snapshot: catalog.New(seals, objectives)}
}

// Load returns the snapshot.
func (r *CatalogRepository) Load(_ context.Context) (*catalog.Catalog, error) {
	return r.snapshot, nil
}
