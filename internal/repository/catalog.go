package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/PackBattle_Go/internal/domain"
)

// Catalog defines read access to boxes and their drawable entries.
// GetBox returns (nil, nil) when the box does not exist.
type Catalog interface {
	GetBox(ctx context.Context, id uuid.UUID) (*domain.Box, error)
	ListBoxes(ctx context.Context) ([]domain.Box, error)
	// GetCatalogEntries returns entries in a stable order (position, then id)
	GetCatalogEntries(ctx context.Context, boxID uuid.UUID) ([]domain.CatalogEntry, error)
	UpsertBox(ctx context.Context, box *domain.Box) error
}
