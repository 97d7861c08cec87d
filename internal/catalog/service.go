package catalog

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/logger"
	"github.com/osse101/PackBattle_Go/internal/repository"
)

// Service serves boxes with their catalogs loaded. Catalogs change rarely,
// so loaded boxes are cached until they expire or are invalidated.
type Service interface {
	GetBox(ctx context.Context, id uuid.UUID) (*domain.Box, error)
	ListBoxes(ctx context.Context) ([]domain.Box, error)
	SaveBox(ctx context.Context, box *domain.Box) error
	Invalidate(id uuid.UUID)
	Stats() CacheStats
}

type service struct {
	repo  repository.Catalog
	cache *boxCache
}

// NewService creates a caching catalog service
func NewService(repo repository.Catalog, cfg CacheConfig) Service {
	return &service{repo: repo, cache: newBoxCache(cfg)}
}

// GetBox returns the box with its entries in draw order, or (nil, nil)
// when it does not exist
func (s *service) GetBox(ctx context.Context, id uuid.UUID) (*domain.Box, error) {
	if box, ok := s.cache.Get(id); ok {
		return box, nil
	}

	box, err := s.repo.GetBox(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetBox, err)
	}
	if box == nil {
		return nil, nil
	}

	entries, err := s.repo.GetCatalogEntries(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetEntries, err)
	}
	box.Entries = entries

	s.cache.Set(box)
	logger.FromContext(ctx).Debug(LogMsgBoxCached, "boxID", id, "entries", len(entries))
	return box, nil
}

// ListBoxes returns every box without entries
func (s *service) ListBoxes(ctx context.Context) ([]domain.Box, error) {
	boxes, err := s.repo.ListBoxes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListBoxes, err)
	}
	return boxes, nil
}

// SaveBox writes a box and its entries, then drops any cached copy
func (s *service) SaveBox(ctx context.Context, box *domain.Box) error {
	if err := validateBox(box); err != nil {
		return err
	}
	if err := s.repo.UpsertBox(ctx, box); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToSaveBox, err)
	}
	s.cache.Invalidate(box.ID)
	return nil
}

func (s *service) Invalidate(id uuid.UUID) {
	s.cache.Invalidate(id)
}

func (s *service) Stats() CacheStats {
	return s.cache.Stats()
}

func validateBox(box *domain.Box) error {
	if box.ID == uuid.Nil || box.Name == "" {
		return fmt.Errorf("%w: box needs an id and a name", domain.ErrInvalidInput)
	}
	if box.CardsPerPack < 0 {
		return fmt.Errorf("%w: cards per pack must not be negative", domain.ErrInvalidInput)
	}
	for _, e := range box.Entries {
		if e.Weight < 0 || math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return fmt.Errorf("%w: entry %q", domain.ErrInvalidWeight, e.Name)
		}
	}
	return nil
}
