package bootstrap

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/logger"
	"github.com/osse101/PackBattle_Go/internal/utils"
)

// BoxesConfig is the on-disk catalog seed
type BoxesConfig struct {
	Boxes []BoxConfig  `json:"boxes"`
	Users []UserConfig `json:"users,omitempty"`
}

// BoxConfig is one box in the seed file. IDs are fixed so re-syncing
// updates rows instead of duplicating them.
type BoxConfig struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	ImageURL     string          `json:"image_url"`
	Price        decimal.Decimal `json:"price"`
	CardsPerPack int             `json:"cards_per_pack"`
	Cards        []CardConfig    `json:"cards"`
}

// CardConfig is one catalog entry in the seed file
type CardConfig struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"image_url"`
	Rarity   string    `json:"rarity"`
	Weight   float64   `json:"weight"`
	Value    float64   `json:"value"`
}

// UserConfig is a development account created by the seed
type UserConfig struct {
	ID       uuid.UUID       `json:"id"`
	Username string          `json:"username"`
	Role     domain.UserRole `json:"role"`
	Balance  decimal.Decimal `json:"balance"`
}

// BoxSaver persists a box with its entries
type BoxSaver interface {
	SaveBox(ctx context.Context, box *domain.Box) error
}

// UserSaver persists a user account
type UserSaver interface {
	UpsertUser(ctx context.Context, user *domain.User) error
}

// BoxSource reads boxes back for export
type BoxSource interface {
	ListBoxes(ctx context.Context) ([]domain.Box, error)
	GetBox(ctx context.Context, id uuid.UUID) (*domain.Box, error)
}

// SyncResult counts what a sync wrote
type SyncResult struct {
	Boxes int
	Cards int
	Users int
}

// LoadBoxesConfig reads and validates a seed file
func LoadBoxesConfig(path string) (*BoxesConfig, error) {
	var cfg BoxesConfig
	if err := utils.LoadJSON(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadBoxes, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidBoxes, err)
	}
	return &cfg, nil
}

// Validate rejects seeds that would fail or be ambiguous in the database
func (c *BoxesConfig) Validate() error {
	seen := make(map[uuid.UUID]string)
	claim := func(id uuid.UUID, what string) error {
		if id == uuid.Nil {
			return fmt.Errorf("%w: %s has no id", domain.ErrInvalidInput, what)
		}
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("%w: id %s used by both %s and %s", domain.ErrInvalidInput, id, prev, what)
		}
		seen[id] = what
		return nil
	}

	for _, b := range c.Boxes {
		if err := claim(b.ID, "box "+b.Name); err != nil {
			return err
		}
		if len(b.Cards) == 0 {
			return fmt.Errorf("%w: box %s has no cards", domain.ErrEmptyCatalog, b.Name)
		}
		for _, card := range b.Cards {
			if err := claim(card.ID, "card "+card.Name); err != nil {
				return err
			}
			if card.Weight < 0 {
				return fmt.Errorf("%w: card %s", domain.ErrInvalidWeight, card.Name)
			}
		}
	}
	for _, u := range c.Users {
		if err := claim(u.ID, "user "+u.Username); err != nil {
			return err
		}
	}
	return nil
}

// SyncCatalog writes every box of the seed through the catalog service, then
// the seed users if a user store is given
func SyncCatalog(ctx context.Context, cfg *BoxesConfig, boxes BoxSaver, users UserSaver) (SyncResult, error) {
	logger.Info(LogMsgSyncingCatalog, "boxes", len(cfg.Boxes))

	var res SyncResult
	for _, bc := range cfg.Boxes {
		box := bc.toDomain()
		if err := boxes.SaveBox(ctx, box); err != nil {
			return res, fmt.Errorf("%s %s: %w", ErrMsgFailedSyncBox, bc.Name, err)
		}
		res.Boxes++
		res.Cards += len(box.Entries)
	}

	if users != nil {
		for _, uc := range cfg.Users {
			u := &domain.User{ID: uc.ID, Username: uc.Username, Role: uc.Role, Balance: uc.Balance}
			if err := users.UpsertUser(ctx, u); err != nil {
				return res, fmt.Errorf("failed to sync user %s: %w", uc.Username, err)
			}
			res.Users++
		}
	}

	logger.Info(LogMsgCatalogSynced, "boxes", res.Boxes, "cards", res.Cards, "users", res.Users)
	return res, nil
}

// ExportCatalog reads every box with its entries and writes them to path in
// the seed format. Users are not exported.
func ExportCatalog(ctx context.Context, src BoxSource, path string) (int, error) {
	summaries, err := src.ListBoxes(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedExportBoxes, err)
	}

	cfg := BoxesConfig{Boxes: make([]BoxConfig, 0, len(summaries))}
	for _, s := range summaries {
		box, err := src.GetBox(ctx, s.ID)
		if err != nil {
			return 0, fmt.Errorf("%s %s: %w", ErrMsgFailedExportBoxes, s.Name, err)
		}
		cfg.Boxes = append(cfg.Boxes, boxConfigFrom(box))
	}

	if err := utils.SaveJSON(path, cfg); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedExportBoxes, err)
	}
	logger.FromContext(ctx).Info(LogMsgCatalogExported, "path", path, "boxes", len(cfg.Boxes))
	return len(cfg.Boxes), nil
}

func boxConfigFrom(box *domain.Box) BoxConfig {
	bc := BoxConfig{
		ID:           box.ID,
		Name:         box.Name,
		ImageURL:     box.ImageURL,
		Price:        box.Price,
		CardsPerPack: box.CardsPerPack,
		Cards:        make([]CardConfig, len(box.Entries)),
	}
	for i, e := range box.Entries {
		bc.Cards[i] = CardConfig{
			ID:       e.ID,
			Name:     e.Name,
			ImageURL: e.ImageURL,
			Rarity:   e.Rarity,
			Weight:   e.Weight,
			Value:    e.Value,
		}
	}
	return bc
}

func (bc BoxConfig) toDomain() *domain.Box {
	box := &domain.Box{
		ID:           bc.ID,
		Name:         bc.Name,
		ImageURL:     bc.ImageURL,
		Price:        bc.Price,
		CardsPerPack: bc.CardsPerPack,
		Entries:      make([]domain.CatalogEntry, len(bc.Cards)),
	}
	for i, c := range bc.Cards {
		box.Entries[i] = domain.CatalogEntry{
			ID:       c.ID,
			BoxID:    bc.ID,
			Name:     c.Name,
			ImageURL: c.ImageURL,
			Rarity:   c.Rarity,
			Weight:   c.Weight,
			Value:    c.Value,
		}
	}
	return box
}
