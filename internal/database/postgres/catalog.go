package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/logger"
)

const boxColumns = `box_id, name, image_url, price::text, cards_per_pack`

// CatalogRepository implements repository.Catalog for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// GetBox returns the box without its entries, or (nil, nil) if there is none
func (r *CatalogRepository) GetBox(ctx context.Context, id uuid.UUID) (*domain.Box, error) {
	box, err := scanBox(r.db.QueryRow(ctx, `SELECT `+boxColumns+` FROM boxes WHERE box_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get box: %w", err)
	}
	return box, nil
}

// ListBoxes returns every box ordered by name
func (r *CatalogRepository) ListBoxes(ctx context.Context) ([]domain.Box, error) {
	rows, err := r.db.Query(ctx, `SELECT `+boxColumns+` FROM boxes ORDER BY name, box_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list boxes: %w", err)
	}
	defer rows.Close()

	var boxes []domain.Box
	for rows.Next() {
		box, err := scanBox(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan box: %w", err)
		}
		boxes = append(boxes, *box)
	}
	return boxes, rows.Err()
}

// GetCatalogEntries returns the entries of a box by position, then id
func (r *CatalogRepository) GetCatalogEntries(ctx context.Context, boxID uuid.UUID) ([]domain.CatalogEntry, error) {
	query := `
		SELECT entry_id, box_id, name, image_url, rarity, weight, value
		FROM catalog_entries
		WHERE box_id = $1
		ORDER BY position, entry_id
	`
	rows, err := r.db.Query(ctx, query, boxID)
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.CatalogEntry
	for rows.Next() {
		var e domain.CatalogEntry
		if err := rows.Scan(&e.ID, &e.BoxID, &e.Name, &e.ImageURL, &e.Rarity, &e.Weight, &e.Value); err != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpsertBox writes a box and its entries in one transaction. Entries keep
// the slice order as their draw position. Entries missing from the slice
// are left in place because owned cards may still reference them.
func (r *CatalogRepository) UpsertBox(ctx context.Context, box *domain.Box) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	boxQuery := `
		INSERT INTO boxes (box_id, name, image_url, price, cards_per_pack)
		VALUES ($1, $2, $3, $4::numeric, $5)
		ON CONFLICT (box_id) DO UPDATE
		SET name = EXCLUDED.name,
		    image_url = EXCLUDED.image_url,
		    price = EXCLUDED.price,
		    cards_per_pack = EXCLUDED.cards_per_pack
	`
	if _, err := tx.Exec(ctx, boxQuery, box.ID, box.Name, box.ImageURL, box.Price.String(), box.CardsPerPack); err != nil {
		return fmt.Errorf("failed to upsert box: %w", err)
	}

	entryQuery := `
		INSERT INTO catalog_entries (entry_id, box_id, position, name, image_url, rarity, weight, value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (entry_id) DO UPDATE
		SET position = EXCLUDED.position,
		    name = EXCLUDED.name,
		    image_url = EXCLUDED.image_url,
		    rarity = EXCLUDED.rarity,
		    weight = EXCLUDED.weight,
		    value = EXCLUDED.value
	`
	for i := range box.Entries {
		e := &box.Entries[i]
		if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		e.BoxID = box.ID
		if _, err := tx.Exec(ctx, entryQuery, e.ID, box.ID, i, e.Name, e.ImageURL, e.Rarity, e.Weight, e.Value); err != nil {
			return fmt.Errorf("failed to upsert catalog entry %q: %w", e.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit box: %w", err)
	}
	logger.FromContext(ctx).Info(LogMsgBoxUpserted, "boxID", box.ID, "entries", len(box.Entries))
	return nil
}

func scanBox(row pgx.Row) (*domain.Box, error) {
	var (
		b     domain.Box
		price string
	)
	if err := row.Scan(&b.ID, &b.Name, &b.ImageURL, &price, &b.CardsPerPack); err != nil {
		return nil, err
	}
	var err error
	if b.Price, err = parseDecimal(price); err != nil {
		return nil, err
	}
	return &b, nil
}
