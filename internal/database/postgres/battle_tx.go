package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/osse101/PackBattle_Go/internal/domain"
)

// battleTx implements repository.BattleTx
type battleTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *battleTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *battleTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// InsertBattle inserts a new battle row
func (t *battleTx) InsertBattle(ctx context.Context, b *domain.Battle) error {
	query := `
		INSERT INTO battles (battle_id, creator_id, box_id, status, mode, rounds, slots_per_round,
		                     max_participants, entry_fee, is_shared, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::numeric, $10, $11)
	`
	_, err := t.tx.Exec(ctx, query, b.ID, b.CreatorID, b.BoxID, string(b.Status), string(b.Mode),
		b.Rounds, b.SlotsPerRound, b.MaxParticipants, b.EntryFee.String(), b.Shared, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert battle: %w", err)
	}
	return nil
}

// GetBattleForUpdate loads a battle and locks its row until the transaction ends
func (t *battleTx) GetBattleForUpdate(ctx context.Context, id uuid.UUID) (*domain.Battle, error) {
	return getBattle(ctx, t.tx, id, true)
}

// InsertParticipant seats a participant after the ones already present.
// Callers hold the battle row lock, so seat numbers cannot race.
func (t *battleTx) InsertParticipant(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO battle_participants (participant_id, battle_id, user_id, seat, is_bot, is_ready, joined_at)
		VALUES ($1, $2, $3, (SELECT COUNT(*) FROM battle_participants WHERE battle_id = $2), $4, $5, $6)
	`
	_, err := t.tx.Exec(ctx, query, p.ID, p.BattleID, p.UserID, p.IsBot, p.Ready, p.JoinedAt)
	if err != nil {
		if isUniqueViolation(err, constraintParticipantUser) {
			return domain.ErrAlreadyJoined
		}
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

// SetParticipantReady updates a participant's readiness flag
func (t *battleTx) SetParticipantReady(ctx context.Context, participantID uuid.UUID, ready bool) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE battle_participants SET is_ready = $2 WHERE participant_id = $1`,
		participantID, ready)
	if err != nil {
		return fmt.Errorf("failed to set readiness: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotParticipant
	}
	return nil
}

// CreateBotUser returns the bot account with the given name, creating it on
// first use. A human account holding the name is never reused.
func (t *battleTx) CreateBotUser(ctx context.Context, username string) (*domain.User, error) {
	query := `
		INSERT INTO users (username, role, is_bot)
		VALUES ($1, $2, TRUE)
		ON CONFLICT (username) DO UPDATE SET updated_at = NOW()
		WHERE users.is_bot
		RETURNING ` + userColumns
	user, err := scanUser(t.tx.QueryRow(ctx, query, username, string(domain.RoleUser)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("username %q belongs to a human account", username)
		}
		return nil, fmt.Errorf("failed to create bot user: %w", err)
	}
	return user, nil
}

// AdjustBalance adds delta to a balance. A debit that would leave the
// balance negative fails with ErrInsufficientFunds and changes nothing.
func (t *battleTx) AdjustBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error {
	query := `
		UPDATE users
		SET balance = balance + $2::numeric, updated_at = NOW()
		WHERE user_id = $1 AND balance + $2::numeric >= 0
	`
	tag, err := t.tx.Exec(ctx, query, userID, delta.String())
	if err != nil {
		return fmt.Errorf("failed to adjust balance: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE user_id = $1)`, userID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return domain.ErrUserNotFound
	}
	return domain.ErrInsufficientFunds
}

// DeleteBattle removes a battle; participants go with it
func (t *battleTx) DeleteBattle(ctx context.Context, id uuid.UUID) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM battles WHERE battle_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete battle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBattleNotFound
	}
	return nil
}

// UpdateBattleStatusIfMatches performs a compare-and-swap on the battle
// status and returns the rows affected (0 when the status did not match).
// Moving into IN_PROGRESS also stamps started_at.
func (t *battleTx) UpdateBattleStatusIfMatches(ctx context.Context, id uuid.UUID, expected, next domain.BattleStatus, at time.Time) (int64, error) {
	query := `
		UPDATE battles
		SET status = $3::text,
		    started_at = CASE WHEN $3::text = 'IN_PROGRESS' THEN $4 ELSE started_at END
		WHERE battle_id = $1 AND status = $2
	`
	tag, err := t.tx.Exec(ctx, query, id, string(expected), string(next), at)
	if err != nil {
		return 0, fmt.Errorf("failed to update battle status: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SaveDraws mints one owned card per record for the drawing participant's
// user and records the pull, preserving record order. It returns the
// persisted draws in the same order.
func (t *battleTx) SaveDraws(ctx context.Context, battleID uuid.UUID, records []domain.DrawRecord, owners map[uuid.UUID]uuid.UUID) ([]domain.Draw, error) {
	if len(records) == 0 {
		return nil, nil
	}

	draws := make([]domain.Draw, len(records))
	batch := &pgx.Batch{}
	for i, r := range records {
		owner, ok := owners[r.ParticipantID]
		if !ok {
			return nil, fmt.Errorf("%w: no owner for participant %s", domain.ErrNotParticipant, r.ParticipantID)
		}
		draws[i] = domain.Draw{
			ID:             uuid.New(),
			BattleID:       battleID,
			ParticipantID:  r.ParticipantID,
			CatalogEntryID: r.CatalogEntryID,
			CardID:         uuid.New(),
			Round:          r.Round,
			Value:          r.Value,
			OwnerID:        owner,
		}
		d := draws[i]
		batch.Queue(`INSERT INTO user_cards (card_id, user_id, catalog_entry_id) VALUES ($1, $2, $3)`,
			d.CardID, d.OwnerID, d.CatalogEntryID)
		batch.Queue(`INSERT INTO battle_pulls (pull_id, battle_id, participant_id, catalog_entry_id, card_id, round, seq, value)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			d.ID, battleID, d.ParticipantID, d.CatalogEntryID, d.CardID, d.Round, i, d.Value)
	}

	if err := t.execBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to save draws: %w", err)
	}
	return draws, nil
}

// UpdateParticipantTotals stores the summed draw value of each participant
func (t *battleTx) UpdateParticipantTotals(ctx context.Context, totals map[uuid.UUID]float64, roundsCompleted int) error {
	batch := &pgx.Batch{}
	for participantID, total := range totals {
		batch.Queue(`UPDATE battle_participants SET total_value = $2, rounds_completed = $3 WHERE participant_id = $1`,
			participantID, total, roundsCompleted)
	}
	if err := t.execBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to update participant totals: %w", err)
	}
	return nil
}

// TransferCards moves ownership of every given card to ownerID
func (t *battleTx) TransferCards(ctx context.Context, cardIDs []uuid.UUID, ownerID uuid.UUID) error {
	if len(cardIDs) == 0 {
		return nil
	}
	tag, err := t.tx.Exec(ctx, `UPDATE user_cards SET user_id = $2 WHERE card_id = ANY($1)`, cardIDs, ownerID)
	if err != nil {
		return fmt.Errorf("failed to transfer cards: %w", err)
	}
	if tag.RowsAffected() != int64(len(cardIDs)) {
		return fmt.Errorf("%w: moved %d of %d", ErrCardCountMismatch, tag.RowsAffected(), len(cardIDs))
	}
	return nil
}

func (t *battleTx) execBatch(ctx context.Context, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	br := t.tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return err
		}
	}
	return br.Close()
}
