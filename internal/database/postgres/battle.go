package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/repository"
)

const battleColumns = `battle_id, creator_id, box_id, status, mode, rounds, slots_per_round,
	max_participants, entry_fee::text, total_prize::text, winner_participant_id,
	featured_participant_id, is_shared, created_at, started_at, finished_at`

const participantQuery = `
	SELECT p.participant_id, p.battle_id, p.user_id, u.username, p.is_bot, p.is_ready,
	       p.total_value, p.rounds_completed, p.joined_at
	FROM battle_participants p
	JOIN users u ON u.user_id = p.user_id
	WHERE p.battle_id = ANY($1)
	ORDER BY p.battle_id, p.seat
`

// BattleRepository implements repository.Battle for PostgreSQL
type BattleRepository struct {
	*UserRepository
	db *pgxpool.Pool
}

// NewBattleRepository creates a new BattleRepository
func NewBattleRepository(db *pgxpool.Pool) *BattleRepository {
	return &BattleRepository{
		UserRepository: NewUserRepository(db),
		db:             db,
	}
}

// GetBattle returns a battle with its participants in seat order, or (nil, nil)
func (r *BattleRepository) GetBattle(ctx context.Context, id uuid.UUID) (*domain.Battle, error) {
	return getBattle(ctx, r.db, id, false)
}

// ListBattles returns the newest battles, filtered by status when one is given
func (r *BattleRepository) ListBattles(ctx context.Context, status domain.BattleStatus, limit int) ([]domain.Battle, error) {
	query := `SELECT ` + battleColumns + `
		FROM battles
		WHERE $1 = '' OR status = $1
		ORDER BY created_at DESC, battle_id
		LIMIT $2`
	rows, err := r.db.Query(ctx, query, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list battles: %w", err)
	}
	battles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Battle, error) {
		b, err := scanBattle(row)
		if err != nil {
			return domain.Battle{}, err
		}
		return *b, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan battles: %w", err)
	}
	if len(battles) == 0 {
		return battles, nil
	}

	ptrs := make([]*domain.Battle, len(battles))
	for i := range battles {
		ptrs[i] = &battles[i]
	}
	if err := loadParticipants(ctx, r.db, ptrs...); err != nil {
		return nil, err
	}
	return battles, nil
}

// ListExpiredLobbies returns ids of WAITING battles created before cutoff, oldest first
func (r *BattleRepository) ListExpiredLobbies(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT battle_id FROM battles
		WHERE status = $1 AND created_at < $2
		ORDER BY created_at
		LIMIT $3`, string(domain.BattleStatusWaiting), cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired lobbies: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("failed to scan expired lobbies: %w", err)
	}
	return ids, nil
}

// GetBattleDraws returns the persisted pulls of a battle in draw order with
// the current owner of each card
func (r *BattleRepository) GetBattleDraws(ctx context.Context, battleID uuid.UUID) ([]domain.Draw, error) {
	query := `
		SELECT bp.pull_id, bp.battle_id, bp.participant_id, bp.catalog_entry_id, bp.card_id,
		       bp.round, bp.value, uc.user_id, ce.name, ce.rarity, ce.image_url
		FROM battle_pulls bp
		JOIN user_cards uc ON uc.card_id = bp.card_id
		JOIN catalog_entries ce ON ce.entry_id = bp.catalog_entry_id
		WHERE bp.battle_id = $1
		ORDER BY bp.seq
	`
	rows, err := r.db.Query(ctx, query, battleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get battle draws: %w", err)
	}
	defer rows.Close()

	var draws []domain.Draw
	for rows.Next() {
		var d domain.Draw
		if err := rows.Scan(&d.ID, &d.BattleID, &d.ParticipantID, &d.CatalogEntryID, &d.CardID,
			&d.Round, &d.Value, &d.OwnerID, &d.CardName, &d.Rarity, &d.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan draw: %w", err)
		}
		draws = append(draws, d)
	}
	return draws, rows.Err()
}

// CreditBalance adds amount to a user's balance outside any transaction
func (r *BattleRepository) CreditBalance(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET balance = balance + $2::numeric, updated_at = NOW() WHERE user_id = $1`,
		userID, amount.String())
	if err != nil {
		return fmt.Errorf("failed to credit balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// FinishBattle records the outcome and marks an IN_PROGRESS battle FINISHED
func (r *BattleRepository) FinishBattle(ctx context.Context, b *domain.Battle) error {
	query := `
		UPDATE battles
		SET status = $2,
		    total_prize = $3::numeric,
		    winner_participant_id = $4,
		    featured_participant_id = $5,
		    is_shared = $6,
		    finished_at = $7
		WHERE battle_id = $1 AND status = $8
	`
	tag, err := r.db.Exec(ctx, query,
		b.ID,
		string(domain.BattleStatusFinished),
		b.TotalPrize.String(),
		b.WinnerID,
		b.FeaturedParticipantID,
		b.Shared,
		b.FinishedAt,
		string(domain.BattleStatusInProgress))
	if err != nil {
		return fmt.Errorf("failed to finish battle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrBattleNotInProgress
	}
	return nil
}

// BeginBattleTx starts a transaction and returns a BattleTx for battle operations
func (r *BattleRepository) BeginBattleTx(ctx context.Context) (repository.BattleTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin battle transaction: %w", err)
	}
	return &battleTx{tx: tx}, nil
}

func getBattle(ctx context.Context, q querier, id uuid.UUID, forUpdate bool) (*domain.Battle, error) {
	query := `SELECT ` + battleColumns + ` FROM battles WHERE battle_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	b, err := scanBattle(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get battle: %w", err)
	}
	if err := loadParticipants(ctx, q, b); err != nil {
		return nil, err
	}
	return b, nil
}

// loadParticipants fills the participants of every given battle in one query
func loadParticipants(ctx context.Context, q querier, battles ...*domain.Battle) error {
	ids := make([]uuid.UUID, len(battles))
	byID := make(map[uuid.UUID]*domain.Battle, len(battles))
	for i, b := range battles {
		ids[i] = b.ID
		byID[b.ID] = b
	}

	rows, err := q.Query(ctx, participantQuery, ids)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.BattleID, &p.UserID, &p.Username, &p.IsBot, &p.Ready,
			&p.TotalValue, &p.RoundsCompleted, &p.JoinedAt); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		if b, ok := byID[p.BattleID]; ok {
			b.Participants = append(b.Participants, p)
		}
	}
	return rows.Err()
}

func scanBattle(row pgx.Row) (*domain.Battle, error) {
	var (
		b                     domain.Battle
		status, mode          string
		entryFee, totalPrize  string
		winnerID, featuredID  pgtype.UUID
		startedAt, finishedAt pgtype.Timestamptz
	)
	err := row.Scan(&b.ID, &b.CreatorID, &b.BoxID, &status, &mode, &b.Rounds, &b.SlotsPerRound,
		&b.MaxParticipants, &entryFee, &totalPrize, &winnerID,
		&featuredID, &b.Shared, &b.CreatedAt, &startedAt, &finishedAt)
	if err != nil {
		return nil, err
	}

	b.Status = domain.BattleStatus(status)
	b.Mode = domain.BattleMode(mode)
	b.WinnerID = ptrUUID(winnerID)
	b.FeaturedParticipantID = ptrUUID(featuredID)
	b.StartedAt = ptrTime(startedAt)
	b.FinishedAt = ptrTime(finishedAt)
	if b.EntryFee, err = parseDecimal(entryFee); err != nil {
		return nil, err
	}
	if b.TotalPrize, err = parseDecimal(totalPrize); err != nil {
		return nil, err
	}
	return &b, nil
}
