package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PackBattle_Go/internal/domain"
)

// Battle defines the interface for data access required by the battle service.
// Lookups return (nil, nil) when the row does not exist.
type Battle interface {
	User

	GetBattle(ctx context.Context, id uuid.UUID) (*domain.Battle, error)
	ListBattles(ctx context.Context, status domain.BattleStatus, limit int) ([]domain.Battle, error)
	GetBattleDraws(ctx context.Context, battleID uuid.UUID) ([]domain.Draw, error)
	// ListExpiredLobbies returns ids of WAITING battles created before cutoff, oldest first
	ListExpiredLobbies(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error)

	// Post-commit settlement steps. These run outside the settlement
	// transaction and are never retried automatically.
	CreditBalance(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error
	FinishBattle(ctx context.Context, battle *domain.Battle) error

	// Transaction support
	BeginBattleTx(ctx context.Context) (BattleTx, error)
}

// BattleTx extends Tx with battle-specific transactional operations.
// Every write of a settlement happens through one BattleTx so that a
// failure leaves no partial state behind.
type BattleTx interface {
	Tx // Commit, Rollback

	// Lobby operations
	InsertBattle(ctx context.Context, battle *domain.Battle) error
	GetBattleForUpdate(ctx context.Context, id uuid.UUID) (*domain.Battle, error)
	InsertParticipant(ctx context.Context, participant *domain.Participant) error
	SetParticipantReady(ctx context.Context, participantID uuid.UUID, ready bool) error
	CreateBotUser(ctx context.Context, username string) (*domain.User, error)
	AdjustBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error
	DeleteBattle(ctx context.Context, id uuid.UUID) error

	// Settlement operations
	UpdateBattleStatusIfMatches(ctx context.Context, id uuid.UUID, expected, next domain.BattleStatus, at time.Time) (int64, error)
	SaveDraws(ctx context.Context, battleID uuid.UUID, records []domain.DrawRecord, owners map[uuid.UUID]uuid.UUID) ([]domain.Draw, error)
	UpdateParticipantTotals(ctx context.Context, totals map[uuid.UUID]float64, roundsCompleted int) error
	TransferCards(ctx context.Context, cardIDs []uuid.UUID, ownerID uuid.UUID) error
}
