package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BattleStatus represents the lifecycle state of a battle
type BattleStatus string

const (
	BattleStatusWaiting    BattleStatus = "WAITING"
	BattleStatusInProgress BattleStatus = "IN_PROGRESS"
	BattleStatusFinished   BattleStatus = "FINISHED"
)

// BattleMode selects how the winner is chosen and how cards are distributed.
// The set is closed: ParseBattleMode rejects anything else.
type BattleMode string

const (
	BattleModeHighestWins BattleMode = "HIGHEST_WINS"
	BattleModeLowestWins  BattleMode = "LOWEST_WINS"
	BattleModeShared      BattleMode = "SHARED"
	BattleModeJackpot     BattleMode = "JACKPOT"
)

// BattleModes lists every supported mode in display order
var BattleModes = []BattleMode{
	BattleModeHighestWins,
	BattleModeLowestWins,
	BattleModeShared,
	BattleModeJackpot,
}

// ParseBattleMode converts a raw mode string into a BattleMode
func ParseBattleMode(s string) (BattleMode, error) {
	m := BattleMode(s)
	if !m.Valid() {
		return "", ErrInvalidMode
	}
	return m, nil
}

// Valid reports whether m is one of the supported modes
func (m BattleMode) Valid() bool {
	switch m {
	case BattleModeHighestWins, BattleModeLowestWins, BattleModeShared, BattleModeJackpot:
		return true
	}
	return false
}

// IsShared reports whether the mode distributes cards across all participants
func (m BattleMode) IsShared() bool {
	return m == BattleModeShared
}

// Battle is the aggregate root of a card battle
type Battle struct {
	ID                    uuid.UUID       `json:"id"`
	CreatorID             uuid.UUID       `json:"creator_id"`
	BoxID                 uuid.UUID       `json:"box_id"`
	Status                BattleStatus    `json:"status"`
	Mode                  BattleMode      `json:"mode"`
	Rounds                int             `json:"rounds"`
	SlotsPerRound         int             `json:"slots_per_round"`
	MaxParticipants       int             `json:"max_participants"`
	EntryFee              decimal.Decimal `json:"entry_fee"`
	TotalPrize            decimal.Decimal `json:"total_prize"`
	WinnerID              *uuid.UUID      `json:"winner_id,omitempty"`
	FeaturedParticipantID *uuid.UUID      `json:"featured_participant_id,omitempty"`
	Shared                bool            `json:"shared"`
	CreatedAt             time.Time       `json:"created_at"`
	StartedAt             *time.Time      `json:"started_at,omitempty"`
	FinishedAt            *time.Time      `json:"finished_at,omitempty"`
	Participants          []Participant   `json:"participants,omitempty"`
	Draws                 []Draw          `json:"draws,omitempty"`
}

// IsFull reports whether every participant slot is taken
func (b *Battle) IsFull() bool {
	return len(b.Participants) >= b.MaxParticipants
}

// Participant returns the participant with the given id, or nil
func (b *Battle) Participant(id uuid.UUID) *Participant {
	for i := range b.Participants {
		if b.Participants[i].ID == id {
			return &b.Participants[i]
		}
	}
	return nil
}

// ParticipantByUser returns the participant entry of a user, or nil
func (b *Battle) ParticipantByUser(userID uuid.UUID) *Participant {
	for i := range b.Participants {
		if b.Participants[i].UserID == userID {
			return &b.Participants[i]
		}
	}
	return nil
}

// ParticipantIDs returns participant ids in join order
func (b *Battle) ParticipantIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(b.Participants))
	for i, p := range b.Participants {
		ids[i] = p.ID
	}
	return ids
}

// Participant is one entrant in a battle
type Participant struct {
	ID              uuid.UUID `json:"id"`
	BattleID        uuid.UUID `json:"battle_id"`
	UserID          uuid.UUID `json:"user_id"`
	Username        string    `json:"username"`
	IsBot           bool      `json:"is_bot"`
	Ready           bool      `json:"ready"`
	TotalValue      float64   `json:"total_value"`
	RoundsCompleted int       `json:"rounds_completed"`
	JoinedAt        time.Time `json:"joined_at"`
}

// DrawRecord is one in-memory pull produced by the round expander,
// before anything is persisted
type DrawRecord struct {
	ParticipantID  uuid.UUID
	CatalogEntryID uuid.UUID
	Round          int
	Value          float64
}

// Draw is a persisted pull. CardID points at the owned-card record whose
// owner is mutated by settlement.
type Draw struct {
	ID             uuid.UUID `json:"id"`
	BattleID       uuid.UUID `json:"battle_id"`
	ParticipantID  uuid.UUID `json:"participant_id"`
	CatalogEntryID uuid.UUID `json:"catalog_entry_id"`
	CardID         uuid.UUID `json:"card_id"`
	Round          int       `json:"round"`
	Value          float64   `json:"value"`
	OwnerID        uuid.UUID `json:"owner_id"`
	CardName       string    `json:"card_name,omitempty"`
	Rarity         string    `json:"rarity,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
}

// Outcome is the result of resolving a battle's totals under its mode.
// WinnerID is nil in shared mode; FeaturedID is the cosmetic pick shown
// to players in shared mode.
type Outcome struct {
	WinnerID   *uuid.UUID
	FeaturedID *uuid.UUID
	Shared     bool
}

// Event types
const (
	EventBattleCreated  = "battle.created"
	EventBattleJoined   = "battle.joined"
	EventBattleFinished = "battle.finished"
)

// BattleCreatedPayload is published when a battle lobby opens
type BattleCreatedPayload struct {
	BattleID        uuid.UUID       `json:"battle_id"`
	CreatorID       uuid.UUID       `json:"creator_id"`
	BoxID           uuid.UUID       `json:"box_id"`
	Mode            BattleMode      `json:"mode"`
	MaxParticipants int             `json:"max_participants"`
	EntryFee        decimal.Decimal `json:"entry_fee"`
}

// BattleJoinedPayload is published for every participant added after creation
type BattleJoinedPayload struct {
	BattleID      uuid.UUID `json:"battle_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	UserID        uuid.UUID `json:"user_id"`
	IsBot         bool      `json:"is_bot"`
}

// BattleFinishedPayload is published once a battle has been settled
type BattleFinishedPayload struct {
	BattleID         uuid.UUID       `json:"battle_id"`
	Mode             BattleMode      `json:"mode"`
	WinnerID         *uuid.UUID      `json:"winner_id,omitempty"`
	DrawCount        int             `json:"draw_count"`
	TotalValue       float64         `json:"total_value"`
	TotalPrize       decimal.Decimal `json:"total_prize"`
	ParticipantCount int             `json:"participant_count"`
}
