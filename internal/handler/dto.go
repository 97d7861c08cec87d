package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PackBattle_Go/internal/domain"
)

// BattleResponse is the API view of a battle. Money is rendered as plain
// JSON numbers.
type BattleResponse struct {
	ID                    uuid.UUID             `json:"id"`
	CreatorID             uuid.UUID             `json:"creator_id"`
	BoxID                 uuid.UUID             `json:"box_id"`
	Status                string                `json:"status"`
	Mode                  string                `json:"mode"`
	Rounds                int                   `json:"rounds"`
	SlotsPerRound         int                   `json:"slots_per_round"`
	MaxParticipants       int                   `json:"max_participants"`
	EntryFee              float64               `json:"entry_fee"`
	TotalPrize            float64               `json:"total_prize"`
	WinnerID              *uuid.UUID            `json:"winner_id,omitempty"`
	FeaturedParticipantID *uuid.UUID            `json:"featured_participant_id,omitempty"`
	Shared                bool                  `json:"shared"`
	CreatedAt             time.Time             `json:"created_at"`
	StartedAt             *time.Time            `json:"started_at,omitempty"`
	FinishedAt            *time.Time            `json:"finished_at,omitempty"`
	Participants          []ParticipantResponse `json:"participants"`
	Draws                 []DrawResponse        `json:"draws,omitempty"`
}

// ParticipantResponse is one entrant of a battle
type ParticipantResponse struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	Username        string    `json:"username"`
	IsBot           bool      `json:"is_bot"`
	Ready           bool      `json:"ready"`
	TotalValue      float64   `json:"total_value"`
	RoundsCompleted int       `json:"rounds_completed"`
}

// DrawResponse is one pulled card
type DrawResponse struct {
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

// BoxResponse is the catalog view of a box
type BoxResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	ImageURL     string          `json:"image_url,omitempty"`
	Price        float64         `json:"price"`
	CardsPerPack int             `json:"cards_per_pack"`
	Entries      []EntryResponse `json:"entries,omitempty"`
}

// EntryResponse is one drawable card. Chance is the entry's share of the
// box's total weight.
type EntryResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"image_url,omitempty"`
	Rarity   string    `json:"rarity"`
	Weight   float64   `json:"weight"`
	Chance   float64   `json:"chance"`
	Value    float64   `json:"value"`
}

func newBattleResponse(b *domain.Battle) BattleResponse {
	resp := BattleResponse{
		ID:                    b.ID,
		CreatorID:             b.CreatorID,
		BoxID:                 b.BoxID,
		Status:                string(b.Status),
		Mode:                  string(b.Mode),
		Rounds:                b.Rounds,
		SlotsPerRound:         b.SlotsPerRound,
		MaxParticipants:       b.MaxParticipants,
		EntryFee:              b.EntryFee.InexactFloat64(),
		TotalPrize:            b.TotalPrize.InexactFloat64(),
		WinnerID:              b.WinnerID,
		FeaturedParticipantID: b.FeaturedParticipantID,
		Shared:                b.Shared,
		CreatedAt:             b.CreatedAt,
		StartedAt:             b.StartedAt,
		FinishedAt:            b.FinishedAt,
		Participants:          make([]ParticipantResponse, len(b.Participants)),
	}
	for i, p := range b.Participants {
		resp.Participants[i] = ParticipantResponse{
			ID:              p.ID,
			UserID:          p.UserID,
			Username:        p.Username,
			IsBot:           p.IsBot,
			Ready:           p.Ready,
			TotalValue:      p.TotalValue,
			RoundsCompleted: p.RoundsCompleted,
		}
	}
	if len(b.Draws) > 0 {
		resp.Draws = make([]DrawResponse, len(b.Draws))
		for i, d := range b.Draws {
			resp.Draws[i] = DrawResponse{
				ParticipantID:  d.ParticipantID,
				CatalogEntryID: d.CatalogEntryID,
				CardID:         d.CardID,
				Round:          d.Round,
				Value:          d.Value,
				OwnerID:        d.OwnerID,
				CardName:       d.CardName,
				Rarity:         d.Rarity,
				ImageURL:       d.ImageURL,
			}
		}
	}
	return resp
}

func newBoxResponse(box *domain.Box) BoxResponse {
	resp := BoxResponse{
		ID:           box.ID,
		Name:         box.Name,
		ImageURL:     box.ImageURL,
		Price:        box.Price.InexactFloat64(),
		CardsPerPack: box.CardsPerPack,
	}
	var total float64
	for _, e := range box.Entries {
		total += max(e.Weight, 0)
	}
	for _, e := range box.Entries {
		entry := EntryResponse{
			ID:       e.ID,
			Name:     e.Name,
			ImageURL: e.ImageURL,
			Rarity:   e.Rarity,
			Weight:   e.Weight,
			Value:    e.Value,
		}
		if total > 0 {
			entry.Chance = max(e.Weight, 0) / total
		}
		resp.Entries = append(resp.Entries, entry)
	}
	return resp
}
