package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Box is a purchasable pack whose catalog entries are drawn in battles
type Box struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	ImageURL     string          `json:"image_url,omitempty"`
	Price        decimal.Decimal `json:"price"`
	CardsPerPack int             `json:"cards_per_pack"`
	Entries      []CatalogEntry  `json:"entries,omitempty"`
}

// CatalogEntry is one drawable card of a box. Weight is the relative
// pull rate; weights need not sum to any total.
type CatalogEntry struct {
	ID       uuid.UUID `json:"id"`
	BoxID    uuid.UUID `json:"box_id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"image_url,omitempty"`
	Rarity   string    `json:"rarity"`
	Weight   float64   `json:"weight"`
	Value    float64   `json:"value"`
}
