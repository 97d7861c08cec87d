package battle

import (
	"github.com/google/uuid"

	"github.com/osse101/PackBattle_Go/internal/domain"
)

// Expansion is the in-memory result of drawing every slot of a battle
type Expansion struct {
	Records []domain.DrawRecord
	Totals  map[uuid.UUID]float64
	Rounds  int
}

// TotalValue sums the realized value of every record
func (e Expansion) TotalValue() float64 {
	var sum float64
	for _, r := range e.Records {
		sum += r.Value
	}
	return sum
}

// Expand draws rounds x slotsPerRound cards for each participant.
// Records are ordered participant-major, then round, then slot.
func Expand(participantIDs []uuid.UUID, drawer *Drawer, rounds, slotsPerRound int) Expansion {
	exp := Expansion{
		Records: make([]domain.DrawRecord, 0, len(participantIDs)*rounds*slotsPerRound),
		Totals:  make(map[uuid.UUID]float64, len(participantIDs)),
		Rounds:  rounds,
	}

	for _, pid := range participantIDs {
		exp.Totals[pid] = 0
		for round := 1; round <= rounds; round++ {
			for slot := 0; slot < slotsPerRound; slot++ {
				entry := drawer.Draw()
				exp.Records = append(exp.Records, domain.DrawRecord{
					ParticipantID:  pid,
					CatalogEntryID: entry.ID,
					Round:          round,
					Value:          entry.Value,
				})
				exp.Totals[pid] += entry.Value
			}
		}
	}
	return exp
}
