package battle

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/osse101/PackBattle_Go/internal/domain"
)

// Picker returns an index in [0, n). It isolates the randomness used by
// jackpot and shared modes.
type Picker func(n int) int

// Resolve determines the outcome of a battle from participant totals.
// participantIDs fixes the tie-break order: the earliest participant to
// reach the extreme wins.
func Resolve(totals map[uuid.UUID]float64, mode domain.BattleMode, participantIDs []uuid.UUID, pick Picker) (domain.Outcome, error) {
	if len(participantIDs) == 0 {
		return domain.Outcome{Shared: mode.IsShared()}, nil
	}

	switch mode {
	case domain.BattleModeHighestWins:
		return domain.Outcome{WinnerID: extreme(totals, participantIDs, math.Inf(-1), func(v, best float64) bool { return v > best })}, nil
	case domain.BattleModeLowestWins:
		return domain.Outcome{WinnerID: extreme(totals, participantIDs, math.Inf(1), func(v, best float64) bool { return v < best })}, nil
	case domain.BattleModeJackpot:
		id := participantIDs[pick(len(participantIDs))]
		return domain.Outcome{WinnerID: &id}, nil
	case domain.BattleModeShared:
		id := participantIDs[pick(len(participantIDs))]
		return domain.Outcome{FeaturedID: &id, Shared: true}, nil
	default:
		return domain.Outcome{}, fmt.Errorf("%w: %q", domain.ErrInvalidMode, mode)
	}
}

func extreme(totals map[uuid.UUID]float64, ids []uuid.UUID, start float64, better func(v, best float64) bool) *uuid.UUID {
	var winner *uuid.UUID
	best := start
	for _, id := range ids {
		if v := totals[id]; better(v, best) {
			best = v
			winner = &id
		}
	}
	return winner
}
