package battle

import (
	"fmt"
	"math"

	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/utils"
)

// Drawer picks catalog entries with probability proportional to weight.
// Cumulative weights are computed once so a draw is a binary search and
// performs no I/O.
type Drawer struct {
	entries []domain.CatalogEntry
	cumul   []float64
	total   float64
	rng     utils.RandomSource
}

// NewDrawer prepares a drawer over entries in the given order.
// An empty catalog is rejected; all-zero weights are allowed and always
// yield the last entry.
func NewDrawer(entries []domain.CatalogEntry, rng utils.RandomSource) (*Drawer, error) {
	if len(entries) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	d := &Drawer{
		entries: entries,
		cumul:   make([]float64, len(entries)),
		rng:     rng,
	}
	for i, e := range entries {
		if e.Weight < 0 || math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return nil, fmt.Errorf("%w: entry %s has weight %v", domain.ErrInvalidWeight, e.ID, e.Weight)
		}
		d.total += e.Weight
		d.cumul[i] = d.total
	}
	return d, nil
}

// Draw returns one entry
func (d *Drawer) Draw() *domain.CatalogEntry {
	return &d.entries[d.selectIndex(d.rng.Float64())]
}

// selectIndex returns the first entry whose cumulative weight exceeds
// roll scaled to [0, total). Zero-weight entries are never chosen unless
// every weight is zero, in which case the search ends on the last entry.
func (d *Drawer) selectIndex(rnd float64) int {
	roll := rnd * d.total
	lo, hi := 0, len(d.cumul)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if d.cumul[mid] <= roll {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// PullRates returns each entry's draw probability in catalog order
func PullRates(entries []domain.CatalogEntry) []float64 {
	rates := make([]float64, len(entries))
	var total float64
	for _, e := range entries {
		total += e.Weight
	}
	if total <= 0 {
		if len(entries) > 0 {
			rates[len(entries)-1] = 1
		}
		return rates
	}
	for i, e := range entries {
		rates[i] = e.Weight / total
	}
	return rates
}
