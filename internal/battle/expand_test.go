package battle

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/utils"
)

func TestExpand_OrderAndCounts(t *testing.T) {
	entries := []domain.CatalogEntry{entry(1, 5), entry(1, 15)}
	d, err := NewDrawer(entries, utils.NewSeededSource(3))
	require.NoError(t, err)

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	exp := Expand([]uuid.UUID{a, b, c}, d, 3, 2)

	require.Len(t, exp.Records, 3*3*2)
	assert.Equal(t, 3, exp.Rounds)

	i := 0
	for _, pid := range []uuid.UUID{a, b, c} {
		for round := 1; round <= 3; round++ {
			for slot := 0; slot < 2; slot++ {
				assert.Equal(t, pid, exp.Records[i].ParticipantID)
				assert.Equal(t, round, exp.Records[i].Round)
				i++
			}
		}
	}
}

func TestExpand_Conservation(t *testing.T) {
	entries := []domain.CatalogEntry{entry(50, 1.25), entry(30, 10), entry(15, 42.5), entry(5, 300)}
	d, err := NewDrawer(entries, utils.NewSeededSource(77))
	require.NoError(t, err)

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	exp := Expand(ids, d, 10, 5)

	var totals float64
	perParticipant := make(map[uuid.UUID]float64)
	for _, r := range exp.Records {
		perParticipant[r.ParticipantID] += r.Value
	}
	for _, id := range ids {
		assert.InDelta(t, perParticipant[id], exp.Totals[id], 1e-9)
		totals += exp.Totals[id]
	}
	assert.InDelta(t, exp.TotalValue(), totals, 1e-9)
}

func TestExpand_ValueCopiedFromEntry(t *testing.T) {
	entries := []domain.CatalogEntry{entry(1, 10), entry(1, 20)}
	d, err := NewDrawer(entries, newScriptedSource(0.9, 0.1))
	require.NoError(t, err)

	a, b := uuid.New(), uuid.New()
	exp := Expand([]uuid.UUID{a, b}, d, 1, 1)

	require.Len(t, exp.Records, 2)
	assert.Equal(t, entries[1].ID, exp.Records[0].CatalogEntryID)
	assert.Equal(t, 20.0, exp.Totals[a])
	assert.Equal(t, entries[0].ID, exp.Records[1].CatalogEntryID)
	assert.Equal(t, 10.0, exp.Totals[b])
}

func TestExpand_NoParticipants(t *testing.T) {
	d, err := NewDrawer([]domain.CatalogEntry{entry(1, 1)}, utils.NewSeededSource(1))
	require.NoError(t, err)

	exp := Expand(nil, d, 3, 3)
	assert.Empty(t, exp.Records)
	assert.Empty(t, exp.Totals)
}
