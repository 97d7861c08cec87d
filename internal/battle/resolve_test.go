package battle

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PackBattle_Go/internal/domain"
)

func fixedPick(i int) Picker {
	return func(n int) int { return i % n }
}

func TestResolve_TieBreaks(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	ids := []uuid.UUID{a, b, c}

	tests := []struct {
		name   string
		mode   domain.BattleMode
		totals []float64
		want   uuid.UUID
	}{
		{"highest keeps first of tie", domain.BattleModeHighestWins, []float64{10, 10, 5}, a},
		{"highest later strictly greater", domain.BattleModeHighestWins, []float64{1, 2, 3}, c},
		{"highest all zero", domain.BattleModeHighestWins, []float64{0, 0, 0}, a},
		{"lowest keeps first of tie", domain.BattleModeLowestWins, []float64{10, 3, 3}, b},
		{"lowest first is lowest", domain.BattleModeLowestWins, []float64{1, 2, 3}, a},
		{"lowest all equal", domain.BattleModeLowestWins, []float64{4, 4, 4}, a},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := map[uuid.UUID]float64{a: tt.totals[0], b: tt.totals[1], c: tt.totals[2]}

			out, err := Resolve(totals, tt.mode, ids, fixedPick(0))

			require.NoError(t, err)
			require.NotNil(t, out.WinnerID)
			assert.Equal(t, tt.want, *out.WinnerID)
			assert.False(t, out.Shared)
			assert.Nil(t, out.FeaturedID)
		})
	}
}

func TestResolve_JackpotIgnoresTotals(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	totals := map[uuid.UUID]float64{a: 1000, b: 0, c: 1}

	out, err := Resolve(totals, domain.BattleModeJackpot, []uuid.UUID{a, b, c}, fixedPick(1))

	require.NoError(t, err)
	require.NotNil(t, out.WinnerID)
	assert.Equal(t, b, *out.WinnerID)
	assert.False(t, out.Shared)
}

func TestResolve_SharedHasNoWinner(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	out, err := Resolve(map[uuid.UUID]float64{a: 5, b: 1}, domain.BattleModeShared, []uuid.UUID{a, b}, fixedPick(1))

	require.NoError(t, err)
	assert.True(t, out.Shared)
	assert.Nil(t, out.WinnerID)
	require.NotNil(t, out.FeaturedID)
	assert.Equal(t, b, *out.FeaturedID)
}

func TestResolve_UnknownMode(t *testing.T) {
	a := uuid.New()
	_, err := Resolve(map[uuid.UUID]float64{a: 1}, domain.BattleMode("MOST_SHINY"), []uuid.UUID{a}, fixedPick(0))
	assert.ErrorIs(t, err, domain.ErrInvalidMode)
}

func TestResolve_NoParticipants(t *testing.T) {
	out, err := Resolve(nil, domain.BattleModeHighestWins, nil, fixedPick(0))
	require.NoError(t, err)
	assert.Nil(t, out.WinnerID)
}

func TestResolve_WinnerDoesNotAliasInput(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	ids := []uuid.UUID{a, b}

	out, err := Resolve(map[uuid.UUID]float64{a: 1, b: 2}, domain.BattleModeHighestWins, ids, fixedPick(0))
	require.NoError(t, err)

	ids[1] = uuid.New()
	assert.Equal(t, b, *out.WinnerID)
}
