package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type modeStruct struct {
	Mode string `json:"mode" validate:"required,battlemode"`
}

func TestValidator_BattleMode(t *testing.T) {
	InitValidator()
	v := GetValidator()

	tests := []struct {
		name    string
		mode    string
		wantErr bool
	}{
		{"highest", "HIGHEST_WINS", false},
		{"lowest", "LOWEST_WINS", false},
		{"shared", "SHARED", false},
		{"jackpot", "JACKPOT", false},
		{"lowercase accepted", "jackpot", false},
		{"empty", "", true},
		{"unknown", "WINNER_TAKES_ALL", true},
		{"whitespace", " SHARED", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(modeStruct{Mode: tt.mode})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, FormatValidationError(nil))
	})

	t.Run("non-validation error", func(t *testing.T) {
		errs := FormatValidationError(errors.New("boom"))
		assert.Equal(t, "Invalid request format", errs["error"])
	})

	t.Run("uses JSON names", func(t *testing.T) {
		err := GetValidator().ValidateStruct(CreateBattleRequest{BoxID: "x", Mode: "SHARED", Rounds: 1, MaxParticipants: 5})
		require.Error(t, err)

		errs := FormatValidationError(err)
		assert.Equal(t, "Must be a UUID", errs["box_id"])
		assert.Equal(t, "Must be at most 4", errs["max_participants"])
		assert.NotContains(t, errs, "BoxID")
	})

	t.Run("mode message lists modes", func(t *testing.T) {
		errs := FormatValidationError(GetValidator().ValidateStruct(modeStruct{Mode: "x"}))
		assert.Contains(t, errs["mode"], "HIGHEST_WINS")
		assert.Contains(t, errs["mode"], "JACKPOT")
	})
}
