package metrics

import (
	"time"

	"github.com/osse101/PackBattle_Go/internal/domain"
)

// BattleRecorder feeds battle service observations into Prometheus
type BattleRecorder struct{}

// NewBattleRecorder creates a recorder backed by the package collectors
func NewBattleRecorder() *BattleRecorder {
	return &BattleRecorder{}
}

// ObserveSettlement records how long a settlement took
func (BattleRecorder) ObserveSettlement(mode domain.BattleMode, d time.Duration) {
	SettlementDuration.WithLabelValues(string(mode)).Observe(d.Seconds())
}

// StartRejected counts a refused start by reason
func (BattleRecorder) StartRejected(reason string) {
	StartRejections.WithLabelValues(reason).Inc()
}

// LobbiesExpired adds the lobbies removed by one sweep
func (BattleRecorder) LobbiesExpired(n int) {
	if n > 0 {
		LobbiesExpired.Add(float64(n))
	}
}
