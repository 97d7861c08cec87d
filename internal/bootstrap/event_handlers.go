package bootstrap

import (
	"fmt"

	"github.com/osse101/PackBattle_Go/internal/event"
	"github.com/osse101/PackBattle_Go/internal/logger"
	"github.com/osse101/PackBattle_Go/internal/metrics"
	"github.com/osse101/PackBattle_Go/internal/sse"
)

// RegisterEventHandlers subscribes every in-process consumer of battle
// events and returns the started stream hub
func RegisterEventHandlers(bus event.Bus) (*sse.Hub, error) {
	if err := metrics.NewEventMetricsCollector().Register(bus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	logger.Info(LogMsgMetricsCollectorRegistered)

	hub := sse.NewHub()
	hub.Start()
	sse.NewSubscriber(hub, bus).Subscribe()
	logger.Info(LogMsgEventStreamReady)
	return hub, nil
}
