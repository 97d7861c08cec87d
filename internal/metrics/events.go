package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/event"
	"github.com/osse101/PackBattle_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all battle events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range []event.Type{
		event.BattleCreated,
		event.BattleJoined,
		event.BattleFinished,
	} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics. Undecodable payloads are
// counted as handler errors but never fail the publish.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.BattleCreated:
		var p domain.BattleCreatedPayload
		if p, err = event.DecodePayload[domain.BattleCreatedPayload](evt.Payload); err == nil {
			BattlesCreated.WithLabelValues(string(p.Mode)).Inc()
		}

	case event.BattleJoined:
		var p domain.BattleJoinedPayload
		if p, err = event.DecodePayload[domain.BattleJoinedPayload](evt.Payload); err == nil {
			BattleJoins.WithLabelValues(strconv.FormatBool(p.IsBot)).Inc()
		}

	case event.BattleFinished:
		var p domain.BattleFinishedPayload
		if p, err = event.DecodePayload[domain.BattleFinishedPayload](evt.Payload); err == nil {
			BattlesFinished.WithLabelValues(string(p.Mode)).Inc()
			CardsDrawn.Add(float64(p.DrawCount))
			DrawnValue.Add(p.TotalValue)
			if p.WinnerID != nil {
				PrizesPaid.Add(p.TotalPrize.InexactFloat64())
			}
		}
	}

	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Warn(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
