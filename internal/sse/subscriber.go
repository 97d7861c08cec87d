package sse

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/event"
	"github.com/osse101/PackBattle_Go/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers handlers for every battle event type
func (s *Subscriber) Subscribe() {
	s.bus.Subscribe(event.BattleCreated, forward[domain.BattleCreatedPayload](s.hub, EventTypeBattleCreated,
		func(p domain.BattleCreatedPayload) uuid.UUID { return p.BattleID }))
	s.bus.Subscribe(event.BattleJoined, forward[domain.BattleJoinedPayload](s.hub, EventTypeBattleJoined,
		func(p domain.BattleJoinedPayload) uuid.UUID { return p.BattleID }))
	s.bus.Subscribe(event.BattleFinished, forward[domain.BattleFinishedPayload](s.hub, EventTypeBattleFinished,
		func(p domain.BattleFinishedPayload) uuid.UUID { return p.BattleID }))

	logger.Info(LogMsgSubscriberReady, "types", []string{
		EventTypeBattleCreated,
		EventTypeBattleJoined,
		EventTypeBattleFinished,
	})
}

// forward decodes a typed payload and rebroadcasts it. A bad payload is
// logged and swallowed so the bus never retries it.
func forward[T any](hub *Hub, sseType string, battleOf func(T) uuid.UUID) event.Handler {
	return func(ctx context.Context, evt event.Event) error {
		payload, err := event.DecodePayload[T](evt.Payload)
		if err != nil {
			logger.FromContext(ctx).Warn(LogMsgInvalidPayload, "event_type", evt.Type, "error", err)
			return nil
		}
		battleID := battleOf(payload)
		hub.Broadcast(sseType, battleID, payload)
		logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", sseType, "battle_id", battleID)
		return nil
	}
}
