package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/PackBattle_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version   string      `json:"version"` // Event schema version (e.g., "1.0")
	Type      Type        `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp int64       `json:"timestamp"`
}

// Battle event types
const (
	BattleCreated  Type = domain.EventBattleCreated
	BattleJoined   Type = domain.EventBattleJoined
	BattleFinished Type = domain.EventBattleFinished
)

// NewBattleCreatedEvent creates a battle.created event
func NewBattleCreatedEvent(b *domain.Battle) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BattleCreated,
		Payload: domain.BattleCreatedPayload{
			BattleID:        b.ID,
			CreatorID:       b.CreatorID,
			BoxID:           b.BoxID,
			Mode:            b.Mode,
			MaxParticipants: b.MaxParticipants,
			EntryFee:        b.EntryFee,
		},
		Timestamp: time.Now().Unix(),
	}
}

// NewBattleJoinedEvent creates a battle.joined event
func NewBattleJoinedEvent(p *domain.Participant) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BattleJoined,
		Payload: domain.BattleJoinedPayload{
			BattleID:      p.BattleID,
			ParticipantID: p.ID,
			UserID:        p.UserID,
			IsBot:         p.IsBot,
		},
		Timestamp: time.Now().Unix(),
	}
}

// NewBattleFinishedEvent creates a battle.finished event from a settled battle
func NewBattleFinishedEvent(b *domain.Battle) Event {
	var total float64
	for _, d := range b.Draws {
		total += d.Value
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    BattleFinished,
		Payload: domain.BattleFinishedPayload{
			BattleID:         b.ID,
			Mode:             b.Mode,
			WinnerID:         b.WinnerID,
			DrawCount:        len(b.Draws),
			TotalValue:       total,
			TotalPrize:       b.TotalPrize,
			ParticipantCount: len(b.Participants),
		},
		Timestamp: time.Now().Unix(),
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber of the event type synchronously and
// joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
