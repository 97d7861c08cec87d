package bootstrap

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PackBattle_Go/internal/config"
	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/event"
	"github.com/osse101/PackBattle_Go/internal/sse"
)

func TestInitializeEventSystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deadletter")
	cfg := &config.Config{
		EventRetryAttempts:  1,
		EventRetryDelay:     time.Millisecond,
		EventDeadLetterPath: filepath.Join(dir, "events.jsonl"),
	}

	bus, publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, bus)
	require.NotNil(t, publisher)
	assert.DirExists(t, dir)

	delivered := make(chan event.Type, 1)
	bus.Subscribe(event.BattleCreated, func(_ context.Context, e event.Event) error {
		delivered <- e.Type
		return nil
	})

	require.NoError(t, publisher.Publish(context.Background(), event.Event{Type: event.BattleCreated}))
	assert.Equal(t, event.BattleCreated, <-delivered)
	assert.NoError(t, publisher.Shutdown(context.Background()))
}

func TestRegisterEventHandlers(t *testing.T) {
	bus := event.NewMemoryBus()
	hub, err := RegisterEventHandlers(bus)
	require.NoError(t, err)
	require.NotNil(t, hub)
	defer hub.Stop()

	client := hub.Register(sse.Filter{})
	assert.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	battleID := uuid.New()
	require.NoError(t, bus.Publish(context.Background(), event.NewBattleFinishedEvent(&domain.Battle{ID: battleID})))

	select {
	case got := <-client.EventChannel:
		assert.Equal(t, sse.EventTypeBattleFinished, got.Type)
		assert.Equal(t, battleID.String(), got.BattleID)
	case <-time.After(time.Second):
		t.Fatal("finished event never reached the stream hub")
	}
}
