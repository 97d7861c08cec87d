package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/osse101/PackBattle_Go/internal/config"
	"github.com/osse101/PackBattle_Go/internal/event"
	"github.com/osse101/PackBattle_Go/internal/logger"
)

// InitializeEventSystem creates the in-memory bus and the resilient publisher
// services publish through. Subscribers register on the returned bus.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	if err := os.MkdirAll(filepath.Dir(cfg.EventDeadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	publisher := event.NewResilientPublisher(eventBus, event.ResilientConfig{
		MaxRetries:     cfg.EventRetryAttempts,
		RetryDelay:     cfg.EventRetryDelay,
		DeadLetterPath: cfg.EventDeadLetterPath,
	})

	logger.Info(LogMsgEventSystemInitialized,
		"max_retries", cfg.EventRetryAttempts,
		"retry_delay", cfg.EventRetryDelay,
		"deadletter_path", cfg.EventDeadLetterPath)

	return eventBus, publisher, nil
}
