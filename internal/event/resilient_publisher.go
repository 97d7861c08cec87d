package event

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/PackBattle_Go/internal/logger"
)

// ResilientConfig configures the ResilientPublisher
type ResilientConfig struct {
	MaxRetries     int
	RetryDelay     time.Duration
	DeadLetterPath string
}

// ResilientPublisher wraps a Bus so that a failed publish never reaches the
// caller. Failed events are retried in the background with linear backoff
// and dead-lettered once the retries are exhausted.
type ResilientPublisher struct {
	inner      Bus
	config     ResilientConfig
	deadLetter *DeadLetterWriter
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a new ResilientPublisher
func NewResilientPublisher(inner Bus, config ResilientConfig) *ResilientPublisher {
	return &ResilientPublisher{
		inner:      inner,
		config:     config,
		deadLetter: NewDeadLetterWriter(config.DeadLetterPath),
	}
}

// Publish delivers the event once synchronously. On failure it schedules
// background retries and returns nil.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	err := p.inner.Publish(ctx, event)
	if err == nil {
		return nil
	}

	logger.FromContext(ctx).Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err,
		"retries", p.config.MaxRetries)

	p.wg.Add(1)
	go p.retryLoop(event, err)

	return nil
}

func (p *ResilientPublisher) retryLoop(event Event, lastErr error) {
	defer p.wg.Done()

	// The request context is gone by now
	ctx := context.Background()

	for i := 1; i <= p.config.MaxRetries; i++ {
		time.Sleep(p.config.RetryDelay * time.Duration(i))

		lastErr = p.inner.Publish(ctx, event)
		if lastErr == nil {
			logger.Info(LogMsgEventRetrySucceeded, "event_type", event.Type, "attempt", i)
			return
		}
		logger.Warn(LogMsgEventRetryFailed, "event_type", event.Type, "attempt", i, "error", lastErr)
	}

	if err := p.deadLetter.Write(event, p.config.MaxRetries+1, lastErr); err != nil {
		logger.Error(LogMsgDeadLetterWriteFailed, "event_type", event.Type, "error", err)
		return
	}
	logger.Warn(LogMsgEventDeadLettered, "event_type", event.Type, "path", p.config.DeadLetterPath)
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.inner.Subscribe(eventType, handler)
}

// Shutdown waits for pending retries until ctx is done
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		logger.Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
