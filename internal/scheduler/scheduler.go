package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/PackBattle_Go/internal/logger"
	"github.com/osse101/PackBattle_Go/internal/worker"
)

// Enqueuer accepts jobs for asynchronous execution
type Enqueuer interface {
	Enqueue(job worker.Job) bool
}

// Scheduler feeds jobs into a worker pool on fixed intervals
type Scheduler struct {
	pool     Enqueuer
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule enqueues job every interval until Stop. A full queue skips that tick.
// Non-positive intervals are ignored.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	if interval <= 0 {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.pool.Enqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop halts all schedules and waits for their goroutines to exit
func (s *Scheduler) Stop(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.quit) })

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		logger.FromContext(ctx).Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
