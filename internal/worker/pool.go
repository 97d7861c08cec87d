package worker

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/PackBattle_Go/internal/logger"
)

// Job represents a task to be executed by a worker
type Job interface {
	Name() string
	Process(ctx context.Context) error
}

// Pool runs queued jobs on a fixed set of goroutines
type Pool struct {
	workers  int
	timeout  time.Duration
	jobQueue chan Job
	wg       sync.WaitGroup
	quit     chan struct{}
	stopOnce sync.Once
	baseCtx  context.Context
	cancel   context.CancelFunc
}

// NewPool creates a new worker pool. A non-positive timeout falls back to DefaultJobTimeout.
func NewPool(workers, queueSize int, timeout time.Duration) *Pool {
	if timeout <= 0 {
		timeout = DefaultJobTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool{
		workers:  max(workers, 1),
		timeout:  timeout,
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
		baseCtx:  ctx,
		cancel:   cancel,
	}
}

// Start starts the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case job := <-p.jobQueue:
			p.run(job)
		case <-p.quit:
			return
		}
	}
}

func (p *Pool) run(job Job) {
	ctx, cancel := context.WithTimeout(p.baseCtx, p.timeout)
	defer cancel()
	if err := job.Process(ctx); err != nil {
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "job", job.Name(), "error", err)
	}
}

// Enqueue adds a job without blocking. It returns false when the queue is
// full or the pool has been stopped.
func (p *Pool) Enqueue(job Job) bool {
	select {
	case <-p.quit:
		return false
	default:
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		logger.FromContext(p.baseCtx).Warn(LogMsgJobDropped, "job", job.Name())
		return false
	}
}

// Stop cancels running jobs and waits for the workers to exit, or for ctx
// to expire. Queued jobs that have not started are discarded.
func (p *Pool) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.quit)
		p.cancel()
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		logger.FromContext(ctx).Info(LogMsgPoolStopped)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
