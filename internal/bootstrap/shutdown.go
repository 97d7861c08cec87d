package bootstrap

import (
	"context"

	"github.com/osse101/PackBattle_Go/internal/database"
	"github.com/osse101/PackBattle_Go/internal/logger"
)

// Stopper is anything that drains in-flight work before exit
type Stopper interface {
	Stop(ctx context.Context) error
}

// Flusher drains queued background work
type Flusher interface {
	Shutdown(ctx context.Context) error
}

// StreamCloser ends long-lived client streams
type StreamCloser interface {
	Stop()
}

// ShutdownComponents holds all components that need graceful shutdown
type ShutdownComponents struct {
	Streams   StreamCloser
	Server    Stopper
	Workers   []Stopper
	Publisher Flusher
	DBPool    database.Pool
}

// GracefulShutdown closes event streams, then stops the HTTP server so no
// new settlement starts, then stops background workers in order, then
// flushes pending event retries, then closes the pool. Errors are logged and
// do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	if c.Streams != nil {
		logger.Info(LogMsgClosingStreams)
		c.Streams.Stop()
	}

	logger.Info(LogMsgShuttingDownServer)
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			logger.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	for _, w := range c.Workers {
		if err := w.Stop(ctx); err != nil {
			logger.Error(LogMsgWorkerStopFailed, "error", err)
		}
	}

	if c.Publisher != nil {
		logger.Info(LogMsgShuttingDownEventPublisher)
		if err := c.Publisher.Shutdown(ctx); err != nil {
			logger.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.DBPool != nil {
		c.DBPool.Close()
	}

	logger.Info(LogMsgServerStopped)
}
