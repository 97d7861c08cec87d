package bootstrap

import (
	"github.com/osse101/PackBattle_Go/internal/config"
	"github.com/osse101/PackBattle_Go/internal/logger"
	"github.com/osse101/PackBattle_Go/internal/scheduler"
	"github.com/osse101/PackBattle_Go/internal/worker"
)

// Worker pool sizing for periodic maintenance jobs
const (
	MaintenanceWorkers   = 1
	MaintenanceQueueSize = 4
)

// StartLobbyExpiry schedules the stale lobby sweep and returns the
// components to stop on shutdown, scheduler first. It returns nil when the
// sweep interval is not positive.
func StartLobbyExpiry(cfg *config.Config, expirer worker.LobbyExpirer) []Stopper {
	if cfg.LobbySweepInterval <= 0 {
		logger.Info(LogMsgLobbyExpiryDisabled)
		return nil
	}

	pool := worker.NewPool(MaintenanceWorkers, MaintenanceQueueSize, cfg.LobbySweepInterval)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.LobbySweepInterval, worker.NewLobbyExpiryJob(expirer, cfg.LobbyTTL))

	logger.Info(LogMsgLobbyExpiryStarted, "interval", cfg.LobbySweepInterval, "ttl", cfg.LobbyTTL)
	return []Stopper{sched, pool}
}
