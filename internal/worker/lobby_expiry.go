package worker

import (
	"context"
	"time"

	"github.com/osse101/PackBattle_Go/internal/logger"
)

// LobbyExpirer removes lobbies that have waited longer than maxAge
type LobbyExpirer interface {
	ExpireLobbies(ctx context.Context, maxAge time.Duration) (int, error)
}

// LobbyExpiryJob sweeps stale WAITING battles and refunds their entrants
type LobbyExpiryJob struct {
	expirer LobbyExpirer
	maxAge  time.Duration
}

// NewLobbyExpiryJob creates a sweep job for lobbies older than maxAge
func NewLobbyExpiryJob(expirer LobbyExpirer, maxAge time.Duration) *LobbyExpiryJob {
	return &LobbyExpiryJob{expirer: expirer, maxAge: maxAge}
}

func (j *LobbyExpiryJob) Name() string { return "lobby_expiry" }

// Process runs one sweep
func (j *LobbyExpiryJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	n, err := j.expirer.ExpireLobbies(ctx, j.maxAge)
	if err != nil {
		log.Warn(LogMsgLobbySweepFailed, "expired", n, "error", err)
		return err
	}
	if n > 0 {
		log.Info(LogMsgLobbySweepDone, "expired", n, "maxAge", j.maxAge)
	}
	return nil
}
