package worker

import "time"

// Log messages - worker pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgJobDropped      = "Worker queue full, job dropped"
	LogMsgPoolStopped     = "Worker pool stopped"
)

// Log messages - lobby expiry
const (
	LogMsgLobbySweepDone   = "Lobby sweep completed"
	LogMsgLobbySweepFailed = "Lobby sweep failed"
)

// DefaultJobTimeout bounds a single job run
const DefaultJobTimeout = 30 * time.Second
