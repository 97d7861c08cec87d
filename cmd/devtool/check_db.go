package main

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

const (
	defaultDBAttempts = 30
	dbRetryInterval   = 2 * time.Second
)

type CheckDBCommand struct {
	interval time.Duration
}

func (c *CheckDBCommand) Name() string {
	return "check-db"
}

func (c *CheckDBCommand) Description() string {
	return "Wait for the database to accept connections [attempts]"
}

func (c *CheckDBCommand) Run(ctx context.Context, args []string) error {
	attempts := defaultDBAttempts
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid attempts %q", args[0])
		}
		attempts = n
	}
	interval := c.interval
	if interval == 0 {
		interval = dbRetryInterval
	}

	PrintHeader("Waiting for database...")

	var lastErr error
	for i := 1; i <= attempts; i++ {
		pool, err := connect(ctx)
		if err == nil {
			pool.Close()
			PrintSuccess("Database is ready")
			return nil
		}
		lastErr = err
		PrintWarning("Database not ready (%d/%d): %v", i, attempts, err)

		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}

	return fmt.Errorf("database failed to become ready after %d attempts: %w", attempts, lastErr)
}
