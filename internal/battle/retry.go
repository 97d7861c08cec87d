package battle

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/osse101/PackBattle_Go/internal/logger"
)

// RetryPolicy bounds retries of read-only lookups. Attempts counts the
// first call; the wait before retry i is Delay*i.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryPolicy is three attempts with linear backoff from 100ms
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Delay: 100 * time.Millisecond}

// isTransient reports whether err is a connectivity failure worth retrying
func isTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: connection exception
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == "08"
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// lookup runs fn until it succeeds, fails permanently or the attempts run out.
// Only side-effect free reads go through here.
func lookup[T any](ctx context.Context, p RetryPolicy, op string, fn func(context.Context) (T, error)) (T, error) {
	attempts := max(p.Attempts, 1)

	var (
		result T
		err    error
	)
	for i := 1; i <= attempts; i++ {
		result, err = fn(ctx)
		if err == nil || !isTransient(err) || i == attempts {
			return result, err
		}

		logger.FromContext(ctx).Warn(LogMsgLookupRetry, "op", op, "attempt", i, "error", err)
		select {
		case <-ctx.Done():
			return result, errors.Join(err, ctx.Err())
		case <-time.After(p.Delay * time.Duration(i)):
		}
	}
	return result, err
}
