package battle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/logger"
)

var errLobbyFresh = errors.New("lobby is newer than the expiry cutoff")

// ExpireLobbies deletes WAITING battles created more than maxAge ago and
// refunds their human entrants. Lobbies started or deleted concurrently are
// skipped. It returns how many lobbies were removed; failures on individual
// lobbies are joined into the error without stopping the sweep.
func (s *service) ExpireLobbies(ctx context.Context, maxAge time.Duration) (int, error) {
	if maxAge <= 0 {
		return 0, fmt.Errorf("%w: max age must be positive", domain.ErrInvalidInput)
	}
	log := logger.FromContext(ctx)
	cutoff := s.now().Add(-maxAge)

	ids, err := lookup(ctx, s.retry, ErrContextFailedToListExpired, func(ctx context.Context) ([]uuid.UUID, error) {
		return s.repo.ListExpiredLobbies(ctx, cutoff, ExpiryBatchSize)
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextFailedToListExpired, err)
	}

	expired := 0
	var errs []error
	for _, id := range ids {
		b, refunded, err := s.cancelLobby(ctx, id, func(b *domain.Battle) error {
			if !b.CreatedAt.Before(cutoff) {
				return errLobbyFresh
			}
			return nil
		})
		switch {
		case err == nil:
			expired++
			log.Info(LogMsgLobbyExpired, "battleID", b.ID, "createdAt", b.CreatedAt, "refunded", refunded)
		case errors.Is(err, domain.ErrBattleNotFound),
			errors.Is(err, domain.ErrBattleNotWaiting),
			errors.Is(err, errLobbyFresh):
			log.Debug(LogMsgExpirySkipped, "battleID", id, "reason", err)
		default:
			log.Error(LogMsgExpiryFailed, "battleID", id, "error", err)
			errs = append(errs, fmt.Errorf("battle %s: %w", id, err))
		}
	}

	s.recorder.LobbiesExpired(expired)
	return expired, errors.Join(errs...)
}
