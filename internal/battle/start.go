package battle

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/event"
	"github.com/osse101/PackBattle_Go/internal/logger"
	"github.com/osse101/PackBattle_Go/internal/utils"
)

// StartBattle draws every card of a full, ready battle, resolves the
// outcome and settles it in the same call. Preconditions are checked
// before anything is written; once settlement begins it runs to completion
// even if the caller goes away.
func (s *service) StartBattle(ctx context.Context, callerID, battleID uuid.UUID) (*domain.Battle, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgStartBattleCalled, "callerID", callerID, "battleID", battleID)

	settled, err := s.startBattle(ctx, callerID, battleID)
	if err != nil {
		s.recorder.StartRejected(rejectionReason(err))
		return nil, err
	}
	return settled, nil
}

func (s *service) startBattle(ctx context.Context, callerID, battleID uuid.UUID) (*domain.Battle, error) {
	if callerID == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}

	b, err := s.loadBattle(ctx, battleID)
	if err != nil {
		return nil, err
	}
	caller, err := s.loadUser(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if err := validateStart(b, caller); err != nil {
		return nil, err
	}

	box, err := s.loadBox(ctx, b.BoxID)
	if err != nil {
		return nil, err
	}
	drawer, err := NewDrawer(box.Entries, s.rng)
	if err != nil {
		return nil, err
	}

	began := s.now()
	ids := b.ParticipantIDs()
	exp := Expand(ids, drawer, b.Rounds, b.SlotsPerRound)
	outcome, err := Resolve(exp.Totals, b.Mode, ids, func(n int) int { return utils.RandomIndex(s.rng, n) })
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToResolve, err)
	}

	// Past this point a half-applied settlement is worse than a slow one
	settled, err := s.committer.Commit(context.WithoutCancel(ctx), b, exp, outcome)
	if err != nil {
		return nil, err
	}
	s.recorder.ObserveSettlement(b.Mode, s.now().Sub(began))

	annotateDraws(settled.Draws, box.Entries)
	logger.FromContext(ctx).Info(LogMsgBattleSettled,
		"battleID", settled.ID,
		"mode", settled.Mode,
		"draws", len(settled.Draws),
		"totalValue", exp.TotalValue(),
		"totalPrize", settled.TotalPrize.String())

	s.publish(ctx, event.NewBattleFinishedEvent(settled))
	return settled, nil
}

// validateStart checks every precondition of a settlement
func validateStart(b *domain.Battle, caller *domain.User) error {
	if err := authorize(b, caller); err != nil {
		return err
	}
	return validateStartable(b)
}

// validateStartable checks the lobby state a settlement needs. It runs on the
// unlocked read and again under the row lock.
func validateStartable(b *domain.Battle) error {
	if b.Status != domain.BattleStatusWaiting {
		return fmt.Errorf("%w (current: %s)", domain.ErrBattleNotWaiting, b.Status)
	}
	if len(b.Participants) != b.MaxParticipants {
		return fmt.Errorf("%w (%d/%d)", domain.ErrBattleNotFull, len(b.Participants), b.MaxParticipants)
	}
	for _, p := range b.Participants {
		if !p.IsBot && !p.Ready {
			return fmt.Errorf("%w: %s", domain.ErrParticipantsNotReady, p.Username)
		}
	}
	return nil
}

// annotateDraws copies display fields of the catalog onto persisted draws
func annotateDraws(draws []domain.Draw, entries []domain.CatalogEntry) {
	byID := make(map[uuid.UUID]*domain.CatalogEntry, len(entries))
	for i := range entries {
		byID[entries[i].ID] = &entries[i]
	}
	for i := range draws {
		if e, ok := byID[draws[i].CatalogEntryID]; ok {
			draws[i].CardName = e.Name
			draws[i].Rarity = e.Rarity
			draws[i].ImageURL = e.ImageURL
		}
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrBattleNotFound):
		return ReasonBattleNotFound
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrNotAuthenticated):
		return ReasonUserNotFound
	case errors.Is(err, domain.ErrNotAuthorized):
		return ReasonNotAuthorized
	case errors.Is(err, domain.ErrBattleNotWaiting):
		return ReasonNotWaiting
	case errors.Is(err, domain.ErrBattleNotFull):
		return ReasonNotFull
	case errors.Is(err, domain.ErrParticipantsNotReady):
		return ReasonNotReady
	case errors.Is(err, domain.ErrEmptyCatalog):
		return ReasonEmptyCatalog
	default:
		return ReasonInternal
	}
}
