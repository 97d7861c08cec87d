package battle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/logger"
	"github.com/osse101/PackBattle_Go/internal/repository"
	"github.com/osse101/PackBattle_Go/internal/utils"
)

// SettlementError reports the phase in which a settlement failed
type SettlementError struct {
	BattleID uuid.UUID
	Phase    string
	Err      error
}

func (e *SettlementError) Error() string {
	return fmt.Sprintf("settle battle %s: %s: %v", e.BattleID, e.Phase, e.Err)
}

func (e *SettlementError) Unwrap() error { return e.Err }

// Committer applies a resolved battle to storage.
//
// The status transition WAITING -> IN_PROGRESS, draw persistence, participant
// totals and card ownership transfer execute within one atomic unit of work
// (a single BattleTx). Any failure there rolls the battle back to WAITING.
// The prize credit and the FINISHED mark follow the commit as separate
// statements; a failure in either leaves the battle IN_PROGRESS.
type Committer struct {
	repo repository.Battle
	rng  utils.RandomSource
	now  func() time.Time
}

// NewCommitter creates a Committer. rng drives the shared-mode shuffle.
func NewCommitter(repo repository.Battle, rng utils.RandomSource) *Committer {
	return &Committer{repo: repo, rng: rng, now: time.Now}
}

// Commit settles b with the drawn cards and outcome and returns the
// finished battle. The lobby state of b is validated again under the row
// lock before the status gate.
func (c *Committer) Commit(ctx context.Context, b *domain.Battle, exp Expansion, outcome domain.Outcome) (*domain.Battle, error) {
	log := logger.FromContext(ctx).With("battleID", b.ID)

	tx, err := c.repo.BeginBattleTx(ctx)
	if err != nil {
		return nil, c.fail(ctx, b.ID, PhaseBegin, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := c.recheck(ctx, tx, b.ID); err != nil {
		return nil, err
	}

	startedAt := c.now()
	rows, err := tx.UpdateBattleStatusIfMatches(ctx, b.ID, domain.BattleStatusWaiting, domain.BattleStatusInProgress, startedAt)
	if err != nil {
		return nil, c.fail(ctx, b.ID, PhaseStatusGate, err)
	}
	if rows == 0 {
		// Another request won the gate; nothing has been written
		return nil, &SettlementError{BattleID: b.ID, Phase: PhaseStatusGate, Err: domain.ErrBattleNotWaiting}
	}

	owners := make(map[uuid.UUID]uuid.UUID, len(b.Participants))
	for _, p := range b.Participants {
		owners[p.ID] = p.UserID
	}
	draws, err := tx.SaveDraws(ctx, b.ID, exp.Records, owners)
	if err != nil {
		return nil, c.fail(ctx, b.ID, PhasePersistDraws, err)
	}

	if err := tx.UpdateParticipantTotals(ctx, exp.Totals, exp.Rounds); err != nil {
		return nil, c.fail(ctx, b.ID, PhaseUpdateTotals, err)
	}

	if err := c.transfer(ctx, tx, b, draws, outcome); err != nil {
		return nil, c.fail(ctx, b.ID, PhaseTransferCards, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, c.fail(ctx, b.ID, PhaseCommit, err)
	}

	settled := *b
	settled.Status = domain.BattleStatusInProgress
	settled.StartedAt = &startedAt
	settled.Draws = draws
	settled.Shared = outcome.Shared
	settled.WinnerID = outcome.WinnerID
	settled.FeaturedParticipantID = outcome.FeaturedID
	settled.TotalPrize = b.EntryFee.Mul(decimal.NewFromInt(int64(len(b.Participants))))
	settled.Participants = make([]domain.Participant, len(b.Participants))
	for i, p := range b.Participants {
		p.TotalValue = exp.Totals[p.ID]
		p.RoundsCompleted = exp.Rounds
		settled.Participants[i] = p
	}

	if !outcome.Shared && outcome.WinnerID != nil && settled.TotalPrize.IsPositive() {
		winner := settled.Participant(*outcome.WinnerID)
		if winner == nil {
			return nil, c.fail(ctx, b.ID, PhasePrizeCredit, domain.ErrNotParticipant)
		}
		if err := c.repo.CreditBalance(ctx, winner.UserID, settled.TotalPrize); err != nil {
			return nil, c.fail(ctx, b.ID, PhasePrizeCredit, err)
		}
		log.Info("Prize credited", "userID", winner.UserID, "amount", settled.TotalPrize.String())
	}

	finishedAt := c.now()
	settled.Status = domain.BattleStatusFinished
	settled.FinishedAt = &finishedAt
	if err := c.repo.FinishBattle(ctx, &settled); err != nil {
		return nil, c.fail(ctx, b.ID, PhaseFinish, err)
	}

	return &settled, nil
}

func (c *Committer) transfer(ctx context.Context, tx repository.BattleTx, b *domain.Battle, draws []domain.Draw, outcome domain.Outcome) error {
	if len(draws) == 0 {
		return nil
	}
	if outcome.Shared {
		return c.distributeShared(ctx, tx, b, draws)
	}
	if outcome.WinnerID == nil {
		return errors.New("winner-takes-all outcome without a winner")
	}

	winner := b.Participant(*outcome.WinnerID)
	if winner == nil {
		return fmt.Errorf("%w: winner %s", domain.ErrNotParticipant, *outcome.WinnerID)
	}

	cardIDs := make([]uuid.UUID, len(draws))
	for i := range draws {
		cardIDs[i] = draws[i].CardID
		draws[i].OwnerID = winner.UserID
	}
	return tx.TransferCards(ctx, cardIDs, winner.UserID)
}

// distributeShared shuffles the drawn cards and deals them round-robin in
// participant order, then reassigns each owner's cards in one batch
func (c *Committer) distributeShared(ctx context.Context, tx repository.BattleTx, b *domain.Battle, draws []domain.Draw) error {
	if len(b.Participants) == 0 {
		return errors.New("shared distribution without participants")
	}

	order := make([]int, len(draws))
	for i := range order {
		order[i] = i
	}
	utils.Shuffle(c.rng, len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	byOwner := make(map[uuid.UUID][]uuid.UUID, len(b.Participants))
	for pos, idx := range order {
		owner := b.Participants[pos%len(b.Participants)].UserID
		draws[idx].OwnerID = owner
		byOwner[owner] = append(byOwner[owner], draws[idx].CardID)
	}

	for _, p := range b.Participants {
		cards := byOwner[p.UserID]
		if len(cards) == 0 {
			continue
		}
		if err := tx.TransferCards(ctx, cards, p.UserID); err != nil {
			return err
		}
	}
	return nil
}

// recheck locks the battle row and validates the lobby state under the lock
func (c *Committer) recheck(ctx context.Context, tx repository.BattleTx, battleID uuid.UUID) error {
	locked, err := tx.GetBattleForUpdate(ctx, battleID)
	if err != nil {
		return c.fail(ctx, battleID, PhaseStatusGate, fmt.Errorf("%s: %w", ErrContextFailedToLockBattle, err))
	}
	if locked == nil {
		return &SettlementError{BattleID: battleID, Phase: PhaseStatusGate, Err: domain.ErrBattleNotFound}
	}
	if err := validateStartable(locked); err != nil {
		return &SettlementError{BattleID: battleID, Phase: PhaseStatusGate, Err: err}
	}
	return nil
}

func (c *Committer) fail(ctx context.Context, battleID uuid.UUID, phase string, err error) error {
	logger.FromContext(ctx).Error(LogMsgSettlementFailed, "battleID", battleID, "phase", phase, "error", err)
	return &SettlementError{BattleID: battleID, Phase: phase, Err: err}
}
