package battle

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/event"
	"github.com/osse101/PackBattle_Go/internal/logger"
	"github.com/osse101/PackBattle_Go/internal/repository"
	"github.com/osse101/PackBattle_Go/internal/utils"
)

// CreateBattle opens a lobby, charges the creator's entry fee and seats
// the creator as the first participant
func (s *service) CreateBattle(ctx context.Context, creatorID uuid.UUID, params CreateParams) (*domain.Battle, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCreateBattleCalled, "creatorID", creatorID, "boxID", params.BoxID, "mode", params.Mode)

	if err := params.Validate(); err != nil {
		return nil, err
	}

	creator, err := s.loadUser(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	box, err := s.loadBox(ctx, params.BoxID)
	if err != nil {
		return nil, err
	}
	if len(box.Entries) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	now := s.now()
	b := &domain.Battle{
		ID:              uuid.New(),
		CreatorID:       creator.ID,
		BoxID:           box.ID,
		Status:          domain.BattleStatusWaiting,
		Mode:            params.Mode,
		Rounds:          params.Rounds,
		SlotsPerRound:   max(box.CardsPerPack, DefaultSlotsPerPack),
		MaxParticipants: params.MaxParticipants,
		EntryFee:        params.EntryFee,
		Shared:          params.Mode.IsShared(),
		CreatedAt:       now,
	}
	p := domain.Participant{
		ID:       uuid.New(),
		BattleID: b.ID,
		UserID:   creator.ID,
		Username: creator.Username,
		IsBot:    creator.IsBot,
		Ready:    creator.IsBot,
		JoinedAt: now,
	}

	tx, err := s.repo.BeginBattleTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.InsertBattle(ctx, b); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToInsertBattle, err)
	}
	if err := s.chargeFee(ctx, tx, b, creator); err != nil {
		return nil, err
	}
	if err := tx.InsertParticipant(ctx, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToAddEntrant, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	b.Participants = []domain.Participant{p}
	s.publish(ctx, event.NewBattleCreatedEvent(b))
	return b, nil
}

// JoinBattle seats a user in a waiting battle after charging the entry fee
func (s *service) JoinBattle(ctx context.Context, userID, battleID uuid.UUID) (*domain.Battle, error) {
	logger.FromContext(ctx).Info(LogMsgJoinBattleCalled, "userID", userID, "battleID", battleID)

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginBattleTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	b, err := lockOpenBattle(ctx, tx, battleID)
	if err != nil {
		return nil, err
	}
	if b.ParticipantByUser(user.ID) != nil {
		return nil, domain.ErrAlreadyJoined
	}
	if b.IsFull() {
		return nil, domain.ErrBattleFull
	}
	if err := s.chargeFee(ctx, tx, b, user); err != nil {
		return nil, err
	}

	p := domain.Participant{
		ID:       uuid.New(),
		BattleID: b.ID,
		UserID:   user.ID,
		Username: user.Username,
		IsBot:    user.IsBot,
		Ready:    user.IsBot,
		JoinedAt: s.now(),
	}
	if err := tx.InsertParticipant(ctx, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToAddEntrant, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	b.Participants = append(b.Participants, p)
	s.publish(ctx, event.NewBattleJoinedEvent(&p))
	return b, nil
}

// AddBot fills a seat with a generated bot account. Bots pay no fee and
// are ready immediately.
func (s *service) AddBot(ctx context.Context, callerID, battleID uuid.UUID) (*domain.Battle, error) {
	logger.FromContext(ctx).Info(LogMsgAddBotCalled, "callerID", callerID, "battleID", battleID)

	caller, err := s.loadUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginBattleTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	b, err := lockOpenBattle(ctx, tx, battleID)
	if err != nil {
		return nil, err
	}
	if err := authorize(b, caller); err != nil {
		return nil, err
	}
	if b.IsFull() {
		return nil, domain.ErrBattleFull
	}

	bot, err := tx.CreateBotUser(ctx, s.botName(len(b.Participants)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCreateBot, err)
	}
	p := domain.Participant{
		ID:       uuid.New(),
		BattleID: b.ID,
		UserID:   bot.ID,
		Username: bot.Username,
		IsBot:    true,
		Ready:    true,
		JoinedAt: s.now(),
	}
	if err := tx.InsertParticipant(ctx, &p); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToAddEntrant, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	b.Participants = append(b.Participants, p)
	s.publish(ctx, event.NewBattleJoinedEvent(&p))
	return b, nil
}

// SetReady toggles the caller's readiness in a waiting battle
func (s *service) SetReady(ctx context.Context, userID, battleID uuid.UUID, ready bool) (*domain.Battle, error) {
	logger.FromContext(ctx).Info(LogMsgSetReadyCalled, "userID", userID, "battleID", battleID, "ready", ready)

	if userID == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}

	tx, err := s.repo.BeginBattleTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	b, err := lockOpenBattle(ctx, tx, battleID)
	if err != nil {
		return nil, err
	}
	p := b.ParticipantByUser(userID)
	if p == nil {
		return nil, domain.ErrNotParticipant
	}
	if err := tx.SetParticipantReady(ctx, p.ID, ready); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSetReady, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}

	p.Ready = ready
	return b, nil
}

// DeleteBattle removes a waiting battle and refunds every human entrant
func (s *service) DeleteBattle(ctx context.Context, callerID, battleID uuid.UUID) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgDeleteBattleCalled, "callerID", callerID, "battleID", battleID)

	caller, err := s.loadUser(ctx, callerID)
	if err != nil {
		return err
	}

	b, refunded, err := s.cancelLobby(ctx, battleID, func(b *domain.Battle) error {
		return authorize(b, caller)
	})
	if err != nil {
		return err
	}

	log.Info(LogMsgBattleDeleted, "battleID", b.ID, "refunded", refunded)
	return nil
}

// cancelLobby deletes a WAITING battle after check passes on the locked row
// and refunds every human entrant in the same transaction
func (s *service) cancelLobby(ctx context.Context, battleID uuid.UUID, check func(*domain.Battle) error) (*domain.Battle, int, error) {
	tx, err := s.repo.BeginBattleTx(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	b, err := lockOpenBattle(ctx, tx, battleID)
	if err != nil {
		return nil, 0, err
	}
	if err := check(b); err != nil {
		return nil, 0, err
	}

	refunded := 0
	if b.EntryFee.IsPositive() {
		for _, p := range b.Participants {
			if p.IsBot {
				continue
			}
			if err := tx.AdjustBalance(ctx, p.UserID, b.EntryFee); err != nil {
				return nil, 0, fmt.Errorf("%s: %w", ErrContextFailedToRefundFee, err)
			}
			refunded++
		}
	}
	if err := tx.DeleteBattle(ctx, b.ID); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", ErrContextFailedToDelete, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	return b, refunded, nil
}

// lockOpenBattle loads a battle under a row lock and requires WAITING
func lockOpenBattle(ctx context.Context, tx repository.BattleTx, id uuid.UUID) (*domain.Battle, error) {
	b, err := tx.GetBattleForUpdate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToLockBattle, err)
	}
	if b == nil {
		return nil, domain.ErrBattleNotFound
	}
	if b.Status != domain.BattleStatusWaiting {
		return nil, fmt.Errorf("%w (current: %s)", domain.ErrBattleNotWaiting, b.Status)
	}
	return b, nil
}

func (s *service) chargeFee(ctx context.Context, tx repository.BattleTx, b *domain.Battle, u *domain.User) error {
	if u.IsBot || !b.EntryFee.IsPositive() {
		return nil
	}
	if u.Balance.LessThan(b.EntryFee) {
		return fmt.Errorf("%w: balance %s, fee %s", domain.ErrInsufficientFunds, u.Balance, b.EntryFee)
	}
	if err := tx.AdjustBalance(ctx, u.ID, b.EntryFee.Neg()); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToChargeFee, err)
	}
	return nil
}

// botName builds a title-cased display name such as "Lucky Dealer #3"
func (s *service) botName(seat int) string {
	adj := botAdjectives[utils.RandomIndex(s.rng, len(botAdjectives))]
	noun := botNouns[utils.RandomIndex(s.rng, len(botNouns))]
	return fmt.Sprintf("%s #%d", cases.Title(language.English).String(adj+" "+noun), seat+1)
}
