package battle

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/event"
	"github.com/osse101/PackBattle_Go/internal/utils"
)

type fixture struct {
	repo    *MockRepository
	tx      *MockTx
	catalog *MockCatalog
	bus     *MockEventBus
	rec     *recordingRecorder
	svc     Service
}

func newFixture(rng utils.RandomSource) *fixture {
	f := &fixture{
		repo:    new(MockRepository),
		tx:      new(MockTx),
		catalog: new(MockCatalog),
		bus:     new(MockEventBus),
		rec:     &recordingRecorder{},
	}
	f.svc = NewService(f.repo, f.catalog, f.bus, rng, Config{
		Retry:    RetryPolicy{Attempts: 3, Delay: time.Millisecond},
		Recorder: f.rec,
	})
	f.tx.On("Rollback", mock.Anything).Return(nil).Maybe()
	f.bus.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	return f
}

func testBox(entries ...domain.CatalogEntry) *domain.Box {
	box := &domain.Box{ID: uuid.New(), Name: "Base Set", CardsPerPack: 1, Price: decimal.NewFromInt(5)}
	for _, e := range entries {
		e.BoxID = box.ID
		box.Entries = append(box.Entries, e)
	}
	return box
}

func (f *fixture) expectSettlement(b *domain.Battle) {
	f.repo.On("BeginBattleTx", mock.Anything).Return(f.tx, nil)
	f.tx.On("GetBattleForUpdate", mock.Anything, b.ID).Return(b, nil)
	f.tx.On("UpdateBattleStatusIfMatches", mock.Anything, b.ID, domain.BattleStatusWaiting, domain.BattleStatusInProgress, mock.Anything).Return(1, nil)
	f.tx.On("SaveDraws", mock.Anything, b.ID, mock.Anything, mock.Anything).Return(nil)
	f.tx.On("UpdateParticipantTotals", mock.Anything, mock.Anything, b.Rounds).Return(nil)
	f.tx.On("TransferCards", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.tx.On("Commit", mock.Anything).Return(nil)
	f.repo.On("FinishBattle", mock.Anything, mock.Anything).Return(nil)
}

func TestStartBattle_TwoPlayerHighestWins(t *testing.T) {
	low, high := entry(50, 10), entry(50, 20)
	box := testBox(low, high)
	// A rolls into the second half (v:20), B into the first (v:10)
	f := newFixture(newScriptedSource(0.9, 0.1))
	ctx := context.Background()

	b := newTestBattle(domain.BattleModeHighestWins, 2, 0)
	b.BoxID = box.ID
	a, bee := b.Participants[0], b.Participants[1]
	creator := &domain.User{ID: b.CreatorID, Username: "ash"}

	f.repo.On("GetBattle", ctx, b.ID).Return(b, nil)
	f.repo.On("GetUserByID", ctx, creator.ID).Return(creator, nil)
	f.catalog.On("GetBox", ctx, box.ID).Return(box, nil)
	f.expectSettlement(b)

	settled, err := f.svc.StartBattle(ctx, creator.ID, b.ID)

	require.NoError(t, err)
	require.NotNil(t, settled.WinnerID)
	assert.Equal(t, a.ID, *settled.WinnerID)
	require.Len(t, settled.Draws, 2)
	assert.Equal(t, 20.0, settled.Draws[0].Value)
	assert.Equal(t, a.ID, settled.Draws[0].ParticipantID)
	assert.Equal(t, 10.0, settled.Draws[1].Value)
	assert.Equal(t, bee.ID, settled.Draws[1].ParticipantID)
	for _, d := range settled.Draws {
		assert.Equal(t, a.UserID, d.OwnerID, "A owns both draws")
		assert.Equal(t, "card", d.CardName)
	}
	assert.Equal(t, 20.0, settled.Participant(a.ID).TotalValue)
	assert.Equal(t, 10.0, settled.Participant(bee.ID).TotalValue)

	f.tx.AssertCalled(t, "TransferCards", mock.Anything, mock.Anything, a.UserID)
	f.tx.AssertNotCalled(t, "TransferCards", mock.Anything, mock.Anything, bee.UserID)
	f.bus.AssertCalled(t, "Publish", ctx, mock.MatchedBy(func(e event.Event) bool { return e.Type == event.BattleFinished }))
	assert.Equal(t, []domain.BattleMode{domain.BattleModeHighestWins}, f.rec.settlements)
}

func TestStartBattle_PrizeByMode(t *testing.T) {
	tests := []struct {
		mode       domain.BattleMode
		wantCredit bool
	}{
		{domain.BattleModeHighestWins, true},
		{domain.BattleModeLowestWins, true},
		{domain.BattleModeJackpot, true},
		{domain.BattleModeShared, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			f := newFixture(utils.NewSeededSource(5))
			ctx := context.Background()
			box := testBox(entry(1, 3), entry(2, 8))
			b := newTestBattle(tt.mode, 4, 25)
			b.BoxID = box.ID
			b.Rounds = 2
			creator := &domain.User{ID: b.CreatorID}

			f.repo.On("GetBattle", ctx, b.ID).Return(b, nil)
			f.repo.On("GetUserByID", ctx, creator.ID).Return(creator, nil)
			f.catalog.On("GetBox", ctx, box.ID).Return(box, nil)
			f.expectSettlement(b)
			f.repo.On("CreditBalance", mock.Anything, mock.Anything, mock.Anything).Return(nil)

			settled, err := f.svc.StartBattle(ctx, creator.ID, b.ID)

			require.NoError(t, err)
			assert.True(t, settled.TotalPrize.Equal(decimal.NewFromInt(100)))
			assert.Len(t, settled.Draws, 8)
			if tt.wantCredit {
				winner := settled.Participant(*settled.WinnerID)
				f.repo.AssertCalled(t, "CreditBalance", mock.Anything, winner.UserID, decimal.NewFromInt(100))
			} else {
				assert.Nil(t, settled.WinnerID)
				assert.NotNil(t, settled.FeaturedParticipantID)
				f.repo.AssertNotCalled(t, "CreditBalance", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestStartBattle_Preconditions(t *testing.T) {
	stranger := &domain.User{ID: uuid.New(), Username: "gary"}

	tests := []struct {
		name   string
		caller func(b *domain.Battle) uuid.UUID
		setup  func(f *fixture, b *domain.Battle, box *domain.Box)
		want   error
		reason string
	}{
		{
			name:   "not authenticated",
			caller: func(*domain.Battle) uuid.UUID { return uuid.Nil },
			setup:  func(*fixture, *domain.Battle, *domain.Box) {},
			want:   domain.ErrNotAuthenticated,
			reason: ReasonUserNotFound,
		},
		{
			name:   "battle not found",
			caller: func(b *domain.Battle) uuid.UUID { return b.CreatorID },
			setup: func(f *fixture, b *domain.Battle, _ *domain.Box) {
				f.repo.On("GetBattle", mock.Anything, b.ID).Return(nil, nil)
			},
			want:   domain.ErrBattleNotFound,
			reason: ReasonBattleNotFound,
		},
		{
			name:   "user not found",
			caller: func(b *domain.Battle) uuid.UUID { return b.CreatorID },
			setup: func(f *fixture, b *domain.Battle, _ *domain.Box) {
				f.repo.On("GetBattle", mock.Anything, b.ID).Return(b, nil)
				f.repo.On("GetUserByID", mock.Anything, b.CreatorID).Return(nil, nil)
			},
			want:   domain.ErrUserNotFound,
			reason: ReasonUserNotFound,
		},
		{
			name:   "not authorized",
			caller: func(*domain.Battle) uuid.UUID { return stranger.ID },
			setup: func(f *fixture, b *domain.Battle, _ *domain.Box) {
				f.repo.On("GetBattle", mock.Anything, b.ID).Return(b, nil)
				f.repo.On("GetUserByID", mock.Anything, stranger.ID).Return(stranger, nil)
			},
			want:   domain.ErrNotAuthorized,
			reason: ReasonNotAuthorized,
		},
		{
			name:   "already finished",
			caller: func(b *domain.Battle) uuid.UUID { return b.CreatorID },
			setup: func(f *fixture, b *domain.Battle, _ *domain.Box) {
				b.Status = domain.BattleStatusFinished
				f.repo.On("GetBattle", mock.Anything, b.ID).Return(b, nil)
				f.repo.On("GetUserByID", mock.Anything, b.CreatorID).Return(&domain.User{ID: b.CreatorID}, nil)
			},
			want:   domain.ErrBattleNotWaiting,
			reason: ReasonNotWaiting,
		},
		{
			name:   "not full",
			caller: func(b *domain.Battle) uuid.UUID { return b.CreatorID },
			setup: func(f *fixture, b *domain.Battle, _ *domain.Box) {
				b.MaxParticipants = 3
				f.repo.On("GetBattle", mock.Anything, b.ID).Return(b, nil)
				f.repo.On("GetUserByID", mock.Anything, b.CreatorID).Return(&domain.User{ID: b.CreatorID}, nil)
			},
			want:   domain.ErrBattleNotFull,
			reason: ReasonNotFull,
		},
		{
			name:   "human not ready",
			caller: func(b *domain.Battle) uuid.UUID { return b.CreatorID },
			setup: func(f *fixture, b *domain.Battle, _ *domain.Box) {
				b.Participants[1].Ready = false
				f.repo.On("GetBattle", mock.Anything, b.ID).Return(b, nil)
				f.repo.On("GetUserByID", mock.Anything, b.CreatorID).Return(&domain.User{ID: b.CreatorID}, nil)
			},
			want:   domain.ErrParticipantsNotReady,
			reason: ReasonNotReady,
		},
		{
			name:   "empty catalog",
			caller: func(b *domain.Battle) uuid.UUID { return b.CreatorID },
			setup: func(f *fixture, b *domain.Battle, box *domain.Box) {
				box.Entries = nil
				f.repo.On("GetBattle", mock.Anything, b.ID).Return(b, nil)
				f.repo.On("GetUserByID", mock.Anything, b.CreatorID).Return(&domain.User{ID: b.CreatorID}, nil)
				f.catalog.On("GetBox", mock.Anything, box.ID).Return(box, nil)
			},
			want:   domain.ErrEmptyCatalog,
			reason: ReasonEmptyCatalog,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(utils.NewSeededSource(1))
			box := testBox(entry(1, 1))
			b := newTestBattle(domain.BattleModeHighestWins, 2, 10)
			b.BoxID = box.ID
			tt.setup(f, b, box)

			settled, err := f.svc.StartBattle(context.Background(), tt.caller(b), b.ID)

			assert.Nil(t, settled)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, []string{tt.reason}, f.rec.rejections)
			f.repo.AssertNotCalled(t, "BeginBattleTx", mock.Anything)
			f.repo.AssertNotCalled(t, "CreditBalance", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestStartBattle_BotsNeedNoReady(t *testing.T) {
	f := newFixture(utils.NewSeededSource(1))
	ctx := context.Background()
	box := testBox(entry(1, 1))
	b := newTestBattle(domain.BattleModeLowestWins, 2, 0)
	b.BoxID = box.ID
	b.Participants[1].IsBot = true
	b.Participants[1].Ready = false

	f.repo.On("GetBattle", ctx, b.ID).Return(b, nil)
	f.repo.On("GetUserByID", ctx, b.CreatorID).Return(&domain.User{ID: b.CreatorID}, nil)
	f.catalog.On("GetBox", ctx, box.ID).Return(box, nil)
	f.expectSettlement(b)

	_, err := f.svc.StartBattle(ctx, b.CreatorID, b.ID)
	assert.NoError(t, err)
}

func TestStartBattle_ReadinessRecheckedUnderLock(t *testing.T) {
	f := newFixture(utils.NewSeededSource(1))
	ctx := context.Background()
	box := testBox(entry(1, 1))
	b := newTestBattle(domain.BattleModeHighestWins, 2, 10)
	b.BoxID = box.ID

	// A SetReady(false) commits between the unlocked read and the lock
	locked := *b
	locked.Participants = append([]domain.Participant(nil), b.Participants...)
	locked.Participants[1].Ready = false

	f.repo.On("GetBattle", ctx, b.ID).Return(b, nil)
	f.repo.On("GetUserByID", ctx, b.CreatorID).Return(&domain.User{ID: b.CreatorID}, nil)
	f.catalog.On("GetBox", ctx, box.ID).Return(box, nil)
	f.repo.On("BeginBattleTx", mock.Anything).Return(f.tx, nil)
	f.tx.On("GetBattleForUpdate", mock.Anything, b.ID).Return(&locked, nil)

	_, err := f.svc.StartBattle(ctx, b.CreatorID, b.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParticipantsNotReady)
	var se *SettlementError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, PhaseStatusGate, se.Phase)
	f.tx.AssertNotCalled(t, "UpdateBattleStatusIfMatches", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.tx.AssertNotCalled(t, "SaveDraws", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.tx.AssertNotCalled(t, "Commit", mock.Anything)
	f.repo.AssertNotCalled(t, "CreditBalance", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, []string{ReasonNotReady}, f.rec.rejections)
}

func TestStartBattle_LobbyGoneUnderLock(t *testing.T) {
	f := newFixture(utils.NewSeededSource(1))
	ctx := context.Background()
	box := testBox(entry(1, 1))
	b := newTestBattle(domain.BattleModeHighestWins, 2, 0)
	b.BoxID = box.ID

	f.repo.On("GetBattle", ctx, b.ID).Return(b, nil)
	f.repo.On("GetUserByID", ctx, b.CreatorID).Return(&domain.User{ID: b.CreatorID}, nil)
	f.catalog.On("GetBox", ctx, box.ID).Return(box, nil)
	f.repo.On("BeginBattleTx", mock.Anything).Return(f.tx, nil)
	f.tx.On("GetBattleForUpdate", mock.Anything, b.ID).Return(nil, nil)

	_, err := f.svc.StartBattle(ctx, b.CreatorID, b.ID)
	assert.ErrorIs(t, err, domain.ErrBattleNotFound)
	f.tx.AssertNotCalled(t, "UpdateBattleStatusIfMatches", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestStartBattle_AdminMayStartOthersBattle(t *testing.T) {
	f := newFixture(utils.NewSeededSource(1))
	ctx := context.Background()
	box := testBox(entry(1, 1))
	b := newTestBattle(domain.BattleModeJackpot, 2, 0)
	b.BoxID = box.ID
	admin := &domain.User{ID: uuid.New(), Role: domain.RoleAdmin}

	f.repo.On("GetBattle", ctx, b.ID).Return(b, nil)
	f.repo.On("GetUserByID", ctx, admin.ID).Return(admin, nil)
	f.catalog.On("GetBox", ctx, box.ID).Return(box, nil)
	f.expectSettlement(b)

	settled, err := f.svc.StartBattle(ctx, admin.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BattleStatusFinished, settled.Status)
}

func TestStartBattle_ConcurrentStartsSettleOnce(t *testing.T) {
	f := newFixture(utils.NewSeededSource(1))
	box := testBox(entry(1, 1), entry(1, 2))
	b := newTestBattle(domain.BattleModeHighestWins, 2, 10)
	b.BoxID = box.ID

	f.repo.On("GetBattle", mock.Anything, b.ID).Return(b, nil)
	f.repo.On("GetUserByID", mock.Anything, b.CreatorID).Return(&domain.User{ID: b.CreatorID}, nil)
	f.catalog.On("GetBox", mock.Anything, box.ID).Return(box, nil)
	f.repo.On("BeginBattleTx", mock.Anything).Return(f.tx, nil)
	f.tx.On("GetBattleForUpdate", mock.Anything, b.ID).Return(b, nil)
	// The database serialises the gate: the first caller wins, the other sees 0 rows
	f.tx.On("UpdateBattleStatusIfMatches", mock.Anything, b.ID, domain.BattleStatusWaiting, domain.BattleStatusInProgress, mock.Anything).Return(1, nil).Once()
	f.tx.On("UpdateBattleStatusIfMatches", mock.Anything, b.ID, domain.BattleStatusWaiting, domain.BattleStatusInProgress, mock.Anything).Return(0, nil).Once()
	f.tx.On("SaveDraws", mock.Anything, b.ID, mock.Anything, mock.Anything).Return(nil).Once()
	f.tx.On("UpdateParticipantTotals", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.tx.On("TransferCards", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.tx.On("Commit", mock.Anything).Return(nil).Once()
	f.repo.On("CreditBalance", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	f.repo.On("FinishBattle", mock.Anything, mock.Anything).Return(nil).Once()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.StartBattle(context.Background(), b.CreatorID, b.ID)
		}(i)
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrBattleNotWaiting):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)
	f.tx.AssertNumberOfCalls(t, "Commit", 1)
	f.repo.AssertNumberOfCalls(t, "CreditBalance", 1)
	assert.Equal(t, []string{ReasonNotWaiting}, f.rec.rejections)
}

func TestStartBattle_SettlementIgnoresCallerCancellation(t *testing.T) {
	f := newFixture(utils.NewSeededSource(1))
	box := testBox(entry(1, 1))
	b := newTestBattle(domain.BattleModeHighestWins, 2, 0)
	b.BoxID = box.ID
	ctx, cancel := context.WithCancel(context.Background())

	f.repo.On("GetBattle", mock.Anything, b.ID).Return(b, nil)
	f.repo.On("GetUserByID", mock.Anything, b.CreatorID).Return(&domain.User{ID: b.CreatorID}, nil)
	f.catalog.On("GetBox", mock.Anything, box.ID).Return(box, nil).Run(func(mock.Arguments) { cancel() })
	f.repo.On("BeginBattleTx", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil })).Return(f.tx, nil)
	f.tx.On("GetBattleForUpdate", mock.Anything, b.ID).Return(b, nil)
	f.tx.On("UpdateBattleStatusIfMatches", mock.Anything, b.ID, domain.BattleStatusWaiting, domain.BattleStatusInProgress, mock.Anything).Return(1, nil)
	f.tx.On("SaveDraws", mock.Anything, b.ID, mock.Anything, mock.Anything).Return(nil)
	f.tx.On("UpdateParticipantTotals", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.tx.On("TransferCards", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.tx.On("Commit", mock.Anything).Return(nil)
	f.repo.On("FinishBattle", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.StartBattle(ctx, b.CreatorID, b.ID)
	assert.NoError(t, err)
}

func TestStartBattle_RetriesTransientLookup(t *testing.T) {
	f := newFixture(utils.NewSeededSource(1))
	ctx := context.Background()
	box := testBox(entry(1, 1))
	b := newTestBattle(domain.BattleModeHighestWins, 2, 0)
	b.BoxID = box.ID
	transient := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	f.repo.On("GetBattle", ctx, b.ID).Return(nil, transient).Twice()
	f.repo.On("GetBattle", ctx, b.ID).Return(b, nil).Once()
	f.repo.On("GetUserByID", ctx, b.CreatorID).Return(&domain.User{ID: b.CreatorID}, nil)
	f.catalog.On("GetBox", ctx, box.ID).Return(box, nil)
	f.expectSettlement(b)

	_, err := f.svc.StartBattle(ctx, b.CreatorID, b.ID)

	require.NoError(t, err)
	f.repo.AssertNumberOfCalls(t, "GetBattle", 3)
}

func TestStartBattle_LookupRetriesExhausted(t *testing.T) {
	f := newFixture(utils.NewSeededSource(1))
	ctx := context.Background()
	battleID := uuid.New()
	transient := &net.OpError{Op: "read", Net: "tcp", Err: errors.New("connection reset")}

	f.repo.On("GetBattle", ctx, battleID).Return(nil, transient)

	_, err := f.svc.StartBattle(ctx, uuid.New(), battleID)

	require.Error(t, err)
	assert.ErrorIs(t, err, transient)
	f.repo.AssertNumberOfCalls(t, "GetBattle", 3)
	assert.Equal(t, []string{ReasonInternal}, f.rec.rejections)
}

func TestStartBattle_PermanentLookupErrorNotRetried(t *testing.T) {
	f := newFixture(utils.NewSeededSource(1))
	ctx := context.Background()
	battleID := uuid.New()

	f.repo.On("GetBattle", ctx, battleID).Return(nil, errors.New("syntax error at or near"))

	_, err := f.svc.StartBattle(ctx, uuid.New(), battleID)

	require.Error(t, err)
	f.repo.AssertNumberOfCalls(t, "GetBattle", 1)
}
