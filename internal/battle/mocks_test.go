package battle

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/event"
	"github.com/osse101/PackBattle_Go/internal/repository"
)

// MockRepository implements repository.Battle
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockRepository) UpsertUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockRepository) GetBattle(ctx context.Context, id uuid.UUID) (*domain.Battle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Battle), args.Error(1)
}

func (m *MockRepository) ListBattles(ctx context.Context, status domain.BattleStatus, limit int) ([]domain.Battle, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Battle), args.Error(1)
}

func (m *MockRepository) ListExpiredLobbies(ctx context.Context, cutoff time.Time, limit int) ([]uuid.UUID, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockRepository) GetBattleDraws(ctx context.Context, battleID uuid.UUID) ([]domain.Draw, error) {
	args := m.Called(ctx, battleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Draw), args.Error(1)
}

func (m *MockRepository) CreditBalance(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error {
	args := m.Called(ctx, userID, amount)
	return args.Error(0)
}

func (m *MockRepository) FinishBattle(ctx context.Context, battle *domain.Battle) error {
	args := m.Called(ctx, battle)
	return args.Error(0)
}

func (m *MockRepository) BeginBattleTx(ctx context.Context) (repository.BattleTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.BattleTx), args.Error(1)
}

// MockTx implements repository.BattleTx
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) InsertBattle(ctx context.Context, battle *domain.Battle) error {
	args := m.Called(ctx, battle)
	return args.Error(0)
}

func (m *MockTx) GetBattleForUpdate(ctx context.Context, id uuid.UUID) (*domain.Battle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Battle), args.Error(1)
}

func (m *MockTx) InsertParticipant(ctx context.Context, participant *domain.Participant) error {
	args := m.Called(ctx, participant)
	return args.Error(0)
}

func (m *MockTx) SetParticipantReady(ctx context.Context, participantID uuid.UUID, ready bool) error {
	args := m.Called(ctx, participantID, ready)
	return args.Error(0)
}

func (m *MockTx) CreateBotUser(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockTx) AdjustBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}

func (m *MockTx) DeleteBattle(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTx) UpdateBattleStatusIfMatches(ctx context.Context, id uuid.UUID, expected, next domain.BattleStatus, at time.Time) (int64, error) {
	args := m.Called(ctx, id, expected, next, at)
	return int64(args.Int(0)), args.Error(1)
}

// SaveDraws assigns fresh card ids so callers see what a real store returns
func (m *MockTx) SaveDraws(ctx context.Context, battleID uuid.UUID, records []domain.DrawRecord, owners map[uuid.UUID]uuid.UUID) ([]domain.Draw, error) {
	args := m.Called(ctx, battleID, records, owners)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	draws := make([]domain.Draw, len(records))
	for i, r := range records {
		draws[i] = domain.Draw{
			ID:             uuid.New(),
			BattleID:       battleID,
			ParticipantID:  r.ParticipantID,
			CatalogEntryID: r.CatalogEntryID,
			CardID:         uuid.New(),
			Round:          r.Round,
			Value:          r.Value,
			OwnerID:        owners[r.ParticipantID],
		}
	}
	return draws, nil
}

func (m *MockTx) UpdateParticipantTotals(ctx context.Context, totals map[uuid.UUID]float64, roundsCompleted int) error {
	args := m.Called(ctx, totals, roundsCompleted)
	return args.Error(0)
}

func (m *MockTx) TransferCards(ctx context.Context, cardIDs []uuid.UUID, ownerID uuid.UUID) error {
	args := m.Called(ctx, cardIDs, ownerID)
	return args.Error(0)
}

// MockCatalog implements Catalog
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetBox(ctx context.Context, id uuid.UUID) (*domain.Box, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Box), args.Error(1)
}

// MockEventBus implements event.Bus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

// recordingRecorder captures settlement metrics
type recordingRecorder struct {
	mu          sync.Mutex
	settlements []domain.BattleMode
	rejections  []string
	expired     int
}

func (r *recordingRecorder) LobbiesExpired(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.expired += n
}

func (r *recordingRecorder) ObserveSettlement(mode domain.BattleMode, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.settlements = append(r.settlements, mode)
}

func (r *recordingRecorder) StartRejected(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejections = append(r.rejections, reason)
}

// scriptedSource replays fixed rolls, then repeats the last one
type scriptedSource struct {
	mu    sync.Mutex
	rolls []float64
}

func newScriptedSource(rolls ...float64) *scriptedSource {
	return &scriptedSource{rolls: rolls}
}

func (s *scriptedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.rolls[0]
	if len(s.rolls) > 1 {
		s.rolls = s.rolls[1:]
	}
	return v
}
