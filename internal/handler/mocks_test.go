package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/PackBattle_Go/internal/battle"
	"github.com/osse101/PackBattle_Go/internal/catalog"
	"github.com/osse101/PackBattle_Go/internal/domain"
)

type MockBattleService struct {
	mock.Mock
}

func (m *MockBattleService) CreateBattle(ctx context.Context, creatorID uuid.UUID, params battle.CreateParams) (*domain.Battle, error) {
	args := m.Called(ctx, creatorID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Battle), args.Error(1)
}

func (m *MockBattleService) JoinBattle(ctx context.Context, userID, battleID uuid.UUID) (*domain.Battle, error) {
	return m.battleCall("JoinBattle", ctx, userID, battleID)
}

func (m *MockBattleService) AddBot(ctx context.Context, callerID, battleID uuid.UUID) (*domain.Battle, error) {
	return m.battleCall("AddBot", ctx, callerID, battleID)
}

func (m *MockBattleService) StartBattle(ctx context.Context, callerID, battleID uuid.UUID) (*domain.Battle, error) {
	return m.battleCall("StartBattle", ctx, callerID, battleID)
}

func (m *MockBattleService) SetReady(ctx context.Context, userID, battleID uuid.UUID, ready bool) (*domain.Battle, error) {
	args := m.Called(ctx, userID, battleID, ready)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Battle), args.Error(1)
}

func (m *MockBattleService) DeleteBattle(ctx context.Context, callerID, battleID uuid.UUID) error {
	return m.Called(ctx, callerID, battleID).Error(0)
}

func (m *MockBattleService) ExpireLobbies(ctx context.Context, maxAge time.Duration) (int, error) {
	args := m.Called(ctx, maxAge)
	return args.Int(0), args.Error(1)
}

func (m *MockBattleService) GetBattle(ctx context.Context, id uuid.UUID) (*domain.Battle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Battle), args.Error(1)
}

func (m *MockBattleService) ListBattles(ctx context.Context, status domain.BattleStatus, limit int) ([]domain.Battle, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Battle), args.Error(1)
}

func (m *MockBattleService) GetBox(ctx context.Context, id uuid.UUID) (*domain.Box, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Box), args.Error(1)
}

func (m *MockBattleService) battleCall(method string, ctx context.Context, callerID, battleID uuid.UUID) (*domain.Battle, error) {
	args := m.MethodCalled(method, ctx, callerID, battleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Battle), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetBox(ctx context.Context, id uuid.UUID) (*domain.Box, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Box), args.Error(1)
}

func (m *MockCatalogService) ListBoxes(ctx context.Context) ([]domain.Box, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Box), args.Error(1)
}

func (m *MockCatalogService) SaveBox(ctx context.Context, box *domain.Box) error {
	return m.Called(ctx, box).Error(0)
}

func (m *MockCatalogService) Invalidate(id uuid.UUID) {
	m.Called(id)
}

func (m *MockCatalogService) Stats() catalog.CacheStats {
	return m.Called().Get(0).(catalog.CacheStats)
}

type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}
