package battle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/PackBattle_Go/internal/domain"
	"github.com/osse101/PackBattle_Go/internal/event"
	"github.com/osse101/PackBattle_Go/internal/logger"
	"github.com/osse101/PackBattle_Go/internal/repository"
	"github.com/osse101/PackBattle_Go/internal/utils"
)

// Service defines the interface for battle operations
type Service interface {
	CreateBattle(ctx context.Context, creatorID uuid.UUID, params CreateParams) (*domain.Battle, error)
	JoinBattle(ctx context.Context, userID, battleID uuid.UUID) (*domain.Battle, error)
	AddBot(ctx context.Context, callerID, battleID uuid.UUID) (*domain.Battle, error)
	SetReady(ctx context.Context, userID, battleID uuid.UUID, ready bool) (*domain.Battle, error)
	StartBattle(ctx context.Context, callerID, battleID uuid.UUID) (*domain.Battle, error)
	DeleteBattle(ctx context.Context, callerID, battleID uuid.UUID) error
	ExpireLobbies(ctx context.Context, maxAge time.Duration) (int, error)
	GetBattle(ctx context.Context, id uuid.UUID) (*domain.Battle, error)
	ListBattles(ctx context.Context, status domain.BattleStatus, limit int) ([]domain.Battle, error)
	GetBox(ctx context.Context, id uuid.UUID) (*domain.Box, error)
}

// Catalog provides boxes with their entries loaded
type Catalog interface {
	GetBox(ctx context.Context, id uuid.UUID) (*domain.Box, error)
}

// Recorder receives settlement measurements
type Recorder interface {
	ObserveSettlement(mode domain.BattleMode, d time.Duration)
	StartRejected(reason string)
	LobbiesExpired(n int)
}

type noopRecorder struct{}

func (noopRecorder) ObserveSettlement(domain.BattleMode, time.Duration) {}
func (noopRecorder) StartRejected(string)                               {}
func (noopRecorder) LobbiesExpired(int)                                 {}

// CreateParams describes a new battle lobby
type CreateParams struct {
	BoxID           uuid.UUID
	Mode            domain.BattleMode
	Rounds          int
	MaxParticipants int
	EntryFee        decimal.Decimal
}

// Validate checks the parameters against the configured limits
func (p CreateParams) Validate() error {
	if !p.Mode.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidMode, p.Mode)
	}
	if p.Rounds < MinRounds || p.Rounds > MaxRounds {
		return fmt.Errorf("%w: rounds must be between %d and %d", domain.ErrInvalidInput, MinRounds, MaxRounds)
	}
	if p.MaxParticipants < MinParticipants || p.MaxParticipants > MaxParticipants {
		return fmt.Errorf("%w: max participants must be between %d and %d", domain.ErrInvalidInput, MinParticipants, MaxParticipants)
	}
	if p.EntryFee.IsNegative() {
		return fmt.Errorf("%w: entry fee must not be negative", domain.ErrInvalidInput)
	}
	if !p.EntryFee.Equal(p.EntryFee.Round(EntryFeeScale)) {
		return fmt.Errorf("%w: entry fee must have at most %d decimal places", domain.ErrInvalidInput, EntryFeeScale)
	}
	return nil
}

// Config carries optional service settings
type Config struct {
	Retry    RetryPolicy
	Recorder Recorder
}

type service struct {
	repo      repository.Battle
	catalog   Catalog
	eventBus  event.Bus
	rng       utils.RandomSource
	committer *Committer
	retry     RetryPolicy
	recorder  Recorder
	now       func() time.Time
}

// NewService creates a new battle service
func NewService(repo repository.Battle, catalog Catalog, eventBus event.Bus, rng utils.RandomSource, cfg Config) Service {
	if cfg.Retry.Attempts == 0 {
		cfg.Retry = DefaultRetryPolicy
	}
	if cfg.Recorder == nil {
		cfg.Recorder = noopRecorder{}
	}
	return &service{
		repo:      repo,
		catalog:   catalog,
		eventBus:  eventBus,
		rng:       rng,
		committer: NewCommitter(repo, rng),
		retry:     cfg.Retry,
		recorder:  cfg.Recorder,
		now:       time.Now,
	}
}

// GetBattle returns a battle with its participants, and its draws once started
func (s *service) GetBattle(ctx context.Context, id uuid.UUID) (*domain.Battle, error) {
	b, err := s.loadBattle(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == domain.BattleStatusWaiting {
		return b, nil
	}

	draws, err := lookup(ctx, s.retry, "GetBattleDraws", func(ctx context.Context) ([]domain.Draw, error) {
		return s.repo.GetBattleDraws(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetDraws, err)
	}
	b.Draws = draws
	return b, nil
}

// ListBattles returns the newest battles, optionally filtered by status
func (s *service) ListBattles(ctx context.Context, status domain.BattleStatus, limit int) ([]domain.Battle, error) {
	switch status {
	case "", domain.BattleStatusWaiting, domain.BattleStatusInProgress, domain.BattleStatusFinished:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)

	battles, err := lookup(ctx, s.retry, "ListBattles", func(ctx context.Context) ([]domain.Battle, error) {
		return s.repo.ListBattles(ctx, status, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListBattles, err)
	}
	return battles, nil
}

// GetBox returns a box and its catalog
func (s *service) GetBox(ctx context.Context, id uuid.UUID) (*domain.Box, error) {
	return s.loadBox(ctx, id)
}

func (s *service) loadBattle(ctx context.Context, id uuid.UUID) (*domain.Battle, error) {
	b, err := lookup(ctx, s.retry, "GetBattle", func(ctx context.Context) (*domain.Battle, error) {
		return s.repo.GetBattle(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetBattle, err)
	}
	if b == nil {
		return nil, domain.ErrBattleNotFound
	}
	return b, nil
}

func (s *service) loadUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if id == uuid.Nil {
		return nil, domain.ErrNotAuthenticated
	}
	u, err := lookup(ctx, s.retry, "GetUserByID", func(ctx context.Context) (*domain.User, error) {
		return s.repo.GetUserByID(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetUser, err)
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *service) loadBox(ctx context.Context, id uuid.UUID) (*domain.Box, error) {
	box, err := lookup(ctx, s.retry, "GetBox", func(ctx context.Context) (*domain.Box, error) {
		return s.catalog.GetBox(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetBox, err)
	}
	if box == nil {
		return nil, domain.ErrBoxNotFound
	}
	return box, nil
}

func authorize(b *domain.Battle, u *domain.User) error {
	if b.CreatorID == u.ID || u.IsAdmin() {
		return nil
	}
	return domain.ErrNotAuthorized
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}
