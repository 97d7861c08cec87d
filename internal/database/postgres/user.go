package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/PackBattle_Go/internal/domain"
)

const userColumns = `user_id, username, role, is_bot, balance::text`

// UserRepository implements repository.User for PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetUserByID returns the user, or (nil, nil) if there is none
func (r *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return getUser(ctx, r.db, id)
}

// UpsertUser inserts a user or updates its profile and balance. A nil id
// is replaced with a fresh one.
func (r *UserRepository) UpsertUser(ctx context.Context, user *domain.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	query := `
		INSERT INTO users (user_id, username, role, is_bot, balance)
		VALUES ($1, $2, $3, $4, $5::numeric)
		ON CONFLICT (user_id) DO UPDATE
		SET username = EXCLUDED.username,
		    role = EXCLUDED.role,
		    is_bot = EXCLUDED.is_bot,
		    balance = EXCLUDED.balance,
		    updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.Username, string(user.Role), user.IsBot, user.Balance.String())
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

func getUser(ctx context.Context, q querier, id uuid.UUID) (*domain.User, error) {
	row := q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u       domain.User
		role    string
		balance string
	)
	if err := row.Scan(&u.ID, &u.Username, &role, &u.IsBot, &balance); err != nil {
		return nil, err
	}
	u.Role = domain.UserRole(role)

	var err error
	if u.Balance, err = parseDecimal(balance); err != nil {
		return nil, err
	}
	return &u, nil
}
