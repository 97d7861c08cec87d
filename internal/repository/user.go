package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/PackBattle_Go/internal/domain"
)

// User defines data access for accounts.
// GetUserByID returns (nil, nil) when the user does not exist.
type User interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpsertUser(ctx context.Context, user *domain.User) error
}
