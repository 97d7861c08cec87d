package handler

import (
	"context"

	"github.com/google/uuid"
)

type userIDKey struct{}

// WithUserID stores the acting user on the request context
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

// UserIDFromContext returns the acting user, or uuid.Nil when the request
// did not identify one
func UserIDFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(userIDKey{}).(uuid.UUID)
	return id
}
