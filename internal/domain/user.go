package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRole controls administrative access
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User represents a registered user or a bot account
type User struct {
	ID       uuid.UUID       `json:"id"`
	Username string          `json:"username"`
	Role     UserRole        `json:"role"`
	IsBot    bool            `json:"is_bot"`
	Balance  decimal.Decimal `json:"balance"`
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
