package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a portal account in the domain
type User struct {
	ID             uuid.UUID
	Username       string
	Email          string
	PasswordHashed string
	Name           string
	Phone          *string
	Department     string
	EmployeeID     string
	Role           string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RefreshToken represents a stored refresh token
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsExpired reports whether the refresh token can no longer be exchanged.
func (t *RefreshToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
