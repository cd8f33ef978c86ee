package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for user repository operations
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*User, error)
	Update(ctx context.Context, user *User) error
	SetActive(ctx context.Context, userID uuid.UUID, active bool) error
	List(ctx context.Context) ([]*User, error)
	ListByDepartments(ctx context.Context, departments []string) ([]*User, error)
	ListByEmployeeIDs(ctx context.Context, employeeIDs []string) ([]*User, error)
}

// RefreshTokenRepository stores issued refresh tokens
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *RefreshToken) error
	GetByToken(ctx context.Context, token string) (*RefreshToken, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) error
}
