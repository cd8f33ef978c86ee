package user

import (
	"time"

	"github.com/google/uuid"

	domainUser "asset-verification-portal/internal/domain/user"
)

// Request DTOs
type RegisterRequest struct {
	Username   string  `json:"username" validate:"required,min=3,max=50,alphanum"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	Name       string  `json:"name" validate:"required,min=2,max=255"`
	Phone      *string `json:"phone" validate:"omitempty,phone"`
	Department string  `json:"department" validate:"required,max=100"`
	EmployeeID string  `json:"employee_id" validate:"required,max=50"`
	Role       string  `json:"role" validate:"required,user_role"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UpdateProfileRequest struct {
	Email      *string `json:"email" validate:"omitempty,email"`
	Name       *string `json:"name" validate:"omitempty,min=2,max=255"`
	Phone      *string `json:"phone" validate:"omitempty,phone"`
	Department *string `json:"department" validate:"omitempty,max=100"`
}

// Response DTOs
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Phone      *string   `json:"phone,omitempty"`
	Department string    `json:"department"`
	EmployeeID string    `json:"employee_id"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type AuthResponse struct {
	User         *UserResponse `json:"user"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		Name:       u.Name,
		Phone:      u.Phone,
		Department: u.Department,
		EmployeeID: u.EmployeeID,
		Role:       u.Role,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}
