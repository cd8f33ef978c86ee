package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for Users
type UserModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Username       string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHashed string    `gorm:"type:varchar(255);not null"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Phone          *string   `gorm:"type:varchar(20)"`
	Department     string    `gorm:"type:varchar(100);index"`
	EmployeeID     string    `gorm:"type:varchar(50);uniqueIndex;not null"`
	Role           string    `gorm:"type:varchar(30);not null;default:'employee'"`
	IsActive       bool      `gorm:"default:true;not null"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// RefreshTokenModel represents the database model for RefreshTokens
type RefreshTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"type:varchar(512);uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	Revoked   bool      `gorm:"default:false;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID"`
}

func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
