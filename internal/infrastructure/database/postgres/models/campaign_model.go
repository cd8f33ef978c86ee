package models

import (
	"time"

	"github.com/google/uuid"
)

// CampaignModel represents the database model for Campaigns.
// Filters is the JSON-encoded targeting filter.
type CampaignModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	CreatedBy   string     `gorm:"type:varchar(50);not null;index"`
	CreatedDate time.Time  `gorm:"not null"`
	StartDate   *time.Time
	Deadline    *time.Time `gorm:"index"`
	Status      string     `gorm:"type:varchar(20);not null;default:'Draft';index"`
	Filters     string     `gorm:"type:text"`

	TotalEmployees   int `gorm:"type:integer;default:0"`
	TotalAssets      int `gorm:"type:integer;default:0"`
	TotalPeripherals int `gorm:"type:integer;default:0"`

	VerifiedCount  int `gorm:"type:integer;default:0"`
	PendingCount   int `gorm:"type:integer;default:0"`
	OverdueCount   int `gorm:"type:integer;default:0"`
	ExceptionCount int `gorm:"type:integer;default:0"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CampaignModel) TableName() string {
	return "campaigns"
}
