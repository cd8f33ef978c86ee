package models

import (
	"time"

	"github.com/google/uuid"
)

// EquipmentCountModel represents the database model for EquipmentCounts
type EquipmentCountModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	Category           string    `gorm:"type:varchar(20);not null;index"`
	ItemName           string    `gorm:"type:varchar(255);not null"`
	Quantity           int       `gorm:"type:integer;not null;default:0"`
	Value              float64   `gorm:"type:decimal(12,2);default:0"`
	Location           string    `gorm:"type:varchar(255);index"`
	UploadedBy         string    `gorm:"type:varchar(50);not null;index"`
	UploadedDate       time.Time `gorm:"not null"`
	Status             string    `gorm:"type:varchar(20);not null;default:'Active'"`
	VerificationStatus string    `gorm:"type:varchar(20);not null;default:'Pending'"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

func (EquipmentCountModel) TableName() string {
	return "equipment_counts"
}
