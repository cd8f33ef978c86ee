package models

import (
	"time"

	"github.com/google/uuid"
)

// PeripheralModel represents the database model for Peripherals.
// Every physical unit is one row, serialized or not.
type PeripheralModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key"`
	Type           string     `gorm:"type:varchar(20);not null;index"`
	SerialNumber   *string    `gorm:"type:varchar(100)"`
	Status         string     `gorm:"type:varchar(20);not null;default:'Instock';index"`
	AssignedTo     *string    `gorm:"type:varchar(50);index"`
	AssignedToName *string    `gorm:"type:varchar(255)"`
	Verified       bool       `gorm:"default:false;not null"`
	AssignedDate   *time.Time
	VerifiedDate   *time.Time
	PurchaseDate   *time.Time
	Location       string     `gorm:"type:varchar(255)"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      time.Time  `gorm:"not null"`
}

func (PeripheralModel) TableName() string {
	return "peripherals"
}
