package models

import (
	"time"

	"github.com/google/uuid"
)

// HardwareAssetModel represents the database model for HardwareAssets
type HardwareAssetModel struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key"`
	ServiceTag         string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	AssetType          string     `gorm:"type:varchar(20);not null;index"`
	Model              string     `gorm:"type:varchar(255)"`
	InvoiceNumber      *string    `gorm:"type:varchar(100)"`
	PONumber           *string    `gorm:"type:varchar(100)"`
	Cost               float64    `gorm:"type:decimal(12,2);default:0"`
	PurchaseDate       *time.Time
	AssignedTo         *string    `gorm:"type:varchar(50);index"`
	AssignedToName     *string    `gorm:"type:varchar(255)"`
	AssignedDate       *time.Time
	Status             string     `gorm:"type:varchar(20);not null;default:'Instock';index"`
	VerificationStatus string     `gorm:"type:varchar(20);not null;default:'NotStarted';index"`
	LastVerifiedDate   *time.Time
	VerificationImage  *string    `gorm:"type:text"`
	IsHighValue        bool       `gorm:"default:false;not null"`
	Location           string     `gorm:"type:varchar(255)"`
	Team               string     `gorm:"type:varchar(100);index"`
	CreatedAt          time.Time  `gorm:"not null;index"`
	UpdatedAt          time.Time  `gorm:"not null"`
}

func (HardwareAssetModel) TableName() string {
	return "hardware_assets"
}
