package models

import (
	"time"

	"github.com/google/uuid"
)

// VerificationRecordModel represents the database model for VerificationRecords.
// PeripheralsConfirmed and PeripheralsNotWithMe are JSON-encoded string arrays.
type VerificationRecordModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	CampaignID   uuid.UUID `gorm:"type:uuid;not null;index:idx_records_campaign_asset,unique"`
	EmployeeID   string    `gorm:"type:varchar(50);not null;index"`
	EmployeeName string    `gorm:"type:varchar(255)"`
	AssetID      uuid.UUID `gorm:"type:uuid;not null;index:idx_records_campaign_asset,unique"`
	ServiceTag   string    `gorm:"type:varchar(100);not null"`
	AssetType    string    `gorm:"type:varchar(20);not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:'Pending';index"`

	RecordedServiceTag   *string    `gorm:"type:varchar(100)"`
	UploadedImage        *string    `gorm:"type:text"`
	PeripheralsConfirmed string     `gorm:"type:text"`
	PeripheralsNotWithMe string     `gorm:"type:text"`
	Comment              *string    `gorm:"type:text"`
	SubmittedDate        *time.Time
	ReviewedBy           *string    `gorm:"type:varchar(50)"`
	ExceptionType        *string    `gorm:"type:varchar(30)"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Campaign *CampaignModel `gorm:"foreignKey:CampaignID"`
}

func (VerificationRecordModel) TableName() string {
	return "verification_records"
}

// VerificationTokenModel represents the database model for VerificationTokens.
// AssetIDs is a JSON-encoded uuid array.
type VerificationTokenModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key"`
	Token         string     `gorm:"type:varchar(64);uniqueIndex;not null"`
	EmployeeID    string     `gorm:"type:varchar(50);not null;index"`
	EmployeeName  string     `gorm:"type:varchar(255)"`
	EmployeeEmail string     `gorm:"type:varchar(255);not null"`
	CampaignID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	CampaignName  string     `gorm:"type:varchar(255)"`
	AssetIDs      string     `gorm:"type:text"`
	CreatedAt     time.Time  `gorm:"not null"`
	ExpiresAt     time.Time  `gorm:"not null;index"`
	Used          bool       `gorm:"default:false;not null"`
	UsedAt        *time.Time

	Campaign *CampaignModel `gorm:"foreignKey:CampaignID"`
}

func (VerificationTokenModel) TableName() string {
	return "verification_tokens"
}
