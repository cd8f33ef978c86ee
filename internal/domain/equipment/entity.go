package equipment

import (
	"time"

	"github.com/google/uuid"
)

// Category groups aggregate equipment counts
type Category string

const (
	CategoryNetwork    Category = "network"
	CategoryServers    Category = "servers"
	CategoryAudioVideo Category = "audioVideo"
	CategoryFurniture  Category = "furniture"
	CategoryOther      Category = "other"
)

// Status represents the record lifecycle of an equipment count
type Status string

const (
	StatusActive   Status = "Active"
	StatusArchived Status = "Archived"
)

// VerificationStatus mirrors the verification workflow states that apply to
// aggregate counts (counts are never NotStarted; they start Pending).
type VerificationStatus string

const (
	VerificationVerified  VerificationStatus = "Verified"
	VerificationPending   VerificationStatus = "Pending"
	VerificationOverdue   VerificationStatus = "Overdue"
	VerificationException VerificationStatus = "Exception"
)

// EquipmentCount is an aggregate inventory line not tied to serialized assets.
type EquipmentCount struct {
	ID                 uuid.UUID
	Category           Category
	ItemName           string
	Quantity           int
	Value              float64
	Location           string
	UploadedBy         string // employee ID
	UploadedDate       time.Time
	Status             Status
	VerificationStatus VerificationStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ValidCategories lists every recognized category.
func ValidCategories() []Category {
	return []Category{
		CategoryNetwork, CategoryServers, CategoryAudioVideo, CategoryFurniture, CategoryOther,
	}
}

// Statistics represents per-category equipment aggregates
type Statistics struct {
	QuantityByCategory map[string]int
	ValueByCategory    map[string]float64
	TotalQuantity      int
	TotalValue         float64
}
