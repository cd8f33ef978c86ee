package asset

import (
	"time"

	"github.com/google/uuid"
)

// AssetType classifies serialized hardware
type AssetType string

const (
	TypeLaptop  AssetType = "Laptop"
	TypeMonitor AssetType = "Monitor"
	TypeMobile  AssetType = "Mobile"
)

// AssetStatus represents the assignment state of an asset
type AssetStatus string

const (
	StatusInstock  AssetStatus = "Instock"
	StatusAssigned AssetStatus = "Assigned"
)

// VerificationStatus is the last-known verification state of an asset
type VerificationStatus string

const (
	VerificationVerified   VerificationStatus = "Verified"
	VerificationPending    VerificationStatus = "Pending"
	VerificationOverdue    VerificationStatus = "Overdue"
	VerificationException  VerificationStatus = "Exception"
	VerificationNotStarted VerificationStatus = "NotStarted"
)

// HardwareAsset represents a serialized hardware asset in the domain.
// AssignedTo is set iff Status is Assigned.
type HardwareAsset struct {
	ID                 uuid.UUID
	ServiceTag         string
	AssetType          AssetType
	Model              string
	InvoiceNumber      *string
	PONumber           *string
	Cost               float64
	PurchaseDate       *time.Time
	AssignedTo         *string // employee ID
	AssignedToName     *string
	AssignedDate       *time.Time
	Status             AssetStatus
	VerificationStatus VerificationStatus
	LastVerifiedDate   *time.Time
	VerificationImage  *string
	IsHighValue        bool
	Location           string
	Team               string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsAssignedTo reports whether the asset is currently assigned to the employee.
func (a *HardwareAsset) IsAssignedTo(employeeID string) bool {
	return a.Status == StatusAssigned && a.AssignedTo != nil && *a.AssignedTo == employeeID
}

// ValidTypes lists every recognized asset type.
func ValidTypes() []AssetType {
	return []AssetType{TypeLaptop, TypeMonitor, TypeMobile}
}

// ParseType converts a string to an AssetType, reporting whether it is known.
func ParseType(s string) (AssetType, bool) {
	for _, t := range ValidTypes() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}
