package verification

import (
	"time"

	"github.com/google/uuid"

	"asset-verification-portal/internal/domain/asset"
	"asset-verification-portal/internal/domain/peripheral"
)

// RecordStatus represents the state of a verification record
type RecordStatus string

const (
	StatusPending    RecordStatus = "Pending"
	StatusVerified   RecordStatus = "Verified"
	StatusOverdue    RecordStatus = "Overdue"
	StatusException  RecordStatus = "Exception"
	StatusNotStarted RecordStatus = "NotStarted"
)

// ExceptionType classifies why a record ended in Exception
type ExceptionType string

const (
	ExceptionNoResponse      ExceptionType = "NoResponse"
	ExceptionMismatch        ExceptionType = "Mismatch"
	ExceptionNotWithEmployee ExceptionType = "NotWithEmployee"
	ExceptionMissingDevice   ExceptionType = "MissingDevice"
)

// Record links one employee/asset pair to a campaign and carries the
// submitted evidence. A campaign owns its records; deleting the campaign
// removes them.
type Record struct {
	ID           uuid.UUID
	CampaignID   uuid.UUID
	EmployeeID   string
	EmployeeName string
	AssetID      uuid.UUID
	ServiceTag   string
	AssetType    asset.AssetType
	Status       RecordStatus

	RecordedServiceTag   *string
	UploadedImage        *string
	PeripheralsConfirmed []peripheral.PeripheralType
	PeripheralsNotWithMe []peripheral.PeripheralType
	Comment              *string
	SubmittedDate        *time.Time
	ReviewedBy           *string
	ExceptionType        *ExceptionType

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Token is a single-use link credential mailed to an employee for one
// campaign. Valid while unused and unexpired.
type Token struct {
	ID            uuid.UUID
	Token         string
	EmployeeID    string
	EmployeeName  string
	EmployeeEmail string
	CampaignID    uuid.UUID
	CampaignName  string
	AssetIDs      []uuid.UUID
	CreatedAt     time.Time
	ExpiresAt     time.Time
	Used          bool
	UsedAt        *time.Time
}

// IsValid reports whether the token can still be used.
func (t *Token) IsValid(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}

// Statistics represents verification record statistics
type Statistics struct {
	Total     int
	Verified  int
	Pending   int
	Overdue   int
	Exception int
}
