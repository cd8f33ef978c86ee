package campaign

import (
	"time"

	"github.com/google/uuid"
)

// CampaignStatus represents the stored lifecycle state of a campaign
type CampaignStatus string

const (
	StatusDraft     CampaignStatus = "Draft"
	StatusActive    CampaignStatus = "Active"
	StatusCompleted CampaignStatus = "Completed"
)

// Filters scopes a campaign to teams, asset types and/or explicit employees.
type Filters struct {
	Teams       []string `json:"teams,omitempty"`
	AssetTypes  []string `json:"assetTypes,omitempty"`
	EmployeeIDs []string `json:"employeeIds,omitempty"`
}

// IsEmpty reports whether the filter matches nothing explicitly.
func (f *Filters) IsEmpty() bool {
	return f == nil || (len(f.Teams) == 0 && len(f.AssetTypes) == 0 && len(f.EmployeeIDs) == 0)
}

// Campaign represents a verification campaign in the domain
type Campaign struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedBy   string // employee ID
	CreatedDate time.Time
	StartDate   *time.Time
	Deadline    *time.Time
	Status      CampaignStatus
	Filters     Filters

	TotalEmployees   int
	TotalAssets      int
	TotalPeripherals int

	VerifiedCount  int
	PendingCount   int
	OverdueCount   int
	ExceptionCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveStatus derives the status dashboards should display: a campaign
// whose deadline has passed reads as Completed even if never explicitly
// completed. The stored status is left untouched.
func (c *Campaign) EffectiveStatus(now time.Time) CampaignStatus {
	if c.Status == StatusCompleted {
		return StatusCompleted
	}
	if c.Deadline != nil && c.Deadline.Before(now) {
		return StatusCompleted
	}
	return c.Status
}

// DeadlinePassed reports whether the campaign deadline is behind now.
func (c *Campaign) DeadlinePassed(now time.Time) bool {
	return c.Deadline != nil && c.Deadline.Before(now)
}

// Counts bundles the per-status record totals for a campaign.
type Counts struct {
	Verified  int
	Pending   int
	Overdue   int
	Exception int
}

// Statistics represents campaign statistics
type Statistics struct {
	Total     int
	Active    int
	Draft     int
	Completed int
}
