package campaign

import (
	"time"

	"github.com/google/uuid"

	domainCampaign "asset-verification-portal/internal/domain/campaign"
)

// Request DTOs
type CreateCampaignRequest struct {
	Name        string                 `json:"name" validate:"required,min=3,max=255"`
	Description string                 `json:"description" validate:"omitempty,max=2000"`
	StartDate   *time.Time             `json:"start_date"`
	Deadline    *time.Time             `json:"deadline"`
	Filters     domainCampaign.Filters `json:"filters"`
}

type UpdateCampaignRequest struct {
	Name        *string    `json:"name" validate:"omitempty,min=3,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	StartDate   *time.Time `json:"start_date"`
	Deadline    *time.Time `json:"deadline"`
}

// Response DTOs
type CampaignResponse struct {
	ID          uuid.UUID              `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	CreatedBy   string                 `json:"created_by"`
	CreatedDate time.Time              `json:"created_date"`
	StartDate   *time.Time             `json:"start_date,omitempty"`
	Deadline    *time.Time             `json:"deadline,omitempty"`
	Status      string                 `json:"status"`
	Filters     domainCampaign.Filters `json:"filters"`

	TotalEmployees   int `json:"total_employees"`
	TotalAssets      int `json:"total_assets"`
	TotalPeripherals int `json:"total_peripherals"`

	VerifiedCount  int `json:"verified_count"`
	PendingCount   int `json:"pending_count"`
	OverdueCount   int `json:"overdue_count"`
	ExceptionCount int `json:"exception_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VerificationLink pairs an employee with their emailed link.
type VerificationLink struct {
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name"`
	EmployeeEmail string `json:"employee_email"`
	Link          string `json:"link"`
}

type LaunchResponse struct {
	Campaign          *CampaignResponse  `json:"campaign"`
	EmailsSent        int                `json:"emails_sent"`
	TotalEmployees    int                `json:"total_employees"`
	VerificationLinks []VerificationLink `json:"verification_links"`
}

// CampaignTokenResponse is the manager's view of an issued verification token.
type CampaignTokenResponse struct {
	EmployeeID    string     `json:"employee_id"`
	EmployeeName  string     `json:"employee_name"`
	EmployeeEmail string     `json:"employee_email"`
	Link          string     `json:"link"`
	AssetCount    int        `json:"asset_count"`
	ExpiresAt     time.Time  `json:"expires_at"`
	Used          bool       `json:"used"`
	UsedAt        *time.Time `json:"used_at,omitempty"`
}

type ReminderResponse struct {
	RemindersSent int `json:"reminders_sent"`
	TotalPending  int `json:"total_pending"`
}

type StatisticsResponse struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Draft     int `json:"draft"`
	Completed int `json:"completed"`
}

// ToCampaignResponse renders the campaign with its effective status: once the
// deadline has passed, clients see Completed regardless of the stored status.
func ToCampaignResponse(c *domainCampaign.Campaign) *CampaignResponse {
	return &CampaignResponse{
		ID:               c.ID,
		Name:             c.Name,
		Description:      c.Description,
		CreatedBy:        c.CreatedBy,
		CreatedDate:      c.CreatedDate,
		StartDate:        c.StartDate,
		Deadline:         c.Deadline,
		Status:           string(c.EffectiveStatus(time.Now())),
		Filters:          c.Filters,
		TotalEmployees:   c.TotalEmployees,
		TotalAssets:      c.TotalAssets,
		TotalPeripherals: c.TotalPeripherals,
		VerifiedCount:    c.VerifiedCount,
		PendingCount:     c.PendingCount,
		OverdueCount:     c.OverdueCount,
		ExceptionCount:   c.ExceptionCount,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

func ToCampaignResponses(campaigns []*domainCampaign.Campaign) []*CampaignResponse {
	responses := make([]*CampaignResponse, len(campaigns))
	for i, c := range campaigns {
		responses[i] = ToCampaignResponse(c)
	}
	return responses
}
