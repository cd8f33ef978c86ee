package report

import (
	"time"

	"github.com/google/uuid"
)

// DashboardResponse aggregates registry, stock, campaign and verification
// statistics into the single payload the dashboard polls.
type DashboardResponse struct {
	Assets       AssetSummary       `json:"assets"`
	Peripherals  PeripheralSummary  `json:"peripherals"`
	Campaigns    CampaignSummary    `json:"campaigns"`
	Verification VerificationSummary `json:"verification"`
	Equipment    EquipmentSummary   `json:"equipment"`
	GeneratedAt  time.Time          `json:"generated_at"`
}

type AssetSummary struct {
	Total       int                `json:"total"`
	Instock     int                `json:"instock"`
	Assigned    int                `json:"assigned"`
	TotalValue  float64            `json:"total_value"`
	ByType      map[string]int     `json:"by_type"`
	ValueByType map[string]float64 `json:"value_by_type"`
}

type PeripheralSummary struct {
	Total       int              `json:"total"`
	Instock     int              `json:"instock"`
	Assigned    int              `json:"assigned"`
	StockByType map[string]int64 `json:"stock_by_type"`
}

type CampaignSummary struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Draft     int `json:"draft"`
	Completed int `json:"completed"`
}

type VerificationSummary struct {
	Total          int     `json:"total"`
	Verified       int     `json:"verified"`
	Pending        int     `json:"pending"`
	Overdue        int     `json:"overdue"`
	Exception      int     `json:"exception"`
	ComplianceRate float64 `json:"compliance_rate"`
}

type EquipmentSummary struct {
	TotalQuantity int     `json:"total_quantity"`
	TotalValue    float64 `json:"total_value"`
}

// TrendPoint is one day in the verified-vs-pending series. Verified counts
// cumulatively; Pending is what was still open at the end of that day.
type TrendPoint struct {
	Date      string `json:"date"`
	Submitted int    `json:"submitted"`
	Verified  int    `json:"verified"`
	Pending   int    `json:"pending"`
}

// CampaignProgressResponse reports one campaign's completion state.
type CampaignProgressResponse struct {
	CampaignID     uuid.UUID  `json:"campaign_id"`
	Name           string     `json:"name"`
	Status         string     `json:"status"`
	Deadline       *time.Time `json:"deadline,omitempty"`
	TotalRecords   int        `json:"total_records"`
	Verified       int        `json:"verified"`
	Pending        int        `json:"pending"`
	Overdue        int        `json:"overdue"`
	Exception      int        `json:"exception"`
	CompletionRate float64    `json:"completion_rate"`
}
