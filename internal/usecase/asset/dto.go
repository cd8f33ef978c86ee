package asset

import (
	"time"

	"github.com/google/uuid"

	domainAsset "asset-verification-portal/internal/domain/asset"
)

// Request DTOs
type CreateAssetRequest struct {
	ServiceTag     string     `json:"service_tag" validate:"required,min=3,max=100"`
	AssetType      string     `json:"asset_type" validate:"required,oneof=Laptop Monitor Mobile"`
	Model          string     `json:"model" validate:"omitempty,max=255"`
	InvoiceNumber  *string    `json:"invoice_number" validate:"omitempty,max=100"`
	PONumber       *string    `json:"po_number" validate:"omitempty,max=100"`
	Cost           float64    `json:"cost" validate:"omitempty,min=0"`
	PurchaseDate   *time.Time `json:"purchase_date"`
	AssignedTo     *string    `json:"assigned_to" validate:"omitempty,max=50"`
	AssignedToName *string    `json:"assigned_to_name" validate:"omitempty,max=255"`
	IsHighValue    bool       `json:"is_high_value"`
	Location       string     `json:"location" validate:"omitempty,max=255"`
	Team           string     `json:"team" validate:"omitempty,max=100"`
}

type UpdateAssetRequest struct {
	Model         *string    `json:"model" validate:"omitempty,max=255"`
	InvoiceNumber *string    `json:"invoice_number" validate:"omitempty,max=100"`
	PONumber      *string    `json:"po_number" validate:"omitempty,max=100"`
	Cost          *float64   `json:"cost" validate:"omitempty,min=0"`
	PurchaseDate  *time.Time `json:"purchase_date"`
	IsHighValue   *bool      `json:"is_high_value"`
	Location      *string    `json:"location" validate:"omitempty,max=255"`
	Team          *string    `json:"team" validate:"omitempty,max=100"`
}

type AssignAssetRequest struct {
	EmployeeID   string `json:"employee_id" validate:"required,max=50"`
	EmployeeName string `json:"employee_name" validate:"required,max=255"`
}

type AssetFilterRequest struct {
	Status             *string `form:"status" validate:"omitempty,oneof=Instock Assigned"`
	AssetType          *string `form:"asset_type" validate:"omitempty,oneof=Laptop Monitor Mobile"`
	VerificationStatus *string `form:"verification_status" validate:"omitempty,oneof=Verified Pending Overdue Exception NotStarted"`
	AssignedTo         *string `form:"assigned_to"`
	Team               *string `form:"team"`
	Search             string  `form:"search"`
	Page               int     `form:"page" validate:"omitempty,min=1"`
	PageSize           int     `form:"page_size" validate:"omitempty,min=1,max=100"`
	SortBy             string  `form:"sort_by" validate:"omitempty,oneof=created_at updated_at service_tag cost purchase_date"`
	SortOrder          string  `form:"sort_order" validate:"omitempty,oneof=asc desc"`
}

type BulkImportRequest struct {
	Assets []CreateAssetRequest `json:"assets" validate:"required,min=1,dive"`
}

// Response DTOs
type AssetResponse struct {
	ID                 uuid.UUID  `json:"id"`
	ServiceTag         string     `json:"service_tag"`
	AssetType          string     `json:"asset_type"`
	Model              string     `json:"model"`
	InvoiceNumber      *string    `json:"invoice_number,omitempty"`
	PONumber           *string    `json:"po_number,omitempty"`
	Cost               float64    `json:"cost"`
	PurchaseDate       *time.Time `json:"purchase_date,omitempty"`
	AssignedTo         *string    `json:"assigned_to,omitempty"`
	AssignedToName     *string    `json:"assigned_to_name,omitempty"`
	AssignedDate       *time.Time `json:"assigned_date,omitempty"`
	Status             string     `json:"status"`
	VerificationStatus string     `json:"verification_status"`
	LastVerifiedDate   *time.Time `json:"last_verified_date,omitempty"`
	IsHighValue        bool       `json:"is_high_value"`
	Location           string     `json:"location"`
	Team               string     `json:"team"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type AssetListResponse struct {
	Assets   []*AssetResponse `json:"assets"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// ImportResult summarizes a bulk or CSV import run.
type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
	Total   int      `json:"total"`
}

type StatisticsResponse struct {
	TotalAssets     int                 `json:"total_assets"`
	InstockAssets   int                 `json:"instock_assets"`
	AssignedAssets  int                 `json:"assigned_assets"`
	VerifiedAssets  int                 `json:"verified_assets"`
	PendingAssets   int                 `json:"pending_assets"`
	OverdueAssets   int                 `json:"overdue_assets"`
	ExceptionAssets int                 `json:"exception_assets"`
	TotalValue      float64             `json:"total_value"`
	ByType          []TypeStatsResponse `json:"by_type"`
}

type TypeStatsResponse struct {
	AssetType  string  `json:"asset_type"`
	AssetCount int     `json:"asset_count"`
	TotalValue float64 `json:"total_value"`
}

func ToAssetResponse(a *domainAsset.HardwareAsset) *AssetResponse {
	return &AssetResponse{
		ID:                 a.ID,
		ServiceTag:         a.ServiceTag,
		AssetType:          string(a.AssetType),
		Model:              a.Model,
		InvoiceNumber:      a.InvoiceNumber,
		PONumber:           a.PONumber,
		Cost:               a.Cost,
		PurchaseDate:       a.PurchaseDate,
		AssignedTo:         a.AssignedTo,
		AssignedToName:     a.AssignedToName,
		AssignedDate:       a.AssignedDate,
		Status:             string(a.Status),
		VerificationStatus: string(a.VerificationStatus),
		LastVerifiedDate:   a.LastVerifiedDate,
		IsHighValue:        a.IsHighValue,
		Location:           a.Location,
		Team:               a.Team,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func ToStatisticsResponse(stats *domainAsset.Statistics) *StatisticsResponse {
	resp := &StatisticsResponse{
		TotalAssets:     stats.TotalAssets,
		InstockAssets:   stats.InstockAssets,
		AssignedAssets:  stats.AssignedAssets,
		VerifiedAssets:  stats.VerifiedAssets,
		PendingAssets:   stats.PendingAssets,
		OverdueAssets:   stats.OverdueAssets,
		ExceptionAssets: stats.ExceptionAssets,
		TotalValue:      stats.TotalValue,
	}
	for _, ts := range stats.ByType {
		resp.ByType = append(resp.ByType, TypeStatsResponse{
			AssetType:  ts.AssetType,
			AssetCount: ts.AssetCount,
			TotalValue: ts.TotalValue,
		})
	}
	return resp
}
