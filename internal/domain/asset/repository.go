package asset

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for asset repository operations
type Repository interface {
	Create(ctx context.Context, asset *HardwareAsset) error
	GetByID(ctx context.Context, assetID uuid.UUID) (*HardwareAsset, error)
	GetByServiceTag(ctx context.Context, serviceTag string) (*HardwareAsset, error)
	Update(ctx context.Context, asset *HardwareAsset) error
	Delete(ctx context.Context, assetID uuid.UUID) error
	Assign(ctx context.Context, assetID uuid.UUID, employeeID, employeeName string) error
	Unassign(ctx context.Context, assetID uuid.UUID) error
	UpdateVerification(ctx context.Context, assetID uuid.UUID, status VerificationStatus) error
	List(ctx context.Context, filter *Filter) ([]*HardwareAsset, int64, error)
	ListByAssignedTo(ctx context.Context, employeeID string) ([]*HardwareAsset, error)
	GetStatistics(ctx context.Context) (*Statistics, error)
}

// Filter represents filtering options for listing assets
type Filter struct {
	Status             *AssetStatus
	AssetType          *AssetType
	VerificationStatus *VerificationStatus
	AssignedTo         *string
	Team               *string
	Search             string
	Page               int
	PageSize           int
	SortBy             string
	SortOrder          string
}

// Statistics represents asset registry statistics
type Statistics struct {
	TotalAssets     int
	InstockAssets   int
	AssignedAssets  int
	VerifiedAssets  int
	PendingAssets   int
	OverdueAssets   int
	ExceptionAssets int
	TotalValue      float64
	ByType          []TypeStats
}

// TypeStats represents statistics by asset type
type TypeStats struct {
	AssetType  string
	AssetCount int
	TotalValue float64
}
