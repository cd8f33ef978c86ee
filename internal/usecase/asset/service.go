package asset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainAsset "asset-verification-portal/internal/domain/asset"
	"asset-verification-portal/internal/logger"
	appErrors "asset-verification-portal/pkg/errors"
	"asset-verification-portal/pkg/utils"
)

// Service implements asset registry use cases
type Service struct {
	assetRepo domainAsset.Repository
}

func NewService(assetRepo domainAsset.Repository) *Service {
	return &Service{assetRepo: assetRepo}
}

func (s *Service) Create(ctx context.Context, req *CreateAssetRequest) (*AssetResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("Invalid input", err)
	}

	a := s.buildAsset(req)
	if err := s.assetRepo.Create(ctx, a); err != nil {
		if errors.Is(err, domainAsset.ErrAssetAlreadyExists) {
			return nil, appErrors.NewConflictError(fmt.Sprintf("Asset with service tag %s already exists", req.ServiceTag))
		}
		return nil, err
	}

	logger.Info("Asset created",
		zap.String("asset_id", a.ID.String()),
		zap.String("service_tag", a.ServiceTag),
		zap.String("asset_type", string(a.AssetType)),
		zap.String("event", "asset_created"),
	)

	return ToAssetResponse(a), nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*AssetResponse, error) {
	a, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainAsset.ErrAssetNotFound) {
			return nil, appErrors.NewNotFoundError("Asset not found")
		}
		return nil, err
	}

	return ToAssetResponse(a), nil
}

func (s *Service) GetByServiceTag(ctx context.Context, serviceTag string) (*AssetResponse, error) {
	a, err := s.assetRepo.GetByServiceTag(ctx, serviceTag)
	if err != nil {
		if errors.Is(err, domainAsset.ErrAssetNotFound) {
			return nil, appErrors.NewNotFoundError("Asset not found")
		}
		return nil, err
	}

	return ToAssetResponse(a), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateAssetRequest) (*AssetResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("Invalid input", err)
	}

	a, err := s.assetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainAsset.ErrAssetNotFound) {
			return nil, appErrors.NewNotFoundError("Asset not found")
		}
		return nil, err
	}

	if req.Model != nil {
		a.Model = *req.Model
	}
	if req.InvoiceNumber != nil {
		a.InvoiceNumber = req.InvoiceNumber
	}
	if req.PONumber != nil {
		a.PONumber = req.PONumber
	}
	if req.Cost != nil {
		a.Cost = *req.Cost
	}
	if req.PurchaseDate != nil {
		a.PurchaseDate = req.PurchaseDate
	}
	if req.IsHighValue != nil {
		a.IsHighValue = *req.IsHighValue
	}
	if req.Location != nil {
		a.Location = *req.Location
	}
	if req.Team != nil {
		a.Team = *req.Team
	}

	if err := s.assetRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	return ToAssetResponse(a), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.assetRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domainAsset.ErrAssetNotFound) {
			return appErrors.NewNotFoundError("Asset not found")
		}
		return err
	}

	logger.Info("Asset deleted",
		zap.String("asset_id", id.String()),
		zap.String("event", "asset_deleted"),
	)

	return nil
}

// Assign hands an instock asset to an employee. Assigning an already assigned
// asset is a conflict, never a silent reassignment.
func (s *Service) Assign(ctx context.Context, id uuid.UUID, req *AssignAssetRequest) (*AssetResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("Invalid input", err)
	}

	if _, err := s.assetRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domainAsset.ErrAssetNotFound) {
			return nil, appErrors.NewNotFoundError("Asset not found")
		}
		return nil, err
	}

	if err := s.assetRepo.Assign(ctx, id, req.EmployeeID, req.EmployeeName); err != nil {
		if errors.Is(err, domainAsset.ErrAssetInUse) {
			return nil, appErrors.NewConflictError("Asset is already assigned")
		}
		return nil, err
	}

	logger.Info("Asset assigned",
		zap.String("asset_id", id.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.String("event", "asset_assigned"),
	)

	return s.GetByID(ctx, id)
}

func (s *Service) Unassign(ctx context.Context, id uuid.UUID) (*AssetResponse, error) {
	if _, err := s.assetRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domainAsset.ErrAssetNotFound) {
			return nil, appErrors.NewNotFoundError("Asset not found")
		}
		return nil, err
	}

	if err := s.assetRepo.Unassign(ctx, id); err != nil {
		if errors.Is(err, domainAsset.ErrAssetNotAssigned) {
			return nil, appErrors.NewConflictError("Asset is not assigned")
		}
		return nil, err
	}

	logger.Info("Asset returned to stock",
		zap.String("asset_id", id.String()),
		zap.String("event", "asset_unassigned"),
	)

	return s.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, req *AssetFilterRequest) (*AssetListResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("Invalid filter", err)
	}

	filter := &domainAsset.Filter{
		AssignedTo: req.AssignedTo,
		Team:       req.Team,
		Search:     req.Search,
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
	}
	if req.Status != nil {
		status := domainAsset.AssetStatus(*req.Status)
		filter.Status = &status
	}
	if req.AssetType != nil {
		assetType := domainAsset.AssetType(*req.AssetType)
		filter.AssetType = &assetType
	}
	if req.VerificationStatus != nil {
		vs := domainAsset.VerificationStatus(*req.VerificationStatus)
		filter.VerificationStatus = &vs
	}

	assets, total, err := s.assetRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*AssetResponse, len(assets))
	for i, a := range assets {
		responses[i] = ToAssetResponse(a)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	return &AssetListResponse{
		Assets:   responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]*AssetResponse, error) {
	assets, err := s.assetRepo.ListByAssignedTo(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]*AssetResponse, len(assets))
	for i, a := range assets {
		responses[i] = ToAssetResponse(a)
	}
	return responses, nil
}

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	stats, err := s.assetRepo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}

	return ToStatisticsResponse(stats), nil
}

// BulkImport upserts assets keyed on service tag: unknown tags create,
// known tags update in place. Row failures are collected, not fatal.
func (s *Service) BulkImport(ctx context.Context, req *BulkImportRequest) (*ImportResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("Invalid input", err)
	}

	result := &ImportResult{Total: len(req.Assets)}

	for i := range req.Assets {
		rowReq := &req.Assets[i]

		existing, err := s.assetRepo.GetByServiceTag(ctx, rowReq.ServiceTag)
		if err != nil && !errors.Is(err, domainAsset.ErrAssetNotFound) {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rowReq.ServiceTag, err))
			continue
		}

		if existing == nil {
			a := s.buildAsset(rowReq)
			if err := s.assetRepo.Create(ctx, a); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rowReq.ServiceTag, err))
				continue
			}
			result.Created++
			continue
		}

		existing.AssetType = domainAsset.AssetType(rowReq.AssetType)
		if rowReq.Model != "" {
			existing.Model = rowReq.Model
		}
		if rowReq.InvoiceNumber != nil {
			existing.InvoiceNumber = rowReq.InvoiceNumber
		}
		if rowReq.PONumber != nil {
			existing.PONumber = rowReq.PONumber
		}
		if rowReq.Cost > 0 {
			existing.Cost = rowReq.Cost
		}
		if rowReq.PurchaseDate != nil {
			existing.PurchaseDate = rowReq.PurchaseDate
		}
		if rowReq.Location != "" {
			existing.Location = rowReq.Location
		}
		if rowReq.Team != "" {
			existing.Team = rowReq.Team
		}
		if rowReq.AssignedTo != nil && *rowReq.AssignedTo != "" {
			now := time.Now()
			existing.Status = domainAsset.StatusAssigned
			existing.AssignedTo = rowReq.AssignedTo
			existing.AssignedToName = rowReq.AssignedToName
			if existing.AssignedDate == nil {
				existing.AssignedDate = &now
			}
		}

		if err := s.assetRepo.Update(ctx, existing); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", rowReq.ServiceTag, err))
			continue
		}
		result.Updated++
	}

	logger.Info("Bulk import finished",
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("failed", len(result.Errors)),
		zap.String("event", "assets_bulk_imported"),
	)

	return result, nil
}

func (s *Service) buildAsset(req *CreateAssetRequest) *domainAsset.HardwareAsset {
	a := &domainAsset.HardwareAsset{
		ServiceTag:         req.ServiceTag,
		AssetType:          domainAsset.AssetType(req.AssetType),
		Model:              req.Model,
		InvoiceNumber:      req.InvoiceNumber,
		PONumber:           req.PONumber,
		Cost:               req.Cost,
		PurchaseDate:       req.PurchaseDate,
		Status:             domainAsset.StatusInstock,
		VerificationStatus: domainAsset.VerificationNotStarted,
		IsHighValue:        req.IsHighValue,
		Location:           req.Location,
		Team:               req.Team,
	}

	if req.AssignedTo != nil && *req.AssignedTo != "" {
		now := time.Now()
		a.Status = domainAsset.StatusAssigned
		a.AssignedTo = req.AssignedTo
		a.AssignedToName = req.AssignedToName
		a.AssignedDate = &now
	}

	return a
}
