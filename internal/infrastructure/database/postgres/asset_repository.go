package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"asset-verification-portal/internal/domain/asset"
	"asset-verification-portal/internal/infrastructure/database/postgres/models"
)

type AssetRepository struct {
	db *DB
}

func NewAssetRepository(db *DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Create(ctx context.Context, a *asset.HardwareAsset) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.UpdatedAt = time.Now()
	if a.Status == "" {
		a.Status = asset.StatusInstock
	}
	if a.VerificationStatus == "" {
		a.VerificationStatus = asset.VerificationNotStarted
	}

	dbModel := toAssetModel(a)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "UNIQUE constraint") {
			return asset.ErrAssetAlreadyExists
		}
		return fmt.Errorf("failed to create asset: %w", err)
	}

	return nil
}

func (r *AssetRepository) GetByID(ctx context.Context, assetID uuid.UUID) (*asset.HardwareAsset, error) {
	var dbModel models.HardwareAssetModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", assetID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, asset.ErrAssetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}

	return toAssetEntity(&dbModel), nil
}

func (r *AssetRepository) GetByServiceTag(ctx context.Context, serviceTag string) (*asset.HardwareAsset, error) {
	var dbModel models.HardwareAssetModel
	err := r.db.DB.WithContext(ctx).
		Where("service_tag = ?", serviceTag).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, asset.ErrAssetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset by service tag: %w", err)
	}

	return toAssetEntity(&dbModel), nil
}

func (r *AssetRepository) Update(ctx context.Context, a *asset.HardwareAsset) error {
	a.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.HardwareAssetModel{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"service_tag":         a.ServiceTag,
			"asset_type":          string(a.AssetType),
			"model":               a.Model,
			"invoice_number":      a.InvoiceNumber,
			"po_number":           a.PONumber,
			"cost":                a.Cost,
			"purchase_date":       a.PurchaseDate,
			"assigned_to":         a.AssignedTo,
			"assigned_to_name":    a.AssignedToName,
			"assigned_date":       a.AssignedDate,
			"status":              string(a.Status),
			"verification_status": string(a.VerificationStatus),
			"last_verified_date":  a.LastVerifiedDate,
			"verification_image":  a.VerificationImage,
			"is_high_value":       a.IsHighValue,
			"location":            a.Location,
			"team":                a.Team,
			"updated_at":          a.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update asset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return asset.ErrAssetNotFound
	}

	return nil
}

func (r *AssetRepository) Delete(ctx context.Context, assetID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", assetID).
		Delete(&models.HardwareAssetModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete asset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return asset.ErrAssetNotFound
	}

	return nil
}

func (r *AssetRepository) Assign(ctx context.Context, assetID uuid.UUID, employeeID, employeeName string) error {
	now := time.Now()
	result := r.db.DB.WithContext(ctx).
		Model(&models.HardwareAssetModel{}).
		Where("id = ? AND status = ?", assetID, string(asset.StatusInstock)).
		Updates(map[string]interface{}{
			"status":           string(asset.StatusAssigned),
			"assigned_to":      employeeID,
			"assigned_to_name": employeeName,
			"assigned_date":    now,
			"updated_at":       now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to assign asset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return asset.ErrAssetInUse
	}

	return nil
}

func (r *AssetRepository) Unassign(ctx context.Context, assetID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.HardwareAssetModel{}).
		Where("id = ? AND status = ?", assetID, string(asset.StatusAssigned)).
		Updates(map[string]interface{}{
			"status":           string(asset.StatusInstock),
			"assigned_to":      nil,
			"assigned_to_name": nil,
			"assigned_date":    nil,
			"updated_at":       time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to unassign asset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return asset.ErrAssetNotAssigned
	}

	return nil
}

func (r *AssetRepository) UpdateVerification(ctx context.Context, assetID uuid.UUID, status asset.VerificationStatus) error {
	now := time.Now()
	updates := map[string]interface{}{
		"verification_status": string(status),
		"updated_at":          now,
	}
	if status == asset.VerificationVerified {
		updates["last_verified_date"] = now
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.HardwareAssetModel{}).
		Where("id = ?", assetID).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update asset verification status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return asset.ErrAssetNotFound
	}

	return nil
}

func (r *AssetRepository) List(ctx context.Context, filter *asset.Filter) ([]*asset.HardwareAsset, int64, error) {
	var dbModels []models.HardwareAssetModel
	var total int64

	db := r.db.DB.WithContext(ctx).Model(&models.HardwareAssetModel{})

	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}
	if filter.AssetType != nil {
		db = db.Where("asset_type = ?", string(*filter.AssetType))
	}
	if filter.VerificationStatus != nil {
		db = db.Where("verification_status = ?", string(*filter.VerificationStatus))
	}
	if filter.AssignedTo != nil {
		db = db.Where("assigned_to = ?", *filter.AssignedTo)
	}
	if filter.Team != nil {
		db = db.Where("team = ?", *filter.Team)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		db = db.Where(
			"LOWER(service_tag) LIKE ? OR LOWER(model) LIKE ? OR LOWER(assigned_to_name) LIKE ?",
			search, search, search,
		)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assets: %w", err)
	}

	sortBy := "created_at"
	if filter.SortBy != "" {
		sortBy = filter.SortBy
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	err := db.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Limit(pageSize).
		Offset(offset).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list assets: %w", err)
	}

	assets := make([]*asset.HardwareAsset, len(dbModels))
	for i := range dbModels {
		assets[i] = toAssetEntity(&dbModels[i])
	}

	return assets, total, nil
}

func (r *AssetRepository) ListByAssignedTo(ctx context.Context, employeeID string) ([]*asset.HardwareAsset, error) {
	var dbModels []models.HardwareAssetModel
	err := r.db.DB.WithContext(ctx).
		Where("assigned_to = ? AND status = ?", employeeID, string(asset.StatusAssigned)).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assets by assignee: %w", err)
	}

	assets := make([]*asset.HardwareAsset, len(dbModels))
	for i := range dbModels {
		assets[i] = toAssetEntity(&dbModels[i])
	}
	return assets, nil
}

func (r *AssetRepository) GetStatistics(ctx context.Context) (*asset.Statistics, error) {
	stats := &asset.Statistics{}

	type statusCount struct {
		Status string
		Count  int
	}

	var byStatus []statusCount
	err := r.db.DB.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) as count
		FROM hardware_assets
		GROUP BY status
	`).Scan(&byStatus).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get asset status counts: %w", err)
	}
	for _, sc := range byStatus {
		stats.TotalAssets += sc.Count
		switch asset.AssetStatus(sc.Status) {
		case asset.StatusInstock:
			stats.InstockAssets = sc.Count
		case asset.StatusAssigned:
			stats.AssignedAssets = sc.Count
		}
	}

	var byVerification []statusCount
	err = r.db.DB.WithContext(ctx).Raw(`
		SELECT verification_status as status, COUNT(*) as count
		FROM hardware_assets
		GROUP BY verification_status
	`).Scan(&byVerification).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get asset verification counts: %w", err)
	}
	for _, sc := range byVerification {
		switch asset.VerificationStatus(sc.Status) {
		case asset.VerificationVerified:
			stats.VerifiedAssets = sc.Count
		case asset.VerificationPending:
			stats.PendingAssets = sc.Count
		case asset.VerificationOverdue:
			stats.OverdueAssets = sc.Count
		case asset.VerificationException:
			stats.ExceptionAssets = sc.Count
		}
	}

	err = r.db.DB.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(cost), 0) as total
		FROM hardware_assets
	`).Scan(&stats.TotalValue).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get asset total value: %w", err)
	}

	var byType []struct {
		AssetType  string
		AssetCount int
		TotalValue float64
	}
	err = r.db.DB.WithContext(ctx).Raw(`
		SELECT asset_type, COUNT(*) as asset_count, COALESCE(SUM(cost), 0) as total_value
		FROM hardware_assets
		GROUP BY asset_type
	`).Scan(&byType).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get asset type stats: %w", err)
	}
	for _, ts := range byType {
		stats.ByType = append(stats.ByType, asset.TypeStats{
			AssetType:  ts.AssetType,
			AssetCount: ts.AssetCount,
			TotalValue: ts.TotalValue,
		})
	}

	return stats, nil
}

func toAssetModel(a *asset.HardwareAsset) *models.HardwareAssetModel {
	return &models.HardwareAssetModel{
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
		VerificationImage:  a.VerificationImage,
		IsHighValue:        a.IsHighValue,
		Location:           a.Location,
		Team:               a.Team,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func toAssetEntity(m *models.HardwareAssetModel) *asset.HardwareAsset {
	return &asset.HardwareAsset{
		ID:                 m.ID,
		ServiceTag:         m.ServiceTag,
		AssetType:          asset.AssetType(m.AssetType),
		Model:              m.Model,
		InvoiceNumber:      m.InvoiceNumber,
		PONumber:           m.PONumber,
		Cost:               m.Cost,
		PurchaseDate:       m.PurchaseDate,
		AssignedTo:         m.AssignedTo,
		AssignedToName:     m.AssignedToName,
		AssignedDate:       m.AssignedDate,
		Status:             asset.AssetStatus(m.Status),
		VerificationStatus: asset.VerificationStatus(m.VerificationStatus),
		LastVerifiedDate:   m.LastVerifiedDate,
		VerificationImage:  m.VerificationImage,
		IsHighValue:        m.IsHighValue,
		Location:           m.Location,
		Team:               m.Team,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
