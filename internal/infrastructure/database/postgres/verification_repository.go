package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"asset-verification-portal/internal/domain/asset"
	"asset-verification-portal/internal/domain/peripheral"
	"asset-verification-portal/internal/domain/verification"
	"asset-verification-portal/internal/infrastructure/database/postgres/models"
)

type VerificationRepository struct {
	db *DB
}

func NewVerificationRepository(db *DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) Create(ctx context.Context, rec *verification.Record) error {
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = time.Now()
	if rec.Status == "" {
		rec.Status = verification.StatusPending
	}

	dbModel, err := toRecordModel(rec)
	if err != nil {
		return err
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create verification record: %w", err)
	}

	return nil
}

func (r *VerificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*verification.Record, error) {
	var dbModel models.VerificationRecordModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, verification.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verification record: %w", err)
	}

	return toRecordEntity(&dbModel)
}

func (r *VerificationRepository) GetByCampaignAndAsset(ctx context.Context, campaignID, assetID uuid.UUID) (*verification.Record, error) {
	var dbModel models.VerificationRecordModel
	err := r.db.DB.WithContext(ctx).
		Where("campaign_id = ? AND asset_id = ?", campaignID, assetID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, verification.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verification record: %w", err)
	}

	return toRecordEntity(&dbModel)
}

// Submit writes the employee's evidence onto the record, conditional on the
// record still being Pending. A second submission for the same record affects
// zero rows and returns ErrAlreadySubmitted.
func (r *VerificationRepository) Submit(ctx context.Context, rec *verification.Record) error {
	confirmed, err := json.Marshal(rec.PeripheralsConfirmed)
	if err != nil {
		return fmt.Errorf("failed to encode confirmed peripherals: %w", err)
	}
	notWithMe, err := json.Marshal(rec.PeripheralsNotWithMe)
	if err != nil {
		return fmt.Errorf("failed to encode missing peripherals: %w", err)
	}

	var exceptionType *string
	if rec.ExceptionType != nil {
		s := string(*rec.ExceptionType)
		exceptionType = &s
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.VerificationRecordModel{}).
		Where("id = ? AND status = ?", rec.ID, string(verification.StatusPending)).
		Updates(map[string]interface{}{
			"status":                  string(rec.Status),
			"recorded_service_tag":    rec.RecordedServiceTag,
			"uploaded_image":          rec.UploadedImage,
			"peripherals_confirmed":   string(confirmed),
			"peripherals_not_with_me": string(notWithMe),
			"comment":                 rec.Comment,
			"submitted_date":          rec.SubmittedDate,
			"exception_type":          exceptionType,
			"updated_at":              time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to submit verification record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return verification.ErrAlreadySubmitted
	}

	return nil
}

func (r *VerificationRepository) Review(ctx context.Context, id uuid.UUID, reviewedBy string, status verification.RecordStatus, exceptionType *verification.ExceptionType) error {
	updates := map[string]interface{}{
		"status":      string(status),
		"reviewed_by": reviewedBy,
		"updated_at":  time.Now(),
	}
	if exceptionType != nil {
		updates["exception_type"] = string(*exceptionType)
	} else {
		updates["exception_type"] = nil
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.VerificationRecordModel{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to review verification record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return verification.ErrRecordNotFound
	}

	return nil
}

// MarkOverdue flips every still-pending record of the campaign to Overdue and
// reports how many rows changed.
func (r *VerificationRepository) MarkOverdue(ctx context.Context, campaignID uuid.UUID) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Model(&models.VerificationRecordModel{}).
		Where("campaign_id = ? AND status = ?", campaignID, string(verification.StatusPending)).
		Updates(map[string]interface{}{
			"status":     string(verification.StatusOverdue),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark records overdue: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *VerificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.VerificationRecordModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete verification record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return verification.ErrRecordNotFound
	}

	return nil
}

func (r *VerificationRepository) List(ctx context.Context) ([]*verification.Record, error) {
	var dbModels []models.VerificationRecordModel
	err := r.db.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list verification records: %w", err)
	}

	return toRecordEntities(dbModels)
}

func (r *VerificationRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*verification.Record, error) {
	var dbModels []models.VerificationRecordModel
	err := r.db.DB.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("employee_name ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list records by campaign: %w", err)
	}

	return toRecordEntities(dbModels)
}

func (r *VerificationRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*verification.Record, error) {
	var dbModels []models.VerificationRecordModel
	err := r.db.DB.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list records by employee: %w", err)
	}

	return toRecordEntities(dbModels)
}

func (r *VerificationRepository) ListByStatus(ctx context.Context, status verification.RecordStatus) ([]*verification.Record, error) {
	var dbModels []models.VerificationRecordModel
	err := r.db.DB.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list records by status: %w", err)
	}

	return toRecordEntities(dbModels)
}

func (r *VerificationRepository) ListPendingByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*verification.Record, error) {
	var dbModels []models.VerificationRecordModel
	err := r.db.DB.WithContext(ctx).
		Where("campaign_id = ? AND status = ?", campaignID, string(verification.StatusPending)).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending records: %w", err)
	}

	return toRecordEntities(dbModels)
}

func (r *VerificationRepository) CountByStatusForCampaign(ctx context.Context, campaignID uuid.UUID) (map[verification.RecordStatus]int, error) {
	var statusCounts []struct {
		Status string
		Count  int
	}
	err := r.db.DB.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) as count
		FROM verification_records
		WHERE campaign_id = ?
		GROUP BY status
	`, campaignID).Scan(&statusCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count records by status: %w", err)
	}

	counts := make(map[verification.RecordStatus]int, len(statusCounts))
	for _, sc := range statusCounts {
		counts[verification.RecordStatus(sc.Status)] = sc.Count
	}

	return counts, nil
}

func (r *VerificationRepository) GetStatistics(ctx context.Context) (*verification.Statistics, error) {
	stats := &verification.Statistics{}

	var statusCounts []struct {
		Status string
		Count  int
	}
	err := r.db.DB.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) as count
		FROM verification_records
		GROUP BY status
	`).Scan(&statusCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get verification statistics: %w", err)
	}

	for _, sc := range statusCounts {
		stats.Total += sc.Count
		switch verification.RecordStatus(sc.Status) {
		case verification.StatusVerified:
			stats.Verified = sc.Count
		case verification.StatusPending:
			stats.Pending = sc.Count
		case verification.StatusOverdue:
			stats.Overdue = sc.Count
		case verification.StatusException:
			stats.Exception = sc.Count
		}
	}

	return stats, nil
}

func toRecordModel(rec *verification.Record) (*models.VerificationRecordModel, error) {
	confirmed, err := json.Marshal(rec.PeripheralsConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to encode confirmed peripherals: %w", err)
	}
	notWithMe, err := json.Marshal(rec.PeripheralsNotWithMe)
	if err != nil {
		return nil, fmt.Errorf("failed to encode missing peripherals: %w", err)
	}

	var exceptionType *string
	if rec.ExceptionType != nil {
		s := string(*rec.ExceptionType)
		exceptionType = &s
	}

	return &models.VerificationRecordModel{
		ID:                   rec.ID,
		CampaignID:           rec.CampaignID,
		EmployeeID:           rec.EmployeeID,
		EmployeeName:         rec.EmployeeName,
		AssetID:              rec.AssetID,
		ServiceTag:           rec.ServiceTag,
		AssetType:            string(rec.AssetType),
		Status:               string(rec.Status),
		RecordedServiceTag:   rec.RecordedServiceTag,
		UploadedImage:        rec.UploadedImage,
		PeripheralsConfirmed: string(confirmed),
		PeripheralsNotWithMe: string(notWithMe),
		Comment:              rec.Comment,
		SubmittedDate:        rec.SubmittedDate,
		ReviewedBy:           rec.ReviewedBy,
		ExceptionType:        exceptionType,
		CreatedAt:            rec.CreatedAt,
		UpdatedAt:            rec.UpdatedAt,
	}, nil
}

func toRecordEntity(m *models.VerificationRecordModel) (*verification.Record, error) {
	var confirmed, notWithMe []peripheral.PeripheralType
	if m.PeripheralsConfirmed != "" {
		if err := json.Unmarshal([]byte(m.PeripheralsConfirmed), &confirmed); err != nil {
			return nil, fmt.Errorf("failed to decode confirmed peripherals: %w", err)
		}
	}
	if m.PeripheralsNotWithMe != "" {
		if err := json.Unmarshal([]byte(m.PeripheralsNotWithMe), &notWithMe); err != nil {
			return nil, fmt.Errorf("failed to decode missing peripherals: %w", err)
		}
	}

	var exceptionType *verification.ExceptionType
	if m.ExceptionType != nil {
		et := verification.ExceptionType(*m.ExceptionType)
		exceptionType = &et
	}

	return &verification.Record{
		ID:                   m.ID,
		CampaignID:           m.CampaignID,
		EmployeeID:           m.EmployeeID,
		EmployeeName:         m.EmployeeName,
		AssetID:              m.AssetID,
		ServiceTag:           m.ServiceTag,
		AssetType:            asset.AssetType(m.AssetType),
		Status:               verification.RecordStatus(m.Status),
		RecordedServiceTag:   m.RecordedServiceTag,
		UploadedImage:        m.UploadedImage,
		PeripheralsConfirmed: confirmed,
		PeripheralsNotWithMe: notWithMe,
		Comment:              m.Comment,
		SubmittedDate:        m.SubmittedDate,
		ReviewedBy:           m.ReviewedBy,
		ExceptionType:        exceptionType,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}, nil
}

func toRecordEntities(dbModels []models.VerificationRecordModel) ([]*verification.Record, error) {
	records := make([]*verification.Record, len(dbModels))
	for i := range dbModels {
		rec, err := toRecordEntity(&dbModels[i])
		if err != nil {
			return nil, err
		}
		records[i] = rec
	}
	return records, nil
}
