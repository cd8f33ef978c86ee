package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"asset-verification-portal/internal/domain/equipment"
	"asset-verification-portal/internal/infrastructure/database/postgres/models"
)

type EquipmentRepository struct {
	db *DB
}

func NewEquipmentRepository(db *DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func (r *EquipmentRepository) Create(ctx context.Context, e *equipment.EquipmentCount) error {
	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	e.UpdatedAt = time.Now()
	if e.UploadedDate.IsZero() {
		e.UploadedDate = e.CreatedAt
	}
	if e.Status == "" {
		e.Status = equipment.StatusActive
	}
	if e.VerificationStatus == "" {
		e.VerificationStatus = equipment.VerificationPending
	}

	dbModel := toEquipmentModel(e)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create equipment count: %w", err)
	}

	return nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*equipment.EquipmentCount, error) {
	var dbModel models.EquipmentCountModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, equipment.ErrEquipmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment count: %w", err)
	}

	return toEquipmentEntity(&dbModel), nil
}

func (r *EquipmentRepository) Update(ctx context.Context, e *equipment.EquipmentCount) error {
	e.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.EquipmentCountModel{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"category":            string(e.Category),
			"item_name":           e.ItemName,
			"quantity":            e.Quantity,
			"value":               e.Value,
			"location":            e.Location,
			"status":              string(e.Status),
			"verification_status": string(e.VerificationStatus),
			"updated_at":          e.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update equipment count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return equipment.ErrEquipmentNotFound
	}

	return nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.EquipmentCountModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete equipment count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return equipment.ErrEquipmentNotFound
	}

	return nil
}

func (r *EquipmentRepository) List(ctx context.Context) ([]*equipment.EquipmentCount, error) {
	var dbModels []models.EquipmentCountModel
	err := r.db.DB.WithContext(ctx).
		Order("category ASC, item_name ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment counts: %w", err)
	}

	return toEquipmentEntities(dbModels), nil
}

func (r *EquipmentRepository) ListByCategory(ctx context.Context, category equipment.Category) ([]*equipment.EquipmentCount, error) {
	var dbModels []models.EquipmentCountModel
	err := r.db.DB.WithContext(ctx).
		Where("category = ?", string(category)).
		Order("item_name ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment counts by category: %w", err)
	}

	return toEquipmentEntities(dbModels), nil
}

func (r *EquipmentRepository) ListByUploadedBy(ctx context.Context, employeeID string) ([]*equipment.EquipmentCount, error) {
	var dbModels []models.EquipmentCountModel
	err := r.db.DB.WithContext(ctx).
		Where("uploaded_by = ?", employeeID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment counts by uploader: %w", err)
	}

	return toEquipmentEntities(dbModels), nil
}

func (r *EquipmentRepository) ListByLocation(ctx context.Context, location string) ([]*equipment.EquipmentCount, error) {
	var dbModels []models.EquipmentCountModel
	err := r.db.DB.WithContext(ctx).
		Where("location = ?", location).
		Order("category ASC, item_name ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment counts by location: %w", err)
	}

	return toEquipmentEntities(dbModels), nil
}

func (r *EquipmentRepository) GetStatistics(ctx context.Context) (*equipment.Statistics, error) {
	stats := &equipment.Statistics{
		QuantityByCategory: make(map[string]int),
		ValueByCategory:    make(map[string]float64),
	}

	var rows []struct {
		Category string
		Quantity int
		Value    float64
	}
	err := r.db.DB.WithContext(ctx).Raw(`
		SELECT category, COALESCE(SUM(quantity), 0) as quantity, COALESCE(SUM(value), 0) as value
		FROM equipment_counts
		WHERE status = ?
		GROUP BY category
	`, string(equipment.StatusActive)).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment statistics: %w", err)
	}

	for _, row := range rows {
		stats.QuantityByCategory[row.Category] = row.Quantity
		stats.ValueByCategory[row.Category] = row.Value
		stats.TotalQuantity += row.Quantity
		stats.TotalValue += row.Value
	}

	return stats, nil
}

func toEquipmentModel(e *equipment.EquipmentCount) *models.EquipmentCountModel {
	return &models.EquipmentCountModel{
		ID:                 e.ID,
		Category:           string(e.Category),
		ItemName:           e.ItemName,
		Quantity:           e.Quantity,
		Value:              e.Value,
		Location:           e.Location,
		UploadedBy:         e.UploadedBy,
		UploadedDate:       e.UploadedDate,
		Status:             string(e.Status),
		VerificationStatus: string(e.VerificationStatus),
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func toEquipmentEntity(m *models.EquipmentCountModel) *equipment.EquipmentCount {
	return &equipment.EquipmentCount{
		ID:                 m.ID,
		Category:           equipment.Category(m.Category),
		ItemName:           m.ItemName,
		Quantity:           m.Quantity,
		Value:              m.Value,
		Location:           m.Location,
		UploadedBy:         m.UploadedBy,
		UploadedDate:       m.UploadedDate,
		Status:             equipment.Status(m.Status),
		VerificationStatus: equipment.VerificationStatus(m.VerificationStatus),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toEquipmentEntities(dbModels []models.EquipmentCountModel) []*equipment.EquipmentCount {
	counts := make([]*equipment.EquipmentCount, len(dbModels))
	for i := range dbModels {
		counts[i] = toEquipmentEntity(&dbModels[i])
	}
	return counts
}
