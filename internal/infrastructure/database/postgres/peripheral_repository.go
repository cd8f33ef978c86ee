package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"asset-verification-portal/internal/domain/peripheral"
	"asset-verification-portal/internal/infrastructure/database/postgres/models"
)

type PeripheralRepository struct {
	db *DB
}

func NewPeripheralRepository(db *DB) *PeripheralRepository {
	return &PeripheralRepository{db: db}
}

func (r *PeripheralRepository) Create(ctx context.Context, p *peripheral.Peripheral) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	if p.Status == "" {
		p.Status = peripheral.StatusInstock
	}

	dbModel := toPeripheralModel(p)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create peripheral: %w", err)
	}

	return nil
}

func (r *PeripheralRepository) GetByID(ctx context.Context, id uuid.UUID) (*peripheral.Peripheral, error) {
	var dbModel models.PeripheralModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, peripheral.ErrPeripheralNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get peripheral: %w", err)
	}

	return toPeripheralEntity(&dbModel), nil
}

func (r *PeripheralRepository) Update(ctx context.Context, p *peripheral.Peripheral) error {
	p.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).
		Model(&models.PeripheralModel{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"type":             string(p.Type),
			"serial_number":    p.SerialNumber,
			"status":           string(p.Status),
			"assigned_to":      p.AssignedTo,
			"assigned_to_name": p.AssignedToName,
			"verified":         p.Verified,
			"assigned_date":    p.AssignedDate,
			"verified_date":    p.VerifiedDate,
			"purchase_date":    p.PurchaseDate,
			"location":         p.Location,
			"updated_at":       p.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update peripheral: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return peripheral.ErrPeripheralNotFound
	}

	return nil
}

func (r *PeripheralRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.PeripheralModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete peripheral: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return peripheral.ErrPeripheralNotFound
	}

	return nil
}

// AssignFromStock picks a random instock unit of the requested type and
// claims it with a conditional update keyed on the unit still being instock.
// If another caller claims the candidate first the update affects zero rows
// and we pick again; every lost race means someone else took a unit, so the
// loop terminates. Only an empty candidate query returns ErrOutOfStock.
func (r *PeripheralRepository) AssignFromStock(ctx context.Context, pType peripheral.PeripheralType, employeeID, employeeName string) (*peripheral.Peripheral, error) {
	for {
		var candidate models.PeripheralModel
		err := r.db.DB.WithContext(ctx).
			Where("type = ? AND status = ?", string(pType), string(peripheral.StatusInstock)).
			Order("RANDOM()").
			First(&candidate).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, peripheral.ErrOutOfStock
		}
		if err != nil {
			return nil, fmt.Errorf("failed to find instock peripheral: %w", err)
		}

		now := time.Now()
		result := r.db.DB.WithContext(ctx).
			Model(&models.PeripheralModel{}).
			Where("id = ? AND status = ?", candidate.ID, string(peripheral.StatusInstock)).
			Updates(map[string]interface{}{
				"status":           string(peripheral.StatusAssigned),
				"assigned_to":      employeeID,
				"assigned_to_name": employeeName,
				"assigned_date":    now,
				"verified":         false,
				"verified_date":    nil,
				"updated_at":       now,
			})

		if result.Error != nil {
			return nil, fmt.Errorf("failed to assign peripheral: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			continue // lost the race for this unit
		}

		return r.GetByID(ctx, candidate.ID)
	}
}

func (r *PeripheralRepository) ReturnToStock(ctx context.Context, id uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.PeripheralModel{}).
		Where("id = ? AND status = ?", id, string(peripheral.StatusAssigned)).
		Updates(map[string]interface{}{
			"status":           string(peripheral.StatusInstock),
			"assigned_to":      nil,
			"assigned_to_name": nil,
			"assigned_date":    nil,
			"verified":         false,
			"verified_date":    nil,
			"updated_at":       time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to return peripheral to stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return peripheral.ErrNotAssigned
	}

	return nil
}

func (r *PeripheralRepository) SetVerified(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	now := time.Now()
	err := r.db.DB.WithContext(ctx).
		Model(&models.PeripheralModel{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"verified":      true,
			"verified_date": now,
			"updated_at":    now,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark peripherals verified: %w", err)
	}

	return nil
}

func (r *PeripheralRepository) List(ctx context.Context) ([]*peripheral.Peripheral, error) {
	var dbModels []models.PeripheralModel
	err := r.db.DB.WithContext(ctx).
		Order("type ASC, created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list peripherals: %w", err)
	}

	return toPeripheralEntities(dbModels), nil
}

func (r *PeripheralRepository) ListByAssignedTo(ctx context.Context, employeeID string) ([]*peripheral.Peripheral, error) {
	var dbModels []models.PeripheralModel
	err := r.db.DB.WithContext(ctx).
		Where("assigned_to = ? AND status = ?", employeeID, string(peripheral.StatusAssigned)).
		Order("type ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list peripherals by assignee: %w", err)
	}

	return toPeripheralEntities(dbModels), nil
}

func (r *PeripheralRepository) ListByType(ctx context.Context, pType peripheral.PeripheralType) ([]*peripheral.Peripheral, error) {
	var dbModels []models.PeripheralModel
	err := r.db.DB.WithContext(ctx).
		Where("type = ?", string(pType)).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list peripherals by type: %w", err)
	}

	return toPeripheralEntities(dbModels), nil
}

func (r *PeripheralRepository) CountInstockByType(ctx context.Context, pType peripheral.PeripheralType) (int64, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.PeripheralModel{}).
		Where("type = ? AND status = ?", string(pType), string(peripheral.StatusInstock)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count instock peripherals: %w", err)
	}

	return count, nil
}

func (r *PeripheralRepository) GetStatistics(ctx context.Context) (*peripheral.Statistics, error) {
	stats := &peripheral.Statistics{
		StockByType: make(map[string]int64),
	}

	var total int64
	if err := r.db.DB.WithContext(ctx).Model(&models.PeripheralModel{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count peripherals: %w", err)
	}
	stats.TotalUnits = int(total)

	var instock int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.PeripheralModel{}).
		Where("status = ?", string(peripheral.StatusInstock)).
		Count(&instock).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count instock peripherals: %w", err)
	}
	stats.InstockUnits = int(instock)
	stats.AssignedUnits = stats.TotalUnits - stats.InstockUnits

	var verified int64
	err = r.db.DB.WithContext(ctx).
		Model(&models.PeripheralModel{}).
		Where("status = ? AND verified = ?", string(peripheral.StatusAssigned), true).
		Count(&verified).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count verified peripherals: %w", err)
	}
	stats.VerifiedUnits = int(verified)
	stats.UnverifiedUnits = stats.AssignedUnits - stats.VerifiedUnits

	var stockCounts []struct {
		Type  string
		Count int64
	}
	err = r.db.DB.WithContext(ctx).Raw(`
		SELECT type, COUNT(*) as count
		FROM peripherals
		WHERE status = ?
		GROUP BY type
	`, string(peripheral.StatusInstock)).Scan(&stockCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get stock counts by type: %w", err)
	}
	for _, sc := range stockCounts {
		stats.StockByType[sc.Type] = sc.Count
	}

	return stats, nil
}

func toPeripheralModel(p *peripheral.Peripheral) *models.PeripheralModel {
	return &models.PeripheralModel{
		ID:             p.ID,
		Type:           string(p.Type),
		SerialNumber:   p.SerialNumber,
		Status:         string(p.Status),
		AssignedTo:     p.AssignedTo,
		AssignedToName: p.AssignedToName,
		Verified:       p.Verified,
		AssignedDate:   p.AssignedDate,
		VerifiedDate:   p.VerifiedDate,
		PurchaseDate:   p.PurchaseDate,
		Location:       p.Location,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toPeripheralEntity(m *models.PeripheralModel) *peripheral.Peripheral {
	return &peripheral.Peripheral{
		ID:             m.ID,
		Type:           peripheral.PeripheralType(m.Type),
		SerialNumber:   m.SerialNumber,
		Status:         peripheral.PeripheralStatus(m.Status),
		AssignedTo:     m.AssignedTo,
		AssignedToName: m.AssignedToName,
		Verified:       m.Verified,
		AssignedDate:   m.AssignedDate,
		VerifiedDate:   m.VerifiedDate,
		PurchaseDate:   m.PurchaseDate,
		Location:       m.Location,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toPeripheralEntities(dbModels []models.PeripheralModel) []*peripheral.Peripheral {
	peripherals := make([]*peripheral.Peripheral, len(dbModels))
	for i := range dbModels {
		peripherals[i] = toPeripheralEntity(&dbModels[i])
	}
	return peripherals
}
