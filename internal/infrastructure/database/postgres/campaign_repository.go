package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"asset-verification-portal/internal/domain/campaign"
	"asset-verification-portal/internal/infrastructure/database/postgres/models"
)

type CampaignRepository struct {
	db *DB
}

func NewCampaignRepository(db *DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) Create(ctx context.Context, c *campaign.Campaign) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	if c.CreatedDate.IsZero() {
		c.CreatedDate = c.CreatedAt
	}
	if c.Status == "" {
		c.Status = campaign.StatusDraft
	}

	dbModel, err := toCampaignModel(c)
	if err != nil {
		return err
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

func (r *CampaignRepository) GetByID(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error) {
	var dbModel models.CampaignModel
	err := r.db.DB.WithContext(ctx).
		Where("id = ?", id).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, campaign.ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return toCampaignEntity(&dbModel)
}

func (r *CampaignRepository) Update(ctx context.Context, c *campaign.Campaign) error {
	c.UpdatedAt = time.Now()

	filters, err := json.Marshal(c.Filters)
	if err != nil {
		return fmt.Errorf("failed to encode campaign filters: %w", err)
	}

	result := r.db.DB.WithContext(ctx).
		Model(&models.CampaignModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"name":              c.Name,
			"description":       c.Description,
			"start_date":        c.StartDate,
			"deadline":          c.Deadline,
			"status":            string(c.Status),
			"filters":           string(filters),
			"total_employees":   c.TotalEmployees,
			"total_assets":      c.TotalAssets,
			"total_peripherals": c.TotalPeripherals,
			"updated_at":        c.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update campaign: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return campaign.ErrCampaignNotFound
	}

	return nil
}

// UpdateStatus transitions a campaign only when its stored status still
// matches the expected one, so racing transitions resolve to a single winner.
func (r *CampaignRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to campaign.CampaignStatus) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.CampaignModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(map[string]interface{}{
			"status":     string(to),
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update campaign status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return campaign.ErrInvalidTransition
	}

	return nil
}

func (r *CampaignRepository) UpdateCounts(ctx context.Context, id uuid.UUID, counts campaign.Counts) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.CampaignModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"verified_count":  counts.Verified,
			"pending_count":   counts.Pending,
			"overdue_count":   counts.Overdue,
			"exception_count": counts.Exception,
			"updated_at":      time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update campaign counts: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return campaign.ErrCampaignNotFound
	}

	return nil
}

// Delete removes the campaign together with its verification records and
// tokens in one transaction.
func (r *CampaignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("campaign_id = ?", id).Delete(&models.VerificationRecordModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete campaign records: %w", err)
		}
		if err := tx.Where("campaign_id = ?", id).Delete(&models.VerificationTokenModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete campaign tokens: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&models.CampaignModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete campaign: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return campaign.ErrCampaignNotFound
		}

		return nil
	})
}

func (r *CampaignRepository) List(ctx context.Context) ([]*campaign.Campaign, error) {
	var dbModels []models.CampaignModel
	err := r.db.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	return toCampaignEntities(dbModels)
}

func (r *CampaignRepository) ListByStatus(ctx context.Context, status campaign.CampaignStatus) ([]*campaign.Campaign, error) {
	var dbModels []models.CampaignModel
	err := r.db.DB.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns by status: %w", err)
	}

	return toCampaignEntities(dbModels)
}

func (r *CampaignRepository) ListByCreatedBy(ctx context.Context, employeeID string) ([]*campaign.Campaign, error) {
	var dbModels []models.CampaignModel
	err := r.db.DB.WithContext(ctx).
		Where("created_by = ?", employeeID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns by creator: %w", err)
	}

	return toCampaignEntities(dbModels)
}

func (r *CampaignRepository) ListWithDeadlineBefore(ctx context.Context, cutoff time.Time) ([]*campaign.Campaign, error) {
	var dbModels []models.CampaignModel
	err := r.db.DB.WithContext(ctx).
		Where("deadline IS NOT NULL AND deadline < ? AND status = ?", cutoff, string(campaign.StatusActive)).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns past deadline: %w", err)
	}

	return toCampaignEntities(dbModels)
}

func (r *CampaignRepository) GetStatistics(ctx context.Context) (*campaign.Statistics, error) {
	stats := &campaign.Statistics{}

	var statusCounts []struct {
		Status string
		Count  int
	}
	err := r.db.DB.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) as count
		FROM campaigns
		GROUP BY status
	`).Scan(&statusCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign status counts: %w", err)
	}

	for _, sc := range statusCounts {
		stats.Total += sc.Count
		switch campaign.CampaignStatus(sc.Status) {
		case campaign.StatusActive:
			stats.Active = sc.Count
		case campaign.StatusDraft:
			stats.Draft = sc.Count
		case campaign.StatusCompleted:
			stats.Completed = sc.Count
		}
	}

	return stats, nil
}

func toCampaignModel(c *campaign.Campaign) (*models.CampaignModel, error) {
	filters, err := json.Marshal(c.Filters)
	if err != nil {
		return nil, fmt.Errorf("failed to encode campaign filters: %w", err)
	}

	return &models.CampaignModel{
		ID:               c.ID,
		Name:             c.Name,
		Description:      c.Description,
		CreatedBy:        c.CreatedBy,
		CreatedDate:      c.CreatedDate,
		StartDate:        c.StartDate,
		Deadline:         c.Deadline,
		Status:           string(c.Status),
		Filters:          string(filters),
		TotalEmployees:   c.TotalEmployees,
		TotalAssets:      c.TotalAssets,
		TotalPeripherals: c.TotalPeripherals,
		VerifiedCount:    c.VerifiedCount,
		PendingCount:     c.PendingCount,
		OverdueCount:     c.OverdueCount,
		ExceptionCount:   c.ExceptionCount,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}, nil
}

func toCampaignEntity(m *models.CampaignModel) (*campaign.Campaign, error) {
	var filters campaign.Filters
	if m.Filters != "" {
		if err := json.Unmarshal([]byte(m.Filters), &filters); err != nil {
			return nil, fmt.Errorf("failed to decode campaign filters: %w", err)
		}
	}

	return &campaign.Campaign{
		ID:               m.ID,
		Name:             m.Name,
		Description:      m.Description,
		CreatedBy:        m.CreatedBy,
		CreatedDate:      m.CreatedDate,
		StartDate:        m.StartDate,
		Deadline:         m.Deadline,
		Status:           campaign.CampaignStatus(m.Status),
		Filters:          filters,
		TotalEmployees:   m.TotalEmployees,
		TotalAssets:      m.TotalAssets,
		TotalPeripherals: m.TotalPeripherals,
		VerifiedCount:    m.VerifiedCount,
		PendingCount:     m.PendingCount,
		OverdueCount:     m.OverdueCount,
		ExceptionCount:   m.ExceptionCount,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}, nil
}

func toCampaignEntities(dbModels []models.CampaignModel) ([]*campaign.Campaign, error) {
	campaigns := make([]*campaign.Campaign, len(dbModels))
	for i := range dbModels {
		c, err := toCampaignEntity(&dbModels[i])
		if err != nil {
			return nil, err
		}
		campaigns[i] = c
	}
	return campaigns, nil
}
