package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"asset-verification-portal/internal/domain/verification"
	"asset-verification-portal/internal/infrastructure/database/postgres/models"
)

type VerificationTokenRepository struct {
	db *DB
}

func NewVerificationTokenRepository(db *DB) *VerificationTokenRepository {
	return &VerificationTokenRepository{db: db}
}

func (r *VerificationTokenRepository) Create(ctx context.Context, t *verification.Token) error {
	t.ID = uuid.New()
	t.CreatedAt = time.Now()

	assetIDs, err := json.Marshal(t.AssetIDs)
	if err != nil {
		return fmt.Errorf("failed to encode token asset ids: %w", err)
	}

	dbModel := &models.VerificationTokenModel{
		ID:            t.ID,
		Token:         t.Token,
		EmployeeID:    t.EmployeeID,
		EmployeeName:  t.EmployeeName,
		EmployeeEmail: t.EmployeeEmail,
		CampaignID:    t.CampaignID,
		CampaignName:  t.CampaignName,
		AssetIDs:      string(assetIDs),
		CreatedAt:     t.CreatedAt,
		ExpiresAt:     t.ExpiresAt,
		Used:          t.Used,
		UsedAt:        t.UsedAt,
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create verification token: %w", err)
	}

	return nil
}

func (r *VerificationTokenRepository) GetByToken(ctx context.Context, token string) (*verification.Token, error) {
	var dbModel models.VerificationTokenModel
	err := r.db.DB.WithContext(ctx).
		Where("token = ?", token).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, verification.ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verification token: %w", err)
	}

	return toTokenEntity(&dbModel)
}

// MarkUsed retires the token, conditional on it still being unused. Of two
// racing completions exactly one sees RowsAffected > 0.
func (r *VerificationTokenRepository) MarkUsed(ctx context.Context, token string, usedAt time.Time) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.VerificationTokenModel{}).
		Where("token = ? AND used = ?", token, false).
		Updates(map[string]interface{}{
			"used":    true,
			"used_at": usedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark token used: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return verification.ErrTokenExpired
	}

	return nil
}

func (r *VerificationTokenRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*verification.Token, error) {
	var dbModels []models.VerificationTokenModel
	err := r.db.DB.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens by campaign: %w", err)
	}

	return toTokenEntities(dbModels)
}

func (r *VerificationTokenRepository) ListPendingByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*verification.Token, error) {
	var dbModels []models.VerificationTokenModel
	err := r.db.DB.WithContext(ctx).
		Where("campaign_id = ? AND used = ? AND expires_at > ?", campaignID, false, time.Now()).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending tokens: %w", err)
	}

	return toTokenEntities(dbModels)
}

func (r *VerificationTokenRepository) DeleteByCampaign(ctx context.Context, campaignID uuid.UUID) error {
	err := r.db.DB.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Delete(&models.VerificationTokenModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete tokens by campaign: %w", err)
	}

	return nil
}

func toTokenEntity(m *models.VerificationTokenModel) (*verification.Token, error) {
	var assetIDs []uuid.UUID
	if m.AssetIDs != "" {
		if err := json.Unmarshal([]byte(m.AssetIDs), &assetIDs); err != nil {
			return nil, fmt.Errorf("failed to decode token asset ids: %w", err)
		}
	}

	return &verification.Token{
		ID:            m.ID,
		Token:         m.Token,
		EmployeeID:    m.EmployeeID,
		EmployeeName:  m.EmployeeName,
		EmployeeEmail: m.EmployeeEmail,
		CampaignID:    m.CampaignID,
		CampaignName:  m.CampaignName,
		AssetIDs:      assetIDs,
		CreatedAt:     m.CreatedAt,
		ExpiresAt:     m.ExpiresAt,
		Used:          m.Used,
		UsedAt:        m.UsedAt,
	}, nil
}

func toTokenEntities(dbModels []models.VerificationTokenModel) ([]*verification.Token, error) {
	tokens := make([]*verification.Token, len(dbModels))
	for i := range dbModels {
		t, err := toTokenEntity(&dbModels[i])
		if err != nil {
			return nil, err
		}
		tokens[i] = t
	}
	return tokens, nil
}
