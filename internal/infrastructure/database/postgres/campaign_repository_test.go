package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-verification-portal/internal/domain/campaign"
	"asset-verification-portal/internal/domain/verification"
	"asset-verification-portal/pkg/utils"
)

func seedCampaign(t *testing.T, repo *CampaignRepository, status campaign.CampaignStatus, deadline *time.Time) *campaign.Campaign {
	t.Helper()
	c := &campaign.Campaign{
		Name:        "Q3 Laptop Audit",
		Description: "Quarterly laptop verification",
		CreatedBy:   "EMP001",
		CreatedDate: time.Now(),
		Deadline:    deadline,
		Status:      status,
		Filters: campaign.Filters{
			Teams:      []string{"Engineering"},
			AssetTypes: []string{"Laptop"},
		},
	}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func TestCampaignFiltersRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewCampaignRepository(db)

	created := seedCampaign(t, repo, campaign.StatusDraft, nil)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Engineering"}, stored.Filters.Teams)
	assert.Equal(t, []string{"Laptop"}, stored.Filters.AssetTypes)
	assert.Empty(t, stored.Filters.EmployeeIDs)
}

func TestCampaignStatusTransition(t *testing.T) {
	db := newTestDB(t)
	repo := NewCampaignRepository(db)
	ctx := context.Background()

	c := seedCampaign(t, repo, campaign.StatusDraft, nil)

	require.NoError(t, repo.UpdateStatus(ctx, c.ID, campaign.StatusDraft, campaign.StatusActive))

	stored, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, campaign.StatusActive, stored.Status)

	// No longer Draft, the same transition fails
	assert.ErrorIs(t,
		repo.UpdateStatus(ctx, c.ID, campaign.StatusDraft, campaign.StatusActive),
		campaign.ErrInvalidTransition)

	require.NoError(t, repo.UpdateStatus(ctx, c.ID, campaign.StatusActive, campaign.StatusCompleted))
}

func TestCampaignUpdateCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewCampaignRepository(db)
	ctx := context.Background()

	c := seedCampaign(t, repo, campaign.StatusActive, nil)

	require.NoError(t, repo.UpdateCounts(ctx, c.ID, campaign.Counts{
		Verified:  3,
		Pending:   2,
		Overdue:   1,
		Exception: 1,
	}))

	stored, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.VerifiedCount)
	assert.Equal(t, 2, stored.PendingCount)
	assert.Equal(t, 1, stored.OverdueCount)
	assert.Equal(t, 1, stored.ExceptionCount)
}

func TestListWithDeadlineBefore(t *testing.T) {
	db := newTestDB(t)
	repo := NewCampaignRepository(db)
	ctx := context.Background()

	pastActive := seedCampaign(t, repo, campaign.StatusActive, utils.TimePtr(time.Now().Add(-time.Hour)))
	seedCampaign(t, repo, campaign.StatusActive, utils.TimePtr(time.Now().Add(24*time.Hour)))
	seedCampaign(t, repo, campaign.StatusDraft, utils.TimePtr(time.Now().Add(-time.Hour)))
	seedCampaign(t, repo, campaign.StatusActive, nil)

	overdue, err := repo.ListWithDeadlineBefore(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, pastActive.ID, overdue[0].ID)
}

func TestCampaignDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	campaignRepo := NewCampaignRepository(db)
	recordRepo := NewVerificationRepository(db)
	tokenRepo := NewVerificationTokenRepository(db)
	ctx := context.Background()

	c := seedCampaign(t, campaignRepo, campaign.StatusDraft, nil)
	seedRecord(t, recordRepo, c.ID, "EMP001", "ABC1234")
	require.NoError(t, tokenRepo.Create(ctx, &verification.Token{
		Token:      uuid.NewString(),
		EmployeeID: "EMP001",
		CampaignID: c.ID,
		ExpiresAt:  time.Now().Add(24 * time.Hour),
	}))

	require.NoError(t, campaignRepo.Delete(ctx, c.ID))

	_, err := campaignRepo.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, campaign.ErrCampaignNotFound)

	records, err := recordRepo.ListByCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, records)

	tokens, err := tokenRepo.ListByCampaign(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestEffectiveStatus(t *testing.T) {
	now := time.Now()

	active := &campaign.Campaign{Status: campaign.StatusActive, Deadline: utils.TimePtr(now.Add(time.Hour))}
	assert.Equal(t, campaign.StatusActive, active.EffectiveStatus(now))

	pastDeadline := &campaign.Campaign{Status: campaign.StatusActive, Deadline: utils.TimePtr(now.Add(-time.Hour))}
	assert.Equal(t, campaign.StatusCompleted, pastDeadline.EffectiveStatus(now))

	noDeadline := &campaign.Campaign{Status: campaign.StatusDraft}
	assert.Equal(t, campaign.StatusDraft, noDeadline.EffectiveStatus(now))
}
