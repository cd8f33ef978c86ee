package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-verification-portal/internal/domain/asset"
	"asset-verification-portal/internal/domain/peripheral"
	"asset-verification-portal/internal/domain/verification"
	"asset-verification-portal/pkg/utils"
)

func seedRecord(t *testing.T, repo *VerificationRepository, campaignID uuid.UUID, employeeID, serviceTag string) *verification.Record {
	t.Helper()
	rec := &verification.Record{
		CampaignID:   campaignID,
		EmployeeID:   employeeID,
		EmployeeName: "Alice Nguyen",
		AssetID:      uuid.New(),
		ServiceTag:   serviceTag,
		AssetType:    asset.TypeLaptop,
	}
	require.NoError(t, repo.Create(context.Background(), rec))
	return rec
}

func TestSubmitOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewVerificationRepository(db)
	ctx := context.Background()

	campaignID := uuid.New()
	rec := seedRecord(t, repo, campaignID, "EMP001", "ABC1234")

	rec.Status = verification.StatusVerified
	rec.RecordedServiceTag = utils.StringPtr("ABC1234")
	rec.PeripheralsConfirmed = []peripheral.PeripheralType{peripheral.TypeCharger}
	rec.SubmittedDate = utils.TimePtr(time.Now())

	require.NoError(t, repo.Submit(ctx, rec))

	stored, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, verification.StatusVerified, stored.Status)
	require.NotNil(t, stored.RecordedServiceTag)
	assert.Equal(t, "ABC1234", *stored.RecordedServiceTag)
	assert.Equal(t, []peripheral.PeripheralType{peripheral.TypeCharger}, stored.PeripheralsConfirmed)
	assert.NotNil(t, stored.SubmittedDate)

	// No longer pending, a second submission loses
	assert.ErrorIs(t, repo.Submit(ctx, rec), verification.ErrAlreadySubmitted)
}

func TestReviewRecord(t *testing.T) {
	db := newTestDB(t)
	repo := NewVerificationRepository(db)
	ctx := context.Background()

	rec := seedRecord(t, repo, uuid.New(), "EMP001", "ABC1234")

	et := verification.ExceptionNotWithEmployee
	require.NoError(t, repo.Review(ctx, rec.ID, "admin@example.com", verification.StatusException, &et))

	stored, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, verification.StatusException, stored.Status)
	require.NotNil(t, stored.ReviewedBy)
	assert.Equal(t, "admin@example.com", *stored.ReviewedBy)
	require.NotNil(t, stored.ExceptionType)
	assert.Equal(t, verification.ExceptionNotWithEmployee, *stored.ExceptionType)

	assert.ErrorIs(t, repo.Review(ctx, uuid.New(), "admin@example.com", verification.StatusVerified, nil), verification.ErrRecordNotFound)
}

func TestMarkOverdue(t *testing.T) {
	db := newTestDB(t)
	repo := NewVerificationRepository(db)
	ctx := context.Background()

	campaignID := uuid.New()
	seedRecord(t, repo, campaignID, "EMP001", "ABC1234")
	seedRecord(t, repo, campaignID, "EMP002", "DEF5678")

	verified := seedRecord(t, repo, campaignID, "EMP003", "GHI9012")
	verified.Status = verification.StatusVerified
	verified.SubmittedDate = utils.TimePtr(time.Now())
	require.NoError(t, repo.Submit(ctx, verified))

	// Record from another campaign stays untouched
	seedRecord(t, repo, uuid.New(), "EMP004", "JKL3456")

	flipped, err := repo.MarkOverdue(ctx, campaignID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), flipped)

	counts, err := repo.CountByStatusForCampaign(ctx, campaignID)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[verification.StatusOverdue])
	assert.Equal(t, 1, counts[verification.StatusVerified])
	assert.Equal(t, 0, counts[verification.StatusPending])
}

func TestTokenSingleUse(t *testing.T) {
	db := newTestDB(t)
	repo := NewVerificationTokenRepository(db)
	ctx := context.Background()

	campaignID := uuid.New()
	assetID := uuid.New()
	token := &verification.Token{
		Token:         uuid.NewString(),
		EmployeeID:    "EMP001",
		EmployeeName:  "Alice Nguyen",
		EmployeeEmail: "alice@example.com",
		CampaignID:    campaignID,
		CampaignName:  "Q3 Audit",
		AssetIDs:      []uuid.UUID{assetID},
		ExpiresAt:     time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, repo.Create(ctx, token))

	stored, err := repo.GetByToken(ctx, token.Token)
	require.NoError(t, err)
	assert.True(t, stored.IsValid(time.Now()))
	assert.Equal(t, []uuid.UUID{assetID}, stored.AssetIDs)

	require.NoError(t, repo.MarkUsed(ctx, token.Token, time.Now()))

	// Already used, second completion loses
	assert.ErrorIs(t, repo.MarkUsed(ctx, token.Token, time.Now()), verification.ErrTokenExpired)

	stored, err = repo.GetByToken(ctx, token.Token)
	require.NoError(t, err)
	assert.True(t, stored.Used)
	assert.NotNil(t, stored.UsedAt)
	assert.False(t, stored.IsValid(time.Now()))
}

func TestListPendingTokensExcludesUsedAndExpired(t *testing.T) {
	db := newTestDB(t)
	repo := NewVerificationTokenRepository(db)
	ctx := context.Background()

	campaignID := uuid.New()

	live := &verification.Token{
		Token:      uuid.NewString(),
		EmployeeID: "EMP001",
		CampaignID: campaignID,
		ExpiresAt:  time.Now().Add(24 * time.Hour),
	}
	used := &verification.Token{
		Token:      uuid.NewString(),
		EmployeeID: "EMP002",
		CampaignID: campaignID,
		ExpiresAt:  time.Now().Add(24 * time.Hour),
	}
	expired := &verification.Token{
		Token:      uuid.NewString(),
		EmployeeID: "EMP003",
		CampaignID: campaignID,
		ExpiresAt:  time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.Create(ctx, live))
	require.NoError(t, repo.Create(ctx, used))
	require.NoError(t, repo.Create(ctx, expired))
	require.NoError(t, repo.MarkUsed(ctx, used.Token, time.Now()))

	pending, err := repo.ListPendingByCampaign(ctx, campaignID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, live.Token, pending[0].Token)
}

func TestGetByTokenNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewVerificationTokenRepository(db)

	_, err := repo.GetByToken(context.Background(), "nope")
	assert.ErrorIs(t, err, verification.ErrTokenNotFound)
}
