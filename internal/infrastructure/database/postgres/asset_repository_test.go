package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"asset-verification-portal/internal/domain/asset"
)

func seedAsset(t *testing.T, repo *AssetRepository, serviceTag string, aType asset.AssetType) *asset.HardwareAsset {
	t.Helper()
	a := &asset.HardwareAsset{
		ServiceTag: serviceTag,
		AssetType:  aType,
		Model:      "Latitude 5440",
		Cost:       1200,
		Location:   "HQ",
		Team:       "Engineering",
	}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

func TestAssetCreateDuplicateServiceTag(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssetRepository(db)

	seedAsset(t, repo, "ABC1234", asset.TypeLaptop)

	err := repo.Create(context.Background(), &asset.HardwareAsset{
		ServiceTag: "ABC1234",
		AssetType:  asset.TypeLaptop,
		Model:      "Latitude 5440",
	})
	assert.ErrorIs(t, err, asset.ErrAssetAlreadyExists)
}

func TestAssetAssignUnassign(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssetRepository(db)
	ctx := context.Background()

	a := seedAsset(t, repo, "ABC1234", asset.TypeLaptop)

	require.NoError(t, repo.Assign(ctx, a.ID, "EMP001", "Alice Nguyen"))

	stored, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, asset.StatusAssigned, stored.Status)
	assert.True(t, stored.IsAssignedTo("EMP001"))
	assert.NotNil(t, stored.AssignedDate)

	// Already assigned, a second claim is a conflict
	assert.ErrorIs(t, repo.Assign(ctx, a.ID, "EMP002", "Bob Tran"), asset.ErrAssetInUse)

	require.NoError(t, repo.Unassign(ctx, a.ID))

	stored, err = repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, asset.StatusInstock, stored.Status)
	assert.Nil(t, stored.AssignedTo)

	assert.ErrorIs(t, repo.Unassign(ctx, a.ID), asset.ErrAssetNotAssigned)
}

func TestAssetUpdateVerification(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssetRepository(db)
	ctx := context.Background()

	a := seedAsset(t, repo, "ABC1234", asset.TypeLaptop)

	require.NoError(t, repo.UpdateVerification(ctx, a.ID, asset.VerificationVerified))

	stored, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, asset.VerificationVerified, stored.VerificationStatus)
	assert.NotNil(t, stored.LastVerifiedDate)

	require.NoError(t, repo.UpdateVerification(ctx, a.ID, asset.VerificationOverdue))

	stored, err = repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, asset.VerificationOverdue, stored.VerificationStatus)
}

func TestAssetListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssetRepository(db)
	ctx := context.Background()

	laptop := seedAsset(t, repo, "ABC1234", asset.TypeLaptop)
	seedAsset(t, repo, "DEF5678", asset.TypeMonitor)
	seedAsset(t, repo, "GHI9012", asset.TypeLaptop)

	require.NoError(t, repo.Assign(ctx, laptop.ID, "EMP001", "Alice Nguyen"))

	laptopType := asset.TypeLaptop
	results, total, err := repo.List(ctx, &asset.Filter{AssetType: &laptopType})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, results, 2)

	assignedStatus := asset.StatusAssigned
	results, total, err = repo.List(ctx, &asset.Filter{Status: &assignedStatus})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, results, 1)
	assert.Equal(t, "ABC1234", results[0].ServiceTag)

	results, total, err = repo.List(ctx, &asset.Filter{Search: "def"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, results, 1)
	assert.Equal(t, "DEF5678", results[0].ServiceTag)

	results, total, err = repo.List(ctx, &asset.Filter{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, results, 2)
}

func TestAssetStatistics(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssetRepository(db)
	ctx := context.Background()

	laptop := seedAsset(t, repo, "ABC1234", asset.TypeLaptop)
	seedAsset(t, repo, "DEF5678", asset.TypeMonitor)

	require.NoError(t, repo.Assign(ctx, laptop.ID, "EMP001", "Alice Nguyen"))
	require.NoError(t, repo.UpdateVerification(ctx, laptop.ID, asset.VerificationVerified))

	stats, err := repo.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalAssets)
	assert.Equal(t, 1, stats.AssignedAssets)
	assert.Equal(t, 1, stats.InstockAssets)
	assert.Equal(t, 1, stats.VerifiedAssets)
	assert.Equal(t, float64(2400), stats.TotalValue)
	assert.Len(t, stats.ByType, 2)
}

func TestListByAssignedTo(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssetRepository(db)
	ctx := context.Background()

	first := seedAsset(t, repo, "ABC1234", asset.TypeLaptop)
	second := seedAsset(t, repo, "DEF5678", asset.TypeMonitor)
	seedAsset(t, repo, "GHI9012", asset.TypeLaptop)

	require.NoError(t, repo.Assign(ctx, first.ID, "EMP001", "Alice Nguyen"))
	require.NoError(t, repo.Assign(ctx, second.ID, "EMP001", "Alice Nguyen"))

	assets, err := repo.ListByAssignedTo(ctx, "EMP001")
	require.NoError(t, err)
	assert.Len(t, assets, 2)

	assets, err = repo.ListByAssignedTo(ctx, "EMP999")
	require.NoError(t, err)
	assert.Empty(t, assets)
}
