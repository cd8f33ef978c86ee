package asset

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	domainAsset "asset-verification-portal/internal/domain/asset"
	"asset-verification-portal/internal/infrastructure/database/postgres"
	"asset-verification-portal/internal/infrastructure/database/postgres/models"
	"asset-verification-portal/internal/logger"
)

func newCSVService(t *testing.T) (*Service, *postgres.AssetRepository) {
	t.Helper()

	if logger.Logger == nil {
		require.NoError(t, logger.Init("test"))
	}

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(&models.HardwareAssetModel{}))

	repo := postgres.NewAssetRepository(&postgres.DB{DB: gdb})
	return NewService(repo), repo
}

func TestImportCSVVendorHeaders(t *testing.T) {
	service, repo := newCSVService(t)
	ctx := context.Background()

	csv := strings.Join([]string{
		"Serial Number,Type,Model,Employee ID,Employee Name,Price,Purchase Date,Department",
		"ABC1234,Laptop,Latitude 5440,EMP001,Alice Nguyen,1200.50,2024-03-15,Engineering",
		`DEF5678,notebook,MacBook Pro,,,"2,499.00",03/20/2024,Engineering`,
		"GHI9012,display,U2723QE,EMP002,Bob Tran,450,,Finance",
	}, "\n")

	result, err := service.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Created)
	assert.Zero(t, result.Updated)
	assert.Empty(t, result.Errors)

	a, err := repo.GetByServiceTag(ctx, "ABC1234")
	require.NoError(t, err)
	assert.Equal(t, domainAsset.TypeLaptop, a.AssetType)
	assert.Equal(t, "Latitude 5440", a.Model)
	require.NotNil(t, a.AssignedTo)
	assert.Equal(t, "EMP001", *a.AssignedTo)
	assert.Equal(t, 1200.50, a.Cost)
	require.NotNil(t, a.PurchaseDate)
	assert.Equal(t, "Engineering", a.Team)

	// Unassigned row lands in stock with the thousands separator stripped
	a, err = repo.GetByServiceTag(ctx, "DEF5678")
	require.NoError(t, err)
	assert.Equal(t, domainAsset.StatusInstock, a.Status)
	assert.Nil(t, a.AssignedTo)
	assert.Equal(t, 2499.00, a.Cost)

	a, err = repo.GetByServiceTag(ctx, "GHI9012")
	require.NoError(t, err)
	assert.Equal(t, domainAsset.TypeMonitor, a.AssetType)
}

func TestImportCSVCollectsRowErrors(t *testing.T) {
	service, repo := newCSVService(t)
	ctx := context.Background()

	csv := strings.Join([]string{
		"Service Tag,Asset Type,Model",
		"ABC1234,Laptop,Latitude 5440",
		",Laptop,No Tag Here",
		"DEF5678,Typewriter,Selectric",
		"GHI9012,Laptop,ThinkPad T14",
	}, "\n")

	result, err := service.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Created)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "line 3")
	assert.Contains(t, result.Errors[1], "unknown asset type")

	_, err = repo.GetByServiceTag(ctx, "GHI9012")
	assert.NoError(t, err)
}

func TestImportCSVUpsertsByServiceTag(t *testing.T) {
	service, repo := newCSVService(t)
	ctx := context.Background()

	first := "Service Tag,Asset Type,Model\nABC1234,Laptop,Latitude 5440\n"
	result, err := service.ImportCSV(ctx, strings.NewReader(first))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	second := "Service Tag,Asset Type,Model,Location\nABC1234,Laptop,Latitude 5450,HQ-3F\n"
	result, err = service.ImportCSV(ctx, strings.NewReader(second))
	require.NoError(t, err)
	assert.Zero(t, result.Created)
	assert.Equal(t, 1, result.Updated)

	a, err := repo.GetByServiceTag(ctx, "ABC1234")
	require.NoError(t, err)
	assert.Equal(t, "Latitude 5450", a.Model)
	assert.Equal(t, "HQ-3F", a.Location)
}

func TestImportCSVMissingColumns(t *testing.T) {
	service, _ := newCSVService(t)
	ctx := context.Background()

	_, err := service.ImportCSV(ctx, strings.NewReader("Model,Cost\nLatitude,1200\n"))
	assert.Error(t, err)

	_, err = service.ImportCSV(ctx, strings.NewReader("Service Tag,Asset Type\n"))
	assert.Error(t, err)
}

func TestExportCSV(t *testing.T) {
	service, _ := newCSVService(t)
	ctx := context.Background()

	csv := strings.Join([]string{
		"Service Tag,Asset Type,Model,Employee ID,Cost",
		"DEF5678,Monitor,U2723QE,,450",
		"ABC1234,Laptop,Latitude 5440,EMP001,1200.50",
	}, "\n")
	_, err := service.ImportCSV(ctx, strings.NewReader(csv))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, service.ExportCSV(ctx, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Service Tag")
	// Sorted by service tag
	assert.True(t, strings.HasPrefix(lines[1], "ABC1234,Laptop,Latitude 5440"))
	assert.True(t, strings.HasPrefix(lines[2], "DEF5678,Monitor,U2723QE"))
	assert.Contains(t, lines[1], "EMP001")
	assert.Contains(t, lines[1], "1200.50")
}
