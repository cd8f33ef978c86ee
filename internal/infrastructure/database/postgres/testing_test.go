package postgres

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"asset-verification-portal/internal/infrastructure/database/postgres/models"
	"asset-verification-portal/internal/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema. A single
// connection keeps the :memory: database alive and serializes writers the way
// sqlite expects.
func newTestDB(t *testing.T) *DB {
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

	require.NoError(t, gdb.AutoMigrate(
		&models.UserModel{},
		&models.RefreshTokenModel{},
		&models.HardwareAssetModel{},
		&models.PeripheralModel{},
		&models.CampaignModel{},
		&models.VerificationRecordModel{},
		&models.VerificationTokenModel{},
		&models.EquipmentCountModel{},
	))

	return &DB{DB: gdb}
}
