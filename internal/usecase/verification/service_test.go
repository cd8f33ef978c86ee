package verification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"asset-verification-portal/internal/config"
	domainAsset "asset-verification-portal/internal/domain/asset"
	domainPeripheral "asset-verification-portal/internal/domain/peripheral"
	domainUser "asset-verification-portal/internal/domain/user"
	domainVerification "asset-verification-portal/internal/domain/verification"
	"asset-verification-portal/internal/events"
	"asset-verification-portal/internal/infrastructure/database/postgres"
	"asset-verification-portal/internal/infrastructure/database/postgres/models"
	"asset-verification-portal/internal/logger"
	campaignUsecase "asset-verification-portal/internal/usecase/campaign"
	appErrors "asset-verification-portal/pkg/errors"
	"asset-verification-portal/pkg/utils"
)

type nullMailer struct{}

func (nullMailer) SendVerificationEmail(to, employeeName, campaignName, link string, deadline *time.Time) error {
	return nil
}

func (nullMailer) SendReminderEmail(to, employeeName, campaignName, link string, deadline *time.Time) error {
	return nil
}

type fixture struct {
	service        *Service
	campaignSvc    *campaignUsecase.Service
	userRepo       *postgres.UserRepository
	assetRepo      *postgres.AssetRepository
	campaignRepo   *postgres.CampaignRepository
	recordRepo     *postgres.VerificationRepository
	tokenRepo      *postgres.VerificationTokenRepository
	peripheralRepo *postgres.PeripheralRepository
}

func newFixture(t *testing.T) *fixture {
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

	db := &postgres.DB{DB: gdb}
	publisher := events.NewPublisher(&config.Config{})

	f := &fixture{
		userRepo:       postgres.NewUserRepository(db),
		assetRepo:      postgres.NewAssetRepository(db),
		campaignRepo:   postgres.NewCampaignRepository(db),
		recordRepo:     postgres.NewVerificationRepository(db),
		tokenRepo:      postgres.NewVerificationTokenRepository(db),
		peripheralRepo: postgres.NewPeripheralRepository(db),
	}

	f.campaignSvc = campaignUsecase.NewService(
		f.campaignRepo,
		f.recordRepo,
		f.tokenRepo,
		f.userRepo,
		f.assetRepo,
		f.peripheralRepo,
		nullMailer{},
		publisher,
		config.VerificationConfig{
			FrontendURL:     "http://localhost:5173",
			TokenExpiryDays: 30,
		},
	)

	f.service = NewService(
		f.recordRepo,
		f.tokenRepo,
		f.campaignRepo,
		f.assetRepo,
		f.peripheralRepo,
		nil,
		publisher,
	)

	return f
}

func (f *fixture) seedEmployeeWithAsset(t *testing.T, employeeID, serviceTag string) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, f.userRepo.Create(ctx, &domainUser.User{
		Username:       employeeID,
		Email:          employeeID + "@example.com",
		PasswordHashed: "$2a$10$notarealhash",
		Name:           "Employee " + employeeID,
		Department:     "Engineering",
		EmployeeID:     employeeID,
		Role:           "employee",
		IsActive:       true,
	}))

	a := &domainAsset.HardwareAsset{
		ServiceTag: serviceTag,
		AssetType:  domainAsset.TypeLaptop,
		Model:      "Latitude 5440",
		Team:       "Engineering",
	}
	require.NoError(t, f.assetRepo.Create(ctx, a))
	require.NoError(t, f.assetRepo.Assign(ctx, a.ID, employeeID, "Employee "+employeeID))
}

// launchCampaign seeds one employee with one laptop, creates and launches a
// campaign covering it, and hands back the minted token with its record.
func (f *fixture) launchCampaign(t *testing.T) (campaignID uuid.UUID, tokenString string, record *domainVerification.Record) {
	t.Helper()
	ctx := context.Background()

	f.seedEmployeeWithAsset(t, "EMP001", "ABC1234")

	created, err := f.campaignSvc.Create(ctx, "EMP000", &campaignUsecase.CreateCampaignRequest{
		Name:     "Q3 Hardware Audit",
		Deadline: utils.TimePtr(time.Now().Add(7 * 24 * time.Hour)),
	})
	require.NoError(t, err)
	_, err = f.campaignSvc.Launch(ctx, created.ID)
	require.NoError(t, err)

	tokens, err := f.tokenRepo.ListByCampaign(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, tokens, 1)

	records, err := f.recordRepo.ListByCampaign(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)

	return created.ID, tokens[0].Token, records[0]
}

func TestGetByTokenSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	campaignID, tokenString, record := f.launchCampaign(t)

	require.NoError(t, f.peripheralRepo.Create(ctx, &domainPeripheral.Peripheral{
		Type:   domainPeripheral.TypeCharger,
		Status: domainPeripheral.StatusInstock,
	}))
	_, err := f.peripheralRepo.AssignFromStock(ctx, domainPeripheral.TypeCharger, "EMP001", "Employee EMP001")
	require.NoError(t, err)

	session, err := f.service.GetByToken(ctx, tokenString)
	require.NoError(t, err)
	assert.Equal(t, "EMP001", session.EmployeeID)
	assert.Equal(t, campaignID, session.CampaignID)
	assert.Equal(t, "Q3 Hardware Audit", session.CampaignName)
	require.Len(t, session.Records, 1)
	assert.Equal(t, record.ID, session.Records[0].ID)
	require.Len(t, session.Assets, 1)
	assert.Equal(t, "ABC1234", session.Assets[0].ServiceTag)
	require.Len(t, session.Peripherals, 1)
}

func TestGetByTokenUnknown(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetByToken(context.Background(), "no-such-token")
	assert.Error(t, err)
}

func TestSubmitMatchingTag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	campaignID, tokenString, record := f.launchCampaign(t)

	require.NoError(t, f.peripheralRepo.Create(ctx, &domainPeripheral.Peripheral{
		Type:   domainPeripheral.TypeCharger,
		Status: domainPeripheral.StatusInstock,
	}))
	assigned, err := f.peripheralRepo.AssignFromStock(ctx, domainPeripheral.TypeCharger, "EMP001", "Employee EMP001")
	require.NoError(t, err)

	resp, err := f.service.Submit(ctx, tokenString, &SubmitRequest{
		AssetID:              record.AssetID,
		RecordedServiceTag:   utils.StringPtr("abc-1234"),
		PeripheralsConfirmed: []string{"Charger"},
	})
	require.NoError(t, err)
	assert.True(t, resp.TagMatches)
	assert.Equal(t, "Verified", resp.Record.Status)

	a, err := f.assetRepo.GetByServiceTag(ctx, "ABC1234")
	require.NoError(t, err)
	assert.Equal(t, domainAsset.VerificationVerified, a.VerificationStatus)

	p, err := f.peripheralRepo.GetByID(ctx, assigned.ID)
	require.NoError(t, err)
	assert.True(t, p.Verified)

	c, err := f.campaignRepo.GetByID(ctx, campaignID)
	require.NoError(t, err)
	assert.Equal(t, 1, c.VerifiedCount)
	assert.Equal(t, 0, c.PendingCount)
}

func TestSubmitMismatchFilesException(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, tokenString, record := f.launchCampaign(t)

	resp, err := f.service.Submit(ctx, tokenString, &SubmitRequest{
		AssetID:            record.AssetID,
		RecordedServiceTag: utils.StringPtr("XYZ9876"),
	})
	require.NoError(t, err)
	assert.False(t, resp.TagMatches)
	assert.Equal(t, "Exception", resp.Record.Status)
	require.NotNil(t, resp.Record.ExceptionType)
	assert.Equal(t, "Mismatch", *resp.Record.ExceptionType)

	a, err := f.assetRepo.GetByServiceTag(ctx, "ABC1234")
	require.NoError(t, err)
	assert.Equal(t, domainAsset.VerificationException, a.VerificationStatus)
}

func TestSubmitWithoutEvidenceFailsClosed(t *testing.T) {
	f := newFixture(t)

	_, tokenString, record := f.launchCampaign(t)

	resp, err := f.service.Submit(context.Background(), tokenString, &SubmitRequest{
		AssetID: record.AssetID,
	})
	require.NoError(t, err)
	assert.False(t, resp.TagMatches)
	assert.Equal(t, "Exception", resp.Record.Status)
}

func TestSubmitTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, tokenString, record := f.launchCampaign(t)

	_, err := f.service.Submit(ctx, tokenString, &SubmitRequest{
		AssetID:            record.AssetID,
		RecordedServiceTag: utils.StringPtr("ABC1234"),
	})
	require.NoError(t, err)

	_, err = f.service.Submit(ctx, tokenString, &SubmitRequest{
		AssetID:            record.AssetID,
		RecordedServiceTag: utils.StringPtr("ABC1234"),
	})
	assert.Error(t, err)
}

func TestSubmitUncoveredRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	campaignID, tokenString, _ := f.launchCampaign(t)

	// A record for another employee in the same campaign is off limits
	other := &domainVerification.Record{
		CampaignID:   campaignID,
		EmployeeID:   "EMP999",
		EmployeeName: "Employee EMP999",
		AssetID:      uuid.New(),
		ServiceTag:   "ZZZ0001",
		AssetType:    domainAsset.TypeLaptop,
		Status:       domainVerification.StatusPending,
	}
	require.NoError(t, f.recordRepo.Create(ctx, other))

	_, err := f.service.Submit(ctx, tokenString, &SubmitRequest{
		AssetID:            other.AssetID,
		RecordedServiceTag: utils.StringPtr("ZZZ0001"),
	})
	assert.Error(t, err)
}

func TestSubmitPeripheralsNotWithMe(t *testing.T) {
	f := newFixture(t)

	_, tokenString, record := f.launchCampaign(t)

	// Matching tag, but the employee reports a missing peripheral
	resp, err := f.service.Submit(context.Background(), tokenString, &SubmitRequest{
		AssetID:              record.AssetID,
		RecordedServiceTag:   utils.StringPtr("ABC1234"),
		PeripheralsNotWithMe: []string{"Charger"},
	})
	require.NoError(t, err)
	assert.True(t, resp.TagMatches)
	assert.Equal(t, "Exception", resp.Record.Status)
	require.NotNil(t, resp.Record.ExceptionType)
	assert.Equal(t, "NotWithEmployee", *resp.Record.ExceptionType)
}

func TestCompleteRequiresDecidedRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, tokenString, _ := f.launchCampaign(t)

	_, err := f.service.Complete(ctx, tokenString)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, appErrors.ErrTokenUsed)
}

func TestCompleteRetiresToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, tokenString, record := f.launchCampaign(t)

	_, err := f.service.Submit(ctx, tokenString, &SubmitRequest{
		AssetID:            record.AssetID,
		RecordedServiceTag: utils.StringPtr("ABC1234"),
	})
	require.NoError(t, err)

	completed, err := f.service.Complete(ctx, tokenString)
	require.NoError(t, err)
	assert.False(t, completed.SubmittedAt.IsZero())

	_, err = f.service.Complete(ctx, tokenString)
	assert.ErrorIs(t, err, appErrors.ErrTokenUsed)

	_, err = f.service.GetByToken(ctx, tokenString)
	assert.ErrorIs(t, err, appErrors.ErrTokenUsed)

	_, err = f.service.Submit(ctx, tokenString, &SubmitRequest{
		AssetID:            record.AssetID,
		RecordedServiceTag: utils.StringPtr("ABC1234"),
	})
	assert.ErrorIs(t, err, appErrors.ErrTokenUsed)
}

func TestReviewAccept(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, tokenString, record := f.launchCampaign(t)

	_, err := f.service.Submit(ctx, tokenString, &SubmitRequest{
		AssetID:            record.AssetID,
		RecordedServiceTag: utils.StringPtr("XYZ9876"),
	})
	require.NoError(t, err)

	reviewed, err := f.service.Review(ctx, record.ID, "manager@example.com", &ReviewRequest{
		Action: "accept",
	})
	require.NoError(t, err)
	assert.Equal(t, "Verified", reviewed.Status)
	require.NotNil(t, reviewed.ReviewedBy)
	assert.Equal(t, "manager@example.com", *reviewed.ReviewedBy)

	a, err := f.assetRepo.GetByServiceTag(ctx, "ABC1234")
	require.NoError(t, err)
	assert.Equal(t, domainAsset.VerificationVerified, a.VerificationStatus)
}

func TestReviewReassignReturnsAssetToStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, record := f.launchCampaign(t)

	reviewed, err := f.service.Review(ctx, record.ID, "manager@example.com", &ReviewRequest{
		Action: "reassign",
	})
	require.NoError(t, err)
	assert.Equal(t, "Exception", reviewed.Status)
	require.NotNil(t, reviewed.ExceptionType)
	assert.Equal(t, "NotWithEmployee", *reviewed.ExceptionType)

	a, err := f.assetRepo.GetByServiceTag(ctx, "ABC1234")
	require.NoError(t, err)
	assert.Nil(t, a.AssignedTo)
}

func TestReviewExceptionRequiresType(t *testing.T) {
	f := newFixture(t)

	_, _, record := f.launchCampaign(t)

	_, err := f.service.Review(context.Background(), record.ID, "manager@example.com", &ReviewRequest{
		Action: "exception",
	})
	assert.Error(t, err)

	reviewed, err := f.service.Review(context.Background(), record.ID, "manager@example.com", &ReviewRequest{
		Action:        "exception",
		ExceptionType: utils.StringPtr("MissingDevice"),
	})
	require.NoError(t, err)
	require.NotNil(t, reviewed.ExceptionType)
	assert.Equal(t, "MissingDevice", *reviewed.ExceptionType)
}

func TestSweepOverdue(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	campaignID, _, record := f.launchCampaign(t)

	c, err := f.campaignRepo.GetByID(ctx, campaignID)
	require.NoError(t, err)
	c.Deadline = utils.TimePtr(time.Now().Add(-24 * time.Hour))
	require.NoError(t, f.campaignRepo.Update(ctx, c))

	flipped, err := f.service.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), flipped)

	stored, err := f.recordRepo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, domainVerification.StatusOverdue, stored.Status)

	a, err := f.assetRepo.GetByServiceTag(ctx, "ABC1234")
	require.NoError(t, err)
	assert.Equal(t, domainAsset.VerificationOverdue, a.VerificationStatus)

	c, err = f.campaignRepo.GetByID(ctx, campaignID)
	require.NoError(t, err)
	assert.Equal(t, 1, c.OverdueCount)
	assert.Equal(t, 0, c.PendingCount)

	// Second sweep finds nothing pending
	flipped, err = f.service.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Zero(t, flipped)
}
