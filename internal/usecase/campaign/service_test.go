package campaign

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"asset-verification-portal/internal/config"
	domainAsset "asset-verification-portal/internal/domain/asset"
	domainCampaign "asset-verification-portal/internal/domain/campaign"
	domainUser "asset-verification-portal/internal/domain/user"
	domainVerification "asset-verification-portal/internal/domain/verification"
	"asset-verification-portal/internal/events"
	"asset-verification-portal/internal/infrastructure/database/postgres"
	"asset-verification-portal/internal/infrastructure/database/postgres/models"
	"asset-verification-portal/internal/logger"
	"asset-verification-portal/pkg/utils"
)

// captureMailer records outgoing mail instead of sending it.
type captureMailer struct {
	verifications []string
	reminders     []string
	failSend      bool
}

func (m *captureMailer) SendVerificationEmail(to, employeeName, campaignName, link string, deadline *time.Time) error {
	if m.failSend {
		return errors.New("smtp unavailable")
	}
	m.verifications = append(m.verifications, link)
	return nil
}

func (m *captureMailer) SendReminderEmail(to, employeeName, campaignName, link string, deadline *time.Time) error {
	if m.failSend {
		return errors.New("smtp unavailable")
	}
	m.reminders = append(m.reminders, link)
	return nil
}

type fixture struct {
	service        *Service
	mailer         *captureMailer
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
	f := &fixture{
		mailer:         &captureMailer{},
		userRepo:       postgres.NewUserRepository(db),
		assetRepo:      postgres.NewAssetRepository(db),
		campaignRepo:   postgres.NewCampaignRepository(db),
		recordRepo:     postgres.NewVerificationRepository(db),
		tokenRepo:      postgres.NewVerificationTokenRepository(db),
		peripheralRepo: postgres.NewPeripheralRepository(db),
	}

	f.service = NewService(
		f.campaignRepo,
		f.recordRepo,
		f.tokenRepo,
		f.userRepo,
		f.assetRepo,
		f.peripheralRepo,
		f.mailer,
		events.NewPublisher(&config.Config{}),
		config.VerificationConfig{
			FrontendURL:       "http://localhost:5173",
			TokenExpiryDays:   30,
			DeadlineBufferDay: 7,
		},
	)

	return f
}

func (f *fixture) seedEmployee(t *testing.T, employeeID, department string, active bool) *domainUser.User {
	t.Helper()
	u := &domainUser.User{
		Username:       strings.ToLower(employeeID),
		Email:          strings.ToLower(employeeID) + "@example.com",
		PasswordHashed: "$2a$10$notarealhash",
		Name:           "Employee " + employeeID,
		Department:     department,
		EmployeeID:     employeeID,
		Role:           "employee",
		IsActive:       active,
	}
	require.NoError(t, f.userRepo.Create(context.Background(), u))
	return u
}

func (f *fixture) seedAssignedAsset(t *testing.T, serviceTag string, aType domainAsset.AssetType, employeeID string) *domainAsset.HardwareAsset {
	t.Helper()
	a := &domainAsset.HardwareAsset{
		ServiceTag: serviceTag,
		AssetType:  aType,
		Model:      "Latitude 5440",
		Team:       "Engineering",
	}
	require.NoError(t, f.assetRepo.Create(context.Background(), a))
	require.NoError(t, f.assetRepo.Assign(context.Background(), a.ID, employeeID, "Employee "+employeeID))
	return a
}

func TestCreateCampaignTargetsByTeam(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedEmployee(t, "EMP001", "Engineering", true)
	f.seedEmployee(t, "EMP002", "Finance", true)
	f.seedEmployee(t, "EMP003", "Engineering", false) // inactive, skipped
	f.seedAssignedAsset(t, "ABC1234", domainAsset.TypeLaptop, "EMP001")
	f.seedAssignedAsset(t, "DEF5678", domainAsset.TypeMonitor, "EMP001")
	f.seedAssignedAsset(t, "GHI9012", domainAsset.TypeLaptop, "EMP002")

	resp, err := f.service.Create(ctx, "EMP000", &CreateCampaignRequest{
		Name:     "Q3 Laptop Audit",
		Deadline: utils.TimePtr(time.Now().Add(7 * 24 * time.Hour)),
		Filters: domainCampaign.Filters{
			Teams:      []string{"Engineering"},
			AssetTypes: []string{"Laptop"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Draft", resp.Status)
	assert.Equal(t, 1, resp.TotalEmployees)
	assert.Equal(t, 1, resp.TotalAssets)
	assert.Equal(t, 1, resp.PendingCount)

	records, err := f.recordRepo.ListByCampaign(ctx, resp.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "EMP001", records[0].EmployeeID)
	assert.Equal(t, "ABC1234", records[0].ServiceTag)

	// Targeted assets flip to pending verification
	a, err := f.assetRepo.GetByServiceTag(ctx, "ABC1234")
	require.NoError(t, err)
	assert.Equal(t, domainAsset.VerificationPending, a.VerificationStatus)

	// Monitor was filtered out, untouched
	a, err = f.assetRepo.GetByServiceTag(ctx, "DEF5678")
	require.NoError(t, err)
	assert.Equal(t, domainAsset.VerificationNotStarted, a.VerificationStatus)
}

func TestCreateCampaignUnknownAssetType(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), "EMP000", &CreateCampaignRequest{
		Name: "Bad Filters",
		Filters: domainCampaign.Filters{
			AssetTypes: []string{"Typewriter"},
		},
	})
	assert.Error(t, err)
}

func TestCreateCampaignDeadlineBeforeStart(t *testing.T) {
	f := newFixture(t)

	start := time.Now().Add(48 * time.Hour)
	_, err := f.service.Create(context.Background(), "EMP000", &CreateCampaignRequest{
		Name:      "Backwards Dates",
		StartDate: &start,
		Deadline:  utils.TimePtr(start.Add(-24 * time.Hour)),
	})
	assert.Error(t, err)
}

func TestLaunchCampaign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedEmployee(t, "EMP001", "Engineering", true)
	f.seedEmployee(t, "EMP002", "Engineering", true)
	f.seedAssignedAsset(t, "ABC1234", domainAsset.TypeLaptop, "EMP001")
	f.seedAssignedAsset(t, "DEF5678", domainAsset.TypeLaptop, "EMP002")

	created, err := f.service.Create(ctx, "EMP000", &CreateCampaignRequest{
		Name:     "Q3 Laptop Audit",
		Deadline: utils.TimePtr(time.Now().Add(7 * 24 * time.Hour)),
	})
	require.NoError(t, err)

	launch, err := f.service.Launch(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, launch.TotalEmployees)
	assert.Equal(t, 2, launch.EmailsSent)
	assert.Equal(t, "Active", launch.Campaign.Status)
	require.Len(t, launch.VerificationLinks, 2)
	for _, link := range launch.VerificationLinks {
		assert.Contains(t, link.Link, "http://localhost:5173/verify/")
	}
	assert.Len(t, f.mailer.verifications, 2)

	tokens, err := f.tokenRepo.ListByCampaign(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, tokens, 2)
	for _, token := range tokens {
		assert.True(t, token.IsValid(time.Now()))
		assert.Len(t, token.AssetIDs, 1)
	}
}

func TestLaunchWithoutTargets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, "EMP000", &CreateCampaignRequest{
		Name: "Empty Campaign",
	})
	require.NoError(t, err)

	_, err = f.service.Launch(ctx, created.ID)
	assert.Error(t, err)
}

func TestLaunchEmailFailureStillMintsTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedEmployee(t, "EMP001", "Engineering", true)
	f.seedAssignedAsset(t, "ABC1234", domainAsset.TypeLaptop, "EMP001")

	created, err := f.service.Create(ctx, "EMP000", &CreateCampaignRequest{Name: "Q3 Audit"})
	require.NoError(t, err)

	f.mailer.failSend = true

	launch, err := f.service.Launch(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, launch.EmailsSent)
	assert.Len(t, launch.VerificationLinks, 1)

	tokens, err := f.tokenRepo.ListByCampaign(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, tokens, 1)
}

func TestLaunchTwiceConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedEmployee(t, "EMP001", "Engineering", true)
	f.seedAssignedAsset(t, "ABC1234", domainAsset.TypeLaptop, "EMP001")

	created, err := f.service.Create(ctx, "EMP000", &CreateCampaignRequest{Name: "Q3 Audit"})
	require.NoError(t, err)

	_, err = f.service.Launch(ctx, created.ID)
	require.NoError(t, err)

	// An active campaign cannot be relaunched: that would re-mail everyone
	// and mint a second live token per employee.
	_, err = f.service.Launch(ctx, created.ID)
	assert.Error(t, err)

	tokens, err := f.tokenRepo.ListByCampaign(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, tokens, 1)
	assert.Len(t, f.mailer.verifications, 1)
}

func TestSendReminders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedEmployee(t, "EMP001", "Engineering", true)
	f.seedAssignedAsset(t, "ABC1234", domainAsset.TypeLaptop, "EMP001")

	created, err := f.service.Create(ctx, "EMP000", &CreateCampaignRequest{
		Name:     "Q3 Audit",
		Deadline: utils.TimePtr(time.Now().Add(7 * 24 * time.Hour)),
	})
	require.NoError(t, err)

	_, err = f.service.Launch(ctx, created.ID)
	require.NoError(t, err)

	reminders, err := f.service.SendReminders(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reminders.RemindersSent)
	assert.Equal(t, 1, reminders.TotalPending)
	assert.Len(t, f.mailer.reminders, 1)
}

func TestSendRemindersSkipsDecidedRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedEmployee(t, "EMP001", "Engineering", true)
	f.seedAssignedAsset(t, "ABC1234", domainAsset.TypeLaptop, "EMP001")

	created, err := f.service.Create(ctx, "EMP000", &CreateCampaignRequest{Name: "Q3 Audit"})
	require.NoError(t, err)
	_, err = f.service.Launch(ctx, created.ID)
	require.NoError(t, err)

	// The employee submitted every record but never closed the session;
	// their token is still live, yet there is nothing left to remind about.
	records, err := f.recordRepo.ListByCampaign(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	rec := records[0]
	rec.Status = domainVerification.StatusVerified
	rec.SubmittedDate = utils.TimePtr(time.Now())
	require.NoError(t, f.recordRepo.Submit(ctx, rec))

	reminders, err := f.service.SendReminders(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reminders.RemindersSent)
	assert.Equal(t, 0, reminders.TotalPending)
	assert.Empty(t, f.mailer.reminders)
}

func TestSendRemindersNothingPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.Create(ctx, "EMP000", &CreateCampaignRequest{
		Name: "Empty Campaign",
	})
	require.NoError(t, err)

	reminders, err := f.service.SendReminders(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reminders.RemindersSent)
	assert.Equal(t, 0, reminders.TotalPending)
	assert.Empty(t, f.mailer.reminders)
}

func TestSendRemindersMintsFreshTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedEmployee(t, "EMP001", "Engineering", true)
	f.seedAssignedAsset(t, "ABC1234", domainAsset.TypeLaptop, "EMP001")

	created, err := f.service.Create(ctx, "EMP000", &CreateCampaignRequest{Name: "Q3 Audit"})
	require.NoError(t, err)
	_, err = f.service.Launch(ctx, created.ID)
	require.NoError(t, err)

	// Simulate expired or cleaned-up tokens; pending records remain
	require.NoError(t, f.tokenRepo.DeleteByCampaign(ctx, created.ID))

	reminders, err := f.service.SendReminders(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reminders.RemindersSent)

	tokens, err := f.tokenRepo.ListPendingByCampaign(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, tokens, 1)
}

func TestCompleteCampaign(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedEmployee(t, "EMP001", "Engineering", true)
	f.seedAssignedAsset(t, "ABC1234", domainAsset.TypeLaptop, "EMP001")

	created, err := f.service.Create(ctx, "EMP000", &CreateCampaignRequest{Name: "Q3 Audit"})
	require.NoError(t, err)

	completed, err := f.service.Complete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Completed", completed.Status)

	_, err = f.service.Complete(ctx, created.ID)
	assert.Error(t, err)

	_, err = f.service.Launch(ctx, created.ID)
	assert.Error(t, err)
}

func TestUpdateOnlyDraft(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedEmployee(t, "EMP001", "Engineering", true)
	f.seedAssignedAsset(t, "ABC1234", domainAsset.TypeLaptop, "EMP001")

	created, err := f.service.Create(ctx, "EMP000", &CreateCampaignRequest{Name: "Q3 Audit"})
	require.NoError(t, err)

	updated, err := f.service.Update(ctx, created.ID, &UpdateCampaignRequest{
		Name: utils.StringPtr("Q3 Hardware Audit"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Q3 Hardware Audit", updated.Name)

	_, err = f.service.Launch(ctx, created.ID)
	require.NoError(t, err)

	_, err = f.service.Update(ctx, created.ID, &UpdateCampaignRequest{
		Name: utils.StringPtr("Too Late"),
	})
	assert.Error(t, err)
}
