package campaign

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"asset-verification-portal/internal/config"
	domainAsset "asset-verification-portal/internal/domain/asset"
	domainCampaign "asset-verification-portal/internal/domain/campaign"
	domainPeripheral "asset-verification-portal/internal/domain/peripheral"
	domainUser "asset-verification-portal/internal/domain/user"
	domainVerification "asset-verification-portal/internal/domain/verification"
	"asset-verification-portal/internal/events"
	"asset-verification-portal/internal/logger"
	appErrors "asset-verification-portal/pkg/errors"
	"asset-verification-portal/pkg/utils"
)

// Mailer sends campaign notification emails.
type Mailer interface {
	SendVerificationEmail(to, employeeName, campaignName, link string, deadline *time.Time) error
	SendReminderEmail(to, employeeName, campaignName, link string, deadline *time.Time) error
}

// Service implements campaign manager use cases
type Service struct {
	campaignRepo   domainCampaign.Repository
	recordRepo     domainVerification.Repository
	tokenRepo      domainVerification.TokenRepository
	userRepo       domainUser.Repository
	assetRepo      domainAsset.Repository
	peripheralRepo domainPeripheral.Repository
	mailer         Mailer
	publisher      *events.Publisher
	cfg            config.VerificationConfig
}

func NewService(
	campaignRepo domainCampaign.Repository,
	recordRepo domainVerification.Repository,
	tokenRepo domainVerification.TokenRepository,
	userRepo domainUser.Repository,
	assetRepo domainAsset.Repository,
	peripheralRepo domainPeripheral.Repository,
	mailer Mailer,
	publisher *events.Publisher,
	cfg config.VerificationConfig,
) *Service {
	return &Service{
		campaignRepo:   campaignRepo,
		recordRepo:     recordRepo,
		tokenRepo:      tokenRepo,
		userRepo:       userRepo,
		assetRepo:      assetRepo,
		peripheralRepo: peripheralRepo,
		mailer:         mailer,
		publisher:      publisher,
		cfg:            cfg,
	}
}

// Create builds the campaign, derives its initial status from the dates and
// generates one Pending verification record per targeted assigned asset.
func (s *Service) Create(ctx context.Context, createdBy string, req *CreateCampaignRequest) (*CampaignResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("Invalid input", err)
	}

	if req.StartDate != nil && req.Deadline != nil && req.Deadline.Before(*req.StartDate) {
		return nil, appErrors.NewValidationError("Deadline must not be before start date", domainCampaign.ErrInvalidDeadline)
	}

	now := time.Now()
	c := &domainCampaign.Campaign{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   createdBy,
		CreatedDate: now,
		StartDate:   req.StartDate,
		Deadline:    req.Deadline,
		Status:      deriveInitialStatus(req.StartDate, req.Deadline, now),
		Filters:     req.Filters,
	}

	targets, err := s.resolveTargets(ctx, &c.Filters)
	if err != nil {
		return nil, err
	}

	c.TotalEmployees = len(targets)
	for _, t := range targets {
		c.TotalAssets += len(t.assets)
		c.TotalPeripherals += t.peripherals
	}
	c.PendingCount = c.TotalAssets

	if err := s.campaignRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	for _, t := range targets {
		for _, a := range t.assets {
			rec := &domainVerification.Record{
				CampaignID:   c.ID,
				EmployeeID:   t.user.EmployeeID,
				EmployeeName: t.user.Name,
				AssetID:      a.ID,
				ServiceTag:   a.ServiceTag,
				AssetType:    a.AssetType,
				Status:       domainVerification.StatusPending,
			}
			if err := s.recordRepo.Create(ctx, rec); err != nil {
				return nil, err
			}
			if err := s.assetRepo.UpdateVerification(ctx, a.ID, domainAsset.VerificationPending); err != nil {
				return nil, err
			}
		}
	}

	logger.Info("Campaign created",
		zap.String("campaign_id", c.ID.String()),
		zap.String("name", c.Name),
		zap.String("status", string(c.Status)),
		zap.Int("total_employees", c.TotalEmployees),
		zap.Int("total_assets", c.TotalAssets),
		zap.String("event", "campaign_created"),
	)

	s.publisher.Publish(c.ID, events.EventCampaignCreated, map[string]interface{}{
		"name":            c.Name,
		"total_employees": c.TotalEmployees,
		"total_assets":    c.TotalAssets,
	})

	return ToCampaignResponse(c), nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*CampaignResponse, error) {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainCampaign.ErrCampaignNotFound) {
			return nil, appErrors.NewNotFoundError("Campaign not found")
		}
		return nil, err
	}

	return ToCampaignResponse(c), nil
}

func (s *Service) List(ctx context.Context) ([]*CampaignResponse, error) {
	campaigns, err := s.campaignRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return ToCampaignResponses(campaigns), nil
}

// ListByStatus filters on the stored status, not the effective one: an Active
// campaign past its deadline still lists as Active here.
func (s *Service) ListByStatus(ctx context.Context, rawStatus string) ([]*CampaignResponse, error) {
	status := domainCampaign.CampaignStatus(rawStatus)
	switch status {
	case domainCampaign.StatusDraft, domainCampaign.StatusActive, domainCampaign.StatusCompleted:
	default:
		return nil, appErrors.NewValidationError(fmt.Sprintf("Unknown campaign status %q", rawStatus), nil)
	}

	campaigns, err := s.campaignRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, err
	}

	return ToCampaignResponses(campaigns), nil
}

func (s *Service) ListByCreator(ctx context.Context, employeeID string) ([]*CampaignResponse, error) {
	campaigns, err := s.campaignRepo.ListByCreatedBy(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	return ToCampaignResponses(campaigns), nil
}

// ListTokens exposes a campaign's verification tokens to managers, e.g. to
// hand a link to an employee whose email bounced.
func (s *Service) ListTokens(ctx context.Context, id uuid.UUID) ([]*CampaignTokenResponse, error) {
	if _, err := s.campaignRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domainCampaign.ErrCampaignNotFound) {
			return nil, appErrors.NewNotFoundError("Campaign not found")
		}
		return nil, err
	}

	tokens, err := s.tokenRepo.ListByCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	responses := make([]*CampaignTokenResponse, len(tokens))
	for i, token := range tokens {
		responses[i] = &CampaignTokenResponse{
			EmployeeID:    token.EmployeeID,
			EmployeeName:  token.EmployeeName,
			EmployeeEmail: token.EmployeeEmail,
			Link:          s.verificationLink(token.Token),
			AssetCount:    len(token.AssetIDs),
			ExpiresAt:     token.ExpiresAt,
			Used:          token.Used,
			UsedAt:        token.UsedAt,
		}
	}

	return responses, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateCampaignRequest) (*CampaignResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("Invalid input", err)
	}

	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainCampaign.ErrCampaignNotFound) {
			return nil, appErrors.NewNotFoundError("Campaign not found")
		}
		return nil, err
	}

	if c.Status != domainCampaign.StatusDraft {
		return nil, appErrors.NewConflictError("Only draft campaigns can be edited")
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.StartDate != nil {
		c.StartDate = req.StartDate
	}
	if req.Deadline != nil {
		c.Deadline = req.Deadline
	}
	if c.StartDate != nil && c.Deadline != nil && c.Deadline.Before(*c.StartDate) {
		return nil, appErrors.NewValidationError("Deadline must not be before start date", domainCampaign.ErrInvalidDeadline)
	}

	if err := s.campaignRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	return ToCampaignResponse(c), nil
}

// Launch activates a draft campaign and mails every targeted employee their
// personal single-use verification link. Employees without any asset under
// verification get no token and no email. Campaigns already launched or
// completed conflict; relaunching would mint a second live token per employee.
func (s *Service) Launch(ctx context.Context, id uuid.UUID) (*LaunchResponse, error) {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainCampaign.ErrCampaignNotFound) {
			return nil, appErrors.NewNotFoundError("Campaign not found")
		}
		return nil, err
	}

	if c.Status != domainCampaign.StatusDraft {
		return nil, appErrors.NewConflictError("Only draft campaigns can be launched")
	}

	records, err := s.recordRepo.ListByCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	assetsByEmployee := make(map[string][]uuid.UUID)
	for _, rec := range records {
		assetsByEmployee[rec.EmployeeID] = append(assetsByEmployee[rec.EmployeeID], rec.AssetID)
	}
	if len(assetsByEmployee) == 0 {
		return nil, appErrors.NewValidationError("No employees with assets match this campaign", domainCampaign.ErrNoTargetEmployees)
	}

	employeeIDs := make([]string, 0, len(assetsByEmployee))
	for employeeID := range assetsByEmployee {
		employeeIDs = append(employeeIDs, employeeID)
	}
	users, err := s.userRepo.ListByEmployeeIDs(ctx, employeeIDs)
	if err != nil {
		return nil, err
	}

	expiresAt := s.tokenExpiry(c.Deadline, time.Now())

	resp := &LaunchResponse{TotalEmployees: len(users)}
	for _, u := range users {
		token := &domainVerification.Token{
			Token:         uuid.NewString(),
			EmployeeID:    u.EmployeeID,
			EmployeeName:  u.Name,
			EmployeeEmail: u.Email,
			CampaignID:    c.ID,
			CampaignName:  c.Name,
			AssetIDs:      assetsByEmployee[u.EmployeeID],
			ExpiresAt:     expiresAt,
		}
		if err := s.tokenRepo.Create(ctx, token); err != nil {
			return nil, err
		}

		link := s.verificationLink(token.Token)
		if err := s.mailer.SendVerificationEmail(u.Email, u.Name, c.Name, link, c.Deadline); err != nil {
			logger.Warn("Failed to send verification email",
				zap.String("campaign_id", c.ID.String()),
				zap.String("employee_id", u.EmployeeID),
				zap.Error(err),
			)
		} else {
			resp.EmailsSent++
		}

		resp.VerificationLinks = append(resp.VerificationLinks, VerificationLink{
			EmployeeID:    u.EmployeeID,
			EmployeeName:  u.Name,
			EmployeeEmail: u.Email,
			Link:          link,
		})
	}

	if err := s.campaignRepo.UpdateStatus(ctx, c.ID, domainCampaign.StatusDraft, domainCampaign.StatusActive); err != nil {
		return nil, err
	}
	c.Status = domainCampaign.StatusActive

	logger.Info("Campaign launched",
		zap.String("campaign_id", c.ID.String()),
		zap.Int("emails_sent", resp.EmailsSent),
		zap.Int("total_employees", resp.TotalEmployees),
		zap.String("event", "campaign_launched"),
	)

	s.publisher.Publish(c.ID, events.EventCampaignLaunched, map[string]interface{}{
		"emails_sent":     resp.EmailsSent,
		"total_employees": resp.TotalEmployees,
	})

	resp.Campaign = ToCampaignResponse(c)
	return resp, nil
}

// SendReminders mails everyone whose verification is still open. When the
// original tokens are gone (expired campaign relaunch, manual cleanup) but
// pending records remain, fresh tokens are minted for those employees.
func (s *Service) SendReminders(ctx context.Context, id uuid.UUID) (*ReminderResponse, error) {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainCampaign.ErrCampaignNotFound) {
			return nil, appErrors.NewNotFoundError("Campaign not found")
		}
		return nil, err
	}

	liveTokens, err := s.tokenRepo.ListPendingByCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	pendingRecords, err := s.recordRepo.ListPendingByCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	stillPending := make(map[string]bool, len(pendingRecords))
	for _, rec := range pendingRecords {
		stillPending[rec.EmployeeID] = true
	}

	// Employees whose records are all decided have nothing left to do, even
	// if they never closed their session; skip their tokens.
	var tokens []*domainVerification.Token
	for _, token := range liveTokens {
		if stillPending[token.EmployeeID] {
			tokens = append(tokens, token)
		}
	}

	if len(tokens) == 0 {
		tokens, err = s.mintTokensForPending(ctx, c)
		if err != nil {
			return nil, err
		}
	}

	resp := &ReminderResponse{TotalPending: len(tokens)}
	for _, token := range tokens {
		link := s.verificationLink(token.Token)
		if err := s.mailer.SendReminderEmail(token.EmployeeEmail, token.EmployeeName, c.Name, link, c.Deadline); err != nil {
			logger.Warn("Failed to send reminder email",
				zap.String("campaign_id", c.ID.String()),
				zap.String("employee_id", token.EmployeeID),
				zap.Error(err),
			)
			continue
		}
		resp.RemindersSent++
	}

	logger.Info("Campaign reminders sent",
		zap.String("campaign_id", c.ID.String()),
		zap.Int("reminders_sent", resp.RemindersSent),
		zap.Int("total_pending", resp.TotalPending),
		zap.String("event", "campaign_reminders_sent"),
	)

	return resp, nil
}

// RecomputeCounts re-derives the campaign's per-status counters from its
// records. Counters are denormalized; the records are the source of truth.
func (s *Service) RecomputeCounts(ctx context.Context, id uuid.UUID) error {
	counts, err := s.recordRepo.CountByStatusForCampaign(ctx, id)
	if err != nil {
		return err
	}

	return s.campaignRepo.UpdateCounts(ctx, id, domainCampaign.Counts{
		Verified:  counts[domainVerification.StatusVerified],
		Pending:   counts[domainVerification.StatusPending],
		Overdue:   counts[domainVerification.StatusOverdue],
		Exception: counts[domainVerification.StatusException],
	})
}

// Complete explicitly closes an active campaign.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*CampaignResponse, error) {
	c, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainCampaign.ErrCampaignNotFound) {
			return nil, appErrors.NewNotFoundError("Campaign not found")
		}
		return nil, err
	}

	if c.Status == domainCampaign.StatusCompleted {
		return nil, appErrors.NewConflictError("Campaign is already completed")
	}

	if err := s.campaignRepo.UpdateStatus(ctx, id, c.Status, domainCampaign.StatusCompleted); err != nil {
		if errors.Is(err, domainCampaign.ErrInvalidTransition) {
			return nil, appErrors.NewConflictError("Campaign status changed concurrently")
		}
		return nil, err
	}
	c.Status = domainCampaign.StatusCompleted

	logger.Info("Campaign completed",
		zap.String("campaign_id", id.String()),
		zap.String("event", "campaign_completed"),
	)

	s.publisher.Publish(id, events.EventCampaignCompleted, nil)

	return ToCampaignResponse(c), nil
}

// Delete removes the campaign with its records and tokens.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.campaignRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domainCampaign.ErrCampaignNotFound) {
			return appErrors.NewNotFoundError("Campaign not found")
		}
		return err
	}

	logger.Info("Campaign deleted",
		zap.String("campaign_id", id.String()),
		zap.String("event", "campaign_deleted"),
	)

	return nil
}

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	stats, err := s.campaignRepo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}

	return &StatisticsResponse{
		Total:     stats.Total,
		Active:    stats.Active,
		Draft:     stats.Draft,
		Completed: stats.Completed,
	}, nil
}

type target struct {
	user        *domainUser.User
	assets      []*domainAsset.HardwareAsset
	peripherals int
}

// resolveTargets expands the campaign filters into concrete employees and
// their matching assigned assets. Explicit employee IDs win over team
// filters; an empty filter targets every active employee.
func (s *Service) resolveTargets(ctx context.Context, filters *domainCampaign.Filters) ([]*target, error) {
	var (
		users []*domainUser.User
		err   error
	)

	switch {
	case len(filters.EmployeeIDs) > 0:
		users, err = s.userRepo.ListByEmployeeIDs(ctx, filters.EmployeeIDs)
	case len(filters.Teams) > 0:
		users, err = s.userRepo.ListByDepartments(ctx, filters.Teams)
	default:
		users, err = s.userRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	typeFilter := make(map[domainAsset.AssetType]bool, len(filters.AssetTypes))
	for _, raw := range filters.AssetTypes {
		t, ok := domainAsset.ParseType(raw)
		if !ok {
			return nil, appErrors.NewValidationError(fmt.Sprintf("Unknown asset type %q in filters", raw), nil)
		}
		typeFilter[t] = true
	}

	var targets []*target
	for _, u := range users {
		if !u.IsActive {
			continue
		}

		assets, err := s.assetRepo.ListByAssignedTo(ctx, u.EmployeeID)
		if err != nil {
			return nil, err
		}

		var matching []*domainAsset.HardwareAsset
		for _, a := range assets {
			if len(typeFilter) > 0 && !typeFilter[a.AssetType] {
				continue
			}
			matching = append(matching, a)
		}
		if len(matching) == 0 {
			continue
		}

		peripherals, err := s.peripheralRepo.ListByAssignedTo(ctx, u.EmployeeID)
		if err != nil {
			return nil, err
		}

		targets = append(targets, &target{
			user:        u,
			assets:      matching,
			peripherals: len(peripherals),
		})
	}

	return targets, nil
}

// mintTokensForPending creates fresh tokens for employees who still have
// pending records but no live token.
func (s *Service) mintTokensForPending(ctx context.Context, c *domainCampaign.Campaign) ([]*domainVerification.Token, error) {
	pending, err := s.recordRepo.ListPendingByCampaign(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		return nil, nil
	}

	assetsByEmployee := make(map[string][]uuid.UUID)
	for _, rec := range pending {
		assetsByEmployee[rec.EmployeeID] = append(assetsByEmployee[rec.EmployeeID], rec.AssetID)
	}

	employeeIDs := make([]string, 0, len(assetsByEmployee))
	for employeeID := range assetsByEmployee {
		employeeIDs = append(employeeIDs, employeeID)
	}
	users, err := s.userRepo.ListByEmployeeIDs(ctx, employeeIDs)
	if err != nil {
		return nil, err
	}

	expiresAt := s.tokenExpiry(c.Deadline, time.Now())

	var tokens []*domainVerification.Token
	for _, u := range users {
		token := &domainVerification.Token{
			Token:         uuid.NewString(),
			EmployeeID:    u.EmployeeID,
			EmployeeName:  u.Name,
			EmployeeEmail: u.Email,
			CampaignID:    c.ID,
			CampaignName:  c.Name,
			AssetIDs:      assetsByEmployee[u.EmployeeID],
			ExpiresAt:     expiresAt,
		}
		if err := s.tokenRepo.Create(ctx, token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}

	return tokens, nil
}

// tokenExpiry gives employees until the campaign deadline plus a grace
// buffer; campaigns without a deadline fall back to a fixed window.
func (s *Service) tokenExpiry(deadline *time.Time, now time.Time) time.Time {
	if deadline != nil && deadline.After(now) {
		days := int(deadline.Sub(now).Hours()/24) + s.cfg.DeadlineBufferDay
		return now.AddDate(0, 0, days)
	}
	return now.AddDate(0, 0, s.cfg.TokenExpiryDays)
}

func (s *Service) verificationLink(token string) string {
	return fmt.Sprintf("%s/verify/%s", s.cfg.FrontendURL, token)
}

// EstimateTotals guesses campaign scale from the employee count alone.
//
// Deprecated: campaigns enumerate their targets exactly at creation. Kept for
// clients that preview scale before any filters have been chosen.
func EstimateTotals(employeeCount int) (totalAssets, totalPeripherals int) {
	return employeeCount + employeeCount/2, employeeCount * 2
}

// deriveInitialStatus derives the stored status from the campaign dates:
// a deadline already behind us means Completed, a start date already reached
// means Active, anything else starts as Draft.
func deriveInitialStatus(startDate, deadline *time.Time, now time.Time) domainCampaign.CampaignStatus {
	if deadline != nil && deadline.Before(now) {
		return domainCampaign.StatusCompleted
	}
	if startDate != nil && !startDate.After(now) {
		return domainCampaign.StatusActive
	}
	return domainCampaign.StatusDraft
}
