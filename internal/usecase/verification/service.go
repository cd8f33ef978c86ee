package verification

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainAsset "asset-verification-portal/internal/domain/asset"
	domainCampaign "asset-verification-portal/internal/domain/campaign"
	domainPeripheral "asset-verification-portal/internal/domain/peripheral"
	domainVerification "asset-verification-portal/internal/domain/verification"
	"asset-verification-portal/internal/events"
	"asset-verification-portal/internal/logger"
	"asset-verification-portal/internal/ocr"
	assetUsecase "asset-verification-portal/internal/usecase/asset"
	peripheralUsecase "asset-verification-portal/internal/usecase/peripheral"
	appErrors "asset-verification-portal/pkg/errors"
	"asset-verification-portal/pkg/utils"
)

// OCREngine reads text out of verification photos. Advisory only.
type OCREngine interface {
	Available() bool
	ExtractText(ctx context.Context, image []byte) (string, error)
}

// Service implements the verification workflow use cases
type Service struct {
	recordRepo     domainVerification.Repository
	tokenRepo      domainVerification.TokenRepository
	campaignRepo   domainCampaign.Repository
	assetRepo      domainAsset.Repository
	peripheralRepo domainPeripheral.Repository
	engine         OCREngine
	publisher      *events.Publisher
}

func NewService(
	recordRepo domainVerification.Repository,
	tokenRepo domainVerification.TokenRepository,
	campaignRepo domainCampaign.Repository,
	assetRepo domainAsset.Repository,
	peripheralRepo domainPeripheral.Repository,
	engine OCREngine,
	publisher *events.Publisher,
) *Service {
	return &Service{
		recordRepo:     recordRepo,
		tokenRepo:      tokenRepo,
		campaignRepo:   campaignRepo,
		assetRepo:      assetRepo,
		peripheralRepo: peripheralRepo,
		engine:         engine,
		publisher:      publisher,
	}
}

// GetByToken resolves a verification link into the session the public page
// renders. Used or expired tokens are rejected before anything is exposed.
func (s *Service) GetByToken(ctx context.Context, tokenString string) (*TokenSessionResponse, error) {
	token, err := s.tokenRepo.GetByToken(ctx, tokenString)
	if err != nil {
		if errors.Is(err, domainVerification.ErrTokenNotFound) {
			return nil, appErrors.NewNotFoundError("Verification link not found")
		}
		return nil, err
	}

	if !token.IsValid(time.Now()) {
		if token.Used {
			return nil, appErrors.ErrTokenUsed
		}
		return nil, appErrors.ErrTokenExpired
	}

	c, err := s.campaignRepo.GetByID(ctx, token.CampaignID)
	if err != nil {
		return nil, err
	}

	records, err := s.recordRepo.ListByCampaign(ctx, token.CampaignID)
	if err != nil {
		return nil, err
	}

	covered := make(map[uuid.UUID]bool, len(token.AssetIDs))
	for _, id := range token.AssetIDs {
		covered[id] = true
	}

	session := &TokenSessionResponse{
		EmployeeID:   token.EmployeeID,
		EmployeeName: token.EmployeeName,
		CampaignID:   token.CampaignID,
		CampaignName: token.CampaignName,
		Deadline:     c.Deadline,
		ExpiresAt:    token.ExpiresAt,
		OCREnabled:   s.engine != nil && s.engine.Available(),
	}

	for _, rec := range records {
		if rec.EmployeeID != token.EmployeeID || !covered[rec.AssetID] {
			continue
		}
		session.Records = append(session.Records, ToRecordResponse(rec))

		a, err := s.assetRepo.GetByID(ctx, rec.AssetID)
		if err != nil {
			if errors.Is(err, domainAsset.ErrAssetNotFound) {
				continue
			}
			return nil, err
		}
		session.Assets = append(session.Assets, assetUsecase.ToAssetResponse(a))
	}

	peripherals, err := s.peripheralRepo.ListByAssignedTo(ctx, token.EmployeeID)
	if err != nil {
		return nil, err
	}
	session.Peripherals = peripheralUsecase.ToPeripheralResponses(peripherals)

	return session, nil
}

// Submit records the employee's evidence for one asset. The service tag is
// checked first against OCR output when a readable photo is attached, then
// against the typed value; a mismatch files the record as an Exception
// instead of failing the request. Re-submitting a decided record conflicts.
func (s *Service) Submit(ctx context.Context, tokenString string, req *SubmitRequest) (*SubmitResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("Invalid input", err)
	}

	token, err := s.tokenRepo.GetByToken(ctx, tokenString)
	if err != nil {
		if errors.Is(err, domainVerification.ErrTokenNotFound) {
			return nil, appErrors.NewNotFoundError("Verification link not found")
		}
		return nil, err
	}
	if !token.IsValid(time.Now()) {
		if token.Used {
			return nil, appErrors.ErrTokenUsed
		}
		return nil, appErrors.ErrTokenExpired
	}

	if !tokenCovers(token, req.AssetID) {
		return nil, appErrors.NewAppError(appErrors.CodeAuth, "Asset is not covered by this verification link", domainVerification.ErrAssetNotCovered)
	}

	rec, err := s.recordRepo.GetByCampaignAndAsset(ctx, token.CampaignID, req.AssetID)
	if err != nil {
		if errors.Is(err, domainVerification.ErrRecordNotFound) {
			return nil, appErrors.NewNotFoundError("Verification record not found")
		}
		return nil, err
	}

	if rec.EmployeeID != token.EmployeeID {
		return nil, appErrors.NewAppError(appErrors.CodeAuth, "Asset is not covered by this verification link", domainVerification.ErrAssetNotCovered)
	}
	if rec.Status != domainVerification.StatusPending {
		return nil, appErrors.NewConflictError("Verification already submitted for this asset")
	}

	tagResult := s.checkServiceTag(ctx, rec.ServiceTag, req)

	now := time.Now()
	rec.RecordedServiceTag = req.RecordedServiceTag
	if tagResult.ExtractedTag != "" {
		rec.RecordedServiceTag = &tagResult.ExtractedTag
	}
	rec.UploadedImage = req.UploadedImage
	rec.PeripheralsConfirmed = toPeripheralTypes(req.PeripheralsConfirmed)
	rec.PeripheralsNotWithMe = toPeripheralTypes(req.PeripheralsNotWithMe)
	rec.Comment = req.Comment
	rec.SubmittedDate = &now

	switch {
	case !tagResult.Matches:
		rec.Status = domainVerification.StatusException
		mismatch := domainVerification.ExceptionMismatch
		rec.ExceptionType = &mismatch
	case len(req.PeripheralsNotWithMe) > 0:
		rec.Status = domainVerification.StatusException
		notWith := domainVerification.ExceptionNotWithEmployee
		rec.ExceptionType = &notWith
	default:
		rec.Status = domainVerification.StatusVerified
		rec.ExceptionType = nil
	}

	if err := s.recordRepo.Submit(ctx, rec); err != nil {
		if errors.Is(err, domainVerification.ErrAlreadySubmitted) {
			return nil, appErrors.NewConflictError("Verification already submitted for this asset")
		}
		return nil, err
	}

	assetStatus := domainAsset.VerificationVerified
	if rec.Status == domainVerification.StatusException {
		assetStatus = domainAsset.VerificationException
	}
	if err := s.assetRepo.UpdateVerification(ctx, rec.AssetID, assetStatus); err != nil {
		logger.Warn("Failed to update asset verification status",
			zap.String("asset_id", rec.AssetID.String()),
			zap.Error(err),
		)
	}

	if len(req.PeripheralsConfirmed) > 0 {
		if err := s.markPeripheralsVerified(ctx, token.EmployeeID, req.PeripheralsConfirmed); err != nil {
			logger.Warn("Failed to mark peripherals verified",
				zap.String("employee_id", token.EmployeeID),
				zap.Error(err),
			)
		}
	}

	if err := s.recomputeCounts(ctx, rec.CampaignID); err != nil {
		logger.Warn("Failed to recompute campaign counts",
			zap.String("campaign_id", rec.CampaignID.String()),
			zap.Error(err),
		)
	}

	logger.Info("Verification submitted",
		zap.String("record_id", rec.ID.String()),
		zap.String("campaign_id", rec.CampaignID.String()),
		zap.String("status", string(rec.Status)),
		zap.String("event", "verification_submitted"),
	)

	s.publisher.Publish(rec.CampaignID, events.EventRecordSubmitted, map[string]interface{}{
		"record_id": rec.ID.String(),
		"status":    string(rec.Status),
	})

	return &SubmitResponse{
		Record:       ToRecordResponse(rec),
		TagMatches:   tagResult.Matches,
		ExtractedTag: tagResult.ExtractedTag,
		Message:      tagResult.Message,
	}, nil
}

// Complete retires the token once every asset it covers has a decided record.
// Exactly one of two racing completions wins.
func (s *Service) Complete(ctx context.Context, tokenString string) (*CompleteResponse, error) {
	token, err := s.tokenRepo.GetByToken(ctx, tokenString)
	if err != nil {
		if errors.Is(err, domainVerification.ErrTokenNotFound) {
			return nil, appErrors.NewNotFoundError("Verification link not found")
		}
		return nil, err
	}
	if token.Used {
		return nil, appErrors.ErrTokenUsed
	}

	for _, assetID := range token.AssetIDs {
		rec, err := s.recordRepo.GetByCampaignAndAsset(ctx, token.CampaignID, assetID)
		if err != nil {
			if errors.Is(err, domainVerification.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		if rec.Status == domainVerification.StatusPending {
			return nil, appErrors.NewConflictError("Some assets are still awaiting submission")
		}
	}

	usedAt := time.Now()
	if err := s.tokenRepo.MarkUsed(ctx, tokenString, usedAt); err != nil {
		if errors.Is(err, domainVerification.ErrTokenExpired) {
			return nil, appErrors.ErrTokenUsed
		}
		return nil, err
	}

	logger.Info("Verification session completed",
		zap.String("event", "verification_completed"),
	)

	return &CompleteResponse{SubmittedAt: usedAt}, nil
}

// Review lets an asset manager settle a submitted or stuck record. Accepting
// verifies the asset; exceptions propagate to the asset, and an asset the
// employee no longer holds is returned to stock.
func (s *Service) Review(ctx context.Context, recordID uuid.UUID, reviewedBy string, req *ReviewRequest) (*RecordResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("Invalid input", err)
	}

	rec, err := s.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, domainVerification.ErrRecordNotFound) {
			return nil, appErrors.NewNotFoundError("Verification record not found")
		}
		return nil, err
	}

	var (
		newStatus     domainVerification.RecordStatus
		exceptionType *domainVerification.ExceptionType
		assetStatus   domainAsset.VerificationStatus
		unassign      bool
	)

	switch req.Action {
	case "accept":
		newStatus = domainVerification.StatusVerified
		assetStatus = domainAsset.VerificationVerified
	case "exception":
		if req.ExceptionType == nil {
			return nil, appErrors.NewValidationError("Exception type is required for exception reviews", nil)
		}
		et := domainVerification.ExceptionType(*req.ExceptionType)
		newStatus = domainVerification.StatusException
		exceptionType = &et
		assetStatus = domainAsset.VerificationException
	case "reassign":
		et := domainVerification.ExceptionNotWithEmployee
		newStatus = domainVerification.StatusException
		exceptionType = &et
		assetStatus = domainAsset.VerificationException
		unassign = true
	case "lost":
		et := domainVerification.ExceptionMissingDevice
		newStatus = domainVerification.StatusException
		exceptionType = &et
		assetStatus = domainAsset.VerificationException
		unassign = true
	}

	if err := s.recordRepo.Review(ctx, recordID, reviewedBy, newStatus, exceptionType); err != nil {
		return nil, err
	}

	if err := s.assetRepo.UpdateVerification(ctx, rec.AssetID, assetStatus); err != nil {
		logger.Warn("Failed to update asset verification status",
			zap.String("asset_id", rec.AssetID.String()),
			zap.Error(err),
		)
	}
	if unassign {
		if err := s.assetRepo.Unassign(ctx, rec.AssetID); err != nil && !errors.Is(err, domainAsset.ErrAssetNotAssigned) {
			logger.Warn("Failed to return asset to stock during review",
				zap.String("asset_id", rec.AssetID.String()),
				zap.Error(err),
			)
		}
	}

	if err := s.recomputeCounts(ctx, rec.CampaignID); err != nil {
		logger.Warn("Failed to recompute campaign counts",
			zap.String("campaign_id", rec.CampaignID.String()),
			zap.Error(err),
		)
	}

	logger.Info("Verification record reviewed",
		zap.String("record_id", recordID.String()),
		zap.String("action", req.Action),
		zap.String("reviewed_by", reviewedBy),
		zap.String("event", "verification_reviewed"),
	)

	s.publisher.Publish(rec.CampaignID, events.EventRecordReviewed, map[string]interface{}{
		"record_id": recordID.String(),
		"action":    req.Action,
	})

	updated, err := s.recordRepo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return ToRecordResponse(updated), nil
}

// ExtractTag runs OCR over a standalone image so the frontend can prefill the
// tag field before submission.
func (s *Service) ExtractTag(ctx context.Context, encodedImage string) (string, error) {
	if s.engine == nil || !s.engine.Available() {
		return "", appErrors.NewValidationError("OCR is not available", nil)
	}

	image, err := decodeImage(encodedImage)
	if err != nil {
		return "", appErrors.NewValidationError("Invalid image payload", err)
	}

	text, err := s.engine.ExtractText(ctx, image)
	if err != nil {
		return "", err
	}

	return ocr.ExtractServiceTag(text), nil
}

func (s *Service) GetRecord(ctx context.Context, id uuid.UUID) (*RecordResponse, error) {
	rec, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainVerification.ErrRecordNotFound) {
			return nil, appErrors.NewNotFoundError("Verification record not found")
		}
		return nil, err
	}

	return ToRecordResponse(rec), nil
}

func (s *Service) List(ctx context.Context) ([]*RecordResponse, error) {
	records, err := s.recordRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return ToRecordResponses(records), nil
}

func (s *Service) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*RecordResponse, error) {
	records, err := s.recordRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	return ToRecordResponses(records), nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]*RecordResponse, error) {
	records, err := s.recordRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	return ToRecordResponses(records), nil
}

// ListExceptions returns every record a reviewer still has to settle.
func (s *Service) ListExceptions(ctx context.Context) ([]*RecordResponse, error) {
	records, err := s.recordRepo.ListByStatus(ctx, domainVerification.StatusException)
	if err != nil {
		return nil, err
	}

	return ToRecordResponses(records), nil
}

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	stats, err := s.recordRepo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}

	return &StatisticsResponse{
		Total:     stats.Total,
		Verified:  stats.Verified,
		Pending:   stats.Pending,
		Overdue:   stats.Overdue,
		Exception: stats.Exception,
	}, nil
}

// SweepOverdue flips pending records of campaigns past their deadline to
// Overdue, propagates the status to the affected assets and refreshes the
// campaign counters. Returns the number of records flipped.
func (s *Service) SweepOverdue(ctx context.Context) (int64, error) {
	campaigns, err := s.campaignRepo.ListWithDeadlineBefore(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	var total int64
	for _, c := range campaigns {
		pending, err := s.recordRepo.ListPendingByCampaign(ctx, c.ID)
		if err != nil {
			return total, err
		}
		if len(pending) == 0 {
			continue
		}

		flipped, err := s.recordRepo.MarkOverdue(ctx, c.ID)
		if err != nil {
			return total, err
		}
		total += flipped

		for _, rec := range pending {
			if err := s.assetRepo.UpdateVerification(ctx, rec.AssetID, domainAsset.VerificationOverdue); err != nil {
				logger.Warn("Failed to mark asset overdue",
					zap.String("asset_id", rec.AssetID.String()),
					zap.Error(err),
				)
			}
		}

		if err := s.recomputeCounts(ctx, c.ID); err != nil {
			return total, err
		}

		logger.Info("Campaign records marked overdue",
			zap.String("campaign_id", c.ID.String()),
			zap.Int64("records", flipped),
			zap.String("event", "records_overdue"),
		)

		s.publisher.Publish(c.ID, events.EventRecordsOverdue, map[string]interface{}{
			"records": flipped,
		})
	}

	return total, nil
}

func (s *Service) recomputeCounts(ctx context.Context, campaignID uuid.UUID) error {
	counts, err := s.recordRepo.CountByStatusForCampaign(ctx, campaignID)
	if err != nil {
		return err
	}

	return s.campaignRepo.UpdateCounts(ctx, campaignID, domainCampaign.Counts{
		Verified:  counts[domainVerification.StatusVerified],
		Pending:   counts[domainVerification.StatusPending],
		Overdue:   counts[domainVerification.StatusOverdue],
		Exception: counts[domainVerification.StatusException],
	})
}

// checkServiceTag decides whether the evidence matches the registered tag.
// OCR runs only when a photo is attached and the engine is installed; a tag
// read from the photo beats the typed value. No evidence at all fails closed.
func (s *Service) checkServiceTag(ctx context.Context, expectedTag string, req *SubmitRequest) ocr.Result {
	if req.UploadedImage != nil && s.engine != nil && s.engine.Available() {
		if image, err := decodeImage(*req.UploadedImage); err == nil {
			text, err := s.engine.ExtractText(ctx, image)
			if err == nil {
				if result := ocr.VerifyTag(expectedTag, text); result.ExtractedTag != "" {
					return result
				}
			} else {
				logger.Warn("OCR extraction failed", zap.Error(err))
			}
		}
	}

	if req.RecordedServiceTag != nil && *req.RecordedServiceTag != "" {
		if ocr.NormalizeTag(*req.RecordedServiceTag) == ocr.NormalizeTag(expectedTag) {
			return ocr.Result{Matches: true, ExtractedTag: *req.RecordedServiceTag, Message: "service tag matches"}
		}
		return ocr.Result{Matches: false, ExtractedTag: *req.RecordedServiceTag, Message: "service tag does not match the registered asset"}
	}

	return ocr.Result{Matches: false, Message: "no service tag provided"}
}

func (s *Service) markPeripheralsVerified(ctx context.Context, employeeID string, confirmedTypes []string) error {
	assigned, err := s.peripheralRepo.ListByAssignedTo(ctx, employeeID)
	if err != nil {
		return err
	}

	confirmed := make(map[domainPeripheral.PeripheralType]bool, len(confirmedTypes))
	for _, raw := range confirmedTypes {
		confirmed[domainPeripheral.PeripheralType(raw)] = true
	}

	var ids []uuid.UUID
	for _, p := range assigned {
		if confirmed[p.Type] {
			ids = append(ids, p.ID)
		}
	}

	return s.peripheralRepo.SetVerified(ctx, ids)
}

func tokenCovers(token *domainVerification.Token, assetID uuid.UUID) bool {
	for _, id := range token.AssetIDs {
		if id == assetID {
			return true
		}
	}
	return false
}

func toPeripheralTypes(raw []string) []domainPeripheral.PeripheralType {
	types := make([]domainPeripheral.PeripheralType, 0, len(raw))
	for _, r := range raw {
		types = append(types, domainPeripheral.PeripheralType(r))
	}
	return types
}

// decodeImage accepts either a bare base64 payload or a data URL.
func decodeImage(encoded string) ([]byte, error) {
	if idx := strings.Index(encoded, ","); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}
	return base64.StdEncoding.DecodeString(encoded)
}
