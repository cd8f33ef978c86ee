package report

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/google/uuid"

	domainAsset "asset-verification-portal/internal/domain/asset"
	domainCampaign "asset-verification-portal/internal/domain/campaign"
	domainEquipment "asset-verification-portal/internal/domain/equipment"
	domainPeripheral "asset-verification-portal/internal/domain/peripheral"
	domainVerification "asset-verification-portal/internal/domain/verification"
	appErrors "asset-verification-portal/pkg/errors"
)

// Service implements reporting use cases
type Service struct {
	assetRepo      domainAsset.Repository
	peripheralRepo domainPeripheral.Repository
	campaignRepo   domainCampaign.Repository
	recordRepo     domainVerification.Repository
	equipmentRepo  domainEquipment.Repository
}

func NewService(
	assetRepo domainAsset.Repository,
	peripheralRepo domainPeripheral.Repository,
	campaignRepo domainCampaign.Repository,
	recordRepo domainVerification.Repository,
	equipmentRepo domainEquipment.Repository,
) *Service {
	return &Service{
		assetRepo:      assetRepo,
		peripheralRepo: peripheralRepo,
		campaignRepo:   campaignRepo,
		recordRepo:     recordRepo,
		equipmentRepo:  equipmentRepo,
	}
}

// GetDashboard assembles the cross-module statistics the dashboard polls.
func (s *Service) GetDashboard(ctx context.Context) (*DashboardResponse, error) {
	assetStats, err := s.assetRepo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}
	peripheralStats, err := s.peripheralRepo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}
	campaignStats, err := s.campaignRepo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}
	verificationStats, err := s.recordRepo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}
	equipmentStats, err := s.equipmentRepo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}

	assets := AssetSummary{
		Total:       assetStats.TotalAssets,
		Instock:     assetStats.InstockAssets,
		Assigned:    assetStats.AssignedAssets,
		TotalValue:  assetStats.TotalValue,
		ByType:      make(map[string]int),
		ValueByType: make(map[string]float64),
	}
	for _, ts := range assetStats.ByType {
		assets.ByType[ts.AssetType] = ts.AssetCount
		assets.ValueByType[ts.AssetType] = ts.TotalValue
	}

	verification := VerificationSummary{
		Total:     verificationStats.Total,
		Verified:  verificationStats.Verified,
		Pending:   verificationStats.Pending,
		Overdue:   verificationStats.Overdue,
		Exception: verificationStats.Exception,
	}
	if verification.Total > 0 {
		verification.ComplianceRate = float64(verification.Verified) / float64(verification.Total) * 100
	}

	return &DashboardResponse{
		Assets: assets,
		Peripherals: PeripheralSummary{
			Total:       peripheralStats.TotalUnits,
			Instock:     peripheralStats.InstockUnits,
			Assigned:    peripheralStats.AssignedUnits,
			StockByType: peripheralStats.StockByType,
		},
		Campaigns: CampaignSummary{
			Total:     campaignStats.Total,
			Active:    campaignStats.Active,
			Draft:     campaignStats.Draft,
			Completed: campaignStats.Completed,
		},
		Verification: verification,
		Equipment: EquipmentSummary{
			TotalQuantity: equipmentStats.TotalQuantity,
			TotalValue:    equipmentStats.TotalValue,
		},
		GeneratedAt: time.Now(),
	}, nil
}

// GetCampaignProgress reports one campaign's completion state from its
// records, not from the denormalized counters.
func (s *Service) GetCampaignProgress(ctx context.Context, campaignID uuid.UUID) (*CampaignProgressResponse, error) {
	c, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, domainCampaign.ErrCampaignNotFound) {
			return nil, appErrors.NewNotFoundError("Campaign not found")
		}
		return nil, err
	}

	counts, err := s.recordRepo.CountByStatusForCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	resp := &CampaignProgressResponse{
		CampaignID: c.ID,
		Name:       c.Name,
		Status:     string(c.EffectiveStatus(time.Now())),
		Deadline:   c.Deadline,
		Verified:   counts[domainVerification.StatusVerified],
		Pending:    counts[domainVerification.StatusPending],
		Overdue:    counts[domainVerification.StatusOverdue],
		Exception:  counts[domainVerification.StatusException],
	}
	resp.TotalRecords = resp.Verified + resp.Pending + resp.Overdue + resp.Exception
	if resp.TotalRecords > 0 {
		resp.CompletionRate = float64(resp.Verified) / float64(resp.TotalRecords) * 100
	}

	return resp, nil
}

// GetVerificationTrend builds the verified-vs-pending series from record
// submission dates. Days without submissions do not appear.
func (s *Service) GetVerificationTrend(ctx context.Context) ([]TrendPoint, error) {
	records, err := s.recordRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	type dayCounts struct {
		submitted int
		verified  int
	}
	perDay := make(map[string]*dayCounts)
	for _, rec := range records {
		if rec.SubmittedDate == nil {
			continue
		}
		day := rec.SubmittedDate.Format("2006-01-02")
		counts := perDay[day]
		if counts == nil {
			counts = &dayCounts{}
			perDay[day] = counts
		}
		counts.submitted++
		if rec.Status == domainVerification.StatusVerified {
			counts.verified++
		}
	}

	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Strings(days)

	var (
		points              = make([]TrendPoint, 0, len(days))
		cumulativeSubmitted int
		cumulativeVerified  int
	)
	for _, day := range days {
		counts := perDay[day]
		cumulativeSubmitted += counts.submitted
		cumulativeVerified += counts.verified
		points = append(points, TrendPoint{
			Date:      day,
			Submitted: counts.submitted,
			Verified:  cumulativeVerified,
			Pending:   len(records) - cumulativeSubmitted,
		})
	}

	return points, nil
}

// ExportPeripheralsCSV flattens the peripheral stock into CSV.
func (s *Service) ExportPeripheralsCSV(ctx context.Context, w io.Writer) error {
	peripherals, err := s.peripheralRepo.List(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"Type", "Serial Number", "Status", "Assigned To", "Assigned To Name", "Verified", "Location"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range peripherals {
		row := []string{
			string(p.Type),
			stringOrEmpty(p.SerialNumber),
			string(p.Status),
			stringOrEmpty(p.AssignedTo),
			stringOrEmpty(p.AssignedToName),
			fmt.Sprintf("%t", p.Verified),
			p.Location,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}

// ExportEquipmentCSV flattens the aggregate equipment counts into CSV.
func (s *Service) ExportEquipmentCSV(ctx context.Context, w io.Writer) error {
	counts, err := s.equipmentRepo.List(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"Category", "Item Name", "Quantity", "Value", "Location", "Uploaded By", "Status", "Verification Status"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, e := range counts {
		row := []string{
			string(e.Category),
			e.ItemName,
			fmt.Sprintf("%d", e.Quantity),
			fmt.Sprintf("%.2f", e.Value),
			e.Location,
			e.UploadedBy,
			string(e.Status),
			string(e.VerificationStatus),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}

// ExportCampaignCSV flattens a campaign's verification records into CSV for
// audit evidence.
func (s *Service) ExportCampaignCSV(ctx context.Context, campaignID uuid.UUID, w io.Writer) error {
	c, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, domainCampaign.ErrCampaignNotFound) {
			return appErrors.NewNotFoundError("Campaign not found")
		}
		return err
	}

	records, err := s.recordRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{
		"Campaign", "Employee ID", "Employee Name", "Service Tag", "Asset Type",
		"Status", "Exception Type", "Recorded Tag", "Submitted", "Reviewed By", "Comment",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{
			c.Name,
			rec.EmployeeID,
			rec.EmployeeName,
			rec.ServiceTag,
			string(rec.AssetType),
			string(rec.Status),
			exceptionOrEmpty(rec.ExceptionType),
			stringOrEmpty(rec.RecordedServiceTag),
			timeOrEmpty(rec.SubmittedDate),
			stringOrEmpty(rec.ReviewedBy),
			stringOrEmpty(rec.Comment),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	return writer.Error()
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func exceptionOrEmpty(et *domainVerification.ExceptionType) string {
	if et == nil {
		return ""
	}
	return string(*et)
}

func timeOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
