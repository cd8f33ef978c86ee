package verification

import (
	"time"

	"github.com/google/uuid"

	domainVerification "asset-verification-portal/internal/domain/verification"
	assetUsecase "asset-verification-portal/internal/usecase/asset"
	peripheralUsecase "asset-verification-portal/internal/usecase/peripheral"
)

// Request DTOs
type SubmitRequest struct {
	AssetID              uuid.UUID `json:"asset_id" validate:"required"`
	RecordedServiceTag   *string   `json:"recorded_service_tag" validate:"omitempty,max=100"`
	UploadedImage        *string   `json:"uploaded_image"`
	PeripheralsConfirmed []string  `json:"peripherals_confirmed" validate:"omitempty,dive,oneof=Charger Headphones Dock Mouse Keyboard USBCCable"`
	PeripheralsNotWithMe []string  `json:"peripherals_not_with_me" validate:"omitempty,dive,oneof=Charger Headphones Dock Mouse Keyboard USBCCable"`
	Comment              *string   `json:"comment" validate:"omitempty,max=2000"`
}

type ExtractTagRequest struct {
	Image string `json:"image" validate:"required"`
}

type ReviewRequest struct {
	Action        string  `json:"action" validate:"required,oneof=accept exception reassign lost"`
	ExceptionType *string `json:"exception_type" validate:"omitempty,oneof=NoResponse Mismatch NotWithEmployee MissingDevice"`
	Comment       *string `json:"comment" validate:"omitempty,max=2000"`
}

// Response DTOs
type RecordResponse struct {
	ID           uuid.UUID `json:"id"`
	CampaignID   uuid.UUID `json:"campaign_id"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	AssetID      uuid.UUID `json:"asset_id"`
	ServiceTag   string    `json:"service_tag"`
	AssetType    string    `json:"asset_type"`
	Status       string    `json:"status"`

	RecordedServiceTag   *string    `json:"recorded_service_tag,omitempty"`
	PeripheralsConfirmed []string   `json:"peripherals_confirmed,omitempty"`
	PeripheralsNotWithMe []string   `json:"peripherals_not_with_me,omitempty"`
	Comment              *string    `json:"comment,omitempty"`
	SubmittedDate        *time.Time `json:"submitted_date,omitempty"`
	ReviewedBy           *string    `json:"reviewed_by,omitempty"`
	ExceptionType        *string    `json:"exception_type,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubmitResponse carries the updated record plus the OCR advisory outcome.
type SubmitResponse struct {
	Record       *RecordResponse `json:"record"`
	TagMatches   bool            `json:"tag_matches"`
	ExtractedTag string          `json:"extracted_tag,omitempty"`
	Message      string          `json:"message"`
}

// CompleteResponse reports when the session was closed.
type CompleteResponse struct {
	SubmittedAt time.Time `json:"submitted_at"`
}

// TokenSessionResponse is what the public verification page renders: the
// employee's campaign context, their assets under verification and their
// assigned peripherals.
type TokenSessionResponse struct {
	EmployeeID   string                                  `json:"employee_id"`
	EmployeeName string                                  `json:"employee_name"`
	CampaignID   uuid.UUID                               `json:"campaign_id"`
	CampaignName string                                  `json:"campaign_name"`
	Deadline     *time.Time                              `json:"deadline,omitempty"`
	ExpiresAt    time.Time                               `json:"expires_at"`
	OCREnabled   bool                                    `json:"ocr_enabled"`
	Records      []*RecordResponse                       `json:"records"`
	Assets       []*assetUsecase.AssetResponse           `json:"assets"`
	Peripherals  []*peripheralUsecase.PeripheralResponse `json:"peripherals"`
}

type StatisticsResponse struct {
	Total     int `json:"total"`
	Verified  int `json:"verified"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
	Exception int `json:"exception"`
}

func ToRecordResponse(r *domainVerification.Record) *RecordResponse {
	resp := &RecordResponse{
		ID:                 r.ID,
		CampaignID:         r.CampaignID,
		EmployeeID:         r.EmployeeID,
		EmployeeName:       r.EmployeeName,
		AssetID:            r.AssetID,
		ServiceTag:         r.ServiceTag,
		AssetType:          string(r.AssetType),
		Status:             string(r.Status),
		RecordedServiceTag: r.RecordedServiceTag,
		Comment:            r.Comment,
		SubmittedDate:      r.SubmittedDate,
		ReviewedBy:         r.ReviewedBy,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	for _, p := range r.PeripheralsConfirmed {
		resp.PeripheralsConfirmed = append(resp.PeripheralsConfirmed, string(p))
	}
	for _, p := range r.PeripheralsNotWithMe {
		resp.PeripheralsNotWithMe = append(resp.PeripheralsNotWithMe, string(p))
	}
	if r.ExceptionType != nil {
		et := string(*r.ExceptionType)
		resp.ExceptionType = &et
	}
	return resp
}

func ToRecordResponses(records []*domainVerification.Record) []*RecordResponse {
	responses := make([]*RecordResponse, len(records))
	for i, r := range records {
		responses[i] = ToRecordResponse(r)
	}
	return responses
}
