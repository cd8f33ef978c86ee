package equipment

import (
	"time"

	"github.com/google/uuid"

	domainEquipment "asset-verification-portal/internal/domain/equipment"
)

// Request DTOs
type CreateEquipmentRequest struct {
	Category string  `json:"category" validate:"required,oneof=network servers audioVideo furniture other"`
	ItemName string  `json:"item_name" validate:"required,min=2,max=255"`
	Quantity int     `json:"quantity" validate:"required,min=1"`
	Value    float64 `json:"value" validate:"omitempty,min=0"`
	Location string  `json:"location" validate:"omitempty,max=255"`
}

type UpdateEquipmentRequest struct {
	ItemName           *string  `json:"item_name" validate:"omitempty,min=2,max=255"`
	Quantity           *int     `json:"quantity" validate:"omitempty,min=0"`
	Value              *float64 `json:"value" validate:"omitempty,min=0"`
	Location           *string  `json:"location" validate:"omitempty,max=255"`
	Status             *string  `json:"status" validate:"omitempty,oneof=Active Archived"`
	VerificationStatus *string  `json:"verification_status" validate:"omitempty,oneof=Verified Pending Overdue Exception"`
}

type SetVerificationStatusRequest struct {
	VerificationStatus string `json:"verification_status" validate:"required,oneof=Verified Pending Overdue Exception"`
}

// Response DTOs
type EquipmentResponse struct {
	ID                 uuid.UUID `json:"id"`
	Category           string    `json:"category"`
	ItemName           string    `json:"item_name"`
	Quantity           int       `json:"quantity"`
	Value              float64   `json:"value"`
	Location           string    `json:"location"`
	UploadedBy         string    `json:"uploaded_by"`
	UploadedDate       time.Time `json:"uploaded_date"`
	Status             string    `json:"status"`
	VerificationStatus string    `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type StatisticsResponse struct {
	QuantityByCategory map[string]int     `json:"quantity_by_category"`
	ValueByCategory    map[string]float64 `json:"value_by_category"`
	TotalQuantity      int                `json:"total_quantity"`
	TotalValue         float64            `json:"total_value"`
}

func ToEquipmentResponse(e *domainEquipment.EquipmentCount) *EquipmentResponse {
	return &EquipmentResponse{
		ID:                 e.ID,
		Category:           string(e.Category),
		ItemName:           e.ItemName,
		Quantity:           e.Quantity,
		Value:              e.Value,
		Location:           e.Location,
		UploadedBy:         e.UploadedBy,
		UploadedDate:       e.UploadedDate,
		Status:             string(e.Status),
		VerificationStatus: string(e.VerificationStatus),
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func ToEquipmentResponses(counts []*domainEquipment.EquipmentCount) []*EquipmentResponse {
	responses := make([]*EquipmentResponse, len(counts))
	for i, e := range counts {
		responses[i] = ToEquipmentResponse(e)
	}
	return responses
}
