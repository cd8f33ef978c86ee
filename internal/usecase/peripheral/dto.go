package peripheral

import (
	"time"

	"github.com/google/uuid"

	domainPeripheral "asset-verification-portal/internal/domain/peripheral"
)

// Request DTOs
type CreatePeripheralRequest struct {
	Type         string     `json:"type" validate:"required,oneof=Charger Headphones Dock Mouse Keyboard USBCCable"`
	SerialNumber *string    `json:"serial_number" validate:"omitempty,max=100"`
	PurchaseDate *time.Time `json:"purchase_date"`
	Location     string     `json:"location" validate:"omitempty,max=255"`
	Quantity     int        `json:"quantity" validate:"omitempty,min=1,max=1000"`
}

type AssignPeripheralRequest struct {
	Type         string  `json:"type" validate:"required,oneof=Charger Headphones Dock Mouse Keyboard USBCCable"`
	EmployeeID   string  `json:"employee_id" validate:"required,max=50"`
	EmployeeName string  `json:"employee_name" validate:"required,max=255"`
	SerialNumber *string `json:"serial_number" validate:"omitempty,max=100"`
}

type VerifyPeripheralsRequest struct {
	PeripheralIDs []uuid.UUID `json:"peripheral_ids" validate:"required,min=1"`
}

// Response DTOs
type PeripheralResponse struct {
	ID             uuid.UUID  `json:"id"`
	Type           string     `json:"type"`
	SerialNumber   *string    `json:"serial_number,omitempty"`
	Status         string     `json:"status"`
	AssignedTo     *string    `json:"assigned_to,omitempty"`
	AssignedToName *string    `json:"assigned_to_name,omitempty"`
	Verified       bool       `json:"verified"`
	AssignedDate   *time.Time `json:"assigned_date,omitempty"`
	VerifiedDate   *time.Time `json:"verified_date,omitempty"`
	PurchaseDate   *time.Time `json:"purchase_date,omitempty"`
	Location       string     `json:"location"`
	CreatedAt      time.Time  `json:"created_at"`
}

type StatisticsResponse struct {
	TotalUnits      int              `json:"total_units"`
	InstockUnits    int              `json:"instock_units"`
	AssignedUnits   int              `json:"assigned_units"`
	VerifiedUnits   int              `json:"verified_units"`
	UnverifiedUnits int              `json:"unverified_units"`
	StockByType     map[string]int64 `json:"stock_by_type"`
}

func ToPeripheralResponse(p *domainPeripheral.Peripheral) *PeripheralResponse {
	return &PeripheralResponse{
		ID:             p.ID,
		Type:           string(p.Type),
		SerialNumber:   p.SerialNumber,
		Status:         string(p.Status),
		AssignedTo:     p.AssignedTo,
		AssignedToName: p.AssignedToName,
		Verified:       p.Verified,
		AssignedDate:   p.AssignedDate,
		VerifiedDate:   p.VerifiedDate,
		PurchaseDate:   p.PurchaseDate,
		Location:       p.Location,
		CreatedAt:      p.CreatedAt,
	}
}

func ToPeripheralResponses(peripherals []*domainPeripheral.Peripheral) []*PeripheralResponse {
	responses := make([]*PeripheralResponse, len(peripherals))
	for i, p := range peripherals {
		responses[i] = ToPeripheralResponse(p)
	}
	return responses
}
