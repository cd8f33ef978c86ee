package equipment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainEquipment "asset-verification-portal/internal/domain/equipment"
	"asset-verification-portal/internal/logger"
	appErrors "asset-verification-portal/pkg/errors"
	"asset-verification-portal/pkg/utils"
)

// Service implements equipment count use cases
type Service struct {
	equipmentRepo domainEquipment.Repository
}

func NewService(equipmentRepo domainEquipment.Repository) *Service {
	return &Service{equipmentRepo: equipmentRepo}
}

func (s *Service) Create(ctx context.Context, uploadedBy string, req *CreateEquipmentRequest) (*EquipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("Invalid input", err)
	}

	e := &domainEquipment.EquipmentCount{
		Category:           domainEquipment.Category(req.Category),
		ItemName:           req.ItemName,
		Quantity:           req.Quantity,
		Value:              req.Value,
		Location:           req.Location,
		UploadedBy:         uploadedBy,
		Status:             domainEquipment.StatusActive,
		VerificationStatus: domainEquipment.VerificationPending,
	}

	if err := s.equipmentRepo.Create(ctx, e); err != nil {
		return nil, err
	}

	logger.Info("Equipment count created",
		zap.String("equipment_id", e.ID.String()),
		zap.String("category", req.Category),
		zap.String("item_name", req.ItemName),
		zap.String("event", "equipment_created"),
	)

	return ToEquipmentResponse(e), nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*EquipmentResponse, error) {
	e, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainEquipment.ErrEquipmentNotFound) {
			return nil, appErrors.NewNotFoundError("Equipment count not found")
		}
		return nil, err
	}

	return ToEquipmentResponse(e), nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *UpdateEquipmentRequest) (*EquipmentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("Invalid input", err)
	}

	e, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainEquipment.ErrEquipmentNotFound) {
			return nil, appErrors.NewNotFoundError("Equipment count not found")
		}
		return nil, err
	}

	if req.ItemName != nil {
		e.ItemName = *req.ItemName
	}
	if req.Quantity != nil {
		e.Quantity = *req.Quantity
	}
	if req.Value != nil {
		e.Value = *req.Value
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.Status != nil {
		e.Status = domainEquipment.Status(*req.Status)
	}
	if req.VerificationStatus != nil {
		e.VerificationStatus = domainEquipment.VerificationStatus(*req.VerificationStatus)
	}

	if err := s.equipmentRepo.Update(ctx, e); err != nil {
		return nil, err
	}

	return ToEquipmentResponse(e), nil
}

// Archive retires a count from active inventory without losing its history.
func (s *Service) Archive(ctx context.Context, id uuid.UUID) (*EquipmentResponse, error) {
	e, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainEquipment.ErrEquipmentNotFound) {
			return nil, appErrors.NewNotFoundError("Equipment count not found")
		}
		return nil, err
	}

	if e.Status == domainEquipment.StatusArchived {
		return nil, appErrors.NewConflictError("Equipment count is already archived")
	}
	e.Status = domainEquipment.StatusArchived

	if err := s.equipmentRepo.Update(ctx, e); err != nil {
		return nil, err
	}

	logger.Info("Equipment count archived",
		zap.String("equipment_id", id.String()),
		zap.String("event", "equipment_archived"),
	)

	return ToEquipmentResponse(e), nil
}

// SetVerificationStatus updates the verification state of one count.
func (s *Service) SetVerificationStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*EquipmentResponse, error) {
	status := domainEquipment.VerificationStatus(rawStatus)
	switch status {
	case domainEquipment.VerificationVerified, domainEquipment.VerificationPending,
		domainEquipment.VerificationOverdue, domainEquipment.VerificationException:
	default:
		return nil, appErrors.NewValidationError("Unknown verification status", nil)
	}

	e, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainEquipment.ErrEquipmentNotFound) {
			return nil, appErrors.NewNotFoundError("Equipment count not found")
		}
		return nil, err
	}

	e.VerificationStatus = status
	if err := s.equipmentRepo.Update(ctx, e); err != nil {
		return nil, err
	}

	return ToEquipmentResponse(e), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.equipmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domainEquipment.ErrEquipmentNotFound) {
			return appErrors.NewNotFoundError("Equipment count not found")
		}
		return err
	}

	return nil
}

func (s *Service) List(ctx context.Context) ([]*EquipmentResponse, error) {
	counts, err := s.equipmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return ToEquipmentResponses(counts), nil
}

func (s *Service) ListByCategory(ctx context.Context, rawCategory string) ([]*EquipmentResponse, error) {
	category := domainEquipment.Category(rawCategory)
	valid := false
	for _, c := range domainEquipment.ValidCategories() {
		if c == category {
			valid = true
			break
		}
	}
	if !valid {
		return nil, appErrors.NewValidationError("Unknown equipment category", domainEquipment.ErrInvalidCategory)
	}

	counts, err := s.equipmentRepo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	return ToEquipmentResponses(counts), nil
}

func (s *Service) ListByUploader(ctx context.Context, employeeID string) ([]*EquipmentResponse, error) {
	counts, err := s.equipmentRepo.ListByUploadedBy(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	return ToEquipmentResponses(counts), nil
}

func (s *Service) ListByLocation(ctx context.Context, location string) ([]*EquipmentResponse, error) {
	counts, err := s.equipmentRepo.ListByLocation(ctx, location)
	if err != nil {
		return nil, err
	}

	return ToEquipmentResponses(counts), nil
}

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	stats, err := s.equipmentRepo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}

	return &StatisticsResponse{
		QuantityByCategory: stats.QuantityByCategory,
		ValueByCategory:    stats.ValueByCategory,
		TotalQuantity:      stats.TotalQuantity,
		TotalValue:         stats.TotalValue,
	}, nil
}
