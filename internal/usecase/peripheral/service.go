package peripheral

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainPeripheral "asset-verification-portal/internal/domain/peripheral"
	"asset-verification-portal/internal/logger"
	appErrors "asset-verification-portal/pkg/errors"
	"asset-verification-portal/pkg/utils"
)

// Service implements peripheral stock use cases
type Service struct {
	peripheralRepo domainPeripheral.Repository
}

func NewService(peripheralRepo domainPeripheral.Repository) *Service {
	return &Service{peripheralRepo: peripheralRepo}
}

// Create adds units to stock. Quantity above one creates that many identical
// unserialized units; serialized units are always single.
func (s *Service) Create(ctx context.Context, req *CreatePeripheralRequest) ([]*PeripheralResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("Invalid input", err)
	}

	quantity := req.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	if req.SerialNumber != nil && quantity > 1 {
		return nil, appErrors.NewValidationError("Serialized peripherals must be created one at a time", nil)
	}

	responses := make([]*PeripheralResponse, 0, quantity)
	for i := 0; i < quantity; i++ {
		p := &domainPeripheral.Peripheral{
			Type:         domainPeripheral.PeripheralType(req.Type),
			SerialNumber: req.SerialNumber,
			Status:       domainPeripheral.StatusInstock,
			PurchaseDate: req.PurchaseDate,
			Location:     req.Location,
		}
		if err := s.peripheralRepo.Create(ctx, p); err != nil {
			return nil, err
		}
		responses = append(responses, ToPeripheralResponse(p))
	}

	logger.Info("Peripherals added to stock",
		zap.String("type", req.Type),
		zap.Int("quantity", quantity),
		zap.String("event", "peripherals_created"),
	)

	return responses, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*PeripheralResponse, error) {
	p, err := s.peripheralRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainPeripheral.ErrPeripheralNotFound) {
			return nil, appErrors.NewNotFoundError("Peripheral not found")
		}
		return nil, err
	}

	return ToPeripheralResponse(p), nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.peripheralRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domainPeripheral.ErrPeripheralNotFound) {
			return appErrors.NewNotFoundError("Peripheral not found")
		}
		return err
	}

	return nil
}

// Assign claims one instock unit of the requested type for the employee.
// Exhausted stock surfaces as a conflict so the client can tell "out of
// stock" apart from a bad request. A serial number starts tracking a unit the
// portal has not seen before, pre-assigned to the employee.
func (s *Service) Assign(ctx context.Context, req *AssignPeripheralRequest) (*PeripheralResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.NewValidationError("Invalid input", err)
	}

	if req.SerialNumber != nil && *req.SerialNumber != "" {
		now := time.Now()
		p := &domainPeripheral.Peripheral{
			Type:           domainPeripheral.PeripheralType(req.Type),
			SerialNumber:   req.SerialNumber,
			Status:         domainPeripheral.StatusAssigned,
			AssignedTo:     &req.EmployeeID,
			AssignedToName: &req.EmployeeName,
			AssignedDate:   &now,
		}
		if err := s.peripheralRepo.Create(ctx, p); err != nil {
			return nil, err
		}

		logger.Info("Serialized peripheral tracked and assigned",
			zap.String("peripheral_id", p.ID.String()),
			zap.String("type", req.Type),
			zap.String("employee_id", req.EmployeeID),
			zap.String("event", "peripheral_assigned"),
		)

		return ToPeripheralResponse(p), nil
	}

	p, err := s.peripheralRepo.AssignFromStock(ctx,
		domainPeripheral.PeripheralType(req.Type), req.EmployeeID, req.EmployeeName)
	if err != nil {
		if errors.Is(err, domainPeripheral.ErrOutOfStock) {
			return nil, appErrors.NewConflictError(fmt.Sprintf("No %s units in stock", req.Type))
		}
		return nil, err
	}

	logger.Info("Peripheral assigned",
		zap.String("peripheral_id", p.ID.String()),
		zap.String("type", req.Type),
		zap.String("employee_id", req.EmployeeID),
		zap.String("event", "peripheral_assigned"),
	)

	return ToPeripheralResponse(p), nil
}

func (s *Service) ReturnToStock(ctx context.Context, id uuid.UUID) (*PeripheralResponse, error) {
	if _, err := s.peripheralRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domainPeripheral.ErrPeripheralNotFound) {
			return nil, appErrors.NewNotFoundError("Peripheral not found")
		}
		return nil, err
	}

	if err := s.peripheralRepo.ReturnToStock(ctx, id); err != nil {
		if errors.Is(err, domainPeripheral.ErrNotAssigned) {
			return nil, appErrors.NewConflictError("Peripheral is not assigned")
		}
		return nil, err
	}

	logger.Info("Peripheral returned to stock",
		zap.String("peripheral_id", id.String()),
		zap.String("event", "peripheral_returned"),
	)

	return s.GetByID(ctx, id)
}

// Verify marks the given units as sighted during a verification.
func (s *Service) Verify(ctx context.Context, req *VerifyPeripheralsRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.NewValidationError("Invalid input", err)
	}

	return s.peripheralRepo.SetVerified(ctx, req.PeripheralIDs)
}

func (s *Service) List(ctx context.Context) ([]*PeripheralResponse, error) {
	peripherals, err := s.peripheralRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return ToPeripheralResponses(peripherals), nil
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]*PeripheralResponse, error) {
	peripherals, err := s.peripheralRepo.ListByAssignedTo(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	return ToPeripheralResponses(peripherals), nil
}

func (s *Service) ListByType(ctx context.Context, rawType string) ([]*PeripheralResponse, error) {
	pType, ok := domainPeripheral.ParseType(rawType)
	if !ok {
		return nil, appErrors.NewValidationError(fmt.Sprintf("Unknown peripheral type %q", rawType), nil)
	}

	peripherals, err := s.peripheralRepo.ListByType(ctx, pType)
	if err != nil {
		return nil, err
	}

	return ToPeripheralResponses(peripherals), nil
}

// StockFor reports how many units of the type are still in stock.
func (s *Service) StockFor(ctx context.Context, rawType string) (int64, error) {
	pType, ok := domainPeripheral.ParseType(rawType)
	if !ok {
		return 0, appErrors.NewValidationError(fmt.Sprintf("Unknown peripheral type %q", rawType), nil)
	}

	return s.peripheralRepo.CountInstockByType(ctx, pType)
}

func (s *Service) GetStatistics(ctx context.Context) (*StatisticsResponse, error) {
	stats, err := s.peripheralRepo.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}

	return &StatisticsResponse{
		TotalUnits:      stats.TotalUnits,
		InstockUnits:    stats.InstockUnits,
		AssignedUnits:   stats.AssignedUnits,
		VerifiedUnits:   stats.VerifiedUnits,
		UnverifiedUnits: stats.UnverifiedUnits,
		StockByType:     stats.StockByType,
	}, nil
}
