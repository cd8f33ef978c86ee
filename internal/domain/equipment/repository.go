package equipment

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for equipment count operations
type Repository interface {
	Create(ctx context.Context, e *EquipmentCount) error
	GetByID(ctx context.Context, id uuid.UUID) (*EquipmentCount, error)
	Update(ctx context.Context, e *EquipmentCount) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*EquipmentCount, error)
	ListByCategory(ctx context.Context, category Category) ([]*EquipmentCount, error)
	ListByUploadedBy(ctx context.Context, employeeID string) ([]*EquipmentCount, error)
	ListByLocation(ctx context.Context, location string) ([]*EquipmentCount, error)
	GetStatistics(ctx context.Context) (*Statistics, error)
}
