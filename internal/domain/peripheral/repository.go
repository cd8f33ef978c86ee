package peripheral

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for peripheral stock operations.
// AssignFromStock must be safe under concurrent callers: with N units of a
// type in stock, at most N concurrent assignments may succeed.
type Repository interface {
	Create(ctx context.Context, p *Peripheral) error
	GetByID(ctx context.Context, id uuid.UUID) (*Peripheral, error)
	Update(ctx context.Context, p *Peripheral) error
	Delete(ctx context.Context, id uuid.UUID) error
	AssignFromStock(ctx context.Context, pType PeripheralType, employeeID, employeeName string) (*Peripheral, error)
	ReturnToStock(ctx context.Context, id uuid.UUID) error
	SetVerified(ctx context.Context, ids []uuid.UUID) error
	List(ctx context.Context) ([]*Peripheral, error)
	ListByAssignedTo(ctx context.Context, employeeID string) ([]*Peripheral, error)
	ListByType(ctx context.Context, pType PeripheralType) ([]*Peripheral, error)
	CountInstockByType(ctx context.Context, pType PeripheralType) (int64, error)
	GetStatistics(ctx context.Context) (*Statistics, error)
}

// Statistics represents peripheral stock statistics
type Statistics struct {
	TotalUnits      int
	InstockUnits    int
	AssignedUnits   int
	VerifiedUnits   int
	UnverifiedUnits int
	StockByType     map[string]int64
}
