package campaign

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for campaign repository operations
type Repository interface {
	Create(ctx context.Context, c *Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*Campaign, error)
	Update(ctx context.Context, c *Campaign) error
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to CampaignStatus) error
	UpdateCounts(ctx context.Context, id uuid.UUID, counts Counts) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Campaign, error)
	ListByStatus(ctx context.Context, status CampaignStatus) ([]*Campaign, error)
	ListByCreatedBy(ctx context.Context, employeeID string) ([]*Campaign, error)
	ListWithDeadlineBefore(ctx context.Context, cutoff time.Time) ([]*Campaign, error)
	GetStatistics(ctx context.Context) (*Statistics, error)
}
