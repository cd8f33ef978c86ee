package verification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for verification record operations.
// Submit must be conditional on the record still being Pending so racing
// submissions resolve to a single winner.
type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	GetByCampaignAndAsset(ctx context.Context, campaignID, assetID uuid.UUID) (*Record, error)
	Submit(ctx context.Context, r *Record) error
	Review(ctx context.Context, id uuid.UUID, reviewedBy string, status RecordStatus, exceptionType *ExceptionType) error
	MarkOverdue(ctx context.Context, campaignID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Record, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*Record, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*Record, error)
	ListByStatus(ctx context.Context, status RecordStatus) ([]*Record, error)
	ListPendingByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*Record, error)
	CountByStatusForCampaign(ctx context.Context, campaignID uuid.UUID) (map[RecordStatus]int, error)
	GetStatistics(ctx context.Context) (*Statistics, error)
}

// TokenRepository stores single-use verification link tokens. MarkUsed must
// be atomic: of two racing completions exactly one wins.
type TokenRepository interface {
	Create(ctx context.Context, t *Token) error
	GetByToken(ctx context.Context, token string) (*Token, error)
	MarkUsed(ctx context.Context, token string, usedAt time.Time) error
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*Token, error)
	ListPendingByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*Token, error)
	DeleteByCampaign(ctx context.Context, campaignID uuid.UUID) error
}
