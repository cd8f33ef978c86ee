package campaign

import "errors"

var (
	ErrCampaignNotFound  = errors.New("campaign not found")
	ErrNotDraft          = errors.New("campaign is not in draft state")
	ErrAlreadyCompleted  = errors.New("campaign is already completed")
	ErrInvalidDeadline   = errors.New("deadline must not be before start date")
	ErrNoTargetEmployees = errors.New("no employees match the campaign filters")
	ErrInvalidTransition = errors.New("invalid campaign status transition")
)
