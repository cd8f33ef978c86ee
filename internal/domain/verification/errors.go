package verification

import "errors"

var (
	ErrRecordNotFound    = errors.New("verification record not found")
	ErrAlreadySubmitted  = errors.New("verification already submitted for this asset")
	ErrRecordsPending    = errors.New("verification records are still pending")
	ErrTokenNotFound     = errors.New("verification token not found")
	ErrTokenExpired      = errors.New("verification token has expired or been used")
	ErrAssetNotCovered   = errors.New("asset is not covered by this verification link")
	ErrInvalidTransition = errors.New("invalid verification status transition")
)
