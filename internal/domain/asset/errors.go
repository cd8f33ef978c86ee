package asset

import "errors"

var (
	ErrAssetNotFound      = errors.New("asset not found")
	ErrAssetAlreadyExists = errors.New("asset with this service tag already exists")
	ErrAssetNotAssigned   = errors.New("asset is not assigned")
	ErrAssetInUse         = errors.New("asset is already assigned")
	ErrInvalidAssetType   = errors.New("invalid asset type")
)
