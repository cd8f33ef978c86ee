package peripheral

import "errors"

var (
	ErrPeripheralNotFound = errors.New("peripheral not found")
	ErrOutOfStock         = errors.New("no peripheral of this type in stock")
	ErrNotAssigned        = errors.New("peripheral is not assigned")
	ErrInvalidType        = errors.New("invalid peripheral type")
)
