package equipment

import "errors"

var (
	ErrEquipmentNotFound = errors.New("equipment count not found")
	ErrInvalidCategory   = errors.New("invalid equipment category")
)
