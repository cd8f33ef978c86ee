package peripheral

import (
	"time"

	"github.com/google/uuid"
)

// PeripheralType classifies peripheral stock units
type PeripheralType string

const (
	TypeCharger    PeripheralType = "Charger"
	TypeHeadphones PeripheralType = "Headphones"
	TypeDock       PeripheralType = "Dock"
	TypeMouse      PeripheralType = "Mouse"
	TypeKeyboard   PeripheralType = "Keyboard"
	TypeUSBCCable  PeripheralType = "USBCCable"
)

// PeripheralStatus represents the stock state of a unit
type PeripheralStatus string

const (
	StatusInstock  PeripheralStatus = "Instock"
	StatusAssigned PeripheralStatus = "Assigned"
)

// Peripheral represents a single peripheral unit. Units without a serial
// number are still tracked individually so stock counts stay exact.
type Peripheral struct {
	ID             uuid.UUID
	Type           PeripheralType
	SerialNumber   *string
	Status         PeripheralStatus
	AssignedTo     *string // employee ID, nil means instock
	AssignedToName *string
	Verified       bool
	AssignedDate   *time.Time
	VerifiedDate   *time.Time
	PurchaseDate   *time.Time
	Location       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidTypes lists every recognized peripheral type.
func ValidTypes() []PeripheralType {
	return []PeripheralType{
		TypeCharger, TypeHeadphones, TypeDock, TypeMouse, TypeKeyboard, TypeUSBCCable,
	}
}

// ParseType converts a string to a PeripheralType, reporting whether it is known.
func ParseType(s string) (PeripheralType, bool) {
	for _, t := range ValidTypes() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}
