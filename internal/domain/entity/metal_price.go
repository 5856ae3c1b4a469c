package entity

import (
	"time"

	"github.com/google/uuid"
)

// MetalType is the precious metal a price applies to.
type MetalType string

const (
	MetalGold   MetalType = "gold"
	MetalSilver MetalType = "silver"
)

// IsValid checks if the MetalType is a valid value.
func (m MetalType) IsValid() bool {
	return m == MetalGold || m == MetalSilver
}

// MetalPrice is the current price per gram for one metal and purity.
// (MetalType, Purity) is unique.
type MetalPrice struct {
	ID           uuid.UUID
	MetalType    MetalType
	Purity       string // e.g. "24K", "22K", "999"
	PricePerGram float64
	UpdatedBy    uuid.UUID
	UpdatedAt    time.Time
}
