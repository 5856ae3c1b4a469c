package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a piece of jewelry listed by a store.
type Product struct {
	ID          uuid.UUID
	StoreID     uuid.UUID
	Name        string
	Description string
	Category    string // free-form slug such as "rings" or "necklaces"
	MetalType   MetalType
	Purity      string
	WeightGrams float64
	Price       float64
	ImageURL    string
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductFilter narrows a product listing. Zero values do not filter.
type ProductFilter struct {
	StoreID  uuid.UUID
	Category string
	// Search matches name or description, case-insensitively.
	Search   string
	MinPrice *float64
	MaxPrice *float64
	Purities []string
	Limit    int
}
