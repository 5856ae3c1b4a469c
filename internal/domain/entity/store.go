package entity

import (
	"time"

	"github.com/google/uuid"
)

// Store is a jewelry shop listed on the storefront. Each store owner has at most one.
type Store struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	Address     string
	ContactInfo string
	LogoURL     string
	Location    *GeoPoint // nil when the owner has not pinned the store
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GeoLocation returns the store location, used by proximity ranking.
func (s *Store) GeoLocation() *GeoPoint {
	return s.Location
}
