package usecase

import (
	"context"

	"gahana/internal/domain/entity"
	"gahana/internal/geo"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// CreateStoreInput defines the data required to open a store.
type CreateStoreInput struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
	Address     string
	ContactInfo string
	LogoURL     string
	Location    *entity.GeoPoint
}

// NearbyInput is a proximity query. A non-positive radius uses the configured default.
type NearbyInput struct {
	Origin   entity.GeoPoint
	RadiusKm float64
}

// NearbyOutput lists stores within the radius, nearest first.
type NearbyOutput struct {
	Origin   entity.GeoPoint
	RadiusKm float64
	Stores   []geo.Ranked[*entity.Store]
	// Bound covers the returned stores; empty when none matched.
	Bound orb.Bound
}

// StoreUsecase manages the store catalogue.
type StoreUsecase interface {
	ListStores(ctx context.Context, limit int) ([]*entity.Store, error)
	GetStore(ctx context.Context, id uuid.UUID) (*entity.Store, error)
	GetOwnerStore(ctx context.Context, ownerID uuid.UUID) (*entity.Store, error)
	// CreateStore opens the single store of an owner.
	CreateStore(ctx context.Context, input *CreateStoreInput) (*entity.Store, error)
	NearbyStores(ctx context.Context, input *NearbyInput) (*NearbyOutput, error)
	// StoreQRCode returns a PNG linking to the store.
	StoreQRCode(ctx context.Context, id uuid.UUID) ([]byte, error)
}
