package dto

import (
	"time"

	"gahana/internal/domain/entity"
	"gahana/internal/geo"
	"gahana/internal/usecase"

	"github.com/google/uuid"
)

// CreateStoreRequest opens the caller's store. Latitude and longitude are
// given together or not at all.
type CreateStoreRequest struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Description string   `json:"description" validate:"max=2000"`
	Address     string   `json:"address" validate:"max=255"`
	ContactInfo string   `json:"contactInfo" validate:"max=255"`
	LogoURL     string   `json:"logoUrl" validate:"omitempty,url"`
	Latitude    *float64 `json:"latitude" validate:"required_with=Longitude,omitempty,latitude"`
	Longitude   *float64 `json:"longitude" validate:"required_with=Latitude,omitempty,longitude"`
}

func (r *CreateStoreRequest) ToInput(ownerID uuid.UUID) *usecase.CreateStoreInput {
	input := &usecase.CreateStoreInput{
		OwnerID:     ownerID,
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		ContactInfo: r.ContactInfo,
		LogoURL:     r.LogoURL,
	}
	if r.Latitude != nil && r.Longitude != nil {
		input.Location = &entity.GeoPoint{Lat: *r.Latitude, Lng: *r.Longitude}
	}

	return input
}

type StoreResponse struct {
	ID          uuid.UUID        `json:"id"`
	OwnerID     uuid.UUID        `json:"ownerId"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Address     string           `json:"address,omitempty"`
	ContactInfo string           `json:"contactInfo,omitempty"`
	LogoURL     string           `json:"logoUrl,omitempty"`
	Location    *entity.GeoPoint `json:"location"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func NewStoreResponse(s *entity.Store) *StoreResponse {
	return &StoreResponse{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Description: s.Description,
		Address:     s.Address,
		ContactInfo: s.ContactInfo,
		LogoURL:     s.LogoURL,
		Location:    s.Location,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func NewStoreListResponse(stores []*entity.Store) []*StoreResponse {
	out := make([]*StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, NewStoreResponse(s))
	}

	return out
}

func (r *StoreResponse) ToEntity() *entity.Store {
	return &entity.Store{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		ContactInfo: r.ContactInfo,
		LogoURL:     r.LogoURL,
		Location:    r.Location,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// NearbyStoreResponse is a store with its distance from the query origin.
type NearbyStoreResponse struct {
	*StoreResponse
	DistanceKm float64 `json:"distanceKm"`
}

// BoundResponse is the box covering the returned stores.
type BoundResponse struct {
	Min entity.GeoPoint `json:"min"`
	Max entity.GeoPoint `json:"max"`
}

type NearbyResponse struct {
	Origin   entity.GeoPoint        `json:"origin"`
	RadiusKm float64                `json:"radiusKm"`
	Stores   []*NearbyStoreResponse `json:"stores"`
	Bound    *BoundResponse         `json:"bound"`
}

func NewNearbyResponse(out *usecase.NearbyOutput) *NearbyResponse {
	resp := &NearbyResponse{
		Origin:   out.Origin,
		RadiusKm: out.RadiusKm,
		Stores:   make([]*NearbyStoreResponse, 0, len(out.Stores)),
	}
	for _, ranked := range out.Stores {
		resp.Stores = append(resp.Stores, &NearbyStoreResponse{
			StoreResponse: NewStoreResponse(ranked.Item),
			DistanceKm:    ranked.DistanceKm,
		})
	}
	if len(out.Stores) > 0 {
		resp.Bound = &BoundResponse{
			Min: entity.GeoPointFromOrb(out.Bound.Min),
			Max: entity.GeoPointFromOrb(out.Bound.Max),
		}
	}

	return resp
}

// ToRanked converts the body back into ranked stores.
func (r *NearbyResponse) ToRanked() []geo.Ranked[*entity.Store] {
	out := make([]geo.Ranked[*entity.Store], 0, len(r.Stores))
	for _, s := range r.Stores {
		out = append(out, geo.Ranked[*entity.Store]{Item: s.ToEntity(), DistanceKm: s.DistanceKm})
	}

	return out
}
