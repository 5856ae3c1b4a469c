package geolocation

import (
	"context"
	"encoding/json"

	"gahana/internal/domain/constants"
	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/domain/service"
	"gahana/internal/errors"
)

// SavedSource reads and writes the last known position under the user_location key.
type SavedSource struct {
	store service.KVStore
}

// NewSavedSource creates a SavedSource over store.
func NewSavedSource(store service.KVStore) *SavedSource {
	return &SavedSource{store: store}
}

// CurrentPosition returns the saved position, or ErrGeolocation when none is saved.
func (s *SavedSource) CurrentPosition(ctx context.Context) (entity.GeoPoint, error) {
	raw, err := s.store.Get(ctx, constants.KeyUserLocation)
	if errors.Is(err, service.ErrKeyNotFound) {
		return entity.GeoPoint{}, domainerrors.ErrGeolocation.WithDetails("no saved location")
	}
	if err != nil {
		return entity.GeoPoint{}, errors.Wrap(err, "failed to read saved location")
	}

	var point entity.GeoPoint
	if err := json.Unmarshal(raw, &point); err != nil || !point.IsValid() {
		return entity.GeoPoint{}, domainerrors.ErrGeolocation.WithDetails("saved location is unreadable")
	}

	return point, nil
}

// Save stores point as the last known position.
func (s *SavedSource) Save(ctx context.Context, point entity.GeoPoint) error {
	if !point.IsValid() {
		return domainerrors.ErrValidationFailed.WithDetails("coordinates out of range")
	}

	raw, err := json.Marshal(point)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.Wrap(s.store.Set(ctx, constants.KeyUserLocation, raw), "failed to save location")
}
