package session

import (
	"context"
	"encoding/json"

	"gahana/internal/domain/constants"
	"gahana/internal/domain/entity"
	"gahana/internal/domain/service"
	"gahana/internal/errors"

	"github.com/google/uuid"
)

// loadGuestID returns the persisted guest identifier, or "" when none exists.
func loadGuestID(ctx context.Context, store service.KVStore) (string, error) {
	raw, err := store.Get(ctx, constants.KeyGuestID)
	if errors.Is(err, service.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to read guest id")
	}

	var id string
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", errors.Wrap(err, "failed to decode guest id")
	}

	return id, nil
}

func saveGuestID(ctx context.Context, store service.KVStore, id string) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return errors.Wrap(err, "failed to encode guest id")
	}

	return errors.Wrap(store.Set(ctx, constants.KeyGuestID, raw), "failed to persist guest id")
}

// loadCachedProfile returns the cached profile when it belongs to userID.
// A cache written for another user counts as a miss.
func loadCachedProfile(ctx context.Context, store service.KVStore, userID uuid.UUID) (*entity.Profile, error) {
	raw, err := store.Get(ctx, constants.KeyUserProfile)
	if errors.Is(err, service.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read cached profile")
	}

	var profile entity.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, errors.Wrap(err, "failed to decode cached profile")
	}

	if profile.UserID != userID || !profile.Role.IsValid() {
		return nil, nil
	}

	return &profile, nil
}

func saveCachedProfile(ctx context.Context, store service.KVStore, profile *entity.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return errors.Wrap(err, "failed to encode profile")
	}

	return errors.Wrap(store.Set(ctx, constants.KeyUserProfile, raw), "failed to cache profile")
}
