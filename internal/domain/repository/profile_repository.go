package repository

import (
	"context"

	"gahana/internal/domain/entity"
	"gahana/internal/errors"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when no profile exists for a user.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository reads role-tagged profiles.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
}
