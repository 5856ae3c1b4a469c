// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"gahana/internal/domain/entity"
	"gahana/internal/errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	// FindByID retrieves a user with its profile.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user with its profile by login email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create persists a new user together with its profile when one is attached.
	Create(ctx context.Context, user *entity.User) error

	// AcquireSessionMutex locks the user row so session counting and insertion are serialized.
	AcquireSessionMutex(ctx context.Context, id uuid.UUID) error
}
