package repository

import (
	"context"

	"gahana/internal/domain/entity"
	"gahana/internal/errors"

	"github.com/google/uuid"
)

// ErrStoreNotFound is returned when a store is not found.
var ErrStoreNotFound = errors.New("store not found")

// StoreRepository persists the store catalogue.
type StoreRepository interface {
	// List returns stores newest first. A non-positive limit returns all stores.
	List(ctx context.Context, limit int) ([]*entity.Store, error)

	// ListLocated returns every store that has a location pinned.
	ListLocated(ctx context.Context) ([]*entity.Store, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.Store, error)

	// Create persists a store. An owner holding a store already yields ErrStoreAlreadyExists.
	Create(ctx context.Context, store *entity.Store) error
}
