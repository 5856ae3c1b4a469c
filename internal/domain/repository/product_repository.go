package repository

import (
	"context"

	"gahana/internal/domain/entity"
	"gahana/internal/errors"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository persists store products.
type ProductRepository interface {
	// List returns the products matching filter, newest first.
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// Create persists a product and fills ID and timestamps.
	Create(ctx context.Context, product *entity.Product) error
}
