package repository

import (
	"context"

	"gahana/internal/domain/entity"
)

// MetalPriceRepository persists metal prices.
type MetalPriceRepository interface {
	// List returns all prices ordered by metal then purity.
	List(ctx context.Context) ([]*entity.MetalPrice, error)

	// Upsert inserts or replaces the price for (MetalType, Purity) and fills ID and UpdatedAt.
	Upsert(ctx context.Context, price *entity.MetalPrice) error
}
