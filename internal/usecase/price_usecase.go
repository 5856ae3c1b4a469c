package usecase

import (
	"context"

	"gahana/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdatePriceInput sets the price of one metal and purity.
type UpdatePriceInput struct {
	MetalType    entity.MetalType
	Purity       string
	PricePerGram float64
	UpdatedBy    uuid.UUID
}

// PriceUsecase manages metal prices.
type PriceUsecase interface {
	ListPrices(ctx context.Context) ([]*entity.MetalPrice, error)
	// UpdatePrice upserts the price and announces the change. Announcement
	// failures are logged and do not fail the update.
	UpdatePrice(ctx context.Context, input *UpdatePriceInput) (*entity.MetalPrice, error)
}
