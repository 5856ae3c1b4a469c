package usecase

import (
	"context"

	"gahana/internal/domain/entity"

	"github.com/google/uuid"
)

// AddProductInput lists a product in the caller's store.
type AddProductInput struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
	Category    string
	MetalType   entity.MetalType
	Purity      string
	WeightGrams float64
	Price       float64
	ImageURL    string
	Available   bool
}

// ProductUsecase manages store products.
type ProductUsecase interface {
	ListProducts(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// AddProduct lists a product in the store owned by input.OwnerID.
	AddProduct(ctx context.Context, input *AddProductInput) (*entity.Product, error)
}
