package dto

import (
	"time"

	"gahana/internal/domain/entity"
	"gahana/internal/usecase"

	"github.com/google/uuid"
)

// CreateProductRequest lists a product in the caller's store.
type CreateProductRequest struct {
	Name        string           `json:"name" validate:"required,max=150"`
	Description string           `json:"description" validate:"max=2000"`
	Category    string           `json:"category" validate:"max=60"`
	MetalType   entity.MetalType `json:"metalType" validate:"required,oneof=gold silver"`
	Purity      string           `json:"purity" validate:"required,max=16"`
	WeightGrams float64          `json:"weightGrams" validate:"gte=0"`
	Price       float64          `json:"price" validate:"required,gt=0"`
	ImageURL    string           `json:"imageUrl" validate:"omitempty,url"`
	Available   *bool            `json:"available"`
}

// ToInput converts the request. A missing availability means the item is on sale.
func (r *CreateProductRequest) ToInput(ownerID uuid.UUID) *usecase.AddProductInput {
	available := true
	if r.Available != nil {
		available = *r.Available
	}

	return &usecase.AddProductInput{
		OwnerID:     ownerID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		MetalType:   r.MetalType,
		Purity:      r.Purity,
		WeightGrams: r.WeightGrams,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Available:   available,
	}
}

type ProductResponse struct {
	ID          uuid.UUID        `json:"id"`
	StoreID     uuid.UUID        `json:"storeId"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Category    string           `json:"category,omitempty"`
	MetalType   entity.MetalType `json:"metalType"`
	Purity      string           `json:"purity"`
	WeightGrams float64          `json:"weightGrams"`
	Price       float64          `json:"price"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	Available   bool             `json:"available"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func NewProductResponse(p *entity.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		StoreID:     p.StoreID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		MetalType:   p.MetalType,
		Purity:      p.Purity,
		WeightGrams: p.WeightGrams,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Available:   p.Available,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewProductListResponse(products []*entity.Product) []*ProductResponse {
	out := make([]*ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}

	return out
}

func (r *ProductResponse) ToEntity() *entity.Product {
	return &entity.Product{
		ID:          r.ID,
		StoreID:     r.StoreID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		MetalType:   r.MetalType,
		Purity:      r.Purity,
		WeightGrams: r.WeightGrams,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Available:   r.Available,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
