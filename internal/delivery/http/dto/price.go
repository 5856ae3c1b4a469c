package dto

import (
	"time"

	"gahana/internal/domain/entity"
	"gahana/internal/usecase"

	"github.com/google/uuid"
)

type UpdatePriceRequest struct {
	MetalType    entity.MetalType `json:"metalType" validate:"required,oneof=gold silver"`
	Purity       string           `json:"purity" validate:"required,max=16"`
	PricePerGram float64          `json:"pricePerGram" validate:"required,gt=0"`
}

func (r *UpdatePriceRequest) ToInput(updatedBy uuid.UUID) *usecase.UpdatePriceInput {
	return &usecase.UpdatePriceInput{
		MetalType:    r.MetalType,
		Purity:       r.Purity,
		PricePerGram: r.PricePerGram,
		UpdatedBy:    updatedBy,
	}
}

type PriceResponse struct {
	ID           uuid.UUID        `json:"id"`
	MetalType    entity.MetalType `json:"metalType"`
	Purity       string           `json:"purity"`
	PricePerGram float64          `json:"pricePerGram"`
	UpdatedBy    uuid.UUID        `json:"updatedBy"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func NewPriceResponse(p *entity.MetalPrice) *PriceResponse {
	return &PriceResponse{
		ID:           p.ID,
		MetalType:    p.MetalType,
		Purity:       p.Purity,
		PricePerGram: p.PricePerGram,
		UpdatedBy:    p.UpdatedBy,
		UpdatedAt:    p.UpdatedAt,
	}
}

func NewPriceListResponse(prices []*entity.MetalPrice) []*PriceResponse {
	out := make([]*PriceResponse, 0, len(prices))
	for _, p := range prices {
		out = append(out, NewPriceResponse(p))
	}

	return out
}

func (r *PriceResponse) ToEntity() *entity.MetalPrice {
	return &entity.MetalPrice{
		ID:           r.ID,
		MetalType:    r.MetalType,
		Purity:       r.Purity,
		PricePerGram: r.PricePerGram,
		UpdatedBy:    r.UpdatedBy,
		UpdatedAt:    r.UpdatedAt,
	}
}
