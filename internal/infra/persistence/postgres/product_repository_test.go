package postgres

import (
	"testing"
	"time"

	"gahana/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestProductMapping(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	product := &entity.Product{
		ID:          uuid.New(),
		StoreID:     uuid.New(),
		Name:        "Tilhari",
		Description: "Bridal necklace",
		Category:    "necklaces",
		MetalType:   entity.MetalGold,
		Purity:      "22K",
		WeightGrams: 11.664,
		Price:       185000,
		ImageURL:    "https://cdn.example.com/tilhari.png",
		Available:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	productM := fromProductDomain(product)
	assert.Equal(t, "gold", productM.MetalType)
	assert.False(t, productM.Available)

	assert.Equal(t, product, toProductDomain(productM))
	assert.Nil(t, toProductDomain(nil))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "ring", escapeLike("ring"))
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\x`, escapeLike(`c:\x`))
}
