package postgres

import (
	"context"
	"time"

	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/domain/repository"
	"gahana/internal/errors"
	"gahana/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// metalPriceRepository implements the domain.MetalPriceRepository interface.
type metalPriceRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewMetalPriceRepository is the constructor for metalPriceRepository.
func NewMetalPriceRepository(db *gorm.DB) repository.MetalPriceRepository {
	return &metalPriceRepository{db: db, now: time.Now}
}

// List returns all prices ordered by metal then purity.
func (repo *metalPriceRepository) List(ctx context.Context) ([]*entity.MetalPrice, error) {
	var priceModels []*model.MetalPriceModel
	err := repo.db.WithContext(ctx).
		Order("metal_type ASC").
		Order("purity DESC").
		Find(&priceModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list metal prices")
	}

	prices := make([]*entity.MetalPrice, 0, len(priceModels))
	for _, priceM := range priceModels {
		prices = append(prices, toMetalPriceDomain(priceM))
	}

	return prices, nil
}

// Upsert inserts the price or replaces the one stored for the same metal and purity.
func (repo *metalPriceRepository) Upsert(ctx context.Context, price *entity.MetalPrice) error {
	priceM := fromMetalPriceDomain(price)
	priceM.UpdatedAt = repo.now()

	err := repo.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "metal_type"}, {Name: "purity"}},
				DoUpdates: clause.AssignmentColumns([]string{"price_per_gram", "updated_by", "updated_at"}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "id"}, {Name: "updated_at"}}},
		).
		Create(priceM).Error
	if err != nil {
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid metal price")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert metal price")
	}

	price.ID = priceM.ID
	price.UpdatedAt = priceM.UpdatedAt

	return nil
}

func toMetalPriceDomain(data *model.MetalPriceModel) *entity.MetalPrice {
	if data == nil {
		return nil
	}

	return &entity.MetalPrice{
		ID:           data.ID,
		MetalType:    entity.MetalType(data.MetalType),
		Purity:       data.Purity,
		PricePerGram: data.PricePerGram,
		UpdatedBy:    data.UpdatedBy,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromMetalPriceDomain(data *entity.MetalPrice) *model.MetalPriceModel {
	if data == nil {
		return nil
	}

	return &model.MetalPriceModel{
		ID:           data.ID,
		MetalType:    string(data.MetalType),
		Purity:       data.Purity,
		PricePerGram: data.PricePerGram,
		UpdatedBy:    data.UpdatedBy,
		UpdatedAt:    data.UpdatedAt,
	}
}
