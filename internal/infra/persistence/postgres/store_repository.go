package postgres

import (
	"context"

	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/domain/repository"
	"gahana/internal/errors"
	"gahana/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// storeRepository implements the domain.StoreRepository interface.
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository is the constructor for storeRepository.
func NewStoreRepository(db *gorm.DB) repository.StoreRepository {
	return &storeRepository{db: db}
}

// List returns stores newest first. A non-positive limit returns all stores.
func (repo *storeRepository) List(ctx context.Context, limit int) ([]*entity.Store, error) {
	query := repo.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var storeModels []*model.StoreModel
	if err := query.Find(&storeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	return toStoreDomains(storeModels), nil
}

// ListLocated returns every store with both coordinates set.
func (repo *storeRepository) ListLocated(ctx context.Context) ([]*entity.Store, error) {
	var storeModels []*model.StoreModel
	err := repo.db.WithContext(ctx).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Order("created_at DESC").
		Find(&storeModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list located stores")
	}

	return toStoreDomains(storeModels), nil
}

// FindByID retrieves a store by its ID.
func (repo *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByOwnerID retrieves the store of an owner.
func (repo *storeRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) (*entity.Store, error) {
	return repo.findOne(ctx, "owner_id = ?", ownerID)
}

// Create persists a store. The unique owner_id column enforces one store per owner.
func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Create(storeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrStoreAlreadyExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("invalid owner reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required store information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create store")
	}

	store.ID = storeM.ID
	store.CreatedAt = storeM.CreatedAt
	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

func (repo *storeRepository) findOne(ctx context.Context, cond string, arg any) (*entity.Store, error) {
	var storeM model.StoreModel
	if err := repo.db.WithContext(ctx).Where(cond, arg).First(&storeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	return toStoreDomain(&storeM), nil
}

func toStoreDomains(data []*model.StoreModel) []*entity.Store {
	stores := make([]*entity.Store, 0, len(data))
	for _, storeM := range data {
		stores = append(stores, toStoreDomain(storeM))
	}

	return stores
}

func toStoreDomain(data *model.StoreModel) *entity.Store {
	if data == nil {
		return nil
	}

	store := &entity.Store{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Name:        data.Name,
		Description: data.Description,
		Address:     data.Address,
		ContactInfo: data.ContactInfo,
		LogoURL:     data.LogoURL,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
	if data.Latitude != nil && data.Longitude != nil {
		store.Location = &entity.GeoPoint{Lat: *data.Latitude, Lng: *data.Longitude}
	}

	return store
}

func fromStoreDomain(data *entity.Store) *model.StoreModel {
	if data == nil {
		return nil
	}

	storeM := &model.StoreModel{
		ID:          data.ID,
		OwnerID:     data.OwnerID,
		Name:        data.Name,
		Description: data.Description,
		Address:     data.Address,
		ContactInfo: data.ContactInfo,
		LogoURL:     data.LogoURL,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
	if data.Location != nil {
		lat, lng := data.Location.Lat, data.Location.Lng
		storeM.Latitude = &lat
		storeM.Longitude = &lng
	}

	return storeM
}
