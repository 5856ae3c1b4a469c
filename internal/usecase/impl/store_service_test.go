package impl

import (
	"context"
	"testing"

	"gahana/config"
	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/domain/repository"
	mockRepo "gahana/internal/mocks/repository"
	mockSvc "gahana/internal/mocks/service"
	"gahana/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	kathmandu = entity.GeoPoint{Lat: 27.7172, Lng: 85.3240}
	patan     = entity.GeoPoint{Lat: 27.6644, Lng: 85.3188}
	bhaktapur = entity.GeoPoint{Lat: 27.6710, Lng: 85.4298}
	pokhara   = entity.GeoPoint{Lat: 28.2096, Lng: 83.9856}
)

type storeServiceFixtures struct {
	service   usecase.StoreUsecase
	storeRepo *mockRepo.MockStoreRepository
	qrCode    *mockSvc.MockQRCodeService
}

func createTestStoreService(t *testing.T) storeServiceFixtures {
	f := storeServiceFixtures{
		storeRepo: mockRepo.NewMockStoreRepository(t),
		qrCode:    mockSvc.NewMockQRCodeService(t),
	}
	f.service = NewStoreService(StoreServiceParams{
		StoreRepo: f.storeRepo,
		QRCode:    f.qrCode,
		Config: &config.Config{
			Proximity: &config.ProximityConfig{DefaultRadiusKm: 15, MaxRadiusKm: 50},
		},
		Logger: newDiscardLogger(),
	})

	return f
}

func storeAt(name string, loc entity.GeoPoint) *entity.Store {
	return &entity.Store{ID: uuid.New(), OwnerID: uuid.New(), Name: name, Location: &loc}
}

func TestStoreService_CreateStore(t *testing.T) {
	ownerID := uuid.New()

	t.Run("success", func(t *testing.T) {
		f := createTestStoreService(t)
		newID := uuid.New()

		f.storeRepo.EXPECT().FindByOwnerID(mock.Anything, ownerID).Return(nil, repository.ErrStoreNotFound).Once()
		f.storeRepo.EXPECT().
			Create(mock.Anything, mock.MatchedBy(func(s *entity.Store) bool {
				return s.OwnerID == ownerID && s.Name == "Sita Jewellers" && s.Location != nil
			})).
			Run(func(_ context.Context, s *entity.Store) { s.ID = newID }).
			Return(nil).Once()

		store, err := f.service.CreateStore(context.Background(), &usecase.CreateStoreInput{
			OwnerID:  ownerID,
			Name:     "  Sita Jewellers ",
			Location: &patan,
		})

		require.NoError(t, err)
		assert.Equal(t, newID, store.ID)
		assert.Equal(t, "Sita Jewellers", store.Name)
	})

	t.Run("owner already has a store", func(t *testing.T) {
		f := createTestStoreService(t)
		f.storeRepo.EXPECT().FindByOwnerID(mock.Anything, ownerID).Return(&entity.Store{ID: uuid.New(), OwnerID: ownerID}, nil).Once()

		_, err := f.service.CreateStore(context.Background(), &usecase.CreateStoreInput{OwnerID: ownerID, Name: "Second"})

		assert.ErrorIs(t, err, domainerrors.ErrStoreAlreadyExists)
	})

	t.Run("blank name", func(t *testing.T) {
		f := createTestStoreService(t)

		_, err := f.service.CreateStore(context.Background(), &usecase.CreateStoreInput{OwnerID: ownerID, Name: "   "})

		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})

	t.Run("location out of range", func(t *testing.T) {
		f := createTestStoreService(t)

		_, err := f.service.CreateStore(context.Background(), &usecase.CreateStoreInput{
			OwnerID:  ownerID,
			Name:     "Nowhere",
			Location: &entity.GeoPoint{Lat: 95, Lng: 85},
		})

		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestStoreService_NearbyStores(t *testing.T) {
	thamel := storeAt("Thamel Gold House", entity.GeoPoint{Lat: 27.7154, Lng: 85.3123})
	patanStore := storeAt("Patan Silver", patan)
	bhaktapurStore := storeAt("Bhaktapur Gahana", bhaktapur)
	pokharaStore := storeAt("Lakeside Jewels", pokhara)
	located := []*entity.Store{pokharaStore, bhaktapurStore, thamel, patanStore}

	tests := []struct {
		name       string
		radiusKm   float64
		wantRadius float64
		want       []*entity.Store
	}{
		{
			name:       "default radius",
			radiusKm:   0,
			wantRadius: 15,
			want:       []*entity.Store{thamel, patanStore, bhaktapurStore},
		},
		{
			name:       "small radius",
			radiusKm:   3,
			wantRadius: 3,
			want:       []*entity.Store{thamel},
		},
		{
			name:       "radius above max is capped",
			radiusKm:   500,
			wantRadius: 50,
			want:       []*entity.Store{thamel, patanStore, bhaktapurStore},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := createTestStoreService(t)
			f.storeRepo.EXPECT().ListLocated(mock.Anything).Return(located, nil).Once()

			out, err := f.service.NearbyStores(context.Background(), &usecase.NearbyInput{Origin: kathmandu, RadiusKm: tt.radiusKm})

			require.NoError(t, err)
			assert.InDelta(t, tt.wantRadius, out.RadiusKm, 1e-9)
			require.Len(t, out.Stores, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want, out.Stores[i].Item, "position %d", i)
				assert.LessOrEqual(t, out.Stores[i].DistanceKm, tt.wantRadius)
			}
			assert.False(t, out.Bound.IsEmpty())
		})
	}
}

func TestStoreService_NearbyStores_NothingInRange(t *testing.T) {
	f := createTestStoreService(t)
	f.storeRepo.EXPECT().ListLocated(mock.Anything).Return([]*entity.Store{storeAt("Lakeside Jewels", pokhara)}, nil).Once()

	out, err := f.service.NearbyStores(context.Background(), &usecase.NearbyInput{Origin: kathmandu, RadiusKm: 10})

	require.NoError(t, err)
	assert.Empty(t, out.Stores)
	assert.True(t, out.Bound.IsEmpty())
}

func TestStoreService_NearbyStores_InvalidOrigin(t *testing.T) {
	f := createTestStoreService(t)

	_, err := f.service.NearbyStores(context.Background(), &usecase.NearbyInput{Origin: entity.GeoPoint{Lat: -91}})

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestStoreService_GetStore_NotFound(t *testing.T) {
	f := createTestStoreService(t)
	id := uuid.New()
	f.storeRepo.EXPECT().FindByID(mock.Anything, id).Return(nil, repository.ErrStoreNotFound).Once()

	_, err := f.service.GetStore(context.Background(), id)

	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}

func TestStoreService_StoreQRCode(t *testing.T) {
	f := createTestStoreService(t)
	store := storeAt("Patan Silver", patan)
	f.storeRepo.EXPECT().FindByID(mock.Anything, store.ID).Return(store, nil).Once()
	f.qrCode.EXPECT().GenerateStoreQR(store.ID).Return([]byte("\x89PNG"), nil).Once()

	png, err := f.service.StoreQRCode(context.Background(), store.ID)

	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png)
}
