package impl

import (
	"context"
	"log/slog"
	"strings"

	"gahana/config"
	deliverycontext "gahana/internal/delivery/context"
	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/domain/repository"
	"gahana/internal/domain/service"
	"gahana/internal/errors"
	"gahana/internal/geo"
	"gahana/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type storeService struct {
	storeRepo       repository.StoreRepository
	qrCode          service.QRCodeService
	defaultRadiusKm float64
	maxRadiusKm     float64
	logger          *slog.Logger
}

// StoreServiceParams holds dependencies for StoreService, injected by Fx.
type StoreServiceParams struct {
	fx.In

	StoreRepo repository.StoreRepository
	QRCode    service.QRCodeService
	Config    *config.Config
	Logger    *slog.Logger
}

func NewStoreService(params StoreServiceParams) usecase.StoreUsecase {
	srv := &storeService{
		storeRepo:       params.StoreRepo,
		qrCode:          params.QRCode,
		defaultRadiusKm: geo.DefaultRadiusKm,
		maxRadiusKm:     geo.MaxRadiusKm,
		logger:          params.Logger,
	}
	if params.Config != nil && params.Config.Proximity != nil {
		srv.defaultRadiusKm = params.Config.Proximity.DefaultRadiusKm
		srv.maxRadiusKm = params.Config.Proximity.MaxRadiusKm
	}

	return srv
}

func (srv *storeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *storeService) ListStores(ctx context.Context, limit int) ([]*entity.Store, error) {
	stores, err := srv.storeRepo.List(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stores")
	}

	return stores, nil
}

func (srv *storeService) GetStore(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	store, err := srv.storeRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrStoreNotFound) {
		return nil, domainerrors.ErrStoreNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find store")
	}

	return store, nil
}

func (srv *storeService) GetOwnerStore(ctx context.Context, ownerID uuid.UUID) (*entity.Store, error) {
	store, err := srv.storeRepo.FindByOwnerID(ctx, ownerID)
	if errors.Is(err, repository.ErrStoreNotFound) {
		return nil, domainerrors.ErrStoreNotFound.WithDetails("this owner has not opened a store yet")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find owner store")
	}

	return store, nil
}

// CreateStore opens the owner's store. An owner holds at most one.
func (srv *storeService) CreateStore(ctx context.Context, input *usecase.CreateStoreInput) (*entity.Store, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("store name is required")
	}
	if input.Location != nil && !input.Location.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("store location out of range")
	}

	_, err := srv.storeRepo.FindByOwnerID(ctx, input.OwnerID)
	if err == nil {
		return nil, domainerrors.ErrStoreAlreadyExists
	}
	if !errors.Is(err, repository.ErrStoreNotFound) {
		return nil, errors.Wrap(err, "failed to check existing store")
	}

	store := &entity.Store{
		OwnerID:     input.OwnerID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Address:     strings.TrimSpace(input.Address),
		ContactInfo: strings.TrimSpace(input.ContactInfo),
		LogoURL:     strings.TrimSpace(input.LogoURL),
		Location:    input.Location,
	}
	if err := srv.storeRepo.Create(ctx, store); err != nil {
		return nil, errors.Wrap(err, "failed to create store")
	}

	srv.log(ctx).Info("Store created", slog.Any("storeID", store.ID), slog.Any("ownerID", store.OwnerID))

	return store, nil
}

// NearbyStores ranks pinned stores around the origin, nearest first, keeping
// only those within the clamped radius.
func (srv *storeService) NearbyStores(ctx context.Context, input *usecase.NearbyInput) (*usecase.NearbyOutput, error) {
	if !input.Origin.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("origin out of range")
	}

	radius := geo.ClampRadius(input.RadiusKm, srv.defaultRadiusKm, srv.maxRadiusKm)

	stores, err := srv.storeRepo.ListLocated(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list located stores")
	}

	ranked := geo.FilterWithinRadius(input.Origin, stores, (*entity.Store).GeoLocation, radius)
	srv.log(ctx).Debug("Nearby stores",
		slog.Float64("radiusKm", radius),
		slog.Int("candidates", len(stores)),
		slog.Int("matched", len(ranked)),
	)

	return &usecase.NearbyOutput{
		Origin:   input.Origin,
		RadiusKm: radius,
		Stores:   ranked,
		Bound:    geo.Bound(ranked, (*entity.Store).GeoLocation),
	}, nil
}

func (srv *storeService) StoreQRCode(ctx context.Context, id uuid.UUID) ([]byte, error) {
	store, err := srv.GetStore(ctx, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrCode.GenerateStoreQR(store.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate store QR code")
	}

	return png, nil
}
