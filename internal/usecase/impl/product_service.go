package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "gahana/internal/delivery/context"
	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/domain/repository"
	"gahana/internal/errors"
	"gahana/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const maxProductListLimit = 200

type productService struct {
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	StoreRepo   repository.StoreRepository
	Logger      *slog.Logger
}

func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		productRepo: params.ProductRepo,
		storeRepo:   params.StoreRepo,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns matching products, newest first. Categories and
// purities are normalised the same way AddProduct stores them.
func (srv *productService) ListProducts(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, domainerrors.ErrValidationFailed.WithDetails("minPrice is greater than maxPrice")
	}
	if filter.Limit <= 0 || filter.Limit > maxProductListLimit {
		filter.Limit = maxProductListLimit
	}
	filter.Category = normalizeCategory(filter.Category)
	purities := make([]string, 0, len(filter.Purities))
	for _, p := range filter.Purities {
		if p = normalizePurity(p); p != "" {
			purities = append(purities, p)
		}
	}
	filter.Purities = purities

	products, err := srv.productRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func (srv *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

func (srv *productService) AddProduct(ctx context.Context, input *usecase.AddProductInput) (*entity.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("product name is required")
	}
	if !input.MetalType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown metal type " + string(input.MetalType))
	}
	purity := normalizePurity(input.Purity)
	if purity == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("purity is required")
	}
	if input.Price <= 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price must be positive")
	}
	if input.WeightGrams < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("weight cannot be negative")
	}

	store, err := srv.storeRepo.FindByOwnerID(ctx, input.OwnerID)
	if errors.Is(err, repository.ErrStoreNotFound) {
		return nil, domainerrors.ErrStoreNotFound.WithDetails("open a store before adding products")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find owner store")
	}

	product := &entity.Product{
		StoreID:     store.ID,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Category:    normalizeCategory(input.Category),
		MetalType:   input.MetalType,
		Purity:      purity,
		WeightGrams: input.WeightGrams,
		Price:       input.Price,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Available:   input.Available,
	}
	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Info("Product added", slog.Any("productID", product.ID), slog.Any("storeID", store.ID))

	return product, nil
}

func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

func normalizePurity(purity string) string {
	return strings.ToUpper(strings.TrimSpace(purity))
}
