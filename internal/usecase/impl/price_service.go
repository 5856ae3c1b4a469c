package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gahana/config"
	deliverycontext "gahana/internal/delivery/context"
	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/domain/repository"
	"gahana/internal/domain/service"
	"gahana/internal/errors"
	"gahana/internal/usecase"

	"go.uber.org/fx"
)

// DefaultPriceTopic is the push topic used when none is configured.
const DefaultPriceTopic = "metal-prices"

type priceService struct {
	priceRepo  repository.MetalPriceRepository
	publisher  service.EventPublisher
	notifier   service.PushNotifier
	priceTopic string
	logger     *slog.Logger
}

// PriceServiceParams holds dependencies for PriceService, injected by Fx.
type PriceServiceParams struct {
	fx.In

	PriceRepo repository.MetalPriceRepository
	Publisher service.EventPublisher
	Notifier  service.PushNotifier
	Config    *config.Config
	Logger    *slog.Logger
}

func NewPriceService(params PriceServiceParams) usecase.PriceUsecase {
	topic := DefaultPriceTopic
	if params.Config != nil && params.Config.Firebase != nil && params.Config.Firebase.PriceTopic != "" {
		topic = params.Config.Firebase.PriceTopic
	}

	return &priceService{
		priceRepo:  params.PriceRepo,
		publisher:  params.Publisher,
		notifier:   params.Notifier,
		priceTopic: topic,
		logger:     params.Logger,
	}
}

func (srv *priceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *priceService) ListPrices(ctx context.Context) ([]*entity.MetalPrice, error) {
	prices, err := srv.priceRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list metal prices")
	}

	return prices, nil
}

// UpdatePrice upserts the price, then publishes an event and a topic push.
func (srv *priceService) UpdatePrice(ctx context.Context, input *usecase.UpdatePriceInput) (*entity.MetalPrice, error) {
	if !input.MetalType.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown metal type " + string(input.MetalType))
	}
	purity := normalizePurity(input.Purity)
	if purity == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("purity is required")
	}
	if input.PricePerGram <= 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("price must be positive")
	}

	price := &entity.MetalPrice{
		MetalType:    input.MetalType,
		Purity:       purity,
		PricePerGram: input.PricePerGram,
		UpdatedBy:    input.UpdatedBy,
	}
	if err := srv.priceRepo.Upsert(ctx, price); err != nil {
		return nil, errors.Wrap(err, "failed to save metal price")
	}

	srv.log(ctx).Info("Metal price updated",
		slog.String("metalType", string(price.MetalType)),
		slog.String("purity", price.Purity),
		slog.Float64("pricePerGram", price.PricePerGram),
		slog.Any("updatedBy", price.UpdatedBy),
	)

	srv.announce(ctx, price)

	return price, nil
}

// announce tells subscribers about a new price. Failures are logged only.
func (srv *priceService) announce(ctx context.Context, price *entity.MetalPrice) {
	event := &service.PriceUpdatedEvent{
		RequestID:    deliverycontext.GetRequestIDFromContext(ctx),
		PriceID:      price.ID.String(),
		MetalType:    string(price.MetalType),
		Purity:       price.Purity,
		PricePerGram: price.PricePerGram,
		UpdatedBy:    price.UpdatedBy.String(),
		UpdatedAt:    price.UpdatedAt,
	}
	if err := srv.publisher.PublishPriceUpdated(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish price update", slog.Any("error", err))
	}

	title := fmt.Sprintf("%s %s", titleCase(string(price.MetalType)), price.Purity)
	body := fmt.Sprintf("Now Rs %.2f per gram", price.PricePerGram)
	data := map[string]string{
		"metal_type": string(price.MetalType),
		"purity":     price.Purity,
		"price":      fmt.Sprintf("%.2f", price.PricePerGram),
	}
	if err := srv.notifier.SendToTopic(ctx, srv.priceTopic, title, body, data); err != nil {
		srv.log(ctx).Warn("Failed to push price update", slog.String("topic", srv.priceTopic), slog.Any("error", err))
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
