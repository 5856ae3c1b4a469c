package geolocation

import (
	"context"
	"log/slog"

	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/domain/service"
	"gahana/internal/errors"
)

// Locator prefers a live fix and remembers it. When the live lookup fails it
// falls back to the last saved position.
type Locator struct {
	live   service.LocationSource
	saved  *SavedSource
	logger *slog.Logger
}

// NewLocator combines a live source with the saved position. live may be nil.
func NewLocator(live service.LocationSource, saved *SavedSource, logger *slog.Logger) *Locator {
	return &Locator{live: live, saved: saved, logger: logger}
}

// CurrentPosition implements service.LocationSource.
func (l *Locator) CurrentPosition(ctx context.Context) (entity.GeoPoint, error) {
	if l.live != nil {
		point, err := l.live.CurrentPosition(ctx)
		if err == nil {
			if saveErr := l.saved.Save(ctx, point); saveErr != nil {
				l.logger.Warn("Failed to remember location", slog.Any("error", saveErr))
			}

			return point, nil
		}
		l.logger.Debug("Live location unavailable, trying saved location", slog.Any("error", err))
	}

	point, err := l.saved.CurrentPosition(ctx)
	if err != nil {
		if errors.Is(err, domainerrors.ErrGeolocation) {
			return entity.GeoPoint{}, err
		}

		return entity.GeoPoint{}, errors.Wrap(domainerrors.ErrGeolocation, err.Error())
	}

	return point, nil
}

// Fixed is a LocationSource that always answers with the same point.
type Fixed entity.GeoPoint

// CurrentPosition implements service.LocationSource.
func (f Fixed) CurrentPosition(context.Context) (entity.GeoPoint, error) {
	point := entity.GeoPoint(f)
	if !point.IsValid() {
		return entity.GeoPoint{}, domainerrors.ErrGeolocation.WithDetails("coordinates out of range")
	}

	return point, nil
}
