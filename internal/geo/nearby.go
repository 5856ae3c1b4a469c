package geo

import (
	"context"
	"log/slog"
	"math"

	"gahana/internal/domain/entity"
	"gahana/internal/domain/service"
)

// NearbyResult is the outcome of Nearby. When Filtered is false no reference
// point was available and Items holds the input in its original order.
type NearbyResult[T any] struct {
	Origin   *entity.GeoPoint
	RadiusKm float64
	Filtered bool
	Items    []Ranked[T]
}

// Nearby acquires the reference point from source and filters items within radiusKm.
// A failed acquisition is logged and degrades to the unfiltered list; it is never returned.
func Nearby[T any](
	ctx context.Context,
	logger *slog.Logger,
	source service.LocationSource,
	items []T,
	locate Locator[T],
	radiusKm float64,
) NearbyResult[T] {
	origin, err := source.CurrentPosition(ctx)
	if err != nil {
		logger.Warn("Location unavailable, showing unfiltered list", slog.Any("error", err))

		unfiltered := make([]Ranked[T], 0, len(items))
		for _, item := range items {
			unfiltered = append(unfiltered, Ranked[T]{Item: item, DistanceKm: math.Inf(1)})
		}

		return NearbyResult[T]{RadiusKm: radiusKm, Items: unfiltered}
	}

	return NearbyResult[T]{
		Origin:   &origin,
		RadiusKm: radiusKm,
		Filtered: true,
		Items:    FilterWithinRadius(origin, items, locate, radiusKm),
	}
}
