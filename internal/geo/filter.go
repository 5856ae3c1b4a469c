package geo

import (
	"math"
	"slices"

	"gahana/internal/domain/entity"

	"github.com/paulmach/orb"
)

// Ranked is an item annotated with its distance from the reference point.
// Items without a location carry +Inf.
type Ranked[T any] struct {
	Item       T
	DistanceKm float64
}

// HasDistance reports whether the item could be measured.
func (r Ranked[T]) HasDistance() bool {
	return !math.IsInf(r.DistanceKm, 1)
}

// Locator extracts the location of an item, or nil when it has none.
type Locator[T any] func(T) *entity.GeoPoint

// RankAll annotates every item with its distance from origin and sorts ascending.
// Ties keep input order and unlocated items go last. items is not modified.
func RankAll[T any](origin entity.GeoPoint, items []T, locate Locator[T]) []Ranked[T] {
	ranked := make([]Ranked[T], 0, len(items))
	for _, item := range items {
		ranked = append(ranked, Ranked[T]{Item: item, DistanceKm: distanceTo(origin, locate(item))})
	}

	slices.SortStableFunc(ranked, func(a, b Ranked[T]) int {
		switch {
		case a.DistanceKm < b.DistanceKm:
			return -1
		case a.DistanceKm > b.DistanceKm:
			return 1
		default:
			return 0
		}
	})

	return ranked
}

// FilterWithinRadius is RankAll restricted to items no farther than radiusKm.
// Unlocated items never pass, whatever the radius. A NaN radius keeps nothing.
func FilterWithinRadius[T any](origin entity.GeoPoint, items []T, locate Locator[T], radiusKm float64) []Ranked[T] {
	if math.IsNaN(radiusKm) {
		return []Ranked[T]{}
	}
	ranked := RankAll(origin, items, locate)

	// ranked is sorted, so the cut is a prefix.
	cut := len(ranked)
	for i, r := range ranked {
		if !r.HasDistance() || r.DistanceKm > radiusKm {
			cut = i

			break
		}
	}

	return ranked[:cut:cut]
}

// Bound returns the bounding box of the located items in ranked.
func Bound[T any](ranked []Ranked[T], locate Locator[T]) orb.Bound {
	points := make(orb.MultiPoint, 0, len(ranked))
	for _, r := range ranked {
		if loc := locate(r.Item); loc != nil {
			points = append(points, loc.Point())
		}
	}

	return points.Bound()
}

func distanceTo(origin entity.GeoPoint, loc *entity.GeoPoint) float64 {
	if loc == nil {
		return math.Inf(1)
	}

	return Distance(origin, *loc)
}
