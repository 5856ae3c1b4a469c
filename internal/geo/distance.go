// Package geo ranks and filters geo-tagged items by great-circle distance.
package geo

import (
	"math"

	"gahana/internal/domain/entity"

	"github.com/paulmach/orb"
)

// EarthRadiusKm is the mean radius of the spherical earth model.
const EarthRadiusKm = 6371.0

// Radius bounds used when nothing else is configured.
const (
	DefaultRadiusKm = 25.0
	MaxRadiusKm     = 50.0
)

// Distance returns the haversine distance between a and b in kilometers.
func Distance(a, b entity.GeoPoint) float64 {
	return DistancePoints(a.Point(), b.Point())
}

// DistancePoints is Distance over orb points, which are ordered (lng, lat).
func DistancePoints(p1, p2 orb.Point) float64 {
	lat1Rad := p1.Lat() * math.Pi / 180
	lng1Rad := p1.Lon() * math.Pi / 180
	lat2Rad := p2.Lat() * math.Pi / 180
	lng2Rad := p2.Lon() * math.Pi / 180

	deltaLat := lat2Rad - lat1Rad
	deltaLng := lng2Rad - lng1Rad

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	// Rounding can push a just outside [0, 1] for near-antipodal points.
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// ClampRadius returns def for a non-positive radius and caps anything above limit.
func ClampRadius(radiusKm, def, limit float64) float64 {
	if radiusKm <= 0 || math.IsNaN(radiusKm) {
		radiusKm = def
	}
	if limit > 0 && radiusKm > limit {
		radiusKm = limit
	}

	return radiusKm
}
