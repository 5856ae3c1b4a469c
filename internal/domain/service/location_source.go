package service

import (
	"context"

	"gahana/internal/domain/entity"
)

// LocationSource provides the reference point for proximity ranking.
type LocationSource interface {
	CurrentPosition(ctx context.Context) (entity.GeoPoint, error)
}
