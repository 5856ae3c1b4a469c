package geo

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"

	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	mockSvc "gahana/internal/mocks/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNearby(t *testing.T) {
	ctx := context.Background()

	t.Run("filters around the current position", func(t *testing.T) {
		source := mockSvc.NewMockLocationSource(t)
		source.EXPECT().CurrentPosition(ctx).Return(origin, nil)

		result := Nearby(ctx, newDiscardLogger(), source, testShops(), locateShop, 15)

		assert.True(t, result.Filtered)
		require.NotNil(t, result.Origin)
		assert.Equal(t, origin, *result.Origin)
		assert.Equal(t, 15.0, result.RadiusKm)
		assert.Equal(t, []string{"thamel", "patan", "bhaktapur"}, names(result.Items))
	})

	t.Run("location failure returns the list unfiltered", func(t *testing.T) {
		source := mockSvc.NewMockLocationSource(t)
		source.EXPECT().CurrentPosition(mock.Anything).
			Return(entity.GeoPoint{}, domainerrors.ErrGeolocation.WithDetails("permission denied"))

		result := Nearby(ctx, newDiscardLogger(), source, testShops(), locateShop, 15)

		assert.False(t, result.Filtered)
		assert.Nil(t, result.Origin)
		assert.Equal(t, []string{"bhaktapur", "no-location", "thamel", "pokhara", "patan"}, names(result.Items))
		for _, r := range result.Items {
			assert.True(t, math.IsInf(r.DistanceKm, 1))
		}
	})
}
