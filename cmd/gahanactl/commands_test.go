package main

import (
	"bytes"
	"context"
	"math"
	"testing"
	"time"

	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/geo"
	mockSvc "gahana/internal/mocks/service"
	"gahana/internal/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseLatLng(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    entity.GeoPoint
		wantErr bool
	}{
		{name: "plain", input: "27.7172,85.3240", want: entity.GeoPoint{Lat: 27.7172, Lng: 85.324}},
		{name: "spaces", input: " 27.7 , 85.3 ", want: entity.GeoPoint{Lat: 27.7, Lng: 85.3}},
		{name: "missing comma", input: "27.7 85.3", wantErr: true},
		{name: "not a number", input: "north,85.3", wantErr: true},
		{name: "out of range", input: "95,85.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLatLng(tt.input)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSavedFirst(t *testing.T) {
	saved := entity.GeoPoint{Lat: 27.67, Lng: 85.43}
	live := entity.GeoPoint{Lat: 27.71, Lng: 85.32}

	t.Run("saved location wins", func(t *testing.T) {
		savedSrc := mockSvc.NewMockLocationSource(t)
		fallback := mockSvc.NewMockLocationSource(t)
		savedSrc.EXPECT().CurrentPosition(mock.Anything).Return(saved, nil).Once()

		got, err := savedFirst{saved: savedSrc, fallback: fallback}.CurrentPosition(context.Background())

		require.NoError(t, err)
		assert.Equal(t, saved, got)
	})

	t.Run("falls back when nothing is saved", func(t *testing.T) {
		savedSrc := mockSvc.NewMockLocationSource(t)
		fallback := mockSvc.NewMockLocationSource(t)
		savedSrc.EXPECT().CurrentPosition(mock.Anything).Return(entity.GeoPoint{}, domainerrors.ErrGeolocation).Once()
		fallback.EXPECT().CurrentPosition(mock.Anything).Return(live, nil).Once()

		got, err := savedFirst{saved: savedSrc, fallback: fallback}.CurrentPosition(context.Background())

		require.NoError(t, err)
		assert.Equal(t, live, got)
	})
}

func TestWriteNearby(t *testing.T) {
	patan := entity.GeoPoint{Lat: 27.6644, Lng: 85.3188}
	store := &entity.Store{ID: uuid.New(), Name: "Patan Silver", Address: "Mangal Bazar", Location: &patan}

	t.Run("filtered", func(t *testing.T) {
		var buf bytes.Buffer
		origin := entity.GeoPoint{Lat: 27.7172, Lng: 85.324}

		err := writeNearby(&buf, geo.NearbyResult[*entity.Store]{
			Origin:   &origin,
			RadiusKm: 25,
			Filtered: true,
			Items:    []geo.Ranked[*entity.Store]{{Item: store, DistanceKm: 5.92}},
		})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Stores within 25 km of 27.7172,85.3240")
		assert.Contains(t, buf.String(), "Patan Silver")
		assert.Contains(t, buf.String(), "5.9 km")
	})

	t.Run("unfiltered shows no distance", func(t *testing.T) {
		var buf bytes.Buffer

		err := writeNearby(&buf, geo.NearbyResult[*entity.Store]{
			RadiusKm: 25,
			Items:    []geo.Ranked[*entity.Store]{{Item: store, DistanceKm: math.Inf(1)}},
		})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "Location unavailable, showing all stores")
		assert.NotContains(t, buf.String(), " km")
		assert.Contains(t, buf.String(), "Patan Silver  -")
	})

	t.Run("nothing in range", func(t *testing.T) {
		var buf bytes.Buffer
		origin := entity.GeoPoint{Lat: 28.2, Lng: 83.98}

		require.NoError(t, writeNearby(&buf, geo.NearbyResult[*entity.Store]{Origin: &origin, RadiusKm: 5, Filtered: true}))
		assert.Contains(t, buf.String(), "No stores found")
	})
}

func TestWriteState(t *testing.T) {
	var buf bytes.Buffer

	err := writeState(&buf, session.State{
		Kind:    entity.IdentityAuthenticated,
		UserID:  uuid.MustParse("0b9e4c1d-7a52-4e36-8f0d-91c2a3b4d5e6"),
		Email:   "sita@example.com",
		Role:    entity.RoleStoreOwner,
		Profile: &entity.Profile{FirstName: "Sita", LastName: "Shrestha"},
	})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "authenticated")
	assert.Contains(t, out, "sita@example.com")
	assert.Contains(t, out, "Sita Shrestha")
	assert.Contains(t, out, "store_owner")
	assert.Contains(t, out, "/store")

	buf.Reset()
	require.NoError(t, writeState(&buf, session.State{Kind: entity.IdentityGuest, GuestID: "g-1"}))
	assert.Contains(t, buf.String(), "g-1")
	assert.Contains(t, buf.String(), "customer")
}

func TestWriteDecision(t *testing.T) {
	var buf bytes.Buffer
	route := session.Route{Path: "/admin/update-price"}

	require.NoError(t, writeDecision(&buf, route, session.Decision{Outcome: session.Redirect, RedirectTo: "/store"}))
	require.NoError(t, writeDecision(&buf, route, session.Decision{Outcome: session.Grant}))

	assert.Equal(t, "/admin/update-price: redirect to /store\n/admin/update-price: grant\n", buf.String())
}

func TestWritePrices(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, writePrices(&buf, nil))
	assert.Equal(t, "No prices published yet\n", buf.String())

	buf.Reset()
	err := writePrices(&buf, []*entity.MetalPrice{{
		MetalType:    entity.MetalGold,
		Purity:       "24K",
		PricePerGram: 15250.5,
		UpdatedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "15250.50")
	assert.Contains(t, buf.String(), "2026-03-01 10:00")
}

func TestWriteProducts(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, writeProducts(&buf, nil))
	assert.Equal(t, "No products found\n", buf.String())

	buf.Reset()
	err := writeProducts(&buf, []*entity.Product{
		{ID: uuid.New(), Name: "Temple necklace", MetalType: entity.MetalGold, Purity: "22K", Price: 245000, Available: true},
		{ID: uuid.New(), Name: "Anklet", MetalType: entity.MetalSilver, Purity: "925", Price: 3200},
	})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Temple necklace")
	assert.Contains(t, buf.String(), "Rs 245000.00")
	assert.Contains(t, buf.String(), "Anklet (sold out)")
}

func TestProductFilter(t *testing.T) {
	storeID := uuid.New()

	filter, err := productFilter(storeID.String(), "rings", "band", " 24k, ,22K", 10)

	require.NoError(t, err)
	assert.Equal(t, storeID, filter.StoreID)
	assert.Equal(t, "rings", filter.Category)
	assert.Equal(t, "band", filter.Search)
	assert.Equal(t, []string{"24k", "22K"}, filter.Purities)
	assert.Equal(t, 10, filter.Limit)

	_, err = productFilter("not-a-uuid", "", "", "", 0)
	assert.ErrorContains(t, err, "invalid -store")
}

func TestRun_UnknownSubcommand(t *testing.T) {
	err := run(context.Background(), "teleport", nil, &bytes.Buffer{})

	assert.ErrorContains(t, err, `unknown subcommand "teleport"`)
}
