package geolocation

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gahana/internal/domain/constants"
	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/infra/storage"
	mockSvc "gahana/internal/mocks/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var kathmandu = entity.GeoPoint{Lat: 27.7172, Lng: 85.3240}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIPSource_CurrentPosition(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    entity.GeoPoint
		wantErr bool
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"latitude":27.7172,"longitude":85.324,"city":"Kathmandu"}`,
			want:   kathmandu,
		},
		{
			name:    "non ok status",
			status:  http.StatusTooManyRequests,
			body:    `{}`,
			wantErr: true,
		},
		{
			name:    "missing coordinates",
			status:  http.StatusOK,
			body:    `{"city":"Kathmandu"}`,
			wantErr: true,
		},
		{
			name:    "malformed body",
			status:  http.StatusOK,
			body:    `not json`,
			wantErr: true,
		},
		{
			name:    "out of range",
			status:  http.StatusOK,
			body:    `{"latitude":127.7,"longitude":85.3}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			source := NewIPSource(server.URL, time.Second, server.Client())
			got, err := source.CurrentPosition(context.Background())

			if tt.wantErr {
				assert.ErrorIs(t, err, domainerrors.ErrGeolocation)

				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want.Lat, got.Lat, 1e-9)
			assert.InDelta(t, tt.want.Lng, got.Lng, 1e-9)
		})
	}
}

func TestIPSource_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	source := NewIPSource(server.URL, 50*time.Millisecond, server.Client())
	_, err := source.CurrentPosition(context.Background())

	assert.ErrorIs(t, err, domainerrors.ErrGeolocation)
}

func TestIPSource_NoEndpoint(t *testing.T) {
	_, err := NewIPSource("", 0, nil).CurrentPosition(context.Background())

	assert.ErrorIs(t, err, domainerrors.ErrGeolocation)
}

func TestSavedSource(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	defer store.Close()
	saved := NewSavedSource(store)

	_, err := saved.CurrentPosition(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrGeolocation, "nothing saved yet")

	require.NoError(t, saved.Save(ctx, kathmandu))

	raw, err := store.Get(ctx, constants.KeyUserLocation)
	require.NoError(t, err)
	assert.JSONEq(t, `{"latitude":27.7172,"longitude":85.324}`, string(raw))

	got, err := saved.CurrentPosition(ctx)
	require.NoError(t, err)
	assert.Equal(t, kathmandu, got)

	err = saved.Save(ctx, entity.GeoPoint{Lat: 91})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	require.NoError(t, store.Set(ctx, constants.KeyUserLocation, []byte("garbage")))
	_, err = saved.CurrentPosition(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrGeolocation)
}

func TestLocator_RemembersLiveFix(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	defer store.Close()

	live := mockSvc.NewMockLocationSource(t)
	live.EXPECT().CurrentPosition(mock.Anything).Return(kathmandu, nil).Once()

	locator := NewLocator(live, NewSavedSource(store), newDiscardLogger())
	got, err := locator.CurrentPosition(ctx)
	require.NoError(t, err)
	assert.Equal(t, kathmandu, got)

	remembered, err := NewSavedSource(store).CurrentPosition(ctx)
	require.NoError(t, err)
	assert.Equal(t, kathmandu, remembered)
}

func TestLocator_FallsBackToSavedLocation(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	defer store.Close()
	saved := NewSavedSource(store)
	require.NoError(t, saved.Save(ctx, kathmandu))

	live := mockSvc.NewMockLocationSource(t)
	live.EXPECT().CurrentPosition(mock.Anything).Return(entity.GeoPoint{}, domainerrors.ErrGeolocation).Once()

	got, err := NewLocator(live, saved, newDiscardLogger()).CurrentPosition(ctx)
	require.NoError(t, err)
	assert.Equal(t, kathmandu, got)
}

func TestLocator_NoLiveNoSaved(t *testing.T) {
	store := storage.NewMemoryStore()
	defer store.Close()

	_, err := NewLocator(nil, NewSavedSource(store), newDiscardLogger()).CurrentPosition(context.Background())

	assert.ErrorIs(t, err, domainerrors.ErrGeolocation)
}

func TestFixed(t *testing.T) {
	got, err := Fixed(kathmandu).CurrentPosition(context.Background())
	require.NoError(t, err)
	assert.Equal(t, kathmandu, got)

	_, err = Fixed(entity.GeoPoint{Lng: 181}).CurrentPosition(context.Background())
	assert.ErrorIs(t, err, domainerrors.ErrGeolocation)
}
