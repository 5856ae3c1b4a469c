// Package geolocation acquires the client's reference point for proximity ranking.
package geolocation

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/domain/service"
	"gahana/internal/errors"
)

// DefaultTimeout bounds a live position lookup.
const DefaultTimeout = 5 * time.Second

// ipSource asks an IP-geolocation endpoint for the caller's position. The
// endpoint must answer with {"latitude": .., "longitude": ..}.
type ipSource struct {
	endpoint string
	client   *http.Client
	timeout  time.Duration
}

// NewIPSource creates a live LocationSource. A non-positive timeout means DefaultTimeout.
func NewIPSource(endpoint string, timeout time.Duration, client *http.Client) service.LocationSource {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &ipSource{endpoint: endpoint, client: client, timeout: timeout}
}

func (s *ipSource) CurrentPosition(ctx context.Context) (entity.GeoPoint, error) {
	if s.endpoint == "" {
		return entity.GeoPoint{}, domainerrors.ErrGeolocation.WithDetails("no geolocation endpoint configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return entity.GeoPoint{}, errors.Wrap(domainerrors.ErrGeolocation, err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return entity.GeoPoint{}, errors.Wrap(domainerrors.ErrGeolocation, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.GeoPoint{}, errors.Wrapf(domainerrors.ErrGeolocation, "lookup returned status %d", resp.StatusCode)
	}

	var body struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return entity.GeoPoint{}, errors.Wrap(domainerrors.ErrGeolocation, "malformed lookup response")
	}
	if body.Latitude == nil || body.Longitude == nil {
		return entity.GeoPoint{}, errors.Wrap(domainerrors.ErrGeolocation, "lookup response has no coordinates")
	}

	point := entity.GeoPoint{Lat: *body.Latitude, Lng: *body.Longitude}
	if !point.IsValid() {
		return entity.GeoPoint{}, errors.Wrap(domainerrors.ErrGeolocation, "lookup returned out of range coordinates")
	}

	return point, nil
}
