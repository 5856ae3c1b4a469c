package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"client": map[string]any{
			"baseUrl":  "",
			"stateDir": "",
		},
		"auth": map[string]any{
			"maxActiveSessions": 5,
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "CLIENT_BASEURL", want: "client.baseUrl"},
		{envKey: "CLIENT_STATEDIR", want: "client.stateDir"},
		{envKey: "AUTH_MAXACTIVESESSIONS", want: "auth.maxActiveSessions"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Run("empty config", func(t *testing.T) {
		cfg := &Config{}
		cfg.ApplyDefaults()

		assert.InDelta(t, 25.0, cfg.Proximity.DefaultRadiusKm, 1e-9)
		assert.InDelta(t, 50.0, cfg.Proximity.MaxRadiusKm, 1e-9)
		assert.Equal(t, 10*time.Second, cfg.Client.RequestTimeout)
		assert.Equal(t, 5*time.Second, cfg.Geolocation.Timeout)
	})

	t.Run("default radius never exceeds the max", func(t *testing.T) {
		cfg := &Config{Proximity: &ProximityConfig{DefaultRadiusKm: 80, MaxRadiusKm: 40}}
		cfg.ApplyDefaults()

		assert.InDelta(t, 40.0, cfg.Proximity.DefaultRadiusKm, 1e-9)
	})

	t.Run("explicit values are kept", func(t *testing.T) {
		cfg := &Config{
			Client:      &ClientConfig{RequestTimeout: 3 * time.Second},
			Geolocation: &GeolocationConfig{Timeout: 2 * time.Second},
		}
		cfg.ApplyDefaults()

		assert.Equal(t, 3*time.Second, cfg.Client.RequestTimeout)
		assert.Equal(t, 2*time.Second, cfg.Geolocation.Timeout)
	})
}
