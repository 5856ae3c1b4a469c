package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gahana/config"
	"gahana/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent() *service.PriceUpdatedEvent {
	return &service.PriceUpdatedEvent{
		RequestID:    "req-1",
		PriceID:      "price-1",
		MetalType:    "gold",
		Purity:       "24K",
		PricePerGram: 15250.5,
		UpdatedBy:    "admin-1",
		UpdatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestLocalHTTPPublisher_PublishPriceUpdated(t *testing.T) {
	var got PushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	require.NoError(t, publisher.PublishPriceUpdated(context.Background(), testEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "price.updated", got.Message.Attributes["event"])
	assert.Equal(t, "gold", got.Message.Attributes["metal_type"])
	assert.Equal(t, "24K", got.Message.Attributes["purity"])
	assert.NotEmpty(t, got.Message.MessageID)

	raw, err := base64.StdEncoding.DecodeString(got.Message.Data)
	require.NoError(t, err)
	var event service.PriceUpdatedEvent
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, *testEvent(), event)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	err := publisher.PublishPriceUpdated(context.Background(), testEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestNewEventPublisher(t *testing.T) {
	newParams := func(cfg *config.PubSubConfig) PublisherParams {
		return PublisherParams{
			Lc:     fxtest.NewLifecycle(t),
			Ctx:    context.Background(),
			Config: &config.Config{PubSub: cfg},
			Logger: newDiscardLogger(),
		}
	}

	t.Run("unconfigured is noop", func(t *testing.T) {
		publisher, err := NewEventPublisher(newParams(nil))
		require.NoError(t, err)
		assert.IsType(t, &noopPublisher{}, publisher)
		assert.NoError(t, publisher.PublishPriceUpdated(context.Background(), testEvent()))
	})

	t.Run("explicit noop", func(t *testing.T) {
		publisher, err := NewEventPublisher(newParams(&config.PubSubConfig{Provider: "noop"}))
		require.NoError(t, err)
		assert.IsType(t, &noopPublisher{}, publisher)
	})

	t.Run("local requires endpoint", func(t *testing.T) {
		_, err := NewEventPublisher(newParams(&config.PubSubConfig{Provider: "local"}))
		assert.Error(t, err)
	})

	t.Run("local", func(t *testing.T) {
		publisher, err := NewEventPublisher(newParams(&config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:9"}))
		require.NoError(t, err)
		assert.IsType(t, &localHTTPPublisher{}, publisher)
	})

	t.Run("google requires project and topic", func(t *testing.T) {
		_, err := NewEventPublisher(newParams(&config.PubSubConfig{Provider: "google"}))
		assert.Error(t, err)

		_, err = NewEventPublisher(newParams(&config.PubSubConfig{Provider: "google", ProjectID: "p"}))
		assert.Error(t, err)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewEventPublisher(newParams(&config.PubSubConfig{Provider: "kafka"}))
		assert.Error(t, err)
	})
}
