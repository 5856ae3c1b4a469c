// Package remote talks to the gahana HTTP API on behalf of a client session.
// It implements the identity provider and profile store used by the session
// resolver, plus read access to the catalogue.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"gahana/config"
	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/domain/service"
	"gahana/internal/errors"
)

// Client is an API client holding at most one session. The session is kept
// in the KV store under gahana_auth_session so it survives restarts.
type Client struct {
	baseURL string
	http    *http.Client
	store   service.KVStore
	logger  *slog.Logger
	now     func() time.Time

	mu        sync.Mutex
	session   *entity.AuthSession
	loaded    bool
	listeners map[int]func(entity.AuthEvent)
	nextID    int
}

var (
	_ service.IdentityProvider = (*Client)(nil)
	_ service.ProfileStore     = (*Client)(nil)
)

// New creates a client from the client section of the configuration.
func New(cfg *config.Config, store service.KVStore, logger *slog.Logger) (*Client, error) {
	if cfg.Client == nil || strings.TrimSpace(cfg.Client.BaseURL) == "" {
		return nil, errors.New("client.baseUrl is required")
	}

	return NewClient(cfg.Client.BaseURL, &http.Client{Timeout: cfg.Client.RequestTimeout}, store, logger), nil
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string, httpClient *http.Client, store service.KVStore, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      httpClient,
		store:     store,
		logger:    logger.With(slog.String("component", "api_client")),
		now:       time.Now,
		listeners: make(map[int]func(entity.AuthEvent)),
	}
}

// envelope mirrors the unified response body of the API.
type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

// do sends one request. A non-empty token is sent as a bearer credential.
// Error envelopes are turned back into the registered domain errors.
func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "failed to encode request")
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return statusError(resp.StatusCode)
		}

		return errors.Wrapf(err, "%s %s: malformed response", method, path)
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		return envelopeError(resp.StatusCode, &env)
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}

	return errors.Wrapf(json.Unmarshal(env.Data, out), "%s %s: malformed data", method, path)
}

func envelopeError(status int, env *envelope) error {
	if env.Error == nil {
		return statusError(status)
	}

	details := env.Error.Details
	if details == "" {
		details = env.Message
	}
	if known := domainerrors.FromCode(env.Error.Code); known != nil {
		return known.WithDetails(details)
	}

	return domainerrors.NewBaseError(status, env.Error.Code, env.Message, env.Error.Details)
}

func statusError(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return domainerrors.ErrUnauthorized
	case http.StatusForbidden:
		return domainerrors.ErrForbidden
	case http.StatusNotFound:
		return domainerrors.ErrNotFound
	default:
		return domainerrors.ErrInternalError.WithDetails(http.StatusText(status))
	}
}
