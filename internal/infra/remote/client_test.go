package remote

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"gahana/internal/domain/constants"
	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/domain/service"
	"gahana/internal/infra/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	userID  = uuid.MustParse("0198f6a4-6c1e-7d3a-9a43-5c2b1e0f7a11")
	storeID = uuid.MustParse("0198f6a4-6c1e-7d3a-9a43-5c2b1e0f7a22")
	fixedAt = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"code":    status,
		"message": "Success",
		"data":    data,
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"code":    status,
		"message": message,
		"error":   map[string]string{"code": code, "details": ""},
	})
}

func sessionBody(access, refresh string) map[string]any {
	return map[string]any{
		"accessToken":  access,
		"refreshToken": refresh,
		"expiresAt":    fixedAt.Add(15 * time.Minute),
		"user": map[string]any{
			"id":       userID,
			"email":    "sita@example.com",
			"metadata": map[string]string{"role": "store_owner", "firstName": "Sita"},
		},
	}
}

// fakeAPI answers the auth routes. Only "access-2" is accepted as a bearer
// once a refresh happened; refreshOK controls whether refresh succeeds.
type fakeAPI struct {
	mu        sync.Mutex
	validTok  string
	refreshOK bool
	refreshes int
	signOuts  int
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/signin", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req["password"] != "Correct#Horse9" {
			writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")

			return
		}
		writeData(w, http.StatusOK, sessionBody("access-1", "refresh-1"))
	})

	mux.HandleFunc("POST /auth/signup", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusConflict, "USER_ALREADY_EXISTS", "this email is already registered")
	})

	mux.HandleFunc("POST /auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.refreshes++
		if !f.refreshOK {
			writeError(w, http.StatusUnauthorized, "REFRESH_TOKEN_INVALID", "invalid or expired refresh token")

			return
		}
		f.validTok = "access-2"
		writeData(w, http.StatusOK, map[string]any{"accessToken": "access-2", "expiresAt": fixedAt.Add(time.Hour)})
	})

	mux.HandleFunc("POST /auth/signout", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.signOuts++
		f.mu.Unlock()
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
	})

	mux.HandleFunc("GET /profiles/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		valid := f.validTok
		f.mu.Unlock()
		if r.Header.Get("Authorization") != "Bearer "+valid {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")

			return
		}
		if r.PathValue("id") != userID.String() {
			writeError(w, http.StatusNotFound, "PROFILE_NOT_FOUND", "profile not found")

			return
		}
		writeData(w, http.StatusOK, map[string]any{"userId": userID, "role": "store_owner", "firstName": "Sita"})
	})

	mux.HandleFunc("GET /stores", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		writeData(w, http.StatusOK, []map[string]any{
			{"id": storeID, "ownerId": userID, "name": "Sita Jewellers", "location": map[string]float64{"latitude": 27.7, "longitude": 85.3}},
			{"id": uuid.New(), "ownerId": uuid.New(), "name": "Unpinned", "location": nil},
		})
	})

	mux.HandleFunc("GET /metal-prices", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, []map[string]any{
			{"id": uuid.New(), "metalType": "gold", "purity": "24K", "pricePerGram": 15120.5},
		})
	})

	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Equal(t, storeID.String(), query.Get("storeId"))
		assert.Equal(t, []string{"24K", "22K"}, query["purity"])
		writeData(w, http.StatusOK, []map[string]any{
			{"id": uuid.New(), "storeId": storeID, "name": "Tilhari", "metalType": "gold", "purity": "22K", "price": 185000, "available": true},
		})
	})

	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", "product not found")
	})

	mux.HandleFunc("GET /teapot", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusTeapot, "TEAPOT", "short and stout")
	})

	return mux
}

func (f *fakeAPI) update(fn func(api *fakeAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeAPI) counts() (refreshes, signOuts int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.refreshes, f.signOuts
}

type clientFixture struct {
	api    *fakeAPI
	server *httptest.Server
	store  service.KVStore
	client *Client
	events chan entity.AuthEvent
}

func newClientFixture(t *testing.T) *clientFixture {
	t.Helper()

	api := &fakeAPI{validTok: "access-1", refreshOK: true}
	server := httptest.NewServer(api.handler(t))
	t.Cleanup(server.Close)

	store := storage.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	client := NewClient(server.URL+"/", server.Client(), store, newDiscardLogger())
	client.now = func() time.Time { return fixedAt }

	events := make(chan entity.AuthEvent, 8)
	unsubscribe := client.OnAuthStateChange(func(e entity.AuthEvent) { events <- e })
	t.Cleanup(unsubscribe)

	return &clientFixture{api: api, server: server, store: store, client: client, events: events}
}

func (f *clientFixture) signIn(t *testing.T) *entity.AuthSession {
	t.Helper()

	sess, err := f.client.SignInWithPassword(context.Background(), "sita@example.com", "Correct#Horse9")
	require.NoError(t, err)

	return sess
}

func TestClient_SignInPersistsSession(t *testing.T) {
	f := newClientFixture(t)
	ctx := context.Background()

	sess := f.signIn(t)
	assert.Equal(t, userID, sess.User.ID)
	assert.Equal(t, entity.RoleStoreOwner, sess.User.Metadata.Role)
	assert.Empty(t, f.events, "explicit sign in is not echoed")

	raw, err := f.store.Get(ctx, constants.KeyAuthSession)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "refresh-1")

	reopened := NewClient(f.server.URL, f.server.Client(), f.store, newDiscardLogger())
	reopened.now = func() time.Time { return fixedAt }

	restored, err := reopened.GetSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "access-1", restored.AccessToken)
	assert.Equal(t, userID, restored.User.ID)
}

func TestClient_SignInInvalidCredentials(t *testing.T) {
	f := newClientFixture(t)

	sess, err := f.client.SignInWithPassword(context.Background(), "sita@example.com", "nope")

	assert.Nil(t, sess)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestClient_SignUpFailureIsRegistrationError(t *testing.T) {
	f := newClientFixture(t)

	_, err := f.client.SignUp(context.Background(), "sita@example.com", "Correct#Horse9", entity.AccountMetadata{Role: entity.RoleCustomer})

	require.ErrorIs(t, err, domainerrors.ErrRegistration)
	assert.Contains(t, err.Error(), "already registered")
}

func TestClient_GetSessionWithoutSession(t *testing.T) {
	f := newClientFixture(t)

	sess, err := f.client.GetSession(context.Background())

	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestClient_GetSessionRefreshesExpiredToken(t *testing.T) {
	f := newClientFixture(t)
	f.signIn(t)
	f.client.now = func() time.Time { return fixedAt.Add(30 * time.Minute) }

	sess, err := f.client.GetSession(context.Background())

	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "access-2", sess.AccessToken)
	assert.Equal(t, "refresh-1", sess.RefreshToken)

	event := <-f.events
	assert.Equal(t, entity.AuthEventTokenRefreshed, event.Type)
}

func TestClient_GetSessionDropsRejectedSession(t *testing.T) {
	f := newClientFixture(t)
	f.signIn(t)
	f.api.update(func(api *fakeAPI) { api.refreshOK = false })
	f.client.now = func() time.Time { return fixedAt.Add(30 * time.Minute) }

	sess, err := f.client.GetSession(context.Background())

	require.NoError(t, err)
	assert.Nil(t, sess)
	assert.Equal(t, entity.AuthEventSignedOut, (<-f.events).Type)

	_, err = f.store.Get(context.Background(), constants.KeyAuthSession)
	assert.ErrorIs(t, err, service.ErrKeyNotFound)
}

func TestClient_GetProfileRetriesAfterRefresh(t *testing.T) {
	f := newClientFixture(t)
	f.signIn(t)
	f.api.update(func(api *fakeAPI) { api.validTok = "access-2" })

	profile, err := f.client.GetProfile(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, entity.RoleStoreOwner, profile.Role)
	assert.Equal(t, "Sita", profile.FirstName)
	refreshes, _ := f.api.counts()
	assert.Equal(t, 1, refreshes)
	assert.Equal(t, entity.AuthEventTokenRefreshed, (<-f.events).Type)
}

func TestClient_GetProfileNotFound(t *testing.T) {
	f := newClientFixture(t)
	f.signIn(t)

	_, err := f.client.GetProfile(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domainerrors.ErrProfileNotFound)
}

func TestClient_GetProfileWithoutSession(t *testing.T) {
	f := newClientFixture(t)

	_, err := f.client.GetProfile(context.Background(), userID)

	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestClient_SignOutClearsLocallyWhenRemoteFails(t *testing.T) {
	f := newClientFixture(t)
	f.signIn(t)

	err := f.client.SignOut(context.Background())

	require.ErrorIs(t, err, domainerrors.ErrInternalError)
	_, signOuts := f.api.counts()
	assert.Equal(t, 1, signOuts)
	assert.Equal(t, entity.AuthEventSignedOut, (<-f.events).Type)

	sess, err := f.client.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestClient_SignOutWithoutSession(t *testing.T) {
	f := newClientFixture(t)

	assert.NoError(t, f.client.SignOut(context.Background()))
	_, signOuts := f.api.counts()
	assert.Zero(t, signOuts)
	assert.Empty(t, f.events)
}

func TestClient_Unsubscribe(t *testing.T) {
	f := newClientFixture(t)
	calls := 0
	unsubscribe := f.client.OnAuthStateChange(func(entity.AuthEvent) { calls++ })
	unsubscribe()

	f.signIn(t)
	require.Error(t, f.client.SignOut(context.Background()))

	assert.Zero(t, calls)
}

func TestClient_ListStores(t *testing.T) {
	f := newClientFixture(t)

	stores, err := f.client.ListStores(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, stores, 2)
	assert.Equal(t, storeID, stores[0].ID)
	require.NotNil(t, stores[0].Location)
	assert.InDelta(t, 27.7, stores[0].Location.Lat, 1e-9)
	assert.Nil(t, stores[1].Location)
}

func TestClient_ListPrices(t *testing.T) {
	f := newClientFixture(t)

	prices, err := f.client.ListPrices(context.Background())

	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, entity.MetalGold, prices[0].MetalType)
	assert.InDelta(t, 15120.5, prices[0].PricePerGram, 1e-9)
}

func TestClient_ListProducts(t *testing.T) {
	f := newClientFixture(t)

	products, err := f.client.ListProducts(context.Background(), entity.ProductFilter{
		StoreID:  storeID,
		Purities: []string{"24K", "22K"},
	})

	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Tilhari", products[0].Name)
	assert.Equal(t, storeID, products[0].StoreID)
	assert.True(t, products[0].Available)
}

func TestClient_GetProductNotFound(t *testing.T) {
	f := newClientFixture(t)

	_, err := f.client.GetProduct(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductListPath(t *testing.T) {
	minPrice := 1500.5
	assert.Equal(t, "/products", productListPath(entity.ProductFilter{}))
	assert.Equal(t,
		"/products?category=rings&limit=3&minPrice=1500.5&q=bangle+set",
		productListPath(entity.ProductFilter{Category: "rings", Search: "bangle set", MinPrice: &minPrice, Limit: 3}),
	)
}

func TestClient_UnknownErrorCode(t *testing.T) {
	f := newClientFixture(t)

	err := f.client.do(context.Background(), http.MethodGet, "/teapot", "", nil, nil)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "TEAPOT", appErr.ErrorCode())
	assert.Equal(t, http.StatusTeapot, appErr.HTTPCode())
}

func TestClient_NonEnvelopeError(t *testing.T) {
	f := newClientFixture(t)

	err := f.client.do(context.Background(), http.MethodGet, "/missing", "", nil, nil)

	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
