package session

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"gahana/internal/domain/constants"
	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/domain/service"
	"gahana/internal/errors"
	"gahana/internal/infra/storage"
	mockSvc "gahana/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type resolverFixtures struct {
	resolver *Resolver
	provider *mockSvc.MockIdentityProvider
	profiles *mockSvc.MockProfileStore
	store    service.KVStore
	listener func(entity.AuthEvent)
}

func newResolverFixtures(t *testing.T) *resolverFixtures {
	t.Helper()

	f := &resolverFixtures{
		provider: mockSvc.NewMockIdentityProvider(t),
		profiles: mockSvc.NewMockProfileStore(t),
		store:    storage.NewMemoryStore(),
	}
	guestIDs := 0
	f.resolver = New(Params{
		Provider: f.provider,
		Profiles: f.profiles,
		Store:    f.store,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		NewGuestID: func() string {
			guestIDs++

			return fmt.Sprintf("guest-%d", guestIDs)
		},
	})
	t.Cleanup(f.resolver.Close)

	return f
}

// start runs the startup check with the given existing session and waits for it.
func (f *resolverFixtures) start(t *testing.T, existing *entity.AuthSession) {
	t.Helper()

	f.provider.EXPECT().OnAuthStateChange(mock.Anything).RunAndReturn(func(listener func(entity.AuthEvent)) func() {
		f.listener = listener

		return func() {}
	})
	f.provider.EXPECT().GetSession(mock.Anything).Return(existing, nil)

	f.resolver.Start(context.Background())
	waitReady(t, f.resolver)
}

func waitReady(t *testing.T, r *Resolver) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, r.WaitReady(ctx))
}

func awaitRole(t *testing.T, r *Resolver) entity.Role {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	role, err := r.AwaitRole(ctx)
	require.NoError(t, err)

	return role
}

func newSession(email string) *entity.AuthSession {
	return &entity.AuthSession{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
		User:         entity.SessionUser{ID: uuid.New(), Email: email},
	}
}

func putJSON(t *testing.T, store service.KVStore, key string, v any) {
	t.Helper()

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), key, raw))
}

func readProfile(t *testing.T, store service.KVStore) *entity.Profile {
	t.Helper()

	raw, err := store.Get(context.Background(), constants.KeyUserProfile)
	if errors.Is(err, service.ErrKeyNotFound) {
		return nil
	}
	require.NoError(t, err)

	var profile entity.Profile
	require.NoError(t, json.Unmarshal(raw, &profile))

	return &profile
}

func hasKey(t *testing.T, store service.KVStore, key string) bool {
	t.Helper()

	_, err := store.Get(context.Background(), key)
	if errors.Is(err, service.ErrKeyNotFound) {
		return false
	}
	require.NoError(t, err)

	return true
}

func TestResolver_NewIsLoading(t *testing.T) {
	f := newResolverFixtures(t)

	state := f.resolver.State()
	assert.True(t, state.Loading)
	assert.Equal(t, entity.IdentityAnonymous, state.Kind)
	assert.Equal(t, Defer, Decide(Route{Path: "/", AllowGuest: true}, state).Outcome)
}

func TestResolver_StartWithoutSession(t *testing.T) {
	f := newResolverFixtures(t)
	f.start(t, nil)

	state := f.resolver.State()
	assert.False(t, state.Loading)
	assert.Equal(t, entity.IdentityAnonymous, state.Kind)
	assert.Empty(t, state.GuestID)
}

func TestResolver_StartRestoresGuest(t *testing.T) {
	f := newResolverFixtures(t)
	putJSON(t, f.store, constants.KeyGuestID, "guest-from-last-run")

	f.start(t, nil)

	state := f.resolver.State()
	assert.Equal(t, entity.IdentityGuest, state.Kind)
	assert.Equal(t, "guest-from-last-run", state.GuestID)
	assert.Equal(t, entity.RoleCustomer, state.EffectiveRole())

	id, err := f.resolver.ContinueAsGuest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "guest-from-last-run", id)
}

func TestResolver_StartSessionFailureFallsBackToAnonymous(t *testing.T) {
	f := newResolverFixtures(t)
	f.provider.EXPECT().OnAuthStateChange(mock.Anything).Return(func() {})
	f.provider.EXPECT().GetSession(mock.Anything).Return(nil, errors.New("network down"))

	f.resolver.Start(context.Background())
	waitReady(t, f.resolver)

	state := f.resolver.State()
	assert.False(t, state.Loading)
	assert.Equal(t, entity.IdentityAnonymous, state.Kind)
}

func TestResolver_StartWithSessionUsesCachedRoleThenConfirms(t *testing.T) {
	f := newResolverFixtures(t)
	sess := newSession("owner@example.com")
	putJSON(t, f.store, constants.KeyUserProfile, entity.Profile{UserID: sess.User.ID, Role: entity.RoleStoreOwner})

	release := make(chan struct{})
	f.profiles.EXPECT().GetProfile(mock.Anything, sess.User.ID).
		RunAndReturn(func(context.Context, uuid.UUID) (*entity.Profile, error) {
			<-release

			return &entity.Profile{Role: entity.RoleAdmin, FirstName: "Sita"}, nil
		})

	f.start(t, sess)

	state := f.resolver.State()
	assert.False(t, state.Loading, "a cached role settles the session without waiting for the fetch")
	assert.Equal(t, entity.IdentityAuthenticated, state.Kind)
	assert.Equal(t, sess.User.ID, state.UserID)
	assert.Equal(t, entity.RoleStoreOwner, state.Role)

	close(release)
	assert.Equal(t, entity.RoleAdmin, awaitRole(t, f.resolver))

	cached := readProfile(t, f.store)
	require.NotNil(t, cached)
	assert.Equal(t, entity.RoleAdmin, cached.Role)
	assert.Equal(t, sess.User.ID, cached.UserID)
	assert.Equal(t, "Sita", cached.FirstName)
}

func TestResolver_StartWithSessionWaitsForFirstFetchWithoutCache(t *testing.T) {
	f := newResolverFixtures(t)
	sess := newSession("admin@example.com")
	f.profiles.EXPECT().GetProfile(mock.Anything, sess.User.ID).
		Return(&entity.Profile{Role: entity.RoleAdmin}, nil)

	f.start(t, sess)

	state := f.resolver.State()
	assert.False(t, state.Loading)
	assert.Equal(t, entity.RoleAdmin, state.Role)
}

// startRefreshingSession starts the resolver with a provider whose session
// check reports a token refresh for sess before returning it.
func (f *resolverFixtures) startRefreshingSession(sess *entity.AuthSession) {
	f.provider.EXPECT().OnAuthStateChange(mock.Anything).RunAndReturn(func(listener func(entity.AuthEvent)) func() {
		f.listener = listener

		return func() {}
	})
	f.provider.EXPECT().GetSession(mock.Anything).RunAndReturn(func(context.Context) (*entity.AuthSession, error) {
		f.listener(entity.AuthEvent{Type: entity.AuthEventTokenRefreshed, Session: sess})

		return sess, nil
	})

	f.resolver.Start(context.Background())
}

func blockedProfile(t *testing.T, f *resolverFixtures, userID uuid.UUID, role entity.Role) func() {
	t.Helper()

	release := make(chan struct{})
	var once sync.Once
	unblock := func() { once.Do(func() { close(release) }) }
	t.Cleanup(unblock)

	f.profiles.EXPECT().GetProfile(mock.Anything, userID).
		RunAndReturn(func(context.Context, uuid.UUID) (*entity.Profile, error) {
			<-release

			return &entity.Profile{Role: role}, nil
		}).Once()

	return unblock
}

func TestResolver_TokenRefreshDuringStartStillWaitsForRole(t *testing.T) {
	f := newResolverFixtures(t)
	sess := newSession("owner@example.com")
	unblock := blockedProfile(t, f, sess.User.ID, entity.RoleStoreOwner)
	storeRoute := Route{Path: "/store", RequiredRole: entity.RoleStoreOwner}

	f.startRefreshingSession(sess)

	select {
	case <-f.resolver.Ready():
		t.Fatal("session settled before the role was known")
	case <-time.After(50 * time.Millisecond):
	}
	state := f.resolver.State()
	assert.True(t, state.Loading)
	assert.Equal(t, Defer, Decide(storeRoute, state).Outcome)

	unblock()
	waitReady(t, f.resolver)

	state = f.resolver.State()
	assert.False(t, state.Loading)
	assert.Equal(t, entity.IdentityAuthenticated, state.Kind)
	assert.Equal(t, entity.RoleStoreOwner, state.Role)
	assert.Equal(t, Grant, Decide(storeRoute, state).Outcome)
}

func TestResolver_TokenRefreshDuringStartUsesCachedRole(t *testing.T) {
	f := newResolverFixtures(t)
	sess := newSession("owner@example.com")
	putJSON(t, f.store, constants.KeyUserProfile, entity.Profile{UserID: sess.User.ID, Role: entity.RoleStoreOwner})
	unblock := blockedProfile(t, f, sess.User.ID, entity.RoleStoreOwner)

	f.startRefreshingSession(sess)
	waitReady(t, f.resolver)

	state := f.resolver.State()
	assert.False(t, state.Loading)
	assert.Equal(t, entity.RoleStoreOwner, state.Role)

	unblock()
	assert.Equal(t, entity.RoleStoreOwner, awaitRole(t, f.resolver))
}

func TestResolver_CloseBeforeStart(t *testing.T) {
	f := newResolverFixtures(t)

	f.resolver.Close()

	select {
	case <-f.resolver.Ready():
	default:
		t.Fatal("ready stays open after close")
	}
	assert.False(t, f.resolver.State().Loading)

	// The provider mock has no expectations, so a late Start must not reach it.
	f.resolver.Start(context.Background())
}

func TestResolver_CacheOfAnotherUserIsIgnored(t *testing.T) {
	f := newResolverFixtures(t)
	sess := newSession("customer@example.com")
	putJSON(t, f.store, constants.KeyUserProfile, entity.Profile{UserID: uuid.New(), Role: entity.RoleAdmin})
	f.profiles.EXPECT().GetProfile(mock.Anything, sess.User.ID).
		Return(&entity.Profile{Role: entity.RoleCustomer}, nil)

	f.start(t, sess)

	assert.Equal(t, entity.RoleCustomer, f.resolver.State().Role)
}

func TestResolver_ContinueAsGuestIsIdempotent(t *testing.T) {
	f := newResolverFixtures(t)
	f.start(t, nil)
	ctx := context.Background()

	first, err := f.resolver.ContinueAsGuest(ctx)
	require.NoError(t, err)
	second, err := f.resolver.ContinueAsGuest(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "guest-1", first)

	state := f.resolver.State()
	assert.Equal(t, entity.IdentityGuest, state.Kind)
	assert.Equal(t, first, state.GuestID)
	assert.True(t, hasKey(t, f.store, constants.KeyGuestID))
}

func TestResolver_SignInFromGuest(t *testing.T) {
	f := newResolverFixtures(t)
	f.start(t, nil)
	ctx := context.Background()

	guestID, err := f.resolver.ContinueAsGuest(ctx)
	require.NoError(t, err)

	sess := newSession("owner@example.com")
	f.provider.EXPECT().SignInWithPassword(ctx, "owner@example.com", "Secret123!").Return(sess, nil)
	f.profiles.EXPECT().GetProfile(mock.Anything, sess.User.ID).
		Return(&entity.Profile{Role: entity.RoleStoreOwner}, nil)

	require.NoError(t, f.resolver.SignIn(ctx, "owner@example.com", "Secret123!"))

	state := f.resolver.State()
	assert.Equal(t, entity.IdentityAuthenticated, state.Kind)
	assert.Equal(t, sess.User.ID, state.UserID)
	assert.Equal(t, "owner@example.com", state.Email)
	assert.Empty(t, state.GuestID)
	assert.NotEqual(t, guestID, state.GuestID)
	assert.False(t, hasKey(t, f.store, constants.KeyGuestID), "the guest identifier is discarded")

	assert.Equal(t, entity.RoleStoreOwner, awaitRole(t, f.resolver))
}

func TestResolver_SignInInvalidCredentialsKeepsState(t *testing.T) {
	f := newResolverFixtures(t)
	f.start(t, nil)
	ctx := context.Background()

	guestID, err := f.resolver.ContinueAsGuest(ctx)
	require.NoError(t, err)

	f.provider.EXPECT().SignInWithPassword(ctx, "a@example.com", "wrong").
		Return(nil, domainerrors.ErrInvalidCredentials)

	err = f.resolver.SignIn(ctx, "a@example.com", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	state := f.resolver.State()
	assert.Equal(t, entity.IdentityGuest, state.Kind)
	assert.Equal(t, guestID, state.GuestID)
	assert.True(t, hasKey(t, f.store, constants.KeyGuestID))
}

func TestResolver_SignUpUsesRequestedRoleImmediately(t *testing.T) {
	f := newResolverFixtures(t)
	f.start(t, nil)
	ctx := context.Background()

	sess := newSession("new@example.com")
	release := make(chan struct{})
	f.provider.EXPECT().
		SignUp(ctx, "new@example.com", "Secret123!", entity.AccountMetadata{
			Role:      entity.RoleStoreOwner,
			FirstName: "Ram",
			LastName:  "Thapa",
		}).
		Return(sess, nil)
	f.profiles.EXPECT().GetProfile(mock.Anything, sess.User.ID).
		RunAndReturn(func(context.Context, uuid.UUID) (*entity.Profile, error) {
			<-release

			return &entity.Profile{Role: entity.RoleStoreOwner, FirstName: "Ram", LastName: "Thapa"}, nil
		})

	err := f.resolver.SignUp(ctx, "new@example.com", "Secret123!", entity.RoleStoreOwner,
		entity.AccountMetadata{Role: entity.RoleAdmin, FirstName: "Ram", LastName: "Thapa"})
	require.NoError(t, err)

	state := f.resolver.State()
	assert.Equal(t, entity.IdentityAuthenticated, state.Kind)
	assert.Equal(t, entity.RoleStoreOwner, state.Role, "the requested role wins over metadata")

	cached := readProfile(t, f.store)
	require.NotNil(t, cached)
	assert.Equal(t, sess.User.ID, cached.UserID)
	assert.Equal(t, entity.RoleStoreOwner, cached.Role)
	assert.Equal(t, "Ram", cached.FirstName)

	close(release)
	assert.Equal(t, entity.RoleStoreOwner, awaitRole(t, f.resolver))
}

func TestResolver_SignUpFailureIsRegistrationError(t *testing.T) {
	f := newResolverFixtures(t)
	f.start(t, nil)
	ctx := context.Background()

	f.provider.EXPECT().SignUp(ctx, "dup@example.com", "Secret123!", mock.Anything).
		Return(nil, errors.New("this email is already registered"))

	err := f.resolver.SignUp(ctx, "dup@example.com", "Secret123!", entity.RoleCustomer, entity.AccountMetadata{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrRegistration)
	assert.Contains(t, err.Error(), "already registered")
	assert.Equal(t, entity.IdentityAnonymous, f.resolver.State().Kind)
}

func TestResolver_SignUpRejectsUnknownRole(t *testing.T) {
	f := newResolverFixtures(t)

	err := f.resolver.SignUp(context.Background(), "x@example.com", "Secret123!", entity.Role("root"), entity.AccountMetadata{})
	assert.ErrorIs(t, err, domainerrors.ErrRegistration)
}

func TestResolver_SignOutClearsLocalStateEvenWhenRemoteFails(t *testing.T) {
	f := newResolverFixtures(t)
	sess := newSession("admin@example.com")
	f.profiles.EXPECT().GetProfile(mock.Anything, sess.User.ID).
		Return(&entity.Profile{Role: entity.RoleAdmin}, nil)
	f.start(t, sess)
	require.NotNil(t, readProfile(t, f.store))

	ctx := context.Background()
	f.provider.EXPECT().SignOut(ctx).Return(errors.New("network down"))

	require.NoError(t, f.resolver.SignOut(ctx))

	state := f.resolver.State()
	assert.Equal(t, entity.IdentityAnonymous, state.Kind)
	assert.Equal(t, uuid.Nil, state.UserID)
	assert.Empty(t, state.Role)
	assert.Nil(t, readProfile(t, f.store))
}

func TestResolver_ProfileFetchFailureKeepsLastKnownRole(t *testing.T) {
	f := newResolverFixtures(t)
	sess := newSession("owner@example.com")
	putJSON(t, f.store, constants.KeyUserProfile, entity.Profile{UserID: sess.User.ID, Role: entity.RoleStoreOwner})
	f.profiles.EXPECT().GetProfile(mock.Anything, sess.User.ID).
		Return(nil, errors.New("profile store unavailable"))

	f.start(t, sess)

	resolution := f.resolver.ResolveRole(context.Background(), sess.User.ID)
	assert.Equal(t, entity.RoleStoreOwner, resolution.Cached)

	select {
	case role, ok := <-resolution.Confirmed:
		require.True(t, ok)
		assert.Equal(t, entity.RoleStoreOwner, role)
	case <-time.After(2 * time.Second):
		t.Fatal("role was not confirmed")
	}

	assert.Equal(t, entity.RoleStoreOwner, f.resolver.State().Role)
	assert.Equal(t, entity.RoleStoreOwner, readProfile(t, f.store).Role)
}

func TestResolver_FetchFinishingAfterSignOutIsDiscarded(t *testing.T) {
	f := newResolverFixtures(t)
	f.start(t, nil)
	ctx := context.Background()

	sess := newSession("late@example.com")
	release := make(chan struct{})
	f.provider.EXPECT().SignInWithPassword(ctx, "late@example.com", "Secret123!").Return(sess, nil)
	f.provider.EXPECT().SignOut(ctx).Return(nil)
	f.profiles.EXPECT().GetProfile(mock.Anything, sess.User.ID).
		RunAndReturn(func(context.Context, uuid.UUID) (*entity.Profile, error) {
			<-release

			return &entity.Profile{Role: entity.RoleAdmin}, nil
		})

	require.NoError(t, f.resolver.SignIn(ctx, "late@example.com", "Secret123!"))
	resolution := f.resolver.ResolveRole(ctx, sess.User.ID)
	assert.Empty(t, resolution.Cached)

	require.NoError(t, f.resolver.SignOut(ctx))
	close(release)

	select {
	case _, ok := <-resolution.Confirmed:
		assert.False(t, ok, "a stale fetch delivers no role")
	case <-time.After(2 * time.Second):
		t.Fatal("stale fetch did not finish")
	}

	f.resolver.Close()
	state := f.resolver.State()
	assert.Equal(t, entity.IdentityAnonymous, state.Kind)
	assert.Empty(t, state.Role)
	assert.Nil(t, readProfile(t, f.store), "a stale fetch does not repopulate the cache")
}

func TestResolver_OverlappingTransitionFailsFast(t *testing.T) {
	f := newResolverFixtures(t)
	f.start(t, nil)
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	f.provider.EXPECT().SignInWithPassword(ctx, "slow@example.com", "Secret123!").
		RunAndReturn(func(context.Context, string, string) (*entity.AuthSession, error) {
			close(entered)
			<-release

			return nil, domainerrors.ErrInvalidCredentials
		})

	done := make(chan error, 1)
	go func() {
		done <- f.resolver.SignIn(ctx, "slow@example.com", "Secret123!")
	}()
	<-entered

	err := f.resolver.SignIn(ctx, "slow@example.com", "Secret123!")
	assert.ErrorIs(t, err, domainerrors.ErrSessionBusy)

	_, err = f.resolver.ContinueAsGuest(ctx)
	assert.ErrorIs(t, err, domainerrors.ErrSessionBusy)

	close(release)
	assert.ErrorIs(t, <-done, domainerrors.ErrInvalidCredentials)
}

func TestResolver_ProviderSignedOutEvent(t *testing.T) {
	f := newResolverFixtures(t)
	sess := newSession("admin@example.com")
	f.profiles.EXPECT().GetProfile(mock.Anything, sess.User.ID).
		Return(&entity.Profile{Role: entity.RoleAdmin}, nil)
	f.start(t, sess)
	require.NotNil(t, f.listener)

	f.listener(entity.AuthEvent{Type: entity.AuthEventSignedOut})

	assert.Equal(t, entity.IdentityAnonymous, f.resolver.State().Kind)
	assert.Nil(t, readProfile(t, f.store))
}

func TestResolver_ProviderSignedInEvent(t *testing.T) {
	f := newResolverFixtures(t)
	f.start(t, nil)

	sess := newSession("elsewhere@example.com")
	f.profiles.EXPECT().GetProfile(mock.Anything, sess.User.ID).
		Return(&entity.Profile{Role: entity.RoleCustomer}, nil)

	f.listener(entity.AuthEvent{Type: entity.AuthEventSignedIn, Session: sess})

	state := f.resolver.State()
	assert.Equal(t, entity.IdentityAuthenticated, state.Kind)
	assert.Equal(t, sess.User.ID, state.UserID)
	assert.Equal(t, entity.RoleCustomer, awaitRole(t, f.resolver))
}

func TestResolver_ProviderPanicBecomesError(t *testing.T) {
	f := newResolverFixtures(t)
	f.start(t, nil)
	ctx := context.Background()

	f.provider.EXPECT().SignInWithPassword(ctx, "boom@example.com", "Secret123!").
		RunAndReturn(func(context.Context, string, string) (*entity.AuthSession, error) {
			panic("unexpected nil")
		})

	err := f.resolver.SignIn(ctx, "boom@example.com", "Secret123!")
	assert.ErrorIs(t, err, domainerrors.ErrInternalError)
	assert.Equal(t, entity.IdentityAnonymous, f.resolver.State().Kind)

	_, err = f.resolver.ContinueAsGuest(ctx)
	assert.NoError(t, err, "the busy flag is released after a panic")
}
