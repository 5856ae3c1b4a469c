package session

import (
	"context"
	"log/slog"
	"sync"

	"gahana/internal/domain/constants"
	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/domain/service"
	"gahana/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// Params holds the collaborators of a Resolver.
type Params struct {
	fx.In

	Provider service.IdentityProvider
	Profiles service.ProfileStore
	Store    service.KVStore
	Logger   *slog.Logger

	// NewGuestID generates guest identifiers. Defaults to random UUIDs.
	NewGuestID func() string `optional:"true"`
}

// Resolver tracks the current identity of one client and its role.
//
// Transitions (SignIn, SignUp, SignOut, ContinueAsGuest) are serialized by a
// busy flag: a second one started while another is running fails with
// ErrSessionBusy. Role fetches run in the background and are tagged with the
// generation of the identity they were started for; a result whose identity
// has since changed is dropped.
type Resolver struct {
	provider   service.IdentityProvider
	profiles   service.ProfileStore
	store      service.KVStore
	logger     *slog.Logger
	newGuestID func() string

	mu      sync.Mutex
	state   State
	gen     uint64
	busy    bool
	closed  bool
	settled chan struct{} // closed when the latest role fetch finishes

	ready       chan struct{}
	startOnce   sync.Once
	unsubscribe func()
	wg          sync.WaitGroup
}

// RoleResolution is the two-phase answer of ResolveRole.
type RoleResolution struct {
	// Cached is the role known right now, possibly stale. Empty when unknown.
	Cached entity.Role
	// Confirmed delivers the role after the profile store was asked. On a
	// failed fetch it delivers the last known role. It is closed without a
	// value when the identity changed before the fetch finished.
	Confirmed <-chan entity.Role
}

// New creates a resolver in the Loading state. Call Start to settle it.
func New(params Params) *Resolver {
	newGuestID := params.NewGuestID
	if newGuestID == nil {
		newGuestID = uuid.NewString
	}

	return &Resolver{
		provider:   params.Provider,
		profiles:   params.Profiles,
		store:      params.Store,
		logger:     params.Logger,
		newGuestID: newGuestID,
		state:      State{Kind: entity.IdentityAnonymous, Loading: true},
		ready:      make(chan struct{}),
	}
}

// Start subscribes to provider events and checks for an existing session in
// the background. Ready is closed once the check has settled.
func (r *Resolver) Start(ctx context.Context) {
	r.startOnce.Do(func() {
		unsubscribe := r.provider.OnAuthStateChange(r.handleAuthEvent)

		r.mu.Lock()
		closed := r.closed
		if !closed {
			r.unsubscribe = unsubscribe
		}
		gen := r.gen
		r.mu.Unlock()

		if closed {
			unsubscribe()
			r.settleLoading()

			return
		}

		started := r.spawn("bootstrap", func() {
			defer r.settleLoading()

			r.bootstrap(context.WithoutCancel(ctx), gen)
		})
		if !started {
			r.settleLoading()
		}
	})
}

func (r *Resolver) settleLoading() {
	r.mu.Lock()
	r.state.Loading = false
	r.mu.Unlock()
	close(r.ready)
}

// Ready is closed when the startup session check has settled.
func (r *Resolver) Ready() <-chan struct{} {
	return r.ready
}

// WaitReady blocks until Ready is closed or ctx is done.
func (r *Resolver) WaitReady(ctx context.Context) error {
	select {
	case <-r.ready:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "session did not settle")
	}
}

// State returns a snapshot of the current identity.
func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.state.clone()
}

// SignIn authenticates with the identity provider. Rejected credentials come
// back as ErrInvalidCredentials and leave the state untouched. On success any
// guest identity is discarded and the role is resolved in the background.
func (r *Resolver) SignIn(ctx context.Context, email, password string) error {
	release, err := r.acquire()
	if err != nil {
		return err
	}
	defer release()

	var sess *entity.AuthSession
	err = r.guard("sign in", func() error {
		var signInErr error
		sess, signInErr = r.provider.SignInWithPassword(ctx, email, password)

		return signInErr
	})
	if err != nil {
		r.logger.Warn("Sign in failed", slog.String("email", email), slog.Any("error", err))

		return errors.Wrap(err, "sign in failed")
	}
	if sess == nil {
		return errors.Wrap(domainerrors.ErrInvalidCredentials, "identity provider returned no session")
	}

	gen := r.enterAuthenticated(ctx, sess, nil)
	r.startRoleFetch(ctx, gen, sess.User.ID)

	r.logger.Info("Signed in", slog.Any("user_id", sess.User.ID))

	return nil
}

// SignUp creates an account tagged with role and signs it in. The requested
// role and names are cached as the profile right away; a confirmation fetch
// follows in the background. Failures come back as ErrRegistration.
func (r *Resolver) SignUp(ctx context.Context, email, password string, role entity.Role, metadata entity.AccountMetadata) error {
	if !role.IsValid() {
		return domainerrors.ErrRegistration.WithDetails("unknown role " + role.String())
	}

	release, err := r.acquire()
	if err != nil {
		return err
	}
	defer release()

	metadata.Role = role

	var sess *entity.AuthSession
	err = r.guard("sign up", func() error {
		var signUpErr error
		sess, signUpErr = r.provider.SignUp(ctx, email, password, metadata)

		return signUpErr
	})
	if err != nil {
		r.logger.Warn("Sign up failed", slog.String("email", email), slog.Any("error", err))
		if errors.Is(err, domainerrors.ErrRegistration) {
			return err
		}

		return domainerrors.ErrRegistration.WithDetails(err.Error())
	}
	if sess == nil {
		return domainerrors.ErrRegistration.WithDetails("identity provider returned no session")
	}

	profile := &entity.Profile{
		UserID:    sess.User.ID,
		Role:      role,
		FirstName: metadata.FirstName,
		LastName:  metadata.LastName,
		Phone:     metadata.Phone,
	}
	gen := r.enterAuthenticated(ctx, sess, profile)

	if err := saveCachedProfile(ctx, r.store, profile); err != nil {
		r.logger.Warn("Failed to cache profile after sign up", slog.Any("error", err))
	}
	r.startRoleFetch(ctx, gen, sess.User.ID)

	r.logger.Info("Signed up", slog.Any("user_id", sess.User.ID), slog.String("role", role.String()))

	return nil
}

// SignOut returns to Anonymous. Local state is cleared first and always; a
// failed remote invalidation is logged and not returned.
func (r *Resolver) SignOut(ctx context.Context) error {
	release, err := r.acquire()
	if err != nil {
		return err
	}
	defer release()

	r.mu.Lock()
	userID := r.state.UserID
	r.resetLocked()
	r.mu.Unlock()

	r.clearLocal(ctx)

	err = r.guard("sign out", func() error {
		return r.provider.SignOut(ctx)
	})
	if err != nil {
		r.logger.Warn("Remote sign out failed, local session cleared",
			slog.Any("user_id", userID),
			slog.Any("error", errors.Wrap(domainerrors.ErrSignOutRemote, err.Error())),
		)
	}

	r.logger.Info("Signed out", slog.Any("user_id", userID))

	return nil
}

// ContinueAsGuest enters the Guest state. Calling it again, also from a later
// client run, keeps the same identifier until a sign-in or sign-out clears it.
func (r *Resolver) ContinueAsGuest(ctx context.Context) (string, error) {
	release, err := r.acquire()
	if err != nil {
		return "", err
	}
	defer release()

	r.mu.Lock()
	current := r.state
	r.mu.Unlock()

	switch current.Kind {
	case entity.IdentityGuest:
		return current.GuestID, nil
	case entity.IdentityAuthenticated:
		return "", domainerrors.ErrConflict.WithDetails("already signed in")
	}

	guestID, err := loadGuestID(ctx, r.store)
	if err != nil {
		return "", err
	}
	if guestID == "" {
		guestID = r.newGuestID()
		if err := saveGuestID(ctx, r.store, guestID); err != nil {
			return "", err
		}
	}

	r.mu.Lock()
	r.gen++
	r.state = State{Kind: entity.IdentityGuest, Loading: r.state.Loading, GuestID: guestID, Role: entity.RoleCustomer}
	r.mu.Unlock()

	r.logger.Info("Continuing as guest", slog.String("guest_id", guestID))

	return guestID, nil
}

// ResolveRole returns the role of userID in two phases: the value known now
// (in memory or cached locally) and a channel confirming it from the profile
// store. The confirmed role also updates the state and the local cache.
func (r *Resolver) ResolveRole(ctx context.Context, userID uuid.UUID) RoleResolution {
	r.mu.Lock()
	gen := r.gen
	cached := entity.Role("")
	if r.state.Kind == entity.IdentityAuthenticated && r.state.UserID == userID {
		cached = r.state.Role
	}
	r.mu.Unlock()

	if cached == "" {
		cached = r.applyCachedRole(ctx, gen, userID)
	}

	return RoleResolution{
		Cached:    cached,
		Confirmed: r.startRoleFetch(ctx, gen, userID),
	}
}

// AwaitRole waits for the latest background role fetch and returns the role then known.
func (r *Resolver) AwaitRole(ctx context.Context) (entity.Role, error) {
	r.mu.Lock()
	settled := r.settled
	r.mu.Unlock()

	if settled != nil {
		select {
		case <-settled:
		case <-ctx.Done():
			return "", errors.Wrap(ctx.Err(), "role not resolved")
		}
	}

	return r.State().EffectiveRole(), nil
}

// Close stops listening for provider events and waits for background fetches.
// A resolver closed before Start settles immediately and never starts.
func (r *Resolver) Close() {
	r.mu.Lock()
	r.closed = true
	unsubscribe := r.unsubscribe
	r.unsubscribe = nil
	r.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	r.startOnce.Do(r.settleLoading)
	r.wg.Wait()
}

func (r *Resolver) bootstrap(ctx context.Context, gen uint64) {
	var sess *entity.AuthSession
	err := r.guard("session check", func() error {
		var getErr error
		sess, getErr = r.provider.GetSession(ctx)

		return getErr
	})
	if err != nil {
		r.logger.Warn("Initial session check failed", slog.Any("error", err))
	}

	if sess != nil {
		r.bootstrapAuthenticated(ctx, gen, sess)

		return
	}

	guestID, err := loadGuestID(ctx, r.store)
	if err != nil {
		r.logger.Warn("Failed to restore guest session", slog.Any("error", err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.gen == gen && guestID != "" {
		r.gen++
		r.state = State{Kind: entity.IdentityGuest, Loading: true, GuestID: guestID, Role: entity.RoleCustomer}
	}
}

// bootstrapAuthenticated returns once a role is known, either from the local
// cache or from the first profile fetch, so Loading covers that window.
func (r *Resolver) bootstrapAuthenticated(ctx context.Context, gen uint64, sess *entity.AuthSession) {
	r.mu.Lock()
	changed := r.gen != gen
	sameUser := r.state.Kind == entity.IdentityAuthenticated && r.state.UserID == sess.User.ID
	role, settled := r.state.Role, r.settled
	r.mu.Unlock()

	if changed {
		if !sameUser {
			return
		}
		// A provider event (token refresh inside GetSession) already switched
		// to this user and started resolving the role.
		if role != "" {
			return
		}
		if settled != nil {
			<-settled

			return
		}
	}

	gen = r.enterAuthenticated(ctx, sess, nil)
	resolution := r.ResolveRole(ctx, sess.User.ID)

	if resolution.Cached == "" {
		<-resolution.Confirmed
	}

	r.logger.Debug("Session restored", slog.Any("user_id", sess.User.ID), slog.Uint64("generation", gen))
}

// enterAuthenticated switches to the signed-in user of sess and discards any
// guest identity. A repeated switch to the same user keeps the generation, so
// a provider event racing with SignIn does not invalidate its fetch.
func (r *Resolver) enterAuthenticated(ctx context.Context, sess *entity.AuthSession, profile *entity.Profile) uint64 {
	r.mu.Lock()
	if r.state.Kind == entity.IdentityAuthenticated && r.state.UserID == sess.User.ID {
		if profile != nil {
			r.state.Role = profile.Role
			r.state.Profile = profile
		}
		gen := r.gen
		r.mu.Unlock()

		return gen
	}

	loading := r.state.Loading
	r.gen++
	r.settled = nil
	r.state = State{
		Kind:    entity.IdentityAuthenticated,
		Loading: loading,
		UserID:  sess.User.ID,
		Email:   sess.User.Email,
	}
	if profile != nil {
		r.state.Role = profile.Role
		r.state.Profile = profile
	}
	gen := r.gen
	r.mu.Unlock()

	if err := r.store.Delete(ctx, constants.KeyGuestID); err != nil {
		r.logger.Warn("Failed to discard guest id", slog.Any("error", err))
	}

	return gen
}

// applyCachedRole reads the local profile cache and, if it belongs to userID
// and the identity is unchanged, adopts it as the in-memory role.
func (r *Resolver) applyCachedRole(ctx context.Context, gen uint64, userID uuid.UUID) entity.Role {
	profile, err := loadCachedProfile(ctx, r.store, userID)
	if err != nil {
		r.logger.Warn("Ignoring unreadable profile cache", slog.Any("error", err))

		return ""
	}
	if profile == nil {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isCurrentLocked(gen, userID) && r.state.Role == "" {
		r.state.Role = profile.Role
		r.state.Profile = profile
	}

	return profile.Role
}

func (r *Resolver) startRoleFetch(ctx context.Context, gen uint64, userID uuid.UUID) <-chan entity.Role {
	confirmed := make(chan entity.Role, 1)
	done := make(chan struct{})

	r.mu.Lock()
	if r.gen == gen {
		r.settled = done
	}
	r.mu.Unlock()

	fetchCtx := context.WithoutCancel(ctx)
	started := r.spawn("role fetch", func() {
		defer close(done)
		defer close(confirmed)

		if role, ok := r.fetchRole(fetchCtx, gen, userID); ok {
			confirmed <- role
		}
	})
	if !started {
		close(done)
		close(confirmed)
	}

	return confirmed
}

// fetchRole asks the profile store for the role of userID. ok is false when
// the identity changed while the fetch was running.
func (r *Resolver) fetchRole(ctx context.Context, gen uint64, userID uuid.UUID) (entity.Role, bool) {
	var profile *entity.Profile
	err := r.guard("profile fetch", func() error {
		var getErr error
		profile, getErr = r.profiles.GetProfile(ctx, userID)

		return getErr
	})
	if err == nil && (profile == nil || !profile.Role.IsValid()) {
		err = errors.New("profile store returned no role")
	}

	r.mu.Lock()
	if !r.isCurrentLocked(gen, userID) {
		r.mu.Unlock()
		r.logger.Debug("Discarding stale role fetch", slog.Any("user_id", userID))

		return "", false
	}

	if err != nil {
		lastKnown := r.state.Role
		r.mu.Unlock()

		r.logger.Warn("Keeping last known role",
			slog.Any("user_id", userID),
			slog.String("role", lastKnown.String()),
			slog.Any("error", errors.Wrap(domainerrors.ErrProfileFetch, err.Error())),
		)

		return lastKnown, true
	}

	profile.UserID = userID
	r.state.Role = profile.Role
	r.state.Profile = profile
	r.mu.Unlock()

	if err := saveCachedProfile(ctx, r.store, profile); err != nil {
		r.logger.Warn("Failed to cache profile", slog.Any("error", err))
	}

	return profile.Role, true
}

func (r *Resolver) handleAuthEvent(event entity.AuthEvent) {
	ctx := context.Background()

	switch event.Type {
	case entity.AuthEventSignedOut:
		r.mu.Lock()
		wasAuthenticated := r.state.Kind == entity.IdentityAuthenticated
		if wasAuthenticated {
			r.resetLocked()
		}
		r.mu.Unlock()

		if wasAuthenticated {
			r.logger.Info("Session ended by identity provider")
			r.clearLocal(ctx)
		}
	case entity.AuthEventSignedIn, entity.AuthEventTokenRefreshed:
		if event.Session == nil {
			return
		}

		r.mu.Lock()
		same := r.state.Kind == entity.IdentityAuthenticated && r.state.UserID == event.Session.User.ID
		r.mu.Unlock()
		if same {
			return
		}

		r.enterAuthenticated(ctx, event.Session, nil)
		r.ResolveRole(ctx, event.Session.User.ID)
	}
}

// resetLocked moves to Anonymous and invalidates in-flight fetches. r.mu must be held.
func (r *Resolver) resetLocked() {
	r.gen++
	r.state = State{Kind: entity.IdentityAnonymous, Loading: r.state.Loading}
	r.settled = nil
}

func (r *Resolver) isCurrentLocked(gen uint64, userID uuid.UUID) bool {
	return r.gen == gen && r.state.Kind == entity.IdentityAuthenticated && r.state.UserID == userID
}

func (r *Resolver) clearLocal(ctx context.Context) {
	for _, key := range []string{constants.KeyUserProfile, constants.KeyGuestID} {
		if err := r.store.Delete(ctx, key); err != nil {
			r.logger.Warn("Failed to clear local session data", slog.String("key", key), slog.Any("error", err))
		}
	}
}

func (r *Resolver) acquire() (func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.busy {
		return nil, domainerrors.ErrSessionBusy
	}
	r.busy = true

	return func() {
		r.mu.Lock()
		r.busy = false
		r.mu.Unlock()
	}, nil
}

// spawn runs fn in a tracked goroutine. It returns false after Close.
func (r *Resolver) spawn(op string, fn func()) bool {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()

		return false
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		defer func() {
			if recovered := recover(); recovered != nil {
				r.logger.Error("Session task failed", slog.String("op", op), slog.Any("error", errors.FromPanic(recovered)))
			}
		}()

		fn()
	}()

	return true
}

// guard converts a panic raised by a collaborator into ErrInternalError.
func (r *Resolver) guard(op string, fn func() error) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			r.logger.Error("Session operation failed", slog.String("op", op), slog.Any("error", errors.FromPanic(recovered)))
			err = domainerrors.ErrInternalError.WithDetails(op + " failed unexpectedly")
		}
	}()

	return fn()
}
