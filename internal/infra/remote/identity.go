package remote

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"gahana/internal/delivery/http/dto"
	"gahana/internal/domain/constants"
	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/domain/service"
	"gahana/internal/errors"
)

// SignInWithPassword opens a session. Explicit sign-ins are not echoed to
// auth state listeners; the caller already knows.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*entity.AuthSession, error) {
	var resp dto.SessionResponse
	err := c.do(ctx, http.MethodPost, "/auth/signin", "", &dto.SignInRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, errors.Wrap(err, "sign in request failed")
	}

	sess := resp.ToEntity()
	c.setSession(ctx, sess)

	return sess, nil
}

// SignUp creates the account and opens its session.
func (c *Client) SignUp(ctx context.Context, email, password string, metadata entity.AccountMetadata) (*entity.AuthSession, error) {
	req := &dto.SignUpRequest{
		Email:     email,
		Password:  password,
		Role:      metadata.Role,
		FirstName: metadata.FirstName,
		LastName:  metadata.LastName,
		Phone:     metadata.Phone,
	}

	var resp dto.SessionResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signup", "", req, &resp); err != nil {
		if errors.Is(err, domainerrors.ErrRegistration) {
			return nil, err
		}

		return nil, errors.Wrap(domainerrors.ErrRegistration.WithDetails(err.Error()), "sign up request failed")
	}

	sess := resp.ToEntity()
	c.setSession(ctx, sess)

	return sess, nil
}

// SignOut revokes the session remotely and always forgets it locally.
func (c *Client) SignOut(ctx context.Context) error {
	sess, err := c.currentSession(ctx)
	if err != nil {
		c.logger.Warn("Stored session unreadable during sign out", slog.Any("error", err))
	}

	var remoteErr error
	if sess != nil {
		remoteErr = c.authorized(ctx, http.MethodPost, "/auth/signout", &dto.SignOutRequest{RefreshToken: sess.RefreshToken}, nil)
	}

	c.clearSession(ctx)

	return errors.Wrap(remoteErr, "sign out request failed")
}

// GetSession returns the stored session. An expired access token is
// refreshed first; a session the server no longer accepts is dropped.
func (c *Client) GetSession(ctx context.Context) (*entity.AuthSession, error) {
	sess, err := c.currentSession(ctx)
	if err != nil || sess == nil {
		return nil, err
	}

	if c.now().Before(sess.ExpiresAt) {
		return sess, nil
	}

	refreshed, err := c.refresh(ctx, sess)
	if errors.Is(err, domainerrors.ErrUnauthorized) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return refreshed, nil
}

// OnAuthStateChange registers listener for token refreshes and sign-outs.
func (c *Client) OnAuthStateChange(listener func(entity.AuthEvent)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = listener

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// authorized sends a bearer request, refreshing the access token once when
// the server rejects it.
func (c *Client) authorized(ctx context.Context, method, path string, in, out any) error {
	sess, err := c.currentSession(ctx)
	if err != nil {
		return err
	}
	if sess == nil {
		return domainerrors.ErrUnauthorized.WithDetails("no session")
	}

	err = c.do(ctx, method, path, sess.AccessToken, in, out)
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		return err
	}

	refreshed, err := c.refresh(ctx, sess)
	if err != nil {
		return err
	}

	return c.do(ctx, method, path, refreshed.AccessToken, in, out)
}

// refresh trades the refresh token for a new access token. When the server
// rejects the refresh token the session is cleared and ErrUnauthorized returned.
func (c *Client) refresh(ctx context.Context, sess *entity.AuthSession) (*entity.AuthSession, error) {
	var resp dto.RefreshResponse
	err := c.do(ctx, http.MethodPost, "/auth/refresh", "", &dto.RefreshRequest{RefreshToken: sess.RefreshToken}, &resp)
	if errors.Is(err, domainerrors.ErrRefreshTokenInvalid) || errors.Is(err, domainerrors.ErrUnauthorized) {
		c.logger.Info("Session expired", slog.Any("user_id", sess.User.ID))
		c.clearSession(ctx)

		return nil, errors.Wrap(domainerrors.ErrUnauthorized, "session expired")
	}
	if err != nil {
		return nil, errors.Wrap(err, "token refresh failed")
	}

	refreshed := *sess
	refreshed.AccessToken = resp.AccessToken
	refreshed.ExpiresAt = resp.ExpiresAt
	c.setSession(ctx, &refreshed)
	c.emit(entity.AuthEvent{Type: entity.AuthEventTokenRefreshed, Session: &refreshed})

	return &refreshed, nil
}

func (c *Client) currentSession(ctx context.Context) (*entity.AuthSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return c.session, nil
	}

	raw, err := c.store.Get(ctx, constants.KeyAuthSession)
	if errors.Is(err, service.ErrKeyNotFound) {
		c.loaded = true

		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read stored session")
	}

	var sess entity.AuthSession
	if err := json.Unmarshal(raw, &sess); err != nil || sess.RefreshToken == "" {
		c.logger.Warn("Discarding unreadable stored session")
		c.loaded = true

		return nil, nil
	}

	c.session = &sess
	c.loaded = true

	return c.session, nil
}

func (c *Client) setSession(ctx context.Context, sess *entity.AuthSession) {
	c.mu.Lock()
	c.session = sess
	c.loaded = true
	c.mu.Unlock()

	raw, err := json.Marshal(sess)
	if err == nil {
		err = c.store.Set(ctx, constants.KeyAuthSession, raw)
	}
	if err != nil {
		c.logger.Warn("Failed to persist session", slog.Any("error", err))
	}
}

// clearSession forgets the session and tells listeners when there was one.
func (c *Client) clearSession(ctx context.Context) {
	c.mu.Lock()
	had := c.session != nil
	c.session = nil
	c.loaded = true
	c.mu.Unlock()

	if err := c.store.Delete(ctx, constants.KeyAuthSession); err != nil {
		c.logger.Warn("Failed to delete stored session", slog.Any("error", err))
	}

	if had {
		c.emit(entity.AuthEvent{Type: entity.AuthEventSignedOut})
	}
}

func (c *Client) emit(event entity.AuthEvent) {
	c.mu.Lock()
	listeners := make([]func(entity.AuthEvent), 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(event)
	}
}
