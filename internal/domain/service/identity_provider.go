package service

import (
	"context"

	"gahana/internal/domain/entity"

	"github.com/google/uuid"
)

// IdentityProvider is the remote account service a client session talks to.
type IdentityProvider interface {
	// SignInWithPassword returns ErrInvalidCredentials when the provider rejects the credentials.
	SignInWithPassword(ctx context.Context, email, password string) (*entity.AuthSession, error)

	// SignUp creates an account tagged with metadata. Failures wrap ErrRegistration.
	SignUp(ctx context.Context, email, password string, metadata entity.AccountMetadata) (*entity.AuthSession, error)

	// SignOut invalidates the current session remotely and forgets it locally.
	SignOut(ctx context.Context) error

	// GetSession returns the current session, or nil when there is none.
	GetSession(ctx context.Context) (*entity.AuthSession, error)

	// OnAuthStateChange registers a listener and returns a function that removes it.
	OnAuthStateChange(listener func(entity.AuthEvent)) (unsubscribe func())
}

// ProfileStore looks up role-tagged profiles by user ID.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
}
