package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdentityKind says who is acting: nobody, a guest or a signed-in user.
type IdentityKind int

const (
	IdentityAnonymous IdentityKind = iota
	IdentityGuest
	IdentityAuthenticated
)

func (k IdentityKind) String() string {
	switch k {
	case IdentityGuest:
		return "guest"
	case IdentityAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// AuthSession is the server session held by a client after sign-in or sign-up.
type AuthSession struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresAt    time.Time   `json:"expiresAt"`
	User         SessionUser `json:"user"`
}

// SessionUser is the part of the account the identity provider returns with a session.
type SessionUser struct {
	ID       uuid.UUID       `json:"id"`
	Email    string          `json:"email"`
	Metadata AccountMetadata `json:"metadata"`
}

// AuthEventType enumerates identity provider notifications.
type AuthEventType string

const (
	AuthEventSignedIn       AuthEventType = "signed_in"
	AuthEventSignedOut      AuthEventType = "signed_out"
	AuthEventTokenRefreshed AuthEventType = "token_refreshed"
)

// AuthEvent is delivered to OnAuthStateChange subscribers. Session is nil for sign-out.
type AuthEvent struct {
	Type    AuthEventType
	Session *AuthSession
}
