// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Authentication is an email/password credential of a user.
type Authentication struct {
	ID           uuid.UUID // Credential record ID.
	UserID       uuid.UUID // Owner of the credential.
	Provider     string    // Always "email" for now.
	PasswordHash string    // bcrypt hash.
	CreatedAt    time.Time
}

// ProviderEmail is the only credential provider.
const ProviderEmail = "email"

// RefreshToken represents a long-lived, authorized user session.
// It is used to obtain a new access token after the old one expires, without requiring credentials.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID for this specific refresh token record.
	UserID    uuid.UUID // Links this session to the User it belongs to.
	TokenHash string    // SHA-256 hash of the raw refresh token.
	ExpiresAt time.Time // When this refresh token becomes invalid.
	CreatedAt time.Time // When the session was created.
}
