// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"gahana/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to create an account.
type RegisterInput struct {
	Email     string
	Password  string
	Role      entity.Role
	FirstName string
	LastName  string
	Phone     string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// RefreshTokenInput carries the refresh token presented by a client.
type RefreshTokenInput struct {
	RefreshToken string
}

// LogoutInput carries the refresh token of the session to end.
type LogoutInput struct {
	RefreshToken string
}

// --- Output DTOs ---

// AuthOutput is a freshly opened session.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
	User         *entity.User
}

// RefreshTokenOutput is a new access token for an existing session.
type RefreshTokenOutput struct {
	AccessToken string
	ExpiresAt   time.Time
}

// UserUsecase is the identity provider and profile store of the storefront.
type UserUsecase interface {
	// Register creates an account with its profile and opens a session.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	RefreshToken(ctx context.Context, input *RefreshTokenInput) (*RefreshTokenOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error
	// GetSessionUser returns the account behind a validated access token.
	GetSessionUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	// PurgeExpiredSessions deletes expired refresh tokens and returns how many were removed.
	PurgeExpiredSessions(ctx context.Context) (int64, error)
}
