// Package dto holds the request and response bodies of the HTTP API.
package dto

import (
	"time"

	"gahana/internal/domain/entity"
	"gahana/internal/usecase"

	"github.com/google/uuid"
)

// SignUpRequest creates an account with a role-tagged profile.
type SignUpRequest struct {
	Email     string      `json:"email" validate:"required,email,max=254"`
	Password  string      `json:"password" validate:"required"`
	Role      entity.Role `json:"role" validate:"required,oneof=customer store_owner admin"`
	FirstName string      `json:"firstName" validate:"max=100"`
	LastName  string      `json:"lastName" validate:"max=100"`
	Phone     string      `json:"phone" validate:"omitempty,max=32"`
}

// ToInput converts the request to the use case input.
func (r *SignUpRequest) ToInput() *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Email:     r.Email,
		Password:  r.Password,
		Role:      r.Role,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
	}
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type SignOutRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// SessionResponse is returned by sign-in and sign-up. Its shape matches entity.AuthSession.
type SessionResponse struct {
	AccessToken  string              `json:"accessToken"`
	RefreshToken string              `json:"refreshToken"`
	ExpiresAt    time.Time           `json:"expiresAt"`
	User         SessionUserResponse `json:"user"`
}

type SessionUserResponse struct {
	ID       uuid.UUID              `json:"id"`
	Email    string                 `json:"email"`
	Metadata entity.AccountMetadata `json:"metadata"`
}

// NewSessionResponse builds the body of a freshly opened session.
func NewSessionResponse(out *usecase.AuthOutput) *SessionResponse {
	resp := &SessionResponse{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		ExpiresAt:    out.ExpiresAt,
	}
	if out.User != nil {
		resp.User = SessionUserResponse{ID: out.User.ID, Email: out.User.Email}
		if p := out.User.Profile; p != nil {
			resp.User.Metadata = entity.AccountMetadata{
				Role:      p.Role,
				FirstName: p.FirstName,
				LastName:  p.LastName,
				Phone:     p.Phone,
			}
		}
	}

	return resp
}

// ToEntity converts the body back into a client session.
func (r *SessionResponse) ToEntity() *entity.AuthSession {
	return &entity.AuthSession{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		ExpiresAt:    r.ExpiresAt,
		User: entity.SessionUser{
			ID:       r.User.ID,
			Email:    r.User.Email,
			Metadata: r.User.Metadata,
		},
	}
}

type RefreshResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// UserResponse is the account behind the current access token.
type UserResponse struct {
	ID        uuid.UUID        `json:"id"`
	Email     string           `json:"email"`
	Profile   *ProfileResponse `json:"profile,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

func NewUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Profile:   NewProfileResponse(user.Profile),
		CreatedAt: user.CreatedAt,
	}
}

type ProfileResponse struct {
	UserID    uuid.UUID   `json:"userId"`
	Role      entity.Role `json:"role"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Phone     string      `json:"phone,omitempty"`
	UpdatedAt time.Time   `json:"updatedAt,omitzero"`
}

// NewProfileResponse returns nil for a nil profile.
func NewProfileResponse(p *entity.Profile) *ProfileResponse {
	if p == nil {
		return nil
	}

	return &ProfileResponse{
		UserID:    p.UserID,
		Role:      p.Role,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r *ProfileResponse) ToEntity() *entity.Profile {
	return &entity.Profile{
		UserID:    r.UserID,
		Role:      r.Role,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		UpdatedAt: r.UpdatedAt,
	}
}
