// Package session resolves who is acting on a client (nobody, a guest or a
// signed-in user) and which role they hold.
package session

import (
	"gahana/internal/domain/entity"

	"github.com/google/uuid"
)

// State is a snapshot of the resolver.
type State struct {
	Kind entity.IdentityKind
	// Loading is set until the startup session check has settled. No role
	// decision should be made while it is set.
	Loading bool
	GuestID string
	UserID  uuid.UUID
	Email   string
	// Role is empty while an authenticated user's role is still unknown.
	Role    entity.Role
	Profile *entity.Profile
}

// EffectiveRole is the role used for access decisions. Guests act as customers.
func (s State) EffectiveRole() entity.Role {
	if s.Kind == entity.IdentityGuest {
		return entity.RoleCustomer
	}

	return s.Role
}

// IsAuthenticated reports whether a user is signed in.
func (s State) IsAuthenticated() bool {
	return s.Kind == entity.IdentityAuthenticated
}

func (s State) clone() State {
	if s.Profile != nil {
		p := *s.Profile
		s.Profile = &p
	}

	return s
}
