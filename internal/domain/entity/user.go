// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account. Guests never have one.
type User struct {
	ID        uuid.UUID // Global identifier of the account.
	Email     string    // Login identifier.
	Profile   *Profile  // Role-tagged profile, nil until loaded.
	CreatedAt time.Time // When the account was created.
	UpdatedAt time.Time // Last modification of the account.
}

// Role returns the profile role, or customer when no profile is attached.
func (u *User) Role() Role {
	if u == nil || u.Profile == nil {
		return RoleCustomer
	}

	return u.Profile.Role
}

// Profile is the role-tagged record keyed by user ID.
type Profile struct {
	UserID    uuid.UUID `json:"userId"`
	Role      Role      `json:"role"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// AccountMetadata is attached to an account when it is created.
// Role is fixed at this point and never changes afterwards.
type AccountMetadata struct {
	Role      Role   `json:"role"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}
