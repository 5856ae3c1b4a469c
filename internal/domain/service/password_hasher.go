// Package service defines interfaces for core, stateless domain logic
// and for the external collaborators the domain talks to.
package service

// PasswordHasher defines the interface for password hashing and verification.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a hash to see if they match.
	Check(password, hash string) bool

	// ValidatePasswordStrength rejects passwords that do not meet the configured policy.
	ValidatePasswordStrength(password string) error
}
