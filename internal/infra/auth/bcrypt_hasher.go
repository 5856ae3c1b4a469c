package auth

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"gahana/config"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/domain/service"
	"gahana/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

// forbiddenWords may not appear anywhere in a password, case-insensitively.
var forbiddenWords = []string{"password", "admin", "gahana", "qwerty", "123456"}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy config.PasswordStrengthConfig
}

// DefaultPasswordPolicy is used when the configuration carries no passwordStrength section.
var DefaultPasswordPolicy = config.PasswordStrengthConfig{
	MinLength:        8,
	MaxLength:        72,
	RequireUppercase: true,
	RequireLowercase: true,
	RequireNumbers:   true,
	RequireSpecial:   true,
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}

	policy := DefaultPasswordPolicy
	if cfg.PasswordStrength != nil {
		policy = *cfg.PasswordStrength
	}

	return NewBcryptHasherWithCost(cost, policy)
}

// NewBcryptHasherWithCost creates a hasher with an explicit cost, clamped to bcrypt's range.
func NewBcryptHasherWithCost(cost int, policy config.PasswordStrengthConfig) service.PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}

	return &bcryptHasher{cost: cost, policy: policy}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength checks password against the configured policy and
// returns ErrPasswordStrength describing the first rule it breaks.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	p := h.policy

	if n := utf8.RuneCountInString(password); n < p.MinLength {
		return weak(fmt.Sprintf("password must be at least %d characters long", p.MinLength))
	}
	// bcrypt ignores everything past 72 bytes.
	if p.MaxLength > 0 && len(password) > p.MaxLength {
		return weak(fmt.Sprintf("password must be at most %d bytes long", p.MaxLength))
	}
	if p.RequireLowercase && !hasRune(password, unicode.IsLower) {
		return weak("password must contain at least one lowercase letter")
	}
	if p.RequireUppercase && !hasRune(password, unicode.IsUpper) {
		return weak("password must contain at least one uppercase letter")
	}
	if p.RequireNumbers && !hasRune(password, unicode.IsDigit) {
		return weak("password must contain at least one number")
	}
	if p.RequireSpecial && !hasRune(password, isSpecial) {
		return weak("password must contain at least one special character")
	}
	if containsForbiddenWords(password, forbiddenWords) {
		return weak("password contains forbidden words")
	}

	return nil
}

func weak(details string) error {
	return domainerrors.ErrPasswordStrength.WithDetails(details)
}

func hasRune(s string, pred func(rune) bool) bool {
	return strings.IndexFunc(s, pred) >= 0
}

func isSpecial(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func containsForbiddenWords(password string, words []string) bool {
	lower := strings.ToLower(password)
	for _, word := range words {
		if strings.Contains(lower, word) {
			return true
		}
	}

	return false
}
