// Package user contains the profile entity and the session port. Profiles
// exist so the leaderboard can list every registered user, with or without
// progress.
package user

import (
	"time"

	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// Profile is a registered user.
type Profile struct {
	// ID is the system identifier.
	ID shared.UserID

	// Username is the unique public name. Case-sensitive.
	Username shared.Username

	// PasswordHash is the bcrypt hash of the password. Never the password.
	PasswordHash []byte

	// CreatedAt is the registration time.
	CreatedAt time.Time
}

// NewProfile creates a profile with a validated username and a precomputed
// password hash.
func NewProfile(id shared.UserID, username shared.Username, passwordHash []byte, createdAt time.Time) (*Profile, error) {
	if id.IsEmpty() {
		return nil, shared.NewDomainError("user", "NewProfile", shared.ErrEmptyValue, "user ID is required")
	}
	if !username.IsValid() {
		return nil, shared.ErrInvalidUsername
	}
	if len(passwordHash) == 0 {
		return nil, shared.NewDomainError("user", "NewProfile", shared.ErrEmptyValue, "password hash is required")
	}
	return &Profile{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt.UTC(),
	}, nil
}

// ValidatePassword checks the password policy before hashing.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return shared.ErrWeakPassword
	}
	return nil
}
