package user

import (
	"context"

	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
)

// Repository persists user profiles.
type Repository interface {
	// Create stores a new profile. Returns shared.ErrUsernameTaken when the
	// username is already in use.
	Create(ctx context.Context, profile *Profile) error

	// ByID returns the profile with the given ID.
	ByID(ctx context.Context, id shared.UserID) (*Profile, error)

	// ByUsername returns the profile with the given username.
	// Lookup is case-sensitive.
	ByUsername(ctx context.Context, username shared.Username) (*Profile, error)

	// ListAll returns every registered profile. Feeds the leaderboard, which
	// includes users with zero progress.
	ListAll(ctx context.Context) ([]Profile, error)
}

// SessionStore is the port for opaque session tokens. Sessions live outside
// the core's invariants; losing one only forces a re-login.
type SessionStore interface {
	// Create mints a session token for the user.
	Create(ctx context.Context, userID shared.UserID) (token string, err error)

	// Resolve returns the user behind a token, or shared.ErrSessionNotFound.
	Resolve(ctx context.Context, token string) (shared.UserID, error)

	// Revoke invalidates a token. Revoking an unknown token is a no-op.
	Revoke(ctx context.Context, token string) error
}
