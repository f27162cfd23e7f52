package command

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
	"github.com/seal-hub/seal-progress-hub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// LOGIN USER COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// LoginUserCommand contains login credentials.
type LoginUserCommand struct {
	Username string
	Password string
}

// Validate validates the command.
func (c LoginUserCommand) Validate() error {
	if c.Username == "" || c.Password == "" {
		return shared.NewDomainError("command", "LoginUser", shared.ErrEmptyValue, "username and password are required")
	}
	return nil
}

// LoginUserResult contains the session for the authenticated user.
type LoginUserResult struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// LoginUserHandler handles logins.
type LoginUserHandler struct {
	userRepo user.Repository
	sessions user.SessionStore
}

// NewLoginUserHandler creates a new handler.
func NewLoginUserHandler(userRepo user.Repository, sessions user.SessionStore) *LoginUserHandler {
	return &LoginUserHandler{userRepo: userRepo, sessions: sessions}
}

// Handle executes the login. An unknown username and a wrong password return
// the same error so the endpoint does not leak which usernames exist.
func (h *LoginUserHandler) Handle(ctx context.Context, cmd LoginUserCommand) (*LoginUserResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	// Lookup uses the canonical form registration stored: surrounding
	// whitespace stripped, case preserved. A malformed username is just a
	// failed login, not a validation error to leak.
	username, err := shared.NewUsername(cmd.Username)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	profile, err := h.userRepo.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(profile.PasswordHash, []byte(cmd.Password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}

	token, err := h.sessions.Create(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	return &LoginUserResult{
		UserID:   profile.ID.String(),
		Username: profile.Username.String(),
		Token:    token,
	}, nil
}
