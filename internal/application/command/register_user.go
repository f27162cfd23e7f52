package command

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
	"github.com/seal-hub/seal-progress-hub/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER USER COMMAND
// Creates a profile and an initial session. A fresh profile already appears
// on the leaderboard with zero progress.
// ══════════════════════════════════════════════════════════════════════════════

// RegisterUserCommand contains signup data.
type RegisterUserCommand struct {
	Username string
	Password string
}

// Validate validates the command.
func (c RegisterUserCommand) Validate() error {
	if _, err := shared.NewUsername(c.Username); err != nil {
		return err
	}
	return user.ValidatePassword(c.Password)
}

// RegisterUserResult contains the new profile and session token.
type RegisterUserResult struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// RegisterUserHandler handles user registration.
type RegisterUserHandler struct {
	userRepo user.Repository
	sessions user.SessionStore
	now      func() time.Time
}

// NewRegisterUserHandler creates a new handler.
func NewRegisterUserHandler(userRepo user.Repository, sessions user.SessionStore) *RegisterUserHandler {
	return &RegisterUserHandler{
		userRepo: userRepo,
		sessions: sessions,
		now:      time.Now,
	}
}

// Handle executes the registration.
func (h *RegisterUserHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*RegisterUserResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	username, _ := shared.NewUsername(cmd.Username)

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.WrapError("command", "RegisterUser", shared.ErrInvalidInput, "password hashing failed", err)
	}

	profile, err := user.NewProfile(shared.UserID(uuid.NewString()), username, hash, h.now())
	if err != nil {
		return nil, err
	}

	if err := h.userRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	token, err := h.sessions.Create(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	return &RegisterUserResult{
		UserID:   profile.ID.String(),
		Username: profile.Username.String(),
		Token:    token,
	}, nil
}
