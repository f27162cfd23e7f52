package postgres

import (
	"context"
	"fmt"

	"github.com/seal-hub/seal-progress-hub/internal/domain/shared"
	"github.com/seal-hub/seal-progress-hub/internal/domain/user"
)

// ProfileRepository implements user.Repository for PostgreSQL.
type ProfileRepository struct {
	conn *Connection
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(conn *Connection) *ProfileRepository {
	return &ProfileRepository{conn: conn}
}

// Create stores a new profile.
func (r *ProfileRepository) Create(ctx context.Context, profile *user.Profile) error {
	_, err := r.conn.Exec(ctx, `
		INSERT INTO profiles (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, profile.ID.String(), profile.Username.String(), profile.PasswordHash, profile.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// ByID returns the profile with the given ID.
func (r *ProfileRepository) ByID(ctx context.Context, id shared.UserID) (*user.Profile, error) {
	return r.scanOne(r.conn.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at
		FROM profiles
		WHERE id = $1
	`, id.String()))
}

// ByUsername returns the profile with the given username. Case-sensitive.
func (r *ProfileRepository) ByUsername(ctx context.Context, username shared.Username) (*user.Profile, error) {
	return r.scanOne(r.conn.QueryRow(ctx, `
		SELECT id, username, password_hash, created_at
		FROM profiles
		WHERE username = $1
	`, username.String()))
}

// ListAll returns every registered profile.
func (r *ProfileRepository) ListAll(ctx context.Context) ([]user.Profile, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT id, username, password_hash, created_at
		FROM profiles
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []user.Profile
	for rows.Next() {
		var p user.Profile
		var id, username string
		if err := rows.Scan(&id, &username, &p.PasswordHash, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		p.ID = shared.UserID(id)
		p.Username = shared.Username(username)
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	return profiles, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ProfileRepository) scanOne(row rowScanner) (*user.Profile, error) {
	var p user.Profile
	var id, username string
	err := row.Scan(&id, &username, &p.PasswordHash, &p.CreatedAt)
	if IsNoRows(err) {
		return nil, shared.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}
	p.ID = shared.UserID(id)
	p.Username = shared.Username(username)
	return &p, nil
}
