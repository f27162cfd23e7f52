package postgres

import (
	"context"
	"fmt"
)

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: PROFILES, CATALOG, PROGRESS
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create profiles, seals, objectives, and progress tables
-- Version: 001

CREATE TABLE IF NOT EXISTS profiles (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    username VARCHAR(30) NOT NULL UNIQUE,
    password_hash BYTEA NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_profiles_username ON profiles(username);

-- Seals are read-only to this service; administration seeds them.
CREATE TABLE IF NOT EXISTS seals (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    slug VARCHAR(64) NOT NULL UNIQUE,
    name VARCHAR(100) NOT NULL,
    description TEXT,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_seals_created_at ON seals(created_at);

CREATE TABLE IF NOT EXISTS seal_objectives (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    seal_id UUID NOT NULL REFERENCES seals(id) ON DELETE CASCADE,
    title VARCHAR(200) NOT NULL,
    description TEXT,
    sort_order INTEGER NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    UNIQUE(seal_id, sort_order)
);

CREATE INDEX IF NOT EXISTS idx_seal_objectives_seal_id ON seal_objectives(seal_id);

-- Completion records. A row exists only once the objective is completed;
-- the unique (user_id, objective_id) key plus ON CONFLICT DO NOTHING on the
-- write path makes completion an atomic insert-if-absent.
CREATE TABLE IF NOT EXISTS user_objective_progress (
    user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    objective_id UUID NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT TRUE,
    completed_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    PRIMARY KEY (user_id, objective_id),
    CONSTRAINT completed_is_terminal CHECK (completed = TRUE)
);

CREATE INDEX IF NOT EXISTS idx_progress_user_id ON user_objective_progress(user_id);
`

// migrations lists all migrations in order.
var migrations = []struct {
	version int
	up      string
}{
	{1, migration001Up},
}

// Migrate applies all pending migrations. Idempotent: each statement guards
// itself with IF NOT EXISTS, and applied versions are tracked in
// schema_migrations.
func Migrate(ctx context.Context, conn *Connection) error {
	_, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("%w: failed to create schema_migrations: %v", ErrMigrationFailed, err)
	}

	for _, m := range migrations {
		var exists bool
		err := conn.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)
		`, m.version).Scan(&exists)
		if err != nil {
			return fmt.Errorf("%w: failed to check version %d: %v", ErrMigrationFailed, m.version, err)
		}
		if exists {
			continue
		}

		if _, err := conn.Exec(ctx, m.up); err != nil {
			return fmt.Errorf("%w: version %d: %v", ErrMigrationFailed, m.version, err)
		}
		if _, err := conn.Exec(ctx, `
			INSERT INTO schema_migrations (version) VALUES ($1)
		`, m.version); err != nil {
			return fmt.Errorf("%w: failed to record version %d: %v", ErrMigrationFailed, m.version, err)
		}
	}

	return nil
}
