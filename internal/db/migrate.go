package db

import (
	"context"
	"database/sql"
)

// Email uniqueness is exact: no LOWER() index, matching login lookups.
const directoryMigration = `
CREATE TABLE IF NOT EXISTS accounts (
    id text PRIMARY KEY,
    email text NOT NULL,
    password text NOT NULL,
    first_name text NOT NULL DEFAULT '',
    last_name text NOT NULL DEFAULT '',
    role text NOT NULL DEFAULT 'user'
        CHECK (role IN ('admin', 'user')),
    profile jsonb NOT NULL DEFAULT '{}'::jsonb,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS accounts_email_unique
ON accounts (email);
`

func RunDirectoryMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, directoryMigration)
	return err
}
