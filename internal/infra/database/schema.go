package database

import (
	"context"

	"github.com/rotisserie/eris"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	mobile        TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL CHECK (role IN ('admin', 'agent')),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_users_role_created ON users(role, created_at);

CREATE TABLE IF NOT EXISTS leads (
	id         TEXT PRIMARY KEY,
	first_name TEXT NOT NULL DEFAULT '',
	phone      TEXT NOT NULL CHECK (phone ~ '^[0-9]{10}$'),
	notes      TEXT NOT NULL DEFAULT '',
	agent_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	batch_id   TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_leads_agent_id ON leads(agent_id);
CREATE INDEX IF NOT EXISTS idx_leads_batch_id ON leads(batch_id);
`

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, pool Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}
