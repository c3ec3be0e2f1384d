package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema creates the content tables. Every statement is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS services (
	id          BIGSERIAL PRIMARY KEY,
	name        TEXT NOT NULL,
	price       TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS gallery (
	id  BIGSERIAL PRIMARY KEY,
	url TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS video_gallery (
	id  BIGSERIAL PRIMARY KEY,
	url TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS appointments (
	id           BIGSERIAL PRIMARY KEY,
	client_name  TEXT NOT NULL,
	service_name TEXT NOT NULL,
	date         TEXT NOT NULL,
	time         TEXT NOT NULL,
	status       TEXT NOT NULL DEFAULT 'Pendente',
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS appointments_date_idx ON appointments (date DESC, time DESC);
`

func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
