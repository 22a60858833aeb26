package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS hosts (
    name TEXT PRIMARY KEY,
    enrolled_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS reports (
    id TEXT PRIMARY KEY,
    host TEXT REFERENCES hosts(name) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS findings (
    report_id TEXT REFERENCES reports(id) ON DELETE CASCADE,
    credential_id TEXT NOT NULL,
    username TEXT NOT NULL,
    shape TEXT NOT NULL,
    master_key_present BOOLEAN NOT NULL DEFAULT FALSE,
    passphrase_present BOOLEAN NOT NULL DEFAULT FALSE,
    source TEXT NOT NULL
);
`

func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
