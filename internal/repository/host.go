// Package repository provides persistence implementations for the collector
// using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
)

// PostgresHostRepository implements host enrollment operations against a
// PostgreSQL database.
type PostgresHostRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresHostRepository creates a new PostgresHostRepository with the
// given database connection. db must be a valid *sql.DB connected to a
// PostgreSQL instance.
func NewPostgresHostRepository(db *sql.DB) *PostgresHostRepository {
	return &PostgresHostRepository{DB: db}
}

// HostExists checks whether a host with the specified name is enrolled.
// It returns true if the host exists, false otherwise.
func (r *PostgresHostRepository) HostExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM hosts WHERE name = $1)`,
		name,
	).Scan(&exists)
	return exists, err
}

// EnrollHost registers a new host with the given name. Re-enrolling an
// already known host is a no-op thanks to ON CONFLICT DO NOTHING.
func (r *PostgresHostRepository) EnrollHost(ctx context.Context, name string) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO hosts (name) VALUES ($1) ON CONFLICT DO NOTHING`,
		name,
	)
	return err
}
