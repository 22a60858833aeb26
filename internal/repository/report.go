package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avetrov/CredScout/internal/models"
	"github.com/lib/pq"
)

// PostgresReportRepository implements report persistence against a
// PostgreSQL database.
type PostgresReportRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresReportRepository creates a new PostgresReportRepository using
// the provided *sql.DB.
func NewPostgresReportRepository(db *sql.DB) *PostgresReportRepository {
	return &PostgresReportRepository{DB: db}
}

// SaveReport stores a report and all of its findings in one transaction.
//
//	ctx: context for cancellation and deadlines
//	rep: the report to store; ID, Host, and CreatedAt must be set
//
// Returns an error if any insert or the commit fails.
func (r *PostgresReportRepository) SaveReport(ctx context.Context, rep models.Report) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reports (id, host, created_at) VALUES ($1, $2, $3)
	`, rep.ID, rep.Host, rep.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	for _, f := range rep.Findings {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO findings (report_id, credential_id, username, shape, master_key_present, passphrase_present, source)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, rep.ID, f.CredentialID, f.Username, string(f.Shape), f.MasterKeyPresent, f.PassphrasePresent, f.Source)
		if err != nil {
			return fmt.Errorf("insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetReportsByHost fetches all reports submitted by the given host, newest
// first, with their findings attached.
func (r *PostgresReportRepository) GetReportsByHost(ctx context.Context, host string) ([]models.Report, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, host, created_at FROM reports WHERE host = $1 ORDER BY created_at DESC
	`, host)
	if err != nil {
		return nil, fmt.Errorf("GetReportsByHost: %w", err)
	}
	defer rows.Close()

	var reports []models.Report
	var ids []string
	index := make(map[string]int)
	for rows.Next() {
		var rep models.Report
		if err := rows.Scan(&rep.ID, &rep.Host, &rep.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		index[rep.ID] = len(reports)
		reports = append(reports, rep)
		ids = append(ids, rep.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report rows: %w", err)
	}
	if len(reports) == 0 {
		return nil, nil
	}

	frows, err := r.DB.QueryContext(ctx, `
		SELECT report_id, credential_id, username, shape, master_key_present, passphrase_present, source
		FROM findings WHERE report_id = ANY($1)
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("query findings: %w", err)
	}
	defer frows.Close()

	for frows.Next() {
		var reportID string
		var f models.Finding
		if err := frows.Scan(&reportID, &f.CredentialID, &f.Username, &f.Shape, &f.MasterKeyPresent, &f.PassphrasePresent, &f.Source); err != nil {
			return nil, fmt.Errorf("scan finding: %w", err)
		}
		if i, ok := index[reportID]; ok {
			reports[i].Findings = append(reports[i].Findings, f)
		}
	}
	if err := frows.Err(); err != nil {
		return nil, fmt.Errorf("finding rows: %w", err)
	}
	return reports, nil
}

// CountByShape returns how many findings of each authentication shape the
// collector has stored, across all hosts.
func (r *PostgresReportRepository) CountByShape(ctx context.Context) (map[models.AuthShape]int, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT shape, COUNT(*) FROM findings GROUP BY shape
	`)
	if err != nil {
		return nil, fmt.Errorf("CountByShape: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.AuthShape]int)
	for rows.Next() {
		var shape string
		var n int
		if err := rows.Scan(&shape, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[models.AuthShape(shape)] = n
	}
	return counts, rows.Err()
}
