package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/avetrov/CredScout/internal/models"
	"github.com/lib/pq"
)

func setupReportMock(t *testing.T) (*PostgresReportRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresReportRepository(db)
	cleanup := func() {
		db.Close()
	}
	return repo, mock, cleanup
}

func sampleReport() models.Report {
	return models.Report{
		ID:        "r1",
		Host:      "host1",
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Findings: []models.Finding{
			{CredentialID: "repo1", Username: "bob", Shape: models.ShapePassword, Source: "maven"},
			{CredentialID: "repo2", Username: "bob", Shape: models.ShapeEncrypted, MasterKeyPresent: true, Source: "maven"},
		},
	}
}

func TestSaveReport_Success(t *testing.T) {
	repo, mock, cleanup := setupReportMock(t)
	defer cleanup()

	rep := sampleReport()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO reports (id, host, created_at) VALUES ($1, $2, $3)`)).
		WithArgs(rep.ID, rep.Host, rep.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for _, f := range rep.Findings {
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO findings`)).
			WithArgs(rep.ID, f.CredentialID, f.Username, string(f.Shape), f.MasterKeyPresent, f.PassphrasePresent, f.Source).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	if err := repo.SaveReport(context.Background(), rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestSaveReport_InsertError(t *testing.T) {
	repo, mock, cleanup := setupReportMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO reports`)).
		WillReturnError(errors.New("insert fail"))
	mock.ExpectRollback()

	err := repo.SaveReport(context.Background(), sampleReport())
	if err == nil || !regexp.MustCompile(`insert report`).MatchString(err.Error()) {
		t.Errorf("expected insert report error, got %v", err)
	}
}

func TestGetReportsByHost_Success(t *testing.T) {
	repo, mock, cleanup := setupReportMock(t)
	defer cleanup()

	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	reportRows := sqlmock.NewRows([]string{"id", "host", "created_at"}).
		AddRow("r2", "host1", created).
		AddRow("r1", "host1", created.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, host, created_at FROM reports WHERE host = $1`)).
		WithArgs("host1").
		WillReturnRows(reportRows)

	findingRows := sqlmock.NewRows([]string{"report_id", "credential_id", "username", "shape", "master_key_present", "passphrase_present", "source"}).
		AddRow("r2", "repo1", "bob", "password", false, false, "maven").
		AddRow("r1", "repo1", "bob", "encrypted_password", true, false, "maven")
	mock.ExpectQuery(regexp.QuoteMeta(`FROM findings WHERE report_id = ANY($1)`)).
		WithArgs(pq.Array([]string{"r2", "r1"})).
		WillReturnRows(findingRows)

	reports, err := repo.GetReportsByHost(context.Background(), "host1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].ID != "r2" || reports[1].ID != "r1" {
		t.Errorf("unexpected order: %+v", reports)
	}
	if len(reports[0].Findings) != 1 || reports[0].Findings[0].Shape != models.ShapePassword {
		t.Errorf("unexpected findings for r2: %+v", reports[0].Findings)
	}
	if len(reports[1].Findings) != 1 || !reports[1].Findings[0].MasterKeyPresent {
		t.Errorf("unexpected findings for r1: %+v", reports[1].Findings)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetReportsByHost_Empty(t *testing.T) {
	repo, mock, cleanup := setupReportMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, host, created_at FROM reports WHERE host = $1`)).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id", "host", "created_at"}))

	reports, err := repo.GetReportsByHost(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("expected no reports, got %d", len(reports))
	}
}

func TestCountByShape(t *testing.T) {
	repo, mock, cleanup := setupReportMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"shape", "count"}).
		AddRow("password", 7).
		AddRow("private_key", 2)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT shape, COUNT(*) FROM findings GROUP BY shape`)).
		WillReturnRows(rows)

	counts, err := repo.CountByShape(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts[models.ShapePassword] != 7 || counts[models.ShapePrivateKey] != 2 {
		t.Errorf("unexpected counts: %+v", counts)
	}
}
