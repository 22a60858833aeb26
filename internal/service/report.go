package service

import (
	"context"
	"errors"
	"time"

	"github.com/avetrov/CredScout/internal/models"
	"github.com/google/uuid"
)

// ErrEmptyReport marks a submitted report without findings.
var ErrEmptyReport = errors.New("report has no findings")

// ReportRepository defines the persistence operations needed by the
// ReportService.
type ReportRepository interface {
	// SaveReport stores a report and its findings.
	SaveReport(ctx context.Context, rep models.Report) error
	// GetReportsByHost retrieves all reports submitted by a host,
	// newest first.
	GetReportsByHost(ctx context.Context, host string) ([]models.Report, error)
}

// ReportService implements report ingestion and querying for the collector.
type ReportService struct {
	// repo is the underlying persistence repository.
	repo ReportRepository
}

// NewReportService constructs a ReportService with the provided repository.
func NewReportService(repo ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

// Ingest stores a report submitted by host. The host name always comes
// from the authenticated identity, never from the payload. Missing report
// ID or timestamp are filled in server-side.
func (s *ReportService) Ingest(ctx context.Context, host string, rep models.Report) error {
	if len(rep.Findings) == 0 {
		return ErrEmptyReport
	}
	rep.Host = host
	if rep.ID == "" {
		rep.ID = uuid.NewString()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}
	return s.repo.SaveReport(ctx, rep)
}

// ReportsForHost returns all reports submitted by the given host.
func (s *ReportService) ReportsForHost(ctx context.Context, host string) ([]models.Report, error) {
	return s.repo.GetReportsByHost(ctx, host)
}
