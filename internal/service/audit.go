// Package service provides business logic for running audits on the agent
// and for host enrollment and report ingestion on the collector, delegating
// persistence to repository interfaces.
package service

import (
	"context"
	"time"

	"github.com/avetrov/CredScout/internal/extractor"
	"github.com/avetrov/CredScout/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditService runs every registered extractor and assembles audit reports.
type AuditService struct {
	// registry is the catalog of extractors to run.
	registry *extractor.Registry
	// log receives per-entry skip diagnostics.
	log *zap.Logger
}

// NewAuditService constructs an AuditService over the given registry.
func NewAuditService(registry *extractor.Registry, log *zap.Logger) *AuditService {
	return &AuditService{registry: registry, log: log}
}

// Run executes all registered extractors in order. A failing extractor is
// logged and skipped; it never prevents the others from running.
func (s *AuditService) Run(ctx context.Context) []extractor.Result {
	var results []extractor.Result
	for _, e := range s.registry.All() {
		res, err := e.Extract(ctx)
		if err != nil {
			s.log.Error("extractor failed",
				zap.String("extractor", e.Name()), zap.Error(err))
			continue
		}
		for _, sk := range res.Skipped {
			s.log.Warn("entry skipped",
				zap.String("extractor", e.Name()),
				zap.String("id", sk.ID),
				zap.String("reason", sk.Reason))
		}
		results = append(results, res)
	}
	return results
}

// BuildReport redacts extraction results into a submission report for the
// given host. Secret values never enter the report.
func (s *AuditService) BuildReport(host string, results []extractor.Result) models.Report {
	rep := models.Report{
		ID:        uuid.NewString(),
		Host:      host,
		CreatedAt: time.Now().UTC(),
	}
	for _, res := range results {
		for _, c := range res.Credentials {
			rep.Findings = append(rep.Findings, c.Finding())
		}
	}
	return rep
}
