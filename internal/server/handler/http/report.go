package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avetrov/CredScout/internal/middleware"
	"github.com/avetrov/CredScout/internal/models"
	"github.com/avetrov/CredScout/internal/service"
)

// ReportService defines the interface for report operations required by
// the ReportHandler.
type ReportService interface {
	// Ingest stores a report submitted by the authenticated host.
	Ingest(ctx context.Context, host string, rep models.Report) error
	// ReportsForHost returns all reports submitted by the given host.
	ReportsForHost(ctx context.Context, host string) ([]models.Report, error)
}

// ReportHandler handles HTTP requests for report submission and querying.
type ReportHandler struct {
	ReportService ReportService
}

// Submit handles POST /api/reports requests.
// It decodes a JSON models.Report body and stores it under the host name
// taken from the client certificate.
func (h *ReportHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	host := middleware.GetHostFromContext(ctx)

	var rep models.Report
	if err := json.NewDecoder(r.Body).Decode(&rep); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if err := h.ReportService.Ingest(ctx, host, rep); err != nil {
		if errors.Is(err, service.ErrEmptyReport) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// List handles GET /api/reports requests.
// Hosts may only query their own reports; the host name always comes from
// the client certificate.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	host := middleware.GetHostFromContext(ctx)

	reports, err := h.ReportService.ReportsForHost(ctx, host)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"reports": reports})
}
