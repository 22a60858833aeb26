package http_test

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	handler "github.com/avetrov/CredScout/internal/server/handler/http"

	"github.com/avetrov/CredScout/internal/middleware"
	"github.com/avetrov/CredScout/internal/models"
	"github.com/avetrov/CredScout/internal/service"
)

// fakeReportService records calls and returns preconfigured results.
type fakeReportService struct {
	called       bool
	receivedHost string
	receivedRep  models.Report

	reports    []models.Report
	ingestErr  error
	reportsErr error
}

func (f *fakeReportService) Ingest(ctx context.Context, host string, rep models.Report) error {
	f.called = true
	f.receivedHost = host
	f.receivedRep = rep
	return f.ingestErr
}

func (f *fakeReportService) ReportsForHost(ctx context.Context, host string) ([]models.Report, error) {
	f.receivedHost = host
	return f.reports, f.reportsErr
}

func TestReportHandler_Submit_BadJSON(t *testing.T) {
	h := &handler.ReportHandler{ReportService: &fakeReportService{}}
	req := httptest.NewRequest(http.MethodPost, "/api/reports", bytes.NewBufferString("not-a-json"))
	w := httptest.NewRecorder()

	h.Submit(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
	}
	if body := w.Body.String(); body != "invalid body\n" {
		t.Errorf("body = %q; want %q", body, "invalid body\n")
	}
}

func TestReportHandler_Submit_EmptyReport(t *testing.T) {
	fake := &fakeReportService{ingestErr: service.ErrEmptyReport}
	h := &handler.ReportHandler{ReportService: fake}

	b, _ := json.Marshal(models.Report{})
	req := httptest.NewRequest(http.MethodPost, "/api/reports", bytes.NewReader(b))
	w := httptest.NewRecorder()

	h.Submit(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d; want %d", w.Code, http.StatusBadRequest)
	}
}

func TestReportHandler_Submit_ServiceError(t *testing.T) {
	fake := &fakeReportService{ingestErr: errors.New("save failed")}
	h := &handler.ReportHandler{ReportService: fake}

	b, _ := json.Marshal(models.Report{Findings: []models.Finding{{CredentialID: "r"}}})
	req := httptest.NewRequest(http.MethodPost, "/api/reports", bytes.NewReader(b))
	w := httptest.NewRecorder()

	h.Submit(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d; want %d", w.Code, http.StatusInternalServerError)
	}
	if body := w.Body.String(); body != "save failed\n" {
		t.Errorf("body = %q; want %q", body, "save failed\n")
	}
}

func TestReportHandler_Submit_HostFromCertificate(t *testing.T) {
	fake := &fakeReportService{}
	h := middleware.CertAuth(http.HandlerFunc((&handler.ReportHandler{ReportService: fake}).Submit))

	rep := models.Report{
		Findings: []models.Finding{
			{CredentialID: "repo1", Username: "bob", Shape: models.ShapePassword, Source: "maven"},
		},
	}
	b, _ := json.Marshal(rep)
	req := httptest.NewRequest(http.MethodPost, "/api/reports", bytes.NewReader(b))
	req.TLS = &tls.ConnectionState{
		PeerCertificates: []*x509.Certificate{{Subject: pkix.Name{CommonName: "build-01"}}},
	}
	w := httptest.NewRecorder()

	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if !fake.called {
		t.Fatal("expected Ingest to be called")
	}
	if fake.receivedHost != "build-01" {
		t.Errorf("host = %q; want %q", fake.receivedHost, "build-01")
	}
	if len(fake.receivedRep.Findings) != 1 || fake.receivedRep.Findings[0].CredentialID != "repo1" {
		t.Errorf("unexpected report: %+v", fake.receivedRep)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status field = %q; want %q", resp["status"], "ok")
	}
}

func TestReportHandler_List(t *testing.T) {
	fake := &fakeReportService{
		reports: []models.Report{{ID: "r1", Host: "build-01"}},
	}
	h := &handler.ReportHandler{ReportService: fake}

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; want %d", w.Code, http.StatusOK)
	}
	var resp struct {
		Reports []models.Report `json:"reports"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Reports) != 1 || resp.Reports[0].ID != "r1" {
		t.Errorf("unexpected reports: %+v", resp.Reports)
	}
}

func TestReportHandler_List_Error(t *testing.T) {
	fake := &fakeReportService{reportsErr: errors.New("query failed")}
	h := &handler.ReportHandler{ReportService: fake}

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	w := httptest.NewRecorder()

	h.List(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d; want %d", w.Code, http.StatusInternalServerError)
	}
}
