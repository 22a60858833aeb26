// Package http provides HTTP handlers for host enrollment and report
// ingestion on the collector.
package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/avetrov/CredScout/internal/certgen"
)

// HostService defines the interface for enrollment operations required by
// the HTTP handlers.
type HostService interface {
	// HostExists checks whether a host with the given name is enrolled.
	HostExists(context.Context, string) (bool, error)
	// EnrollHost registers a new host with the given name.
	EnrollHost(context.Context, string) error
}

// EnrollHandler handles HTTP requests for host enrollment.
type EnrollHandler struct {
	// HostService performs the underlying enrollment operations.
	HostService HostService
	// CACertPath and CAKeyPath locate the CA credentials used to sign
	// issued agent certificates.
	CACertPath string
	CAKeyPath  string
}

// EnrollRequest represents the JSON payload for host enrollment.
type EnrollRequest struct {
	// Host is the host name to enroll.
	Host string `json:"host"`
}

// Enroll handles host enrollment requests.
// It expects a JSON body with a non-empty "host" field.
// If the host is not already enrolled, it registers the host, generates a
// client certificate signed by the CA, and returns the PEM-encoded
// certificate and private key.
func (h *EnrollHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req EnrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Host == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	// Check if host already enrolled
	exists, err := h.HostService.HostExists(r.Context(), req.Host)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if exists {
		http.Error(w, "host already enrolled", http.StatusConflict)
		return
	}

	// Load CA credentials for signing
	caCert, caKey, err := certgen.LoadCACredentials(h.CACertPath, h.CAKeyPath)
	if err != nil {
		http.Error(w, "failed to load CA", http.StatusInternalServerError)
		return
	}

	// Generate agent certificate signed by the CA
	certPEM, keyPEM, err := certgen.GenerateAgentCertificate(req.Host, caCert, caKey)
	if err != nil {
		http.Error(w, "failed to generate certificate", http.StatusInternalServerError)
		return
	}

	// Save the new host in the database
	if err := h.HostService.EnrollHost(r.Context(), req.Host); err != nil {
		http.Error(w, "failed to save host", http.StatusInternalServerError)
		return
	}

	// Respond with the generated certificate and key
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"cert": string(certPEM),
		"key":  string(keyPEM),
	})
}
