package middleware

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"net/http"
	"net/http/httptest"
	"testing"
)

// dummyHandler is a placeholder that records if it was called and the context it received.
type dummyHandler struct {
	called bool
	ctx    context.Context
}

func (d *dummyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.called = true
	d.ctx = r.Context()
	w.WriteHeader(http.StatusOK)
}

func TestCertAuth_EnrollPathBypass(t *testing.T) {
	dummy := &dummyHandler{}
	h := CertAuth(dummy)
	// simulate request to /api/enroll without TLS
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/enroll", nil)
	h.ServeHTTP(rec, req)

	if !dummy.called {
		t.Error("expected next handler to be called for /api/enroll")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 OK, got %d", rec.Code)
	}
}

func TestCertAuth_NoCertificate(t *testing.T) {
	dummy := &dummyHandler{}
	h := CertAuth(dummy)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/reports", nil)
	h.ServeHTTP(rec, req)

	if dummy.called {
		t.Error("did not expect next handler to be called when no certificate provided")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized, got %d", rec.Code)
	}
}

func TestCertAuth_ValidCertificate(t *testing.T) {
	// create fake certificate chain
	cert := &x509.Certificate{Subject: pkix.Name{CommonName: "build-01"}}
	ts := &tls.ConnectionState{PeerCertificates: []*x509.Certificate{cert}}

	dummy := &dummyHandler{}
	h := CertAuth(dummy)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/reports", nil)
	req.TLS = ts
	h.ServeHTTP(rec, req)

	if !dummy.called {
		t.Error("expected next handler to be called when valid certificate provided")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 OK, got %d", rec.Code)
	}
	// verify context contains correct host
	host := GetHostFromContext(dummy.ctx)
	if host != "build-01" {
		t.Errorf("expected context host 'build-01', got '%s'", host)
	}
}

func TestGetHostFromContext(t *testing.T) {
	// no value
	empty := GetHostFromContext(context.Background())
	if empty != "" {
		t.Errorf("expected empty string for missing host, got '%s'", empty)
	}
	// with value
	ctx := context.WithValue(context.Background(), hostKey, "build-02")
	val := GetHostFromContext(ctx)
	if val != "build-02" {
		t.Errorf("expected 'build-02', got '%s'", val)
	}
}
