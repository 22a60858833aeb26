// Package agent implements the collector-facing side of the scanning agent:
// host enrollment and mutual-TLS report submission.
package agent

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/avetrov/CredScout/internal/models"
)

// Enroll registers the host with the collector and stores the issued client
// certificate and key at certPath and keyPath. The collector is verified
// against the CA certificate at caPath; the enrollment endpoint itself does
// not require a client certificate.
func Enroll(baseURL, host, caPath, certPath, keyPath string) error {
	caCert, err := os.ReadFile(caPath)
	if err != nil {
		return fmt.Errorf("failed to read CA cert: %w", err)
	}
	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caCert) {
		return errors.New("failed to parse CA cert")
	}
	client := &http.Client{Transport: &http.Transport{TLSClientConfig: &tls.Config{RootCAs: caPool}}}

	payload := map[string]string{"host": host}
	b, _ := json.Marshal(payload)
	resp, err := client.Post(baseURL+"/api/enroll", "application/json", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("enroll failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error: %s", string(data))
	}

	var certData map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&certData); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if err := os.WriteFile(certPath, []byte(certData["cert"]), 0600); err != nil {
		return fmt.Errorf("failed to save %s: %w", certPath, err)
	}
	if err := os.WriteFile(keyPath, []byte(certData["key"]), 0600); err != nil {
		return fmt.Errorf("failed to save %s: %w", keyPath, err)
	}

	return nil
}

// NewMTLSClient builds an HTTP client that presents the enrolled host
// certificate and trusts only the collector CA.
func NewMTLSClient(certFile, keyFile, caFile string) (*http.Client, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load client cert/key: %w", err)
	}
	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert: %w", err)
	}
	caPool := x509.NewCertPool()
	caPool.AppendCertsFromPEM(caCert)

	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			Certificates:       []tls.Certificate{cert},
			RootCAs:            caPool,
			InsecureSkipVerify: false,
		},
	}
	return &http.Client{Transport: transport, Timeout: 10 * time.Second}, nil
}

// SubmitReport sends a redacted report to the collector over the mTLS client.
// The report must already be stripped of secret material; callers build it
// with Credential.Finding so only shape metadata crosses the wire.
func SubmitReport(client *http.Client, baseURL string, rep models.Report) error {
	b, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	resp, err := client.Post(baseURL+"/api/reports", "application/json", bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("submit failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error: %s", string(data))
	}
	return nil
}
