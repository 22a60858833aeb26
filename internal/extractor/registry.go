// Package extractor defines the catalog of credential extractors the agent
// can run, and the result shape they share.
package extractor

import (
	"context"

	"github.com/avetrov/CredScout/internal/models"
)

// Skip records one entry an extractor found but could not classify.
type Skip struct {
	// ID is the entry identifier when known, "" otherwise.
	ID string `json:"id"`
	// Err is the per-record classification failure.
	Err error `json:"-"`
	// Reason is Err's message, kept separately so results serialize.
	Reason string `json:"reason"`
}

// Result is the outcome of a single extractor run.
type Result struct {
	// Extractor names the extractor that produced the result.
	Extractor string `json:"extractor"`
	// Credentials are the normalized credentials, in document order.
	Credentials []models.Credential `json:"credentials"`
	// Skipped lists entries excluded by per-record failures.
	Skipped []Skip `json:"skipped,omitempty"`
}

// Extractor extracts stored credentials from one local tool configuration.
type Extractor interface {
	// Name identifies the extractor in reports and logs.
	Name() string
	// Extract returns the credentials the extractor found. Per-entry
	// failures are reported through Result.Skipped; the error is
	// reserved for failures of the extractor as a whole.
	Extract(ctx context.Context) (Result, error)
}

// Registry holds the ordered set of registered extractors.
type Registry struct {
	extractors []Extractor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends an extractor to the catalog. Registration order is
// preserved by All.
func (r *Registry) Register(e Extractor) {
	r.extractors = append(r.extractors, e)
}

// All returns the registered extractors in registration order.
func (r *Registry) All() []Extractor {
	return r.extractors
}
