package maven

import (
	"context"

	"github.com/avetrov/CredScout/internal/extractor"
	"go.uber.org/zap"
)

// Name is the catalog name of the Maven extractor.
const Name = "maven"

// Extractor extracts Maven repository credentials. It implements
// extractor.Extractor.
type Extractor struct {
	homeDir string
	locator *Locator
	scanner *Scanner
	log     *zap.Logger
}

// New returns the Maven extractor rooted at homeDir.
func New(homeDir string, log *zap.Logger) *Extractor {
	return &Extractor{
		homeDir: homeDir,
		locator: NewLocator(homeDir, log),
		scanner: NewScanner(homeDir, log),
		log:     log,
	}
}

// Name implements extractor.Extractor.
func (e *Extractor) Name() string { return Name }

// Extract locates the master password, scans settings.xml for server
// entries, and classifies each one. Malformed entries are reported as
// skips and never fail the extraction; classification of one entry is
// independent of the others.
func (e *Extractor) Extract(ctx context.Context) (extractor.Result, error) {
	res := extractor.Result{Extractor: Name}

	master, _ := e.locator.Locate()

	for _, raw := range e.scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		cred, err := Classify(raw, master, e.homeDir)
		if err != nil {
			e.log.Debug("skipping server entry",
				zap.String("id", raw.ID.Value), zap.Error(err))
			res.Skipped = append(res.Skipped, extractor.Skip{
				ID:     raw.ID.Value,
				Err:    err,
				Reason: err.Error(),
			})
			continue
		}
		res.Credentials = append(res.Credentials, cred)
	}
	return res, nil
}
