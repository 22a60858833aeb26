package http

import (
	"net/http"

	"github.com/avetrov/CredScout/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// collector API. It applies JSON content-type enforcement, request
// logging, and certificate-based authentication, and mounts the
// enrollment and report endpoints under /api.
//
// Routes:
//
//	POST /api/enroll    → enrollHandler.Enroll (no client certificate)
//	POST /api/reports   → reportHandler.Submit (protected by CertAuth)
//	GET  /api/reports   → reportHandler.List   (protected by CertAuth)
func NewRouter(
	enrollHandler *EnrollHandler,
	reportHandler *ReportHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Enforce certificate-based authentication
	r.Use(middleware.CertAuth)

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoint: first contact happens before a host has a
		// certificate
		r.Post("/enroll", enrollHandler.Enroll)

		// Protected group: requires valid client certificate
		r.Group(func(r chi.Router) {
			r.Post("/reports", reportHandler.Submit)
			r.Get("/reports", reportHandler.List)
		})
	})

	return r
}
