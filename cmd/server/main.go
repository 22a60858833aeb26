// Package main initializes and starts the CredScout collector HTTPS server,
// setting up configuration, logging, database connections, repositories,
// services, handlers, and TLS.
package main

import (
	"cmp"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	nethttp "net/http"

	"github.com/avetrov/CredScout/internal/config"
	"github.com/avetrov/CredScout/internal/db"
	"github.com/avetrov/CredScout/internal/logger"
	"github.com/avetrov/CredScout/internal/repository"
	"github.com/avetrov/CredScout/internal/server/handler/http"
	"github.com/avetrov/CredScout/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Address
	dbName := options.DatabaseDSN

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(dbName)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Purge reports past the configured retention window.
	db.StartReportRetentionCleaner(context.Background(), postgresDB,
		time.Hour,
		time.Duration(options.RetentionDays)*24*time.Hour,
		zapLogger,
	)

	// Initialize repositories for enrollment and report storage.
	hostRepo := repository.NewPostgresHostRepository(postgresDB)
	reportRepo := repository.NewPostgresReportRepository(postgresDB)

	// Initialize business-logic services.
	hostService := service.NewHostService(hostRepo)
	reportService := service.NewReportService(reportRepo)

	// Create HTTP handlers for enrollment and report endpoints.
	enrollHandler := &http.EnrollHandler{
		HostService: hostService,
		CACertPath:  "certs/ca.crt",
		CAKeyPath:   "certs/ca.key",
	}
	reportHandler := &http.ReportHandler{ReportService: reportService}

	// Build the router with middleware and routes.
	router := http.NewRouter(enrollHandler, reportHandler, zapLogger)

	// Load server TLS certificate and key.
	cert, err := tls.LoadX509KeyPair("certs/server.crt", "certs/server.key")
	if err != nil {
		zapLogger.Fatal("failed to load server TLS cert/key", zap.Error(err))
	}

	// Load and append CA certificate for client cert verification.
	caCert, err := os.ReadFile("certs/ca.crt")
	if err != nil {
		zapLogger.Fatal("failed to read CA cert", zap.Error(err))
	}
	caCertPool := x509.NewCertPool()
	if ok := caCertPool.AppendCertsFromPEM(caCert); !ok {
		zapLogger.Fatal("failed to append CA cert to pool")
	}

	// Configure TLS to require or verify client certificates.
	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
		ClientAuth:   tls.VerifyClientCertIfGiven,
		ClientCAs:    caCertPool,
		MinVersion:   tls.VersionTLS12,
	}

	// Create and start the HTTPS server.
	server := &nethttp.Server{
		Addr:      addr,
		Handler:   router,
		TLSConfig: tlsConfig,
	}

	zapLogger.Info("starting HTTPS server", zap.String("addr", addr))
	if err := server.ListenAndServeTLS("", ""); err != nil {
		zapLogger.Fatal("failed to start HTTPS server", zap.Error(err))
	}
}
