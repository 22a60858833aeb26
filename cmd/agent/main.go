// Package main implements the CredScout agent: it scans the local machine
// for stored build-tool credentials, renders the findings, and optionally
// submits a redacted report to the collector.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/avetrov/CredScout/internal/agent"
	"github.com/avetrov/CredScout/internal/config"
	"github.com/avetrov/CredScout/internal/extractor"
	"github.com/avetrov/CredScout/internal/logger"
	"github.com/avetrov/CredScout/internal/maven"
	"github.com/avetrov/CredScout/internal/report"
	"github.com/avetrov/CredScout/internal/service"

	"go.uber.org/zap"
)

var (
	version   string
	buildDate string
)

// newRegistry wires up every credential extractor the agent knows about.
func newRegistry(homeDir string, log *zap.Logger) *extractor.Registry {
	reg := extractor.NewRegistry()
	reg.Register(maven.New(homeDir, log))
	return reg
}

// main parses command-line flags and dispatches to the enroll or scan commands.
func main() {
	var (
		cmd      string
		baseURL  string
		certFile string
		keyFile  string
		caFile   string
		hostName string
		homeDir  string
		output   string
		submit   bool
		verbose  bool
		showVer  bool
	)

	flag.StringVar(&cmd, "cmd", "scan", "command: enroll | scan")
	flag.StringVar(&baseURL, "url", "https://localhost:8443", "collector base URL")
	flag.StringVar(&certFile, "cert", "agent.crt", "path to agent cert")
	flag.StringVar(&keyFile, "key", "agent.key", "path to agent key")
	flag.StringVar(&caFile, "ca", "certs/ca.crt", "path to CA cert")
	flag.StringVar(&hostName, "host", "", "host name for enrollment and reports")
	flag.StringVar(&homeDir, "home", "", "override the scanned home directory")
	flag.StringVar(&output, "o", "table", "output format: table | json")
	flag.BoolVar(&submit, "submit", false, "submit a redacted report to the collector")
	flag.BoolVar(&verbose, "v", false, "enable debug logging")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("CredScout Agent\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	zl := logger.New()
	level := "Error"
	if verbose {
		level = "Debug"
	}
	if err := zl.Init(level); err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Log.Sync() }()

	if hostName == "" {
		hostName, _ = os.Hostname()
	}

	switch cmd {
	case "enroll":
		if hostName == "" {
			log.Fatal("please provide -host=name")
		}
		if err := agent.Enroll(baseURL, hostName, caFile, certFile, keyFile); err != nil {
			log.Fatal(err)
		}
		fmt.Println("Enrollment successful. Certificate and key saved.")
	case "scan":
		if homeDir == "" {
			home, err := config.UserHome()
			if err != nil {
				log.Fatal(err)
			}
			homeDir = home
		}

		audit := service.NewAuditService(newRegistry(homeDir, zl.Log), zl.Log)
		results := audit.Run(context.Background())

		switch output {
		case "table":
			report.WriteTable(os.Stdout, results)
		case "json":
			if err := report.WriteJSON(os.Stdout, results); err != nil {
				log.Fatal(err)
			}
		default:
			log.Fatalf("unknown output format: %s", output)
		}

		if submit {
			client, err := agent.NewMTLSClient(certFile, keyFile, caFile)
			if err != nil {
				log.Fatal(err)
			}
			rep := audit.BuildReport(hostName, results)
			if err := agent.SubmitReport(client, baseURL, rep); err != nil {
				log.Fatal(err)
			}
			fmt.Println("Report submitted.")
		}
	default:
		log.Fatalf("unknown command: %s", cmd)
	}
}
