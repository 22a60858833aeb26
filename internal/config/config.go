// Package config provides configuration options for the collector binary
// using command-line flags and environment variables, plus the home
// directory lookup shared with the agent.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"log"
	"os"
)

// Options holds the configuration values for the collector.
type Options struct {
	// Address defines the collector's listening address (ip:port).
	Address string

	// DatabaseDSN holds the database connection string.
	DatabaseDSN string

	// Retention is how many days of reports to keep.
	RetentionDays int

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Address, "a", "localhost:8443", "run on ip:port collector")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.IntVar(&options.RetentionDays, "r", 90, "report retention in days")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct
// containing the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Address = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}

	return options
}

// ErrNoHomeDir is returned when no profile environment variable is set.
var ErrNoHomeDir = errors.New("neither USERPROFILE nor HOME is set")

// UserHome resolves the current user's profile directory from the
// environment: USERPROFILE first (Windows), then HOME. Path construction
// with an unset profile is a configuration error, so an explicit error is
// returned instead of guessing.
func UserHome() (string, error) {
	if home := os.Getenv("USERPROFILE"); home != "" {
		return home, nil
	}
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}
	return "", ErrNoHomeDir
}
