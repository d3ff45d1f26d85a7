// Package signupcheck runs an end-to-end membership scenario against a
// running activity sign-up service.
package signupcheck

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/okian/signup/pkg/logger"
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string, verbose bool) error {
	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "signup_check_" + timestamp + ".log"
	}

	if err := logger.Init(logger.WithFile(logFile)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		if err := logger.SetLevelString("debug"); err != nil {
			return fmt.Errorf("failed to set log level: %w", err)
		}
	}

	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the signup-check tool.
func ShowHelp() {
	os.Stdout.WriteString(`Activity Sign-up Check Tool
===========================

Runs a signup, duplicate signup and unregister scenario against a running
service, then races concurrent signups of one email and expects exactly
one to succeed.

Usage:
  go run ./cmd/signup-check [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8000")
  -activity string
        Activity used for the scenario (default "Chess Club")
  -workers int
        Concurrent clients in the race phase (default 8)
  -timeout duration
        HTTP request timeout (default 10s)
  -log string
        Log file for check output (default: signup_check_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Check a local server
  go run ./cmd/signup-check

  # Race 64 clients against another activity
  go run ./cmd/signup-check -activity "Art Club" -workers 64
`)
}
