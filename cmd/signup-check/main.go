package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/signup/internal/signupcheck"
	"github.com/okian/signup/pkg/logger"
)

const defaultRunTimeout = 2 * time.Minute

func main() {
	var (
		baseURL  = flag.String("url", signupcheck.DefaultBaseURL, "Base URL of the service")
		activity = flag.String("activity", signupcheck.DefaultActivity, "Activity used for the scenario")
		workers  = flag.Int("workers", signupcheck.DefaultWorkers, "Concurrent clients in the race phase")
		timeout  = flag.Duration("timeout", signupcheck.DefaultTimeout, "HTTP request timeout")
		logFile  = flag.String("log", "", "Log file for check output (default: signup_check_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		signupcheck.ShowHelp()
		return
	}

	if err := signupcheck.SetupLogging(*logFile, *verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)

	config := &signupcheck.Config{
		BaseURL:  *baseURL,
		Activity: *activity,
		Workers:  *workers,
		Timeout:  *timeout,
		LogFile:  *logFile,
		Verbose:  *verbose,
	}

	_, err := signupcheck.Run(ctx, config)
	cancel()
	_ = logger.Sync()
	if err != nil {
		os.Stderr.WriteString("Check failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
