package signupcheck

import (
	"errors"
	"time"
)

// ErrCheckFailed marks a scenario step whose observed response differs
// from the expected one.
var ErrCheckFailed = errors.New("check failed")

// Config holds configuration for a signup-check run
type Config struct {
	BaseURL  string        // Base URL of the service
	Activity string        // Activity used for the scenario
	Workers  int           // Concurrent clients in the race phase
	Timeout  time.Duration // HTTP request timeout
	LogFile  string        // Log file for check output
	Verbose  bool          // Enable verbose logging
}

// Stats holds run statistics
type Stats struct {
	Checks              int
	Passed              int
	Failed              int
	ConcurrentSuccesses int
	ConcurrentConflicts int
	StartTime           time.Time
	EndTime             time.Time
	Duration            time.Duration
}

func (s *Stats) pass() {
	s.Checks++
	s.Passed++
}

func (s *Stats) fail() {
	s.Checks++
	s.Failed++
}

// errorResponse mirrors the API error body.
type errorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}
