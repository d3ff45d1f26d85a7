package signupcheck

import "time"

// Defaults used by the signup-check command.
const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultActivity = "Chess Club"
	DefaultWorkers  = 8
	DefaultTimeout  = 10 * time.Second
)

// unknownActivity is a name no catalog is expected to contain.
const unknownActivity = "No Such Activity"

const emailDomain = "signup-check.example.com"
