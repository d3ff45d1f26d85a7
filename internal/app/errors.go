package service

import "errors"

// ErrNotStarted is returned by registry operations before Start.
var ErrNotStarted = errors.New("activity registry not started")
