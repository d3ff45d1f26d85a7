package model

import "errors"

// Error kinds surfaced by registry operations. Match with errors.Is.
var (
	// ErrNotFound covers unknown activities and participants that are not registered.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers a signup for an email that is already registered.
	ErrConflict = errors.New("conflict")
)

// Error is a registry failure of a given kind with a client-facing message.
type Error struct {
	Kind error
	Msg  string
}

// NewError creates an Error of the given kind.
func NewError(kind error, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func (e *Error) Error() string { return e.Msg }

// Unwrap exposes the kind to errors.Is.
func (e *Error) Unwrap() error { return e.Kind }
