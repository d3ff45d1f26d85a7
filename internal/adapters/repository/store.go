// Package repository defines the activity registry store interface and errors.
package repository

import (
	"context"

	"github.com/okian/signup/internal/domain/model"
)

// Store provides read/write access to the activity registry.
type Store interface {
	// List returns every activity in seed order. Returned values are copies.
	List(ctx context.Context) ([]model.Activity, error)

	// Get returns one activity by name.
	// Returns ErrActivityNotFound if the name is unknown.
	Get(ctx context.Context, name string) (model.Activity, error)

	// AddParticipant registers email for the named activity.
	// Returns ErrActivityNotFound or ErrAlreadyRegistered.
	AddParticipant(ctx context.Context, name, email string) error

	// RemoveParticipant drops email from the named activity.
	// Returns ErrActivityNotFound or ErrParticipantNotFound.
	RemoveParticipant(ctx context.Context, name, email string) error

	// Count returns the number of activities.
	Count(ctx context.Context) int

	// ParticipantCount returns the number of registrations across all activities.
	ParticipantCount(ctx context.Context) int
}
