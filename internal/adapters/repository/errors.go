package repository

import (
	"errors"

	"github.com/okian/signup/internal/domain/model"
)

// Sentinel errors for registry operations. Each carries a model error kind.
var (
	ErrActivityNotFound    = model.NewError(model.ErrNotFound, "Activity not found")
	ErrParticipantNotFound = model.NewError(model.ErrNotFound, "Student is not registered for this activity")
	ErrAlreadyRegistered   = model.NewError(model.ErrConflict, "Student is already signed up for this activity")

	ErrInvalidCatalog = errors.New("invalid activity catalog")
)
