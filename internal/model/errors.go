package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidIdentifier   = errors.New("invalid identifier")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrDuplicateEntity     = errors.New("already exists")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Entity names used in error messages.
const (
	EntityUser               = "user"
	EntityPatient            = "patient"
	EntityHealthRecord       = "health record"
	EntityMedication         = "medication"
	EntityMedicationDose     = "medication dose"
	EntityMedicationReminder = "medication reminder"
	EntityDocument           = "document"
)

// EntityError ties an error kind to the entity it concerns.
type EntityError struct {
	Entity string
	Kind   error
}

func (e *EntityError) Error() string {
	switch e.Kind {
	case ErrNotFound:
		return e.Entity + " not found"
	case ErrForbidden:
		return "access to this " + e.Entity + " is forbidden"
	case ErrInvalidIdentifier:
		return "invalid " + e.Entity + " id"
	case ErrDuplicateEntity:
		return e.Entity + " already exists"
	default:
		return e.Entity + ": " + e.Kind.Error()
	}
}

func (e *EntityError) Unwrap() error {
	return e.Kind
}

// NotFound reports that entity does not exist.
func NotFound(entity string) error {
	return &EntityError{Entity: entity, Kind: ErrNotFound}
}

// Forbidden reports that entity belongs to someone else.
func Forbidden(entity string) error {
	return &EntityError{Entity: entity, Kind: ErrForbidden}
}

func InvalidID(entity string) error {
	return &EntityError{Entity: entity, Kind: ErrInvalidIdentifier}
}

func Duplicate(entity string) error {
	return &EntityError{Entity: entity, Kind: ErrDuplicateEntity}
}

// ValidationError reports the first field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
