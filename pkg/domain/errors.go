package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrEntityNotFound *notFoundError

type notFoundError struct {
	EntityType string
	ID         uuid.UUID
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s with ID '%s' not found", e.EntityType, e.ID.String())
}

func NewNotFoundError(entityType string, id uuid.UUID) error {
	return &notFoundError{
		EntityType: entityType,
		ID:         id,
	}
}

func IsNotFoundError(err error) bool {
	var target *notFoundError
	return errors.As(err, &target)
}

type validationError struct {
	Field  string
	Reason string
}

func (e *validationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &validationError{Field: field, Reason: reason}
}

func IsValidationError(err error) bool {
	var target *validationError
	return errors.As(err, &target)
}

// forbiddenError is returned when the caller is not allowed to act on a resource,
// typically because it is not one of the two session participants.
type forbiddenError struct {
	Reason string
}

func (e *forbiddenError) Error() string {
	return e.Reason
}

func NewForbiddenError(reason string) error {
	return &forbiddenError{Reason: reason}
}

func IsForbiddenError(err error) bool {
	var target *forbiddenError
	return errors.As(err, &target)
}

type conflictError struct {
	EntityType string
	Reason     string
}

func (e *conflictError) Error() string {
	return fmt.Sprintf("%s conflict: %s", e.EntityType, e.Reason)
}

func NewConflictError(entityType, reason string) error {
	return &conflictError{EntityType: entityType, Reason: reason}
}

func IsConflictError(err error) bool {
	var target *conflictError
	return errors.As(err, &target)
}
