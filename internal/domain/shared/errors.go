package shared

import (
	"errors"
	"fmt"
)

// ErrNotFound is matched (via errors.Is) by every "entity does not exist" error
// in the domain, so transport layers can map them uniformly.
var ErrNotFound = errors.New("not found")

// NotFoundError reports a missing entity
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// Is makes NotFoundError match ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func NewNotFoundError(entity string, id interface{}) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: fmt.Sprintf("%v", id)}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
