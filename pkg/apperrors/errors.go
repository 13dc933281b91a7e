// pkg/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed identity key, counter name or feed
// field. Field carries the offending field name when known.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %q: %s", e.Field, e.Message)
	}
	return "validation failed: " + e.Message
}

// NotFoundError reports a reference to a session, participant or action
// that does not exist.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// NotUndoableError is returned when undo is requested on an action entry
// that carries no captured pre-state.
type NotUndoableError struct {
	ActionID uint
}

func (e *NotUndoableError) Error() string {
	return fmt.Sprintf("action %d has no pre-state and cannot be undone", e.ActionID)
}

// ConsistencyError reports an operation that would break referential
// integrity outside the configured cascade rules.
type ConsistencyError struct {
	Message string
}

func (e *ConsistencyError) Error() string {
	return "consistency violation: " + e.Message
}

func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func NewNotFound(resource, key string) error {
	return &NotFoundError{Resource: resource, Key: key}
}

func NewConsistency(message string) error {
	return &ConsistencyError{Message: message}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsNotUndoable(err error) bool {
	var nu *NotUndoableError
	return errors.As(err, &nu)
}

func IsConsistency(err error) bool {
	var ce *ConsistencyError
	return errors.As(err, &ce)
}
