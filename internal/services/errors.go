package services

import (
	"errors"
	"strings"

	"github.com/av1ctor/metamob-sub003/internal/models"
)

// Workflow rule violations handlers map to HTTP statuses.
var (
	ErrForbidden         = errors.New("operation not allowed for this user")
	ErrDuplicateReport   = errors.New("entity already reported by this user")
	ErrTerminalState     = errors.New("moderation is in a terminal state")
	ErrChallengeClosed   = errors.New("challenge is closed")
	ErrAlreadyChallenged = errors.New("moderation already has an open challenge")
)

// ValidationError aggregates the field-level failures collected before
// any write is attempted.
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func validationError(fields []models.FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
