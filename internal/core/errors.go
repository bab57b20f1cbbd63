package core

import (
	"errors"
	"strings"
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError rejects a create request before any store interaction.
// It is the only user-visible error class on the write path.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// MissingFields builds a ValidationError for the named required fields.
func MissingFields(fields ...string) error {
	return &ValidationError{Fields: fields}
}

// IsValidation reports whether err is a create-request validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
