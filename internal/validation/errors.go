// Package validation checks entity records before they enter a store and
// reports every violation at once.
package validation

import (
	"errors"
	"strings"
)

// ErrValidation matches any Errors value with errors.Is.
var ErrValidation = errors.New("validation failed")

// Error is one rejected field.
type Error struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e Error) String() string {
	return e.Field + " " + e.Reason
}

// Errors collects every violation found in a record.
type Errors []Error

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.String()
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e Errors) Unwrap() error { return ErrValidation }

// OrNil returns nil for an empty collection so callers can return it as an error.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Has reports whether field was rejected.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// As extracts the violations carried by err, if any.
func As(err error) (Errors, bool) {
	var ve Errors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
