package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/iudanet/shareall/internal/validation"
)

// ErrUnauthenticated is returned when an operation requires a caller identity
var ErrUnauthenticated = errors.New("authentication required")

// ValidationError describes field level validation failures
type ValidationError struct {
	Fields validation.FieldErrors
}

// NewValidationError creates a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: validation.FieldErrors{field: message}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(parts)
	return "validation error: " + strings.Join(parts, "; ")
}

// NotFoundError indicates that a referenced resource does not exist
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}
