package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the inventory core. The HTTP layer decides status
// codes; the core only returns these.
var (
	ErrListingNotFound   = errors.New("listing not found")
	ErrVariantNotFound   = errors.New("variant not found")
	ErrInsufficientStock = errors.New("not enough stock available")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
)

// ValidationError reports malformed or missing required input. Never
// retried, surfaced as a client error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a validation error with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
