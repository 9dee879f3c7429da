package action

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports a client-caused failure: a malformed query string,
// an unparsable body or a missing upload.
type ValidationError struct {
	Message string
	Err     error
}

// NewValidationError wraps err as a client-caused failure.
func NewValidationError(err error) *ValidationError {
	return &ValidationError{Message: err.Error(), Err: err}
}

// Validationf creates a client-caused failure with a formatted message.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code for this error.
func (e *ValidationError) StatusCode() int {
	return http.StatusBadRequest
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
