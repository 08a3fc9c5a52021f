package errors

import (
	"errors"
	"fmt"
)

// Common error types for categorization and handling. The text transforms
// themselves never fail; these cover the transport around them.

var (
	// ErrInvalidInput indicates a malformed request body or missing field
	ErrInvalidInput = errors.New("invalid input")

	// ErrPayloadTooLarge indicates the request body exceeded the configured limit
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrRateLimited indicates the client exhausted its request budget
	ErrRateLimited = errors.New("rate limit exceeded")
)

// WrapError wraps an error with context message
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// WrapErrorf wraps an error with formatted context message
func WrapErrorf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsInvalidInput checks if error is an invalid input error
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsPayloadTooLarge checks if error is a payload size error
func IsPayloadTooLarge(err error) bool {
	return errors.Is(err, ErrPayloadTooLarge)
}

// IsRateLimited checks if error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
