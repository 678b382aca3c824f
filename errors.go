package kvdocs

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// Data errors
	ErrNotFound    = errors.New("document not found")
	ErrInvalidData = errors.New("invalid data format")
	ErrEncoding    = errors.New("document cannot be encoded")
	ErrDecoding    = errors.New("stored data cannot be decoded")

	// Backend errors
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrTimeout            = errors.New("operation timed out")

	// Configuration errors
	ErrNotConnected  = errors.New("store is not connected, call Connect first")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ErrorWithContext adds additional context to errors for better debugging and logging
type ErrorWithContext struct {
	Err     error
	Context map[string]interface{}
}

func (e *ErrorWithContext) Error() string {
	if len(e.Context) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%v (context: %+v)", e.Err, e.Context)
}

func (e *ErrorWithContext) Unwrap() error {
	return e.Err
}

// WithContext adds context to an error
func WithContext(err error, context map[string]interface{}) error {
	if err == nil {
		return nil
	}
	return &ErrorWithContext{
		Err:     err,
		Context: context,
	}
}

// Common error checking helpers

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsEncoding checks if an error is a codec error (either direction)
func IsEncoding(err error) bool {
	return errors.Is(err, ErrEncoding) || errors.Is(err, ErrDecoding)
}

// IsNotConnected checks if an error is a missing-connection configuration error
func IsNotConnected(err error) bool {
	return errors.Is(err, ErrNotConnected)
}

// IsRetryable checks if an error is safe to retry
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrBackendUnavailable)
}

// IsPermanent checks if an error is permanent (not retryable)
func IsPermanent(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidData) ||
		errors.Is(err, ErrNotConnected) ||
		errors.Is(err, ErrInvalidConfig)
}
