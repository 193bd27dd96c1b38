package datomic

import (
	"errors"
	"fmt"
)

// Sentinel errors for common client conditions
var (
	// Transport errors
	ErrConnection = errors.New("connection to Datomic REST endpoint failed")
	ErrTimeout    = errors.New("request timed out")

	// Protocol errors
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	ErrUnexpectedShape  = errors.New("unexpected EDN response shape")

	// Configuration errors
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

// IsConnectionError checks if an error is a transport-level failure,
// including timeouts
func IsConnectionError(err error) bool {
	return errors.Is(err, ErrConnection) || errors.Is(err, ErrTimeout)
}

// IsStatusError checks if an error came from a non-2xx HTTP response
func IsStatusError(err error) bool {
	return errors.Is(err, ErrUnexpectedStatus)
}

// IsInvalidConfig checks if an error is a configuration validation failure
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}
