// ABOUTME: Custom error types for the scraping pipeline
// ABOUTME: Separates transient fetch failures, corrupt prior state and fatal configuration errors

package errors

import (
	"errors"
	"fmt"
)

// FetchError represents a failed outbound request (network, timeout or HTTP status).
// It is never fatal: the unit of work that needed the response is skipped.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying transport error
func (e *FetchError) Unwrap() error {
	return e.Err
}

// CorruptStateError represents a previously persisted catalog that could not be read
type CorruptStateError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("unreadable catalog at %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying read or decode error
func (e *CorruptStateError) Unwrap() error {
	return e.Err
}

// ConfigError represents a malformed policy or runtime setting.
// This is the only error class that aborts a run.
type ConfigError struct {
	Key     string
	Value   string
	Message string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("config error on '%s' (%q): %s", e.Key, e.Value, e.Message)
	}
	return fmt.Sprintf("config error on '%s': %s", e.Key, e.Message)
}

// IsFetch checks if an error is a FetchError
func IsFetch(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// IsCorruptState checks if an error is a CorruptStateError
func IsCorruptState(err error) bool {
	var stateErr *CorruptStateError
	return errors.As(err, &stateErr)
}

// IsConfig checks if an error is a ConfigError
func IsConfig(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
