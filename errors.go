package gamestate

import (
	"errors"
	"fmt"
	"time"
)

// Error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeInvalidConfig = "INVALID_CONFIG"
	ErrCodePersistence   = "PERSISTENCE_ERROR"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// StoreError represents a failure in the layers around the stores.
// Store operations themselves never fail.
type StoreError struct {
	Message   string         `json:"message"`
	Code      string         `json:"code"`
	Timestamp time.Time      `json:"timestamp"`
	Details   map[string]any `json:"details,omitempty"`
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewStoreError creates a new store error
func NewStoreError(code, message string) *StoreError {
	return &StoreError{
		Message:   message,
		Code:      code,
		Timestamp: time.Now(),
	}
}

// WithDetails adds details to the error
func (e *StoreError) WithDetails(details map[string]any) *StoreError {
	e.Details = details
	return e
}

// ToStoreError converts any error to a StoreError, keeping an existing one
func ToStoreError(err error) *StoreError {
	if err == nil {
		return nil
	}

	var se *StoreError
	if errors.As(err, &se) {
		return se
	}

	return &StoreError{
		Message:   err.Error(),
		Code:      ErrCodeInternalError,
		Timestamp: time.Now(),
	}
}

// IsNotFound checks if an error is a not-found error
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsConflict checks if an error reports an entry that already exists
func IsConflict(err error) bool {
	return hasCode(err, ErrCodeConflict)
}

// IsPersistence checks if an error came from a history backend
func IsPersistence(err error) bool {
	return hasCode(err, ErrCodePersistence)
}

// IsInvalidConfig checks if an error is a configuration error
func IsInvalidConfig(err error) bool {
	return hasCode(err, ErrCodeInvalidConfig)
}

func hasCode(err error, code string) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}
