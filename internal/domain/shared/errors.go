// Package shared contains common domain types, errors, and value objects
// that are used across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	// Validation errors
	ErrValidation   = errors.New("validation error")
	ErrInvalidID    = errors.New("invalid ID")
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyValue   = errors.New("value cannot be empty")

	// State errors
	ErrInvalidState    = errors.New("invalid state")
	ErrStateTransition = errors.New("invalid state transition")

	// Authorization errors
	ErrUnauthenticated = errors.New("unauthenticated")

	// Storage errors
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "catalog", "progress", "leaderboard"
	Op      string // Operation that failed, e.g., "Complete", "Rank"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Catalog domain errors
var (
	ErrSealNotFound      = NewDomainError("catalog", "FindSeal", ErrNotFound, "seal not found")
	ErrObjectiveNotFound = NewDomainError("catalog", "FindObjective", ErrNotFound, "objective not found")
)

// Progress domain errors
var (
	ErrDowngradeRejected = NewDomainError("progress", "Complete", ErrStateTransition, "completed objective cannot be uncompleted")
)

// User domain errors
var (
	ErrProfileNotFound    = NewDomainError("user", "Find", ErrNotFound, "profile not found")
	ErrUsernameTaken      = NewDomainError("user", "Register", ErrAlreadyExists, "username already taken")
	ErrInvalidUsername    = NewDomainError("user", "Validate", ErrInvalidInput, "invalid username")
	ErrWeakPassword       = NewDomainError("user", "Validate", ErrInvalidInput, "password too short")
	ErrInvalidCredentials = NewDomainError("user", "Login", ErrUnauthenticated, "invalid username or password")
	ErrSessionNotFound    = NewDomainError("user", "ResolveSession", ErrUnauthenticated, "session not found or expired")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue)
}

// IsUnauthenticated checks if the error is an authentication error.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// IsStateTransition checks if the error is an illegal state transition.
func IsStateTransition(err error) bool {
	return errors.Is(err, ErrStateTransition)
}
