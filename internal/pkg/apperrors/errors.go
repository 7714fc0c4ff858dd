package apperrors

import (
	"errors"
	"strings"
)

// Common errors
var (
	// Resource errors
	ErrResourceNotFound  = errors.New("resource not found")
	ErrDuplicateResource = errors.New("resource already exists")
	ErrConflict          = errors.New("conflict")

	// Business-data correctness errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBusinessRule     = errors.New("business rule violated")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewResourceNotFoundError creates a not-found error with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewDuplicateResourceError creates a duplicate-resource error with a message
func NewDuplicateResourceError(message string) error {
	return &CustomError{Err: ErrDuplicateResource, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewBusinessRuleError creates a business-rule violation error with a message
func NewBusinessRuleError(message string) error {
	return &CustomError{Err: ErrBusinessRule, Message: message}
}

// ValidationError carries the complete ordered list of violated rules so the
// caller sees every problem in one response.
type ValidationError struct {
	Message  string
	Messages []string
}

// NewValidationError creates a ValidationError from the collected rule messages
func NewValidationError(message string, messages []string) *ValidationError {
	return &ValidationError{Message: message, Messages: messages}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Messages, "; ")
}

// Unwrap lets errors.Is(err, ErrValidationFailed) match
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
