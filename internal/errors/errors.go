// Package errors provides error handling utilities.
// The engine draws a hard line between blocking errors, which abort a
// calculation, and rate lookup misses, which never do.
package errors

import (
	"errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInput indicates invalid or missing input
	TypeInput Type = "INPUT_ERROR"

	// TypeDimension indicates missing dimensional data required by the shipping method
	TypeDimension Type = "DIMENSION_ERROR"

	// TypeClassification indicates an invalid or unknown HS code
	TypeClassification Type = "CLASSIFICATION_ERROR"

	// TypeValuation indicates an unsupported or inconsistent customs valuation
	TypeValuation Type = "VALUATION_ERROR"

	// TypeAggregation indicates an invalid aggregation result
	TypeAggregation Type = "AGGREGATION_ERROR"

	// TypeRate indicates a rate lookup failure; the only non-blocking category
	TypeRate Type = "RATE_ERROR"

	// TypeConfig indicates missing trade-lane or country configuration
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// Blocking reports whether an error must abort the whole calculation.
// Every domain error is blocking except rate lookup misses, which are
// absorbed as warning notes before they ever reach a caller.
func Blocking(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Type != TypeRate
	}
	return true
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Inputf creates a formatted input error
func Inputf(format string, args ...interface{}) *Error {
	return Newf(TypeInput, format, args...)
}

// Dimension creates a missing-dimensional-data error
func Dimension(message string) *Error {
	return New(TypeDimension, message)
}

// Classification creates an HS classification error
func Classification(message string, cause error) *Error {
	return Wrap(TypeClassification, message, cause)
}

// Valuation creates a customs valuation error
func Valuation(message string) *Error {
	return New(TypeValuation, message)
}

// Aggregation creates an aggregation error
func Aggregation(message string) *Error {
	return New(TypeAggregation, message)
}

// Config creates a configuration error
func Config(message string) *Error {
	return New(TypeConfig, message)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
