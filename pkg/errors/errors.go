package errors

import (
	"fmt"
)

// ErrType represents different types of errors
type ErrType string

const (
	// ErrTypeConfig represents configuration errors
	ErrTypeConfig ErrType = "config"
	// ErrTypeAWS represents AWS service errors
	ErrTypeAWS ErrType = "aws"
	// ErrTypeValidation represents validation errors (missing parameters, bad selectors)
	ErrTypeValidation ErrType = "validation"
	// ErrTypeNetwork represents endpoint resolution failures
	ErrTypeNetwork ErrType = "network"
	// ErrTypePayload represents failures opening or reading message payloads
	ErrTypePayload ErrType = "payload"
)

// PinError represents a custom error with context
type PinError struct {
	Type       ErrType
	Message    string
	Underlying error
	Context    map[string]interface{}
}

// Error implements the error interface
func (e *PinError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s error: %s (caused by: %v)", e.Type, e.Message, e.Underlying)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *PinError) Unwrap() error {
	return e.Underlying
}

// New creates a new PinError
func New(errType ErrType, message string) *PinError {
	return &PinError{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PinError
func Wrap(errType ErrType, message string, err error) *PinError {
	return &PinError{
		Type:       errType,
		Message:    message,
		Underlying: err,
		Context:    make(map[string]interface{}),
	}
}

// WithContext adds context to the error
func (e *PinError) WithContext(key string, value interface{}) *PinError {
	e.Context[key] = value
	return e
}

// GetContext returns context value
func (e *PinError) GetContext(key string) (interface{}, bool) {
	val, exists := e.Context[key]
	return val, exists
}

// IsType reports whether err is a PinError of the given type anywhere in its chain
func IsType(err error, errType ErrType) bool {
	for err != nil {
		if pe, ok := err.(*PinError); ok && pe.Type == errType {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Common error constructors
func NewConfigError(message string, err error) *PinError {
	if err != nil {
		return Wrap(ErrTypeConfig, message, err)
	}
	return New(ErrTypeConfig, message)
}

func NewAWSError(message string, err error) *PinError {
	if err != nil {
		return Wrap(ErrTypeAWS, message, err)
	}
	return New(ErrTypeAWS, message)
}

func NewNetworkError(message string, err error) *PinError {
	if err != nil {
		return Wrap(ErrTypeNetwork, message, err)
	}
	return New(ErrTypeNetwork, message)
}

func NewPayloadError(message string, err error) *PinError {
	if err != nil {
		return Wrap(ErrTypePayload, message, err)
	}
	return New(ErrTypePayload, message)
}

func NewValidationError(message string) *PinError {
	return New(ErrTypeValidation, message)
}
