package client

import (
	"fmt"

	"github.com/pol4bear/TCPTalk/codec"
)

// Error types for specific error cases
type ErrorType string

const (
	ErrAlreadyConnected ErrorType = "already connected"
	ErrInvalidAddress   ErrorType = "invalid address"
	ErrInvalidPort      ErrorType = "invalid port"
	ErrConnectionFailed ErrorType = "connection failed"
	ErrNotConnected     ErrorType = "not connected"
	ErrSend             ErrorType = "send"
	ErrReceive          ErrorType = "receive"
	ErrAlreadyReceiving ErrorType = "already receiving"
)

// NetworkError represents a network-related error with context
type NetworkError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Error constructors for the client error taxonomy

func NewAlreadyConnectedError(msg string, err error) error {
	return &NetworkError{
		Type:    ErrAlreadyConnected,
		Message: msg,
		Err:     err,
	}
}

func NewInvalidAddressError(msg string, err error) error {
	return &NetworkError{
		Type:    ErrInvalidAddress,
		Message: msg,
		Err:     err,
	}
}

func NewInvalidPortError(msg string, err error) error {
	return &NetworkError{
		Type:    ErrInvalidPort,
		Message: msg,
		Err:     err,
	}
}

func NewConnectionFailedError(msg string, err error) error {
	return &NetworkError{
		Type:    ErrConnectionFailed,
		Message: msg,
		Err:     err,
	}
}

func NewNotConnectedError(msg string, err error) error {
	return &NetworkError{
		Type:    ErrNotConnected,
		Message: msg,
		Err:     err,
	}
}

func NewSendError(msg string, err error) error {
	return &NetworkError{
		Type:    ErrSend,
		Message: msg,
		Err:     err,
	}
}

func NewReceiveError(msg string, err error) error {
	return &NetworkError{
		Type:    ErrReceive,
		Message: msg,
		Err:     err,
	}
}

func NewAlreadyReceivingError(msg string, err error) error {
	return &NetworkError{
		Type:    ErrAlreadyReceiving,
		Message: msg,
		Err:     err,
	}
}

// Validation errors
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// ValidateConfig validates client configuration
func ValidateConfig(config *ClientConfig) error {
	if config.BufferSize < 1 {
		return NewValidationError("BufferSize", "must be at least 1")
	}
	if config.Timeout <= 0 {
		return NewValidationError("Timeout", "must be positive")
	}
	if _, err := codec.Lookup(config.Encoding); err != nil {
		return NewValidationError("Encoding", fmt.Sprintf("unknown text encoding %q", config.Encoding))
	}
	return nil
}
