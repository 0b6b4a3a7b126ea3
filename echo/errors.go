package echo

import "fmt"

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

// validateConfig validates server configuration
func validateConfig(config *Config) error {
	if config.BufferSize < 1 {
		return NewValidationError("BufferSize", "must be at least 1")
	}
	if config.IdleTimeout <= 0 {
		return NewValidationError("IdleTimeout", "must be positive")
	}
	if config.MaxConnections < 1 {
		return NewValidationError("MaxConnections", "must be at least 1")
	}
	return nil
}
