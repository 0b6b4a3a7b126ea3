package echo

import (
	"time"
)

// Logger defines the interface for logging operations
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

type defaultLogger struct{}

func (l *defaultLogger) Debug(msg string, args ...interface{}) {}
func (l *defaultLogger) Info(msg string, args ...interface{})  {}
func (l *defaultLogger) Warn(msg string, args ...interface{})  {}
func (l *defaultLogger) Error(msg string, args ...interface{}) {}

// Option defines a function type for configuring the echo server
type Option func(*Config)

// Config holds echo server configuration
type Config struct {
	// BufferSize is the per-read chunk size
	BufferSize int
	// IdleTimeout is how long a session may stay silent before it is dropped
	IdleTimeout time.Duration
	// MaxConnections caps the number of concurrent sessions
	MaxConnections int
	// Logger receives server events
	Logger Logger
}

func defaultConfig() *Config {
	return &Config{
		BufferSize:     8192,
		IdleTimeout:    time.Second * 30,
		MaxConnections: 1000,
		Logger:         &defaultLogger{},
	}
}

// WithBufferSize sets the per-read chunk size
func WithBufferSize(size int) Option {
	return func(c *Config) {
		c.BufferSize = size
	}
}

// WithIdleTimeout sets the session idle timeout
func WithIdleTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.IdleTimeout = timeout
	}
}

// WithMaxConnections sets the maximum number of concurrent sessions
func WithMaxConnections(max int) Option {
	return func(c *Config) {
		c.MaxConnections = max
	}
}

// WithLogger sets the logger implementation
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
