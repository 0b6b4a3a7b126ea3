package tcptalk

import (
	"time"

	"github.com/pol4bear/TCPTalk/client"
)

// Common client options
type ClientOptFunc func(config *client.ClientConfig)

// WithClientBufferSize sets the receive buffer size
func WithClientBufferSize(size int) ClientOptFunc {
	return func(config *client.ClientConfig) {
		config.BufferSize = size
	}
}

// WithClientTimeout sets the connect and receive timeout
func WithClientTimeout(timeout time.Duration) ClientOptFunc {
	return func(config *client.ClientConfig) {
		config.Timeout = timeout
	}
}

// WithClientEncoding sets the text encoding used by the default receive sink
func WithClientEncoding(name string) ClientOptFunc {
	return func(config *client.ClientConfig) {
		config.Encoding = name
	}
}

// WithClientLogger sets the logger implementation
func WithClientLogger(logger client.Logger) ClientOptFunc {
	return func(config *client.ClientConfig) {
		config.Logger = logger
	}
}

// Helper function to create a new client config with options
func NewClientConfig(opts ...ClientOptFunc) *client.ClientConfig {
	config := client.DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}
	return config
}
