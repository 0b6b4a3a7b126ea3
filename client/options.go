package client

import (
	"time"

	"github.com/pol4bear/TCPTalk/codec"
)

// ClientConfig holds configuration for the TCP client
type ClientConfig struct {
	// BufferSize is the maximum number of bytes read per receive call
	BufferSize int
	// Timeout bounds the connect attempt and each receive and send call
	Timeout time.Duration
	// Encoding is the IANA name of the text encoding used by the default receive sink
	Encoding string
	// Logger receives connection lifecycle and I/O events
	Logger Logger
}

// DefaultConfig returns a ClientConfig with default values
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BufferSize: 8192,
		Timeout:    time.Second * 5,
		Encoding:   codec.DefaultEncoding,
		Logger:     &DefaultLogger{},
	}
}
