package tcptalk

import (
	"context"
	"net"
	"net/netip"
	"time"

	"github.com/pol4bear/TCPTalk/client"
)

// ReceiveFunc consumes payloads delivered by the background receive loop.
// Data deliveries carry a nil error; if the loop stops because a receive
// failed, it is invoked one final time with nil data and the error.
type ReceiveFunc = client.ReceiveFunc

// Client defines the interface for the TCP client
type Client interface {
	// Connect establishes a connection to the server
	Connect(ctx context.Context, address string, port int) error

	// ConnectReceive establishes a connection and starts the background receive loop
	ConnectReceive(ctx context.Context, address string, port int, onReceived ReceiveFunc) error

	// Disconnect stops the receive loop and closes the connection
	Disconnect() bool

	// Send sends data to the server
	Send(data []byte) error

	// Receive reads at most BufferSize bytes from the server
	Receive() ([]byte, error)

	// StartReceive starts the background receive loop
	StartReceive(onReceived ReceiveFunc) error

	// StopReceive stops the background receive loop
	StopReceive() bool

	// Connected reports whether the client holds an established connection
	Connected() bool

	// Receiving reports whether the background receive loop is running
	Receiving() bool

	// ServerAddr returns the resolved address of the connected server
	ServerAddr() netip.Addr

	// ServerPort returns the port of the connected server
	ServerPort() int

	// LocalAddr returns the local network address
	LocalAddr() net.Addr

	// RemoteAddr returns the remote network address
	RemoteAddr() net.Addr

	// BufferSize returns the receive buffer size
	BufferSize() int

	// SetBufferSize sets the receive buffer size
	SetBufferSize(size int) bool

	// Timeout returns the connect and receive timeout
	Timeout() time.Duration

	// SetTimeout sets the connect and receive timeout
	SetTimeout(timeout time.Duration) bool

	// Encoding returns the name of the configured text encoding
	Encoding() string

	// SetEncoding sets the text encoding after validating it
	SetEncoding(name string) bool
}

// NewTCPClient creates a new TCP client with the given options
func NewTCPClient(opts ...ClientOptFunc) (Client, error) {
	config := NewClientConfig(opts...)
	return client.NewTCPClient(config)
}
