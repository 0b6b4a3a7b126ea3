package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/pol4bear/TCPTalk/codec"
)

// TCPClient implements a TCP connection client with an optional background
// receive loop. One instance manages one connection at a time; after
// Disconnect the instance can Connect again with a new address.
//
// Control operations (Connect, Disconnect, Send, StartReceive, StopReceive)
// follow a single-writer discipline: they must not be issued concurrently
// from multiple goroutines. The receive loop only reads the shared state.
type TCPClient struct {
	logger Logger

	connected atomic.Bool
	receiving atomic.Bool

	mu         sync.RWMutex
	conn       net.Conn
	serverAddr netip.Addr
	serverPort int
	bufferSize int
	timeout    time.Duration
	encoding   string
	connID     string
	loopDone   chan struct{}
}

// NewTCPClient creates a new TCP client with the given configuration.
// A nil config selects the defaults.
func NewTCPClient(config *ClientConfig) (*TCPClient, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = &DefaultLogger{}
	}

	return &TCPClient{
		logger:     logger,
		bufferSize: config.BufferSize,
		timeout:    config.Timeout,
		encoding:   config.Encoding,
	}, nil
}

// Connect establishes a TCP connection to address:port.
//
// address may be a literal IPv4 or IPv6 address or a hostname; hostnames are
// resolved via forward DNS and the first returned address is used. port must
// lie in [0, 65535), with the upper bound exclusive. The attempt is bounded
// by the configured timeout.
func (c *TCPClient) Connect(ctx context.Context, address string, port int) error {
	if c.connected.Load() {
		return NewAlreadyConnectedError(fmt.Sprintf("already connected to %v", c.RemoteAddr()), nil)
	}

	addr, err := netip.ParseAddr(address)
	if err != nil {
		resolved, rerr := net.DefaultResolver.LookupNetIP(ctx, "ip", address)
		if rerr != nil || len(resolved) == 0 {
			return NewInvalidAddressError(fmt.Sprintf("cannot resolve %q", address), rerr)
		}
		addr = resolved[0]
	}

	if port < 0 || port >= 65535 {
		return NewInvalidPortError(fmt.Sprintf("port %d outside [0, 65535)", port), nil)
	}

	c.mu.Lock()
	c.serverAddr = addr
	c.serverPort = port
	timeout := c.timeout
	c.mu.Unlock()

	hostport := net.JoinHostPort(addr.String(), strconv.Itoa(port))
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", hostport)
	if err != nil {
		return NewConnectionFailedError(fmt.Sprintf("cannot connect to %s", hostport), err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connID = uuid.NewString()
	connID := c.connID
	c.mu.Unlock()
	c.connected.Store(true)

	c.logger.Info("connected to %s (connection %s)", hostport, connID)
	return nil
}

// ConnectReceive establishes a connection and immediately starts the
// background receive loop with onReceived as the sink.
func (c *TCPClient) ConnectReceive(ctx context.Context, address string, port int, onReceived ReceiveFunc) error {
	if err := c.Connect(ctx, address, port); err != nil {
		return err
	}
	return c.StartReceive(onReceived)
}

// Disconnect stops the receive loop if it is running, closes the connection
// and clears the server address and port. It reports whether a connection
// was actually torn down: calling it twice in a row is safe, the second
// call is a no-op returning false.
func (c *TCPClient) Disconnect() bool {
	if !c.connected.Load() {
		return false
	}

	c.StopReceive()

	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
	}
	c.serverAddr = netip.Addr{}
	c.serverPort = 0
	connID := c.connID
	c.mu.Unlock()
	c.connected.Store(false)

	c.logger.Info("disconnected (connection %s)", connID)
	return true
}

// Send writes data to the server in a single write call, bounded by the
// configured timeout. Short writes and transport failures surface as send
// errors; the connection is left as-is, there is no automatic disconnect on
// a failed send.
func (c *TCPClient) Send(data []byte) error {
	if !c.connected.Load() {
		return NewNotConnectedError("send requires an established connection", nil)
	}

	c.mu.RLock()
	conn, timeout := c.conn, c.timeout
	c.mu.RUnlock()

	if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return NewSendError("failed to set write deadline", err)
	}
	if _, err := conn.Write(data); err != nil {
		return NewSendError(fmt.Sprintf("failed to send %d bytes", len(data)), err)
	}

	c.logger.Debug("sent %d bytes to %s", len(data), conn.RemoteAddr())
	return nil
}

// Receive reads at most BufferSize bytes from the connection, waiting up to
// the configured timeout.
//
// Outcomes are distinguished by the returned slice rather than by error
// values: a nil slice with nil error means no data arrived in time, an
// empty non-nil slice means the peer closed its end of the stream, and data
// is returned as soon as any arrives. A connection reset disconnects the
// client and reports the quiet no-data outcome. Any other transport failure
// is returned as a receive error.
func (c *TCPClient) Receive() ([]byte, error) {
	c.mu.RLock()
	conn, size, timeout := c.conn, c.bufferSize, c.timeout
	c.mu.RUnlock()

	if conn == nil {
		return nil, NewNotConnectedError("receive requires an established connection", nil)
	}

	// The read itself runs without holding the lock so Disconnect can close
	// the connection out from under a blocked read.
	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		if errors.Is(err, net.ErrClosed) {
			return nil, nil
		}
		return nil, NewReceiveError("failed to set read deadline", err)
	}

	buffer := make([]byte, size)
	n, err := conn.Read(buffer)
	if n > 0 {
		c.logger.Debug("received %d bytes from %s", n, conn.RemoteAddr())
		return buffer[:n], nil
	}

	var netErr net.Error
	switch {
	case err == nil:
		return nil, nil
	case errors.As(err, &netErr) && netErr.Timeout():
		return nil, nil
	case errors.Is(err, syscall.ECONNRESET):
		c.logger.Warn("connection reset by peer, disconnecting")
		// Clearing the flag first keeps Disconnect from joining the loop
		// goroutine this may be running on.
		c.receiving.Store(false)
		c.Disconnect()
		return nil, nil
	case errors.Is(err, net.ErrClosed):
		return nil, nil
	case errors.Is(err, io.EOF):
		// Peer closed its end of the stream: passed through as an empty
		// result, not an error.
		return []byte{}, nil
	default:
		return nil, NewReceiveError("failed to read from connection", err)
	}
}

// Connected reports whether the client holds an established connection
func (c *TCPClient) Connected() bool {
	return c.connected.Load()
}

// Receiving reports whether the background receive loop is running
func (c *TCPClient) Receiving() bool {
	return c.receiving.Load()
}

// ServerAddr returns the resolved address of the connected server. The zero
// netip.Addr is returned while disconnected.
func (c *TCPClient) ServerAddr() netip.Addr {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverAddr
}

// ServerPort returns the port of the connected server, zero while
// disconnected.
func (c *TCPClient) ServerPort() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverPort
}

// LocalAddr returns the local network address
func (c *TCPClient) LocalAddr() net.Addr {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.conn == nil {
		return nil
	}
	return c.conn.LocalAddr()
}

// RemoteAddr returns the remote network address
func (c *TCPClient) RemoteAddr() net.Addr {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.conn == nil {
		return nil
	}
	return c.conn.RemoteAddr()
}

// BufferSize returns the receive buffer size
func (c *TCPClient) BufferSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bufferSize
}

// SetBufferSize sets the receive buffer size, effective from the next
// receive call. Sizes below one are rejected.
func (c *TCPClient) SetBufferSize(size int) bool {
	if size < 1 {
		return false
	}
	c.mu.Lock()
	c.bufferSize = size
	c.mu.Unlock()
	return true
}

// Timeout returns the connect and receive timeout
func (c *TCPClient) Timeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.timeout
}

// SetTimeout sets the connect and receive timeout. Non-positive timeouts
// are rejected, and so is any call made before a connection has been
// established at least once.
func (c *TCPClient) SetTimeout(timeout time.Duration) bool {
	if timeout <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return false
	}
	c.timeout = timeout
	return true
}

// Encoding returns the IANA name of the text encoding used by the default
// receive sink.
func (c *TCPClient) Encoding() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.encoding
}

// SetEncoding sets the text encoding after validating the name against the
// codec registry. Unknown names are rejected.
func (c *TCPClient) SetEncoding(name string) bool {
	if _, err := codec.Lookup(name); err != nil {
		return false
	}
	c.mu.Lock()
	c.encoding = name
	c.mu.Unlock()
	return true
}
