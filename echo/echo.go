// Package echo provides a small session-managing TCP listener that writes
// every chunk it reads straight back to the sender. It is the counterpart
// used by the client examples and end-to-end tests.
package echo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AnnounceFunc is called for every new session
type AnnounceFunc func(options any, session *Session)

// PayloadFunc observes every chunk a session reads, before it is echoed back
type PayloadFunc func(session *Session, data []byte)

// Server accepts TCP connections and echoes every payload back to its sender
type Server struct {
	listener     net.Listener
	addr         string
	announce     AnnounceFunc
	announceOpts any
	onPayload    PayloadFunc
	sessions     map[string]*Session
	sessionsMu   sync.RWMutex
	wg           sync.WaitGroup
	ctx          context.Context
	cancel       context.CancelFunc
	*Config
}

// Session represents one connected client
type Session struct {
	ID         string
	ClientAddr net.Addr

	conn         net.Conn
	server       *Server
	lastReceived time.Time
	receivedMu   sync.RWMutex
	closeOnce    sync.Once
}

// New creates an echo server bound to host:port. Port 0 binds an ephemeral
// port, exposed through Addr after Start.
func New(host string, port uint16, ctx context.Context, opts ...Option) (*Server, error) {
	config := defaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		addr:     fmt.Sprintf("%v:%v", host, port),
		sessions: make(map[string]*Session),
		ctx:      serverCtx,
		cancel:   cancel,
		Config:   config,
	}, nil
}

// Start begins accepting connections
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to start echo listener: %w", err)
	}
	s.listener = listener
	s.Logger.Info("echo server listening on %s", listener.Addr())

	s.wg.Add(1)
	go s.acceptLoop()
	return nil
}

// Stop shuts the server down, closing the listener and all sessions and
// waiting for the handler goroutines to finish.
func (s *Server) Stop() error {
	s.Logger.Info("shutting down echo server")
	s.cancel()

	s.sessionsMu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.sessionsMu.RUnlock()
	for _, session := range sessions {
		session.Close()
	}

	if s.listener != nil {
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			return fmt.Errorf("failed to close echo listener: %w", err)
		}
	}

	s.wg.Wait()
	return nil
}

// Addr returns the bound listener address, nil before Start
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// SetAnnounceNewSession registers a hook called for every new session
func (s *Server) SetAnnounceNewSession(function AnnounceFunc, options any) {
	s.announce = function
	s.announceOpts = options
}

// SetOnPayload registers a hook observing every chunk before it is echoed
func (s *Server) SetOnPayload(function PayloadFunc) {
	s.onPayload = function
}

// Sessions returns a snapshot of the active sessions
func (s *Server) Sessions() []*Session {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}

// acceptLoop accepts connections until the server context is cancelled. The
// accept deadline is refreshed every second so cancellation is observed.
func (s *Server) acceptLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			s.Logger.Info("stopping echo accept loop")
			return
		default:
		}

		if tl, ok := s.listener.(*net.TCPListener); ok {
			tl.SetDeadline(time.Now().Add(time.Second))
		}
		conn, err := s.listener.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				continue
			}
			select {
			case <-s.ctx.Done():
				return
			default:
			}
			s.Logger.Error("error accepting connection: %v", err)
			return
		}

		s.sessionsMu.RLock()
		full := len(s.sessions) >= s.MaxConnections
		s.sessionsMu.RUnlock()
		if full {
			s.Logger.Warn("max connections reached, rejecting %s", conn.RemoteAddr())
			conn.Close()
			continue
		}

		session := s.newSession(conn)
		s.wg.Add(1)
		go s.serve(session)
	}
}

func (s *Server) newSession(conn net.Conn) *Session {
	session := &Session{
		ID:           uuid.NewString(),
		ClientAddr:   conn.RemoteAddr(),
		conn:         conn,
		server:       s,
		lastReceived: time.Now(),
	}

	s.sessionsMu.Lock()
	s.sessions[session.ID] = session
	s.sessionsMu.Unlock()

	s.Logger.Debug("new connection from %s (session %s)", session.ClientAddr, session.ID)
	if s.announce != nil {
		s.announce(s.announceOpts, session)
	}
	return session
}

// serve reads chunks from one session and writes them straight back
func (s *Server) serve(session *Session) {
	defer s.wg.Done()
	defer session.Close()

	buffer := make([]byte, s.BufferSize)
	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		if err := session.conn.SetReadDeadline(time.Now().Add(s.IdleTimeout)); err != nil {
			return
		}
		n, err := session.conn.Read(buffer)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				s.Logger.Debug("idle timeout for session %s", session.ID)
				return
			}
			if errors.Is(err, io.EOF) {
				s.Logger.Debug("connection closed by %s", session.ClientAddr)
			} else if !errors.Is(err, net.ErrClosed) {
				s.Logger.Error("read error for session %s: %v", session.ID, err)
			}
			return
		}

		session.touch()
		data := buffer[:n]
		if s.onPayload != nil {
			s.onPayload(session, append([]byte(nil), data...))
		}
		if _, err := session.conn.Write(data); err != nil {
			s.Logger.Error("write error for session %s: %v", session.ID, err)
			return
		}
	}
}

// Send writes data to the session's client without echoing semantics,
// bounded by the server idle timeout.
func (s *Session) Send(data []byte) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.server.IdleTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}
	if _, err := s.conn.Write(data); err != nil {
		return fmt.Errorf("failed to write to session %s: %w", s.ID, err)
	}
	return nil
}

// LastReceived returns the timestamp of the last chunk read from the client
func (s *Session) LastReceived() time.Time {
	s.receivedMu.RLock()
	defer s.receivedMu.RUnlock()
	return s.lastReceived
}

func (s *Session) touch() {
	s.receivedMu.Lock()
	s.lastReceived = time.Now()
	s.receivedMu.Unlock()
}

// Close closes the session connection and removes it from the server
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.conn.Close()
		s.server.sessionsMu.Lock()
		delete(s.server.sessions, s.ID)
		s.server.sessionsMu.Unlock()
		s.server.Logger.Debug("closed session %s", s.ID)
	})
}
