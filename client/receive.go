package client

import (
	"fmt"
	"time"

	"github.com/pol4bear/TCPTalk/codec"
)

// StartReceive starts the background receive loop. Payloads longer than one
// byte are handed to onReceived; a nil onReceived prints them decoded with
// the configured encoding. If the loop stops because a receive failed,
// onReceived is invoked one final time with nil data and the error.
func (c *TCPClient) StartReceive(onReceived ReceiveFunc) error {
	if !c.connected.Load() {
		return NewNotConnectedError("receive loop requires an established connection", nil)
	}
	if !c.receiving.CompareAndSwap(false, true) {
		return NewAlreadyReceivingError("receive loop already running", nil)
	}

	done := make(chan struct{})
	c.mu.Lock()
	c.loopDone = done
	c.mu.Unlock()

	go c.receiveLoop(onReceived, done)

	c.logger.Debug("receive loop started")
	return nil
}

// StopReceive stops the background receive loop and reports whether a loop
// was running. The loop observes the stop at its next iteration boundary,
// so a read blocked on its deadline holds the loop up for at most one
// timeout period; the wait here is bounded by the same timeout.
func (c *TCPClient) StopReceive() bool {
	if !c.receiving.CompareAndSwap(true, false) {
		return false
	}

	c.mu.RLock()
	done := c.loopDone
	timeout := c.timeout
	c.mu.RUnlock()

	if done != nil {
		select {
		case <-done:
		case <-time.After(timeout):
			c.logger.Warn("receive loop did not stop within %v", timeout)
		}
	}

	c.mu.Lock()
	c.loopDone = nil
	c.mu.Unlock()

	c.logger.Debug("receive loop stopped")
	return true
}

// receiveLoop runs on its own goroutine until the connection goes away, the
// receiving flag is cleared, or a receive fails.
func (c *TCPClient) receiveLoop(onReceived ReceiveFunc, done chan struct{}) {
	defer func() {
		c.receiving.Store(false)
		c.mu.Lock()
		if c.loopDone == done {
			c.loopDone = nil
		}
		c.mu.Unlock()
		close(done)
	}()

	for c.connected.Load() && c.receiving.Load() {
		data, err := c.Receive()
		if err != nil {
			c.deliverError(onReceived, err)
			return
		}
		// Single-byte payloads are deliberately dropped, as are the empty
		// reads produced by timeouts and peer close.
		if c.receiving.Load() && len(data) > 1 {
			c.deliver(onReceived, data)
		}
	}
}

func (c *TCPClient) deliver(onReceived ReceiveFunc, data []byte) {
	if onReceived != nil {
		onReceived(data, nil)
		return
	}
	text, err := codec.Decode(c.Encoding(), data)
	if err != nil {
		text = string(data)
	}
	fmt.Println(text)
}

func (c *TCPClient) deliverError(onReceived ReceiveFunc, err error) {
	if onReceived != nil {
		onReceived(nil, err)
		return
	}
	c.logger.Error("receive loop terminated: %v", err)
}
