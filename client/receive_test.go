package client

import (
	"reflect"
	"testing"
	"time"

	"golang.org/x/net/context"
)

func TestStartReceive(t *testing.T) {
	t.Run("Requires connection", func(t *testing.T) {
		tcpClient, err := NewTCPClient(nil)
		if err != nil {
			t.Fatal(err)
		}

		err = tcpClient.StartReceive(nil)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if got := utilityErrorType(t, err); got != ErrNotConnected {
			t.Errorf("expected error type %q, got %q", ErrNotConnected, got)
		}
	})

	t.Run("Rejects a second loop", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server, host, port := utilityStartEcho(t, ctx)
		defer server.Stop()

		tcpClient, err := NewTCPClient(nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := tcpClient.Connect(ctx, host, port); err != nil {
			t.Fatal(err)
		}
		defer tcpClient.Disconnect()
		tcpClient.SetTimeout(200 * time.Millisecond)

		if err := tcpClient.StartReceive(utilityDiscardReceive); err != nil {
			t.Fatal(err)
		}
		if !tcpClient.Receiving() {
			t.Error("client does not report receiving")
		}

		err = tcpClient.StartReceive(utilityDiscardReceive)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if got := utilityErrorType(t, err); got != ErrAlreadyReceiving {
			t.Errorf("expected error type %q, got %q", ErrAlreadyReceiving, got)
		}
	})

	t.Run("Delivers multi-byte payloads only", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server, host, port := utilityStartEcho(t, ctx)
		defer server.Stop()

		tcpClient, err := NewTCPClient(nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := tcpClient.Connect(ctx, host, port); err != nil {
			t.Fatal(err)
		}
		defer tcpClient.Disconnect()
		tcpClient.SetTimeout(200 * time.Millisecond)

		received := make(chan []byte, 4)
		onReceived := func(data []byte, err error) {
			if err == nil {
				received <- data
			}
		}
		if err := tcpClient.StartReceive(onReceived); err != nil {
			t.Fatal(err)
		}

		// A single byte is echoed back but filtered out by the loop
		if err := tcpClient.Send([]byte("x")); err != nil {
			t.Fatal("send:", err)
		}
		time.Sleep(300 * time.Millisecond)

		want := []byte("hello")
		if err := tcpClient.Send(want); err != nil {
			t.Fatal("send:", err)
		}

		select {
		case got := <-received:
			if !reflect.DeepEqual(want, got) {
				t.Fatalf("want: %s, got: %s", want, got)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for delivery")
		}

		if len(received) != 0 {
			t.Error("unexpected extra delivery")
		}
	})

	t.Run("Error events reach the callback", func(t *testing.T) {
		tcpClient, err := NewTCPClient(nil)
		if err != nil {
			t.Fatal(err)
		}

		wantErr := NewReceiveError("failed to read from connection", nil)
		gotData := []byte("sentinel")
		var gotErr error
		tcpClient.deliverError(func(data []byte, err error) {
			gotData = data
			gotErr = err
		}, wantErr)

		if gotData != nil {
			t.Error("error event carried data")
		}
		if gotErr != wantErr {
			t.Error("error event did not carry the receive error")
		}
	})

	t.Run("Connect and receive in one call", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server, host, port := utilityStartEcho(t, ctx)
		defer server.Stop()

		tcpClient, err := NewTCPClient(nil)
		if err != nil {
			t.Fatal(err)
		}

		received := make(chan []byte, 1)
		onReceived := func(data []byte, err error) {
			if err == nil {
				received <- data
			}
		}
		if err := tcpClient.ConnectReceive(ctx, host, port, onReceived); err != nil {
			t.Fatal(err)
		}
		defer tcpClient.Disconnect()

		if !tcpClient.Connected() {
			t.Error("client does not report connected")
		}
		if !tcpClient.Receiving() {
			t.Error("client does not report receiving")
		}

		want := []byte("ping!")
		if err := tcpClient.Send(want); err != nil {
			t.Fatal("send:", err)
		}

		select {
		case got := <-received:
			if !reflect.DeepEqual(want, got) {
				t.Fatalf("want: %s, got: %s", want, got)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for delivery")
		}
	})
}

func TestStopReceive(t *testing.T) {
	t.Run("Stops a running loop", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server, host, port := utilityStartEcho(t, ctx)
		defer server.Stop()

		tcpClient, err := NewTCPClient(nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := tcpClient.Connect(ctx, host, port); err != nil {
			t.Fatal(err)
		}
		defer tcpClient.Disconnect()
		tcpClient.SetTimeout(200 * time.Millisecond)

		if err := tcpClient.StartReceive(utilityDiscardReceive); err != nil {
			t.Fatal(err)
		}

		if !tcpClient.StopReceive() {
			t.Error("stop did not report a running loop")
		}
		if tcpClient.Receiving() {
			t.Error("client reports receiving after stop")
		}
		if !tcpClient.Connected() {
			t.Error("stopping the loop must leave the connection up")
		}
		if tcpClient.StopReceive() {
			t.Error("second stop should be a no-op")
		}
	})

	t.Run("Without a loop is a no-op", func(t *testing.T) {
		tcpClient, err := NewTCPClient(nil)
		if err != nil {
			t.Fatal(err)
		}

		if tcpClient.StopReceive() {
			t.Error("stop reported a loop on a fresh client")
		}
	})

	t.Run("Disconnect stops the loop", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server, host, port := utilityStartEcho(t, ctx)
		defer server.Stop()

		tcpClient, err := NewTCPClient(nil)
		if err != nil {
			t.Fatal(err)
		}
		if err := tcpClient.Connect(ctx, host, port); err != nil {
			t.Fatal(err)
		}
		tcpClient.SetTimeout(200 * time.Millisecond)

		if err := tcpClient.StartReceive(utilityDiscardReceive); err != nil {
			t.Fatal(err)
		}

		if !tcpClient.Disconnect() {
			t.Error("disconnect did not report teardown")
		}
		if tcpClient.Receiving() {
			t.Error("client reports receiving after disconnect")
		}
		if tcpClient.Connected() {
			t.Error("client reports connected after disconnect")
		}
	})
}

func utilityDiscardReceive(data []byte, err error) {}
