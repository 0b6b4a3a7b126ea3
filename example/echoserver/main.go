package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pol4bear/TCPTalk/echo"
)

func main() {
	host := "0.0.0.0"
	port := uint16(8001)

	server, err := echo.New(
		host,
		port,
		context.Background(),
		echo.WithBufferSize(8192),
		echo.WithIdleTimeout(time.Minute),
		echo.WithMaxConnections(100),
	)
	if err != nil {
		fmt.Printf("Failed to create echo server: %v\n", err)
		os.Exit(1)
	}

	// Announce every new session
	server.SetAnnounceNewSession(handleNewSession, nil)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("Starting echo server on %s:%d\n", host, port)
	if err := server.Start(); err != nil {
		fmt.Printf("Failed to start echo server: %v\n", err)
		os.Exit(1)
	}

	<-sigs
	fmt.Println("\nShutting down...")

	done := make(chan struct{})
	go func() {
		if err := server.Stop(); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
		close(done)
	}()

	select {
	case <-done:
		fmt.Println("Server shutdown complete")
	case <-time.After(10 * time.Second):
		fmt.Println("Server shutdown timed out")
	}
}

// handleNewSession is called when a new connection is established
func handleNewSession(options any, session *echo.Session) {
	fmt.Printf("New connection from %v - Session ID: %v\n", session.ClientAddr, session.ID)
}
