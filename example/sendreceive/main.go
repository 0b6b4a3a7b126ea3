package main

import (
	"context"
	"fmt"
	"log"
	"time"

	tcptalk "github.com/pol4bear/TCPTalk"
)

func main() {
	tcpClient, err := tcptalk.NewTCPClient(
		tcptalk.WithClientTimeout(2 * time.Second),
	)
	if err != nil {
		log.Fatal("Failed to create TCP client:", err)
	}

	ctx := context.Background()
	if err := tcpClient.Connect(ctx, "127.0.0.1", 8001); err != nil {
		log.Fatal("Failed to connect:", err)
	}
	defer tcpClient.Disconnect()

	message := []byte("Hello, echo server!")
	if err := tcpClient.Send(message); err != nil {
		log.Fatal("Failed to send data:", err)
	}
	fmt.Printf("Sent: %s\n", message)

	// Receive returns an empty slice when the read times out, so keep
	// polling until the echo arrives or the deadline passes.
	deadline := time.After(10 * time.Second)
	for {
		select {
		case <-deadline:
			log.Fatal("Timeout waiting for response")
		default:
			response, err := tcpClient.Receive()
			if err != nil {
				log.Fatal("Failed to receive data:", err)
			}
			if len(response) > 0 {
				fmt.Printf("Received: %s\n", response)
				return
			}
		}
	}
}
