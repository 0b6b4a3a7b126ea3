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

	onReceived := func(data []byte, err error) {
		if err != nil {
			fmt.Printf("Receive loop stopped: %v\n", err)
			return
		}
		fmt.Printf("Received: %s\n", data)
	}

	ctx := context.Background()
	if err := tcpClient.ConnectReceive(ctx, "127.0.0.1", 8001, onReceived); err != nil {
		log.Fatal("Failed to connect:", err)
	}

	for _, line := range []string{"first message", "second message", "third message"} {
		if err := tcpClient.Send([]byte(line)); err != nil {
			log.Fatal("Failed to send data:", err)
		}
		fmt.Printf("Sent: %s\n", line)
		time.Sleep(500 * time.Millisecond)
	}

	tcpClient.StopReceive()
	tcpClient.Disconnect()
}
