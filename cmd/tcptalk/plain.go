package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	tcptalk "github.com/pol4bear/TCPTalk"
	"github.com/pol4bear/TCPTalk/codec"
)

// runPlain drives the client with line-based stdin input. Received payloads
// are printed by the client's default sink.
func runPlain(tcpClient tcptalk.Client, cfg *Config, log zerolog.Logger) error {
	if err := tcpClient.ConnectReceive(context.Background(), cfg.Address, cfg.Port, nil); err != nil {
		log.Error().Err(err).Msg("connect failed")
		return cli.Exit(err.Error(), 1)
	}
	log.Info().Str("address", cfg.Address).Int("port", cfg.Port).Msg("connected")
	fmt.Printf("Connected to %s:%d. Ctrl+C or end of input to quit.\n", cfg.Address, cfg.Port)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		fmt.Println()
		log.Info().Msg("signal received, disconnecting")
		tcpClient.Disconnect()
		os.Exit(0)
	}()

	scanner := bufio.NewScanner(os.Stdin)
	for tcpClient.Connected() && scanner.Scan() {
		payload, err := codec.Encode(cfg.Encoding, scanner.Text())
		if err != nil {
			log.Error().Err(err).Msg("encode failed")
			fmt.Fprintf(os.Stderr, "encode failed: %v\n", err)
			continue
		}
		if err := tcpClient.Send(payload); err != nil {
			log.Error().Err(err).Msg("send failed")
			fmt.Fprintf(os.Stderr, "send failed: %v\n", err)
		}
	}

	tcpClient.Disconnect()
	return nil
}
