package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	tcptalk "github.com/pol4bear/TCPTalk"
)

func main() {
	app := &cli.App{
		Name:      "tcptalk",
		Usage:     "interactive TCP client",
		ArgsUsage: "<address> <port>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "size",
				Aliases: []string{"s"},
				Usage:   "receive buffer size in bytes",
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Aliases: []string{"t"},
				Usage:   "timeout of the tcp connection and each receive",
			},
			&cli.StringFlag{
				Name:    "encoding",
				Aliases: []string{"e"},
				Usage:   "text encoding used for the tcp communication",
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "line-based mode without the terminal UI",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log at debug level",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	flags, err := flagConfig(ctx)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	cfg, err := newConfigBuilder().
		withFlags(flags).
		withEnv().
		withDefaults().
		build()
	if err != nil {
		if ctx.NArg() < 2 {
			cli.ShowAppHelp(ctx)
		}
		return cli.Exit(err.Error(), 2)
	}

	log := newLogger(cfg.Debug)

	tcpClient, err := tcptalk.NewTCPClient(
		tcptalk.WithClientBufferSize(cfg.BufferSize),
		tcptalk.WithClientTimeout(cfg.Timeout),
		tcptalk.WithClientEncoding(cfg.Encoding),
		tcptalk.WithClientLogger(newClientLogger(log)),
	)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	if cfg.Plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		return runPlain(tcpClient, cfg, log)
	}
	return runTUI(tcpClient, cfg, log)
}
