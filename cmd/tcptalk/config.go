package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/urfave/cli/v2"

	"github.com/pol4bear/TCPTalk/codec"
)

// Config is the resolved CLI configuration. Flag values take precedence
// over environment variables, which take precedence over the defaults.
type Config struct {
	Address    string        `env:"TCPTALK_ADDRESS"`
	Port       int           `env:"TCPTALK_PORT"`
	BufferSize int           `env:"TCPTALK_SIZE"`
	Timeout    time.Duration `env:"TCPTALK_TIMEOUT"`
	Encoding   string        `env:"TCPTALK_ENCODING"`
	Plain      bool          `env:"TCPTALK_PLAIN"`
	Debug      bool          `env:"TCPTALK_DEBUG"`
}

func defaultConfig() *Config {
	return &Config{
		BufferSize: 8192,
		Timeout:    5 * time.Second,
		Encoding:   codec.DefaultEncoding,
	}
}

// flagConfig collects the flag layer of the configuration from the command
// line. The address and port positionals are optional so TCPTALK_ADDRESS and
// TCPTALK_PORT can stand in for them.
func flagConfig(ctx *cli.Context) (*Config, error) {
	flags := &Config{
		Address:    ctx.Args().Get(0),
		BufferSize: ctx.Int("size"),
		Timeout:    ctx.Duration("timeout"),
		Encoding:   ctx.String("encoding"),
		Plain:      ctx.Bool("plain"),
		Debug:      ctx.Bool("debug"),
	}

	if ctx.NArg() > 1 {
		port, err := strconv.Atoi(ctx.Args().Get(1))
		if err != nil {
			return nil, fmt.Errorf("port %q is not a number", ctx.Args().Get(1))
		}
		flags.Port = port
	}

	return flags, nil
}

type configBuilder struct {
	configs []*Config
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*Config, 0, 3),
	}
}

func (b *configBuilder) build() (*Config, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	config := new(Config)
	for _, cfg := range b.configs {
		if err := mergo.Merge(config, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, config.validate()
}

func (b *configBuilder) withFlags(flags *Config) *configBuilder {
	b.configs = append(b.configs, flags)
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg := &Config{}
	if err := env.Parse(envCfg); err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error getting env configs: %w", err))
		return b
	}

	b.configs = append(b.configs, envCfg)
	return b
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.configs = append(b.configs, defaultConfig())
	return b
}

func (c *Config) validate() error {
	if c.Address == "" {
		return fmt.Errorf("server address is required")
	}
	if c.Port < 0 || c.Port >= 65535 {
		return fmt.Errorf("port %d outside [0, 65535)", c.Port)
	}
	if c.BufferSize < 1 {
		return fmt.Errorf("receive buffer size must be at least 1")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if _, err := codec.Lookup(c.Encoding); err != nil {
		return fmt.Errorf("unknown encoding: %s", c.Encoding)
	}
	return nil
}
