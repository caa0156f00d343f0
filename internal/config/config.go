package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultConfigPath     = "config.toml"
	DefaultHTTPAddr       = ":8080"
	DefaultProbePath      = "/healthcheck"
	DefaultConnectTimeout = "1s"
	DefaultRequestTimeout = "1s"
	DefaultMaxInFlight    = 8
)

type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Telegram TelegramConfig `toml:"telegram"`
	Probe    ProbeConfig    `toml:"probe"`
	Nodes    []NodeConfig   `toml:"nodes" validate:"dive"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type TelegramConfig struct {
	BotToken string `toml:"bot_token" validate:"required"`
}

type ProbeConfig struct {
	Path           string `toml:"path"`
	ConnectTimeout string `toml:"connect_timeout"`
	RequestTimeout string `toml:"request_timeout"`
	MaxInFlight    int    `toml:"max_in_flight"`
}

type NodeConfig struct {
	Host string `toml:"host" validate:"required"`
	Port int    `toml:"port" validate:"min=1,max=65535"`
}

// Timeouts parses the configured probe timeout strings.
func (c ProbeConfig) Timeouts() (connect, request time.Duration, err error) {
	connect, err = time.ParseDuration(c.ConnectTimeout)
	if err != nil {
		return 0, 0, fmt.Errorf("parse connect_timeout: %w", err)
	}
	request, err = time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, 0, fmt.Errorf("parse request_timeout: %w", err)
	}
	return connect, request, nil
}

func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Server: ServerConfig{
			Addr: DefaultHTTPAddr,
		},
		Probe: ProbeConfig{
			Path:           DefaultProbePath,
			ConnectTimeout: DefaultConnectTimeout,
			RequestTimeout: DefaultRequestTimeout,
			MaxInFlight:    DefaultMaxInFlight,
		},
		Nodes: []NodeConfig{
			{Host: "127.0.0.1", Port: 8080},
			{Host: "164.92.219.216", Port: 6996},
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks the loaded config, including the parseability of the
// probe timeouts.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, _, err := c.Probe.Timeouts(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
