// Package config loads server settings from the environment, an optional
// .env file, command-line flags and positional host/port arguments, in that
// order of increasing precedence.
package config

import (
	"flag"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Host          string        `env:"CHAT_HOST,default=0.0.0.0"`
	Port          int           `env:"CHAT_PORT,default=5000" validate:"min=0,max=65535"`
	MetricsAddr   string        `env:"CHAT_METRICS_ADDR,default=:9090"`
	LogLevel      string        `env:"CHAT_LOG_LEVEL,default=info" validate:"oneof=debug info warn error DEBUG INFO WARN ERROR"`
	WriteTimeout  time.Duration `env:"CHAT_WRITE_TIMEOUT,default=5s" validate:"gte=0"`
	NameTimeout   time.Duration `env:"CHAT_NAME_TIMEOUT,default=1m" validate:"gte=0"`
	MaxNameLength int           `env:"CHAT_MAX_NAME_LENGTH,default=32" validate:"gte=0"`
}

var validate = validator.New()

// Load builds a Config. args excludes the program name.
func Load(args []string) (Config, error) {
	// A missing .env file is normal.
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}

	fs := flag.NewFlagSet("budgetchat", flag.ContinueOnError)
	fs.StringVar(&cfg.Host, "host", cfg.Host, "chat listen host")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "chat listen port")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "metrics listen address, empty disables")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.DurationVar(&cfg.WriteTimeout, "write-timeout", cfg.WriteTimeout, "per-write deadline, 0 disables")
	fs.DurationVar(&cfg.NameTimeout, "name-timeout", cfg.NameTimeout, "deadline for the name reply, 0 disables")
	fs.IntVar(&cfg.MaxNameLength, "max-name-length", cfg.MaxNameLength, "longest accepted name, 0 disables")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 2:
		port, err := strconv.Atoi(rest[1])
		if err != nil {
			return Config{}, fmt.Errorf("port %q: %w", rest[1], err)
		}
		cfg.Host, cfg.Port = rest[0], port
	default:
		return Config{}, fmt.Errorf("expected positional arguments <host> <port>, got %d", len(rest))
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
