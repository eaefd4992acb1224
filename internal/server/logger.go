package server

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/pageza/recipify/backend/config"
)

// NewLogger builds the process logger. Development gets human-readable
// console output; other environments log JSON.
func NewLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Environment == config.Development {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Str("service", "recipify").Logger()
}
