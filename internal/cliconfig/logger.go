package cliconfig

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/bft-labs/opstate/pkg/log"
)

// Logger returns the bootstrap logger used before configuration is loaded.
func Logger() zerolog.Logger {
	return log.NewConsoleLogger(os.Stderr)
}

// NewLogger builds the logger described by a validated cfg, writing to w.
func NewLogger(cfg Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.LogFormat == FormatJSON {
		logger = zerolog.New(w).With().Timestamp().Logger()
	} else {
		logger = log.NewConsoleLogger(w)
	}
	return logger.Level(level)
}
