package sheetgrid

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config represents configuration for the grid client
type Config struct {
	Logger *zerolog.Logger // Destination for diagnostics (default: global zerolog logger)
}

// DefaultConfig returns the configuration used when New receives nil
func DefaultConfig() *Config {
	return &Config{
		Logger: &log.Logger,
	}
}

func (c *Config) logger() zerolog.Logger {
	if c == nil || c.Logger == nil {
		return log.Logger
	}
	return *c.Logger
}
