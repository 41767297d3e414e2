package executor

import (
	"time"

	"github.com/rs/zerolog"
)

// Config holds the stream executor configuration.
type Config struct {
	// Logger receives debug logs for every transfer (default: disabled)
	Logger zerolog.Logger

	// Metrics records transfer counters (optional)
	Metrics *Metrics

	// CommandDelay is slept after every Send
	CommandDelay time.Duration
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Logger: zerolog.Nop(),
	}
}

// Option is a functional option for configuring a Stream.
type Option func(*Config)

// WithLogger sets the logger for transfer diagnostics.
//
// Example:
//
//	ex := executor.NewStream(port, executor.WithLogger(logging.New("mpssectl", logging.Options{})))
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMetrics records transfer statistics in m.
//
// Example:
//
//	m := executor.NewMetrics(prometheus.DefaultRegisterer)
//	ex := executor.NewStream(port, executor.WithMetrics(m))
func WithMetrics(m *Metrics) Option {
	return func(c *Config) {
		c.Metrics = m
	}
}

// WithCommandDelay sets a pause after every Send, for bridges that drop
// back-to-back writes.
func WithCommandDelay(delay time.Duration) Option {
	return func(c *Config) {
		if delay >= 0 {
			c.CommandDelay = delay
		}
	}
}
