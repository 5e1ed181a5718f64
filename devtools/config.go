package devtools

import (
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxHistory is how many updates are kept when no limit is given.
	DefaultMaxHistory = 100
)

type Config struct {
	// Enabled turns tracking on. A disabled Devtools records nothing.
	Enabled bool
	// LogUpdates logs every tracked update at info level.
	LogUpdates bool
	// Inspector receives every event. Optional.
	Inspector Inspector
	// MaxHistory bounds the update history, oldest records are dropped first.
	MaxHistory int

	Logger logrus.FieldLogger
	Now    func() time.Time
}

func DefaultConfig() Config {
	return Config{
		MaxHistory: DefaultMaxHistory,
		Logger:     logrus.StandardLogger(),
		Now:        time.Now,
	}
}

type Option func(*Config)

func WithEnabled(enabled bool) Option {
	return func(c *Config) {
		c.Enabled = enabled
	}
}

func WithLogUpdates(logUpdates bool) Option {
	return func(c *Config) {
		c.LogUpdates = logUpdates
	}
}

func WithInspector(inspector Inspector) Option {
	return func(c *Config) {
		c.Inspector = inspector
	}
}

// WithMaxHistory sets the history bound. A value below one resets to the
// default.
func WithMaxHistory(max int) Option {
	return func(c *Config) {
		if max < 1 {
			c.MaxHistory = DefaultMaxHistory
			return
		}
		c.MaxHistory = max
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		if now != nil {
			c.Now = now
		}
	}
}
