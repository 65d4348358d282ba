package options

import (
	"log/slog"
	"os"

	"github.com/robbyt/go-symeval/engines/types"
	"github.com/robbyt/go-symeval/platform/data"
)

// DefaultConfig initializes a Config with sensible defaults
func DefaultConfig(engineType types.Type) *Config {
	cfg := &Config{}
	cfg.SetEngineType(engineType)
	cfg.SetHandler(DefaultHandler())
	cfg.SetBinding(DefaultBinding())
	return cfg
}

// DefaultHandler returns the default logging handler
func DefaultHandler() slog.Handler {
	return slog.NewTextHandler(os.Stdout, nil)
}

// DefaultBinding returns a binding with no columns and no rows. Only trees
// made of constants compile against it.
func DefaultBinding() data.Binding {
	b, _ := data.NewStaticBinding(nil)
	return b
}

// WithDefaults applies default values to any config properties that are nil
func WithDefaults() Option {
	return func(c *Config) error {
		if c.handler == nil {
			c.handler = DefaultHandler()
		}

		if c.binding == nil {
			c.binding = DefaultBinding()
		}

		return nil
	}
}
