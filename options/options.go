package options

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/robbyt/go-symeval/engines/types"
	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/platform/metrics"
	"github.com/robbyt/go-symeval/tree"
)

// Config holds all configuration for creating an evaluator
type Config struct {
	// Logger for the engine
	handler slog.Handler
	// Engine that runs the compiled program (scalar, vector)
	engineType types.Type
	// Columns the tree's variables are bound to
	binding data.Binding
	// Expression to compile
	tree *tree.Tree
	// Version ID of the executable unit; derived from the tree when empty
	id string
	// Optional instrumentation, may be nil
	metrics *metrics.Metrics
	// Vector engine kernel settings; zero means the engine default
	workers int
	grain   int
}

// Option is a function that modifies Config
type Option func(*Config) error

// WithLogHandler sets the log handler for the engine
func WithLogHandler(handler slog.Handler) Option {
	return func(c *Config) error {
		if handler != nil {
			c.handler = handler
		}
		return nil
	}
}

// WithBinding sets the columns variables resolve against
func WithBinding(b data.Binding) Option {
	return func(c *Config) error {
		if b != nil {
			c.binding = b
		}
		return nil
	}
}

// WithColumns binds variables to a static set of columns
func WithColumns(columns map[string][]float64) Option {
	return func(c *Config) error {
		b, err := data.NewStaticBinding(columns)
		if err != nil {
			return err
		}
		c.binding = b
		return nil
	}
}

// WithTree sets the expression to compile
func WithTree(t *tree.Tree) Option {
	return func(c *Config) error {
		if t == nil {
			return errors.New("tree cannot be nil")
		}
		c.tree = t
		return nil
	}
}

// WithID sets the version ID of the executable unit
func WithID(id string) Option {
	return func(c *Config) error {
		c.id = id
		return nil
	}
}

// WithMetrics records compilations and evaluations in m
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Config) error {
		c.metrics = m
		return nil
	}
}

// WithWorkers caps the goroutines of one vector kernel
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("workers must be at least 1, got %d", n)
		}
		c.workers = n
		return nil
	}
}

// WithGrainSize sets the rows handed to one vector kernel task
func WithGrainSize(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("grain size must be at least 1, got %d", n)
		}
		c.grain = n
		return nil
	}
}

// Validate performs basic validation on the configuration
func (c *Config) Validate() error {
	if c.tree == nil {
		return fmt.Errorf("no tree specified")
	}
	if c.engineType == "" {
		return fmt.Errorf("no engine type specified")
	}
	if !c.engineType.Valid() {
		return fmt.Errorf("unknown engine type: %s", c.engineType)
	}
	if c.binding == nil {
		return fmt.Errorf("no binding specified")
	}
	return nil
}

// GetHandler returns the configured log handler
func (c *Config) GetHandler() slog.Handler {
	return c.handler
}

// SetHandler sets the log handler
func (c *Config) SetHandler(handler slog.Handler) {
	c.handler = handler
}

// GetEngineType returns the configured engine type
func (c *Config) GetEngineType() types.Type {
	return c.engineType
}

// SetEngineType sets the engine type
func (c *Config) SetEngineType(engineType types.Type) {
	c.engineType = engineType
}

// GetBinding returns the configured binding
func (c *Config) GetBinding() data.Binding {
	return c.binding
}

// SetBinding sets the binding
func (c *Config) SetBinding(b data.Binding) {
	c.binding = b
}

// GetTree returns the expression to compile
func (c *Config) GetTree() *tree.Tree {
	return c.tree
}

// GetID returns the configured version ID
func (c *Config) GetID() string {
	return c.id
}

// GetMetrics returns the configured metrics, which may be nil
func (c *Config) GetMetrics() *metrics.Metrics {
	return c.metrics
}

// GetWorkers returns the vector kernel worker cap, or 0 for the default
func (c *Config) GetWorkers() int {
	return c.workers
}

// GetGrainSize returns the vector kernel grain size, or 0 for the default
func (c *Config) GetGrainSize() int {
	return c.grain
}
