package evaluator

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/platform/metrics"
)

// DefaultGrainSize is the number of rows one kernel task processes.
const DefaultGrainSize = 4096

// Options configures an Interpreter and the Evaluator built around it.
type Options struct {
	// Workers caps the goroutines running one instruction's kernel.
	Workers int

	// GrainSize is the number of rows handed to one kernel task.
	GrainSize int

	LogHandler  slog.Handler
	Logger      *slog.Logger
	Metrics     *metrics.Metrics
	RowProvider data.RowProvider
}

// FunctionalOption is a function that configures an Options instance
type FunctionalOption func(*Options) error

// WithWorkers sets the maximum number of goroutines per kernel.
func WithWorkers(n int) FunctionalOption {
	return func(cfg *Options) error {
		if n < 1 {
			return fmt.Errorf("workers must be at least 1, got %d", n)
		}
		cfg.Workers = n
		return nil
	}
}

// WithGrainSize sets the number of rows per kernel task.
func WithGrainSize(n int) FunctionalOption {
	return func(cfg *Options) error {
		if n < 1 {
			return fmt.Errorf("grain size must be at least 1, got %d", n)
		}
		cfg.GrainSize = n
		return nil
	}
}

// WithLogHandler overrides the handler passed to the constructor.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(cfg *Options) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		cfg.LogHandler = handler
		cfg.Logger = nil
		return nil
	}
}

// WithLogger sets a specific logger, overriding any handler.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(cfg *Options) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		cfg.Logger = logger
		cfg.LogHandler = nil
		return nil
	}
}

// WithMetrics records every evaluation in m.
func WithMetrics(m *metrics.Metrics) FunctionalOption {
	return func(cfg *Options) error {
		cfg.Metrics = m
		return nil
	}
}

// WithRowProvider replaces the context provider used to find the row selection.
func WithRowProvider(p data.RowProvider) FunctionalOption {
	return func(cfg *Options) error {
		if p == nil {
			return fmt.Errorf("row provider cannot be nil")
		}
		cfg.RowProvider = p
		return nil
	}
}

func newOptions(handler slog.Handler, opts []FunctionalOption) (*Options, error) {
	cfg := &Options{LogHandler: handler}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying evaluator option: %w", err)
		}
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid evaluator configuration: %w", err)
	}
	return cfg, nil
}

func (cfg *Options) applyDefaults() {
	if cfg.Workers == 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.GrainSize == 0 {
		cfg.GrainSize = DefaultGrainSize
	}
}

func (cfg *Options) validate() error {
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}
	if cfg.GrainSize < 1 {
		return fmt.Errorf("grain size must be at least 1")
	}
	return nil
}
