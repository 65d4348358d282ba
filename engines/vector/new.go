package vector

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-symeval/engines/vector/compiler"
	"github.com/robbyt/go-symeval/engines/vector/evaluator"
	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/platform/script"
	"github.com/robbyt/go-symeval/tree"
)

// Evaluate compiles t against b and evaluates it over every row.
func Evaluate(t *tree.Tree, b data.Binding, opts ...evaluator.FunctionalOption) ([]float64, error) {
	in, err := evaluator.NewInterpreter(nil, b, opts...)
	if err != nil {
		return nil, err
	}
	return in.Evaluate(t)
}

// FromColumns creates a vector evaluator for t over a static set of columns.
func FromColumns(
	logHandler slog.Handler,
	t *tree.Tree,
	columns map[string][]float64,
	opts ...evaluator.FunctionalOption,
) (*evaluator.Evaluator, error) {
	b, err := data.NewStaticBinding(columns)
	if err != nil {
		return nil, err
	}
	return NewEvaluator(logHandler, t, b, opts...)
}

// NewCompiler creates a new vector compiler using the functional options pattern.
// Returns a compiler implementing the script.Compiler interface.
func NewCompiler(opts ...compiler.FunctionalOption) (*compiler.Compiler, error) {
	return compiler.New(opts...)
}

// NewEvaluator compiles t against b and returns an evaluator ready for
// execution. Metrics given through evaluator.WithMetrics are also recorded by
// the compiler.
func NewEvaluator(
	logHandler slog.Handler,
	t *tree.Tree,
	b data.Binding,
	opts ...evaluator.FunctionalOption,
) (*evaluator.Evaluator, error) {
	if b == nil {
		return nil, fmt.Errorf("binding is nil")
	}

	cfg := &evaluator.Options{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("error applying evaluator option: %w", err)
		}
	}

	compOpts := []compiler.FunctionalOption{compiler.WithMetrics(cfg.Metrics)}
	if logHandler != nil {
		compOpts = append(compOpts, compiler.WithLogHandler(logHandler))
	}
	comp, err := NewCompiler(compOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create vector compiler: %w", err)
	}

	execUnit, err := script.NewExecutableUnit(logHandler, "", t, comp, b)
	if err != nil {
		return nil, err
	}

	return evaluator.New(logHandler, execUnit, opts...)
}
