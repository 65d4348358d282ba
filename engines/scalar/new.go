package scalar

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-symeval/engines/scalar/compiler"
	"github.com/robbyt/go-symeval/engines/scalar/evaluator"
	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/platform/metrics"
	"github.com/robbyt/go-symeval/platform/script"
	"github.com/robbyt/go-symeval/tree"
)

// Evaluate compiles t against b and evaluates it for one row.
func Evaluate(t *tree.Tree, row int, b data.Binding) (float64, error) {
	code, err := compiler.Build(t, b)
	if err != nil {
		return 0, err
	}
	return evaluator.Run(code, row)
}

// EvaluateRows compiles t against b once and evaluates it for each row, in
// the order given.
func EvaluateRows(t *tree.Tree, rows []int, b data.Binding) ([]float64, error) {
	code, err := compiler.Build(t, b)
	if err != nil {
		return nil, err
	}
	return evaluator.RunRows(code, rows)
}

// FromColumns creates a scalar evaluator for t over a static set of columns.
func FromColumns(
	logHandler slog.Handler,
	t *tree.Tree,
	columns map[string][]float64,
) (*evaluator.Evaluator, error) {
	b, err := data.NewStaticBinding(columns)
	if err != nil {
		return nil, err
	}
	return NewEvaluator(logHandler, t, b, nil)
}

// NewCompiler creates a new scalar compiler using the functional options pattern.
// Returns a compiler implementing the script.Compiler interface.
func NewCompiler(opts ...compiler.FunctionalOption) (*compiler.Compiler, error) {
	return compiler.New(opts...)
}

// NewEvaluator compiles t against b and returns an evaluator ready for
// execution. m may be nil.
func NewEvaluator(
	logHandler slog.Handler,
	t *tree.Tree,
	b data.Binding,
	m *metrics.Metrics,
) (*evaluator.Evaluator, error) {
	if b == nil {
		return nil, fmt.Errorf("binding is nil")
	}

	compOpts := []compiler.FunctionalOption{compiler.WithMetrics(m)}
	if logHandler != nil {
		compOpts = append(compOpts, compiler.WithLogHandler(logHandler))
	}
	comp, err := NewCompiler(compOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scalar compiler: %w", err)
	}

	execUnit, err := script.NewExecutableUnit(logHandler, "", t, comp, b)
	if err != nil {
		return nil, err
	}

	return evaluator.New(logHandler, execUnit, evaluator.WithMetrics(m)), nil
}
