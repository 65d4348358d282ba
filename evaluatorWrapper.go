package symeval

import (
	"context"

	"github.com/robbyt/go-symeval/platform"
	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/platform/script"
)

// EvaluatorWrapper wraps an engine-specific evaluator and stores the ExecutableUnit.
// This allows callers to follow the "compile once, run many times" pattern.
// It implements the platform.Evaluator interface.
type EvaluatorWrapper struct {
	delegate platform.EvalOnly
	execUnit *script.ExecutableUnit
}

var _ platform.Evaluator = (*EvaluatorWrapper)(nil)

// NewEvaluatorWrapper creates a new evaluator wrapper
func NewEvaluatorWrapper(
	delegate platform.EvalOnly,
	execUnit *script.ExecutableUnit,
) *EvaluatorWrapper {
	return &EvaluatorWrapper{
		delegate: delegate,
		execUnit: execUnit,
	}
}

// Eval implements the platform.EvalOnly interface
func (e *EvaluatorWrapper) Eval(ctx context.Context) (platform.EvaluatorResponse, error) {
	return e.delegate.Eval(ctx)
}

// AddRowsToContext implements the data.RowSetter interface. It delegates to the
// wrapped evaluator when it can select rows, otherwise it stores the rows
// under the default context key.
func (e *EvaluatorWrapper) AddRowsToContext(
	ctx context.Context,
	rows ...[]int,
) (context.Context, error) {
	if setter, ok := e.delegate.(data.RowSetter); ok {
		return setter.AddRowsToContext(ctx, rows...)
	}
	var flat []int
	for _, r := range rows {
		flat = append(flat, r...)
	}
	return data.WithRows(ctx, flat...)
}

// GetExecutableUnit returns the stored ExecutableUnit
func (e *EvaluatorWrapper) GetExecutableUnit() *script.ExecutableUnit {
	return e.execUnit
}
