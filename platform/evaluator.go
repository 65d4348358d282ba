package platform

import (
	"context"

	"github.com/robbyt/go-symeval/platform/data"
)

// EvalOnly is the interface for the generic program evaluator.
type EvalOnly interface {
	// Eval evaluates the pre-compiled tree over the rows selected in ctx, or
	// over every row of the binding when ctx carries no selection.
	//
	// This design encourages the "compile once, run many times" pattern:
	// validating and binding a tree is separated from evaluating it. Each call
	// works on its own copy of the program, so Eval is safe for concurrent use.
	Eval(ctx context.Context) (EvaluatorResponse, error)
}

// Evaluator combines EvalOnly with a RowSetter, so a caller can select rows
// in one step and evaluate them in another.
type Evaluator interface {
	EvalOnly
	data.RowSetter
}
