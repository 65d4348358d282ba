package evaluator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robbyt/go-symeval/engines/scalar/compiler"
	"github.com/robbyt/go-symeval/engines/types"
	"github.com/robbyt/go-symeval/internal/helpers"
	"github.com/robbyt/go-symeval/platform"
	"github.com/robbyt/go-symeval/platform/constants"
	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/platform/metrics"
	"github.com/robbyt/go-symeval/platform/script"
)

// Evaluator evaluates a compiled scalar program row by row.
type Evaluator struct {
	// execUnit contains the compiled program and its binding
	execUnit *script.ExecutableUnit

	// rowProvider reads the row selection from the context
	rowProvider data.RowProvider

	metrics *metrics.Metrics

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a new Evaluator object
func New(
	handler slog.Handler,
	execUnit *script.ExecutableUnit,
	opts ...Option,
) *Evaluator {
	handler, logger := helpers.SetupLogger(handler, "scalar", "Evaluator")

	e := &Evaluator{
		execUnit:    execUnit,
		rowProvider: data.NewContextProvider(constants.EvalRows),
		logHandler:  handler,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) String() string {
	return "scalar.Evaluator"
}

// program returns a copy of the compiled program owned by the caller.
func (e *Evaluator) program() (compiler.Program, string, error) {
	if e.execUnit == nil {
		return nil, "", fmt.Errorf("executable unit is nil")
	}
	content := e.execUnit.GetContent()
	if content == nil {
		return nil, "", fmt.Errorf("content is nil")
	}

	exeID := e.execUnit.GetID()
	if exeID == "" {
		return nil, "", fmt.Errorf("exeID is empty")
	}

	if exe, ok := content.(*compiler.Executable); ok {
		return exe.GetProgram(), exeID, nil
	}

	code, ok := content.GetByteCode().(compiler.Program)
	if !ok {
		return nil, exeID, fmt.Errorf(
			"unable to type assert bytecode into compiler.Program for ID: %s", exeID)
	}
	return append(compiler.Program(nil), code...), exeID, nil
}

// Eval evaluates the program over the rows selected in ctx, or over every
// row of the unit's binding when ctx carries no selection.
func (e *Evaluator) Eval(ctx context.Context) (platform.EvaluatorResponse, error) {
	logger := e.logger.WithGroup("Eval")

	code, exeID, err := e.program()
	if err != nil {
		return nil, err
	}
	logger = logger.With("exeID", exeID)

	rows, selected, err := e.rowProvider.GetRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get row selection: %w", err)
	}

	startTime := time.Now()
	var values []float64
	if selected {
		values, err = RunRows(code, rows)
	} else {
		n := 0
		if b := e.execUnit.GetBinding(); b != nil {
			n = b.Rows()
		}
		values, err = runRange(code, n)
	}
	execTime := time.Since(startTime)
	e.metrics.ObserveEval(types.Scalar, startTime, len(code), len(values), err)

	if err != nil {
		logger.WarnContext(ctx, "evaluation failed", "error", err)
		return nil, fmt.Errorf("exec error: %w", err)
	}
	logger.DebugContext(ctx, "exec complete", "rows", len(values), "execTime", execTime)

	return platform.NewResult(values, rows, execTime, exeID), nil
}

// EvalRow evaluates the program for a single row.
func (e *Evaluator) EvalRow(ctx context.Context, row int) (float64, error) {
	code, exeID, err := e.program()
	if err != nil {
		return 0, err
	}

	startTime := time.Now()
	v, err := Run(code, row)
	e.metrics.ObserveEval(types.Scalar, startTime, len(code), 1, err)
	if err != nil {
		e.logger.WarnContext(ctx, "row evaluation failed", "exeID", exeID, "row", row, "error", err)
		return 0, err
	}
	return v, nil
}

// AddRowsToContext implements the data.RowSetter interface, storing a row
// selection that a later Eval will read.
func (e *Evaluator) AddRowsToContext(
	ctx context.Context,
	rows ...[]int,
) (context.Context, error) {
	logger := e.logger.WithGroup("AddRowsToContext")

	newCtx, err := e.rowProvider.AddRowsToContext(ctx, rows...)
	if err != nil {
		logger.WarnContext(ctx, "some rows were rejected", "error", err)
	}
	return newCtx, err
}
