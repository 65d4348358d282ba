package evaluator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robbyt/go-symeval/engines/types"
	"github.com/robbyt/go-symeval/engines/vector/compiler"
	"github.com/robbyt/go-symeval/internal/helpers"
	"github.com/robbyt/go-symeval/platform"
	"github.com/robbyt/go-symeval/platform/bytecode"
	"github.com/robbyt/go-symeval/platform/constants"
	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/platform/metrics"
	"github.com/robbyt/go-symeval/platform/script"
)

// Evaluator runs an executable unit on a vector Interpreter.
type Evaluator struct {
	execUnit    *script.ExecutableUnit
	interp      *Interpreter
	rowProvider data.RowProvider
	metrics     *metrics.Metrics

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates an Evaluator whose interpreter captures the unit's binding.
func New(
	handler slog.Handler,
	execUnit *script.ExecutableUnit,
	opts ...FunctionalOption,
) (*Evaluator, error) {
	if execUnit == nil {
		return nil, fmt.Errorf("executable unit is nil")
	}
	cfg, err := newOptions(handler, opts)
	if err != nil {
		return nil, err
	}

	interp, err := newInterpreter(cfg, execUnit.GetBinding())
	if err != nil {
		return nil, err
	}

	e := &Evaluator{
		execUnit:    execUnit,
		interp:      interp,
		rowProvider: cfg.RowProvider,
		metrics:     cfg.Metrics,
	}
	if e.rowProvider == nil {
		e.rowProvider = data.NewContextProvider(constants.EvalRows)
	}
	if cfg.Logger != nil {
		e.logger = cfg.Logger
		e.logHandler = cfg.Logger.Handler()
	} else {
		e.logHandler, e.logger = helpers.SetupLogger(cfg.LogHandler, "vector", "Evaluator")
	}
	return e, nil
}

func (e *Evaluator) String() string {
	return "vector.Evaluator"
}

// Interpreter returns the interpreter bound to the unit's binding.
func (e *Evaluator) Interpreter() *Interpreter {
	return e.interp
}

// program builds a call-owned program with fresh leaf buffers.
func (e *Evaluator) program() (compiler.Program, string, error) {
	content := e.execUnit.GetContent()
	if content == nil {
		return nil, "", fmt.Errorf("content is nil")
	}

	exeID := e.execUnit.GetID()
	if exeID == "" {
		return nil, "", fmt.Errorf("exeID is empty")
	}

	if exe, ok := content.(*compiler.Executable); ok && exe.Rows() == e.interp.Rows() {
		return exe.NewProgram(), exeID, nil
	}

	t := content.GetTree()
	if t == nil {
		return nil, exeID, fmt.Errorf("content for ID %s carries no tree", exeID)
	}
	code, err := e.interp.Compile(t)
	if err != nil {
		return nil, exeID, fmt.Errorf("failed to compile tree for ID %s: %w", exeID, err)
	}
	return code, exeID, nil
}

// Eval evaluates the whole column, then returns either all of it or the rows
// selected in ctx in request order.
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
	size := len(code)
	values, err := e.interp.Run(code)
	if err == nil && selected {
		values, err = gather(values, rows)
	}
	execTime := time.Since(startTime)
	e.metrics.ObserveEval(types.Vector, startTime, size, len(values), err)

	if err != nil {
		logger.WarnContext(ctx, "evaluation failed", "error", err)
		return nil, fmt.Errorf("exec error: %w", err)
	}
	logger.DebugContext(ctx, "exec complete", "rows", len(values), "execTime", execTime)

	return platform.NewResult(values, rows, execTime, exeID), nil
}

// AddRowsToContext implements the data.RowSetter interface.
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

func gather(column []float64, rows []int) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, r := range rows {
		if r < 0 || r >= len(column) {
			return nil, fmt.Errorf("%w: row %d of %d", bytecode.ErrRowIndexOutOfRange, r, len(column))
		}
		out[i] = column[r]
	}
	return out, nil
}
