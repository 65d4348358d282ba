package evaluator

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-symeval/engines/vector/compiler"
	"github.com/robbyt/go-symeval/internal/helpers"
	"github.com/robbyt/go-symeval/platform/bytecode"
	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/tree"
)

// Interpreter evaluates vector programs over every row of a captured binding.
// It holds no mutable state, so one Interpreter may run many programs
// concurrently as long as each program is owned by a single caller.
type Interpreter struct {
	binding *data.StaticBinding
	rows    int
	workers int
	grain   int

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewInterpreter captures every column of b once and returns an interpreter
// bound to that snapshot.
func NewInterpreter(
	handler slog.Handler,
	b data.Binding,
	opts ...FunctionalOption,
) (*Interpreter, error) {
	cfg, err := newOptions(handler, opts)
	if err != nil {
		return nil, err
	}
	return newInterpreter(cfg, b)
}

func newInterpreter(cfg *Options, b data.Binding) (*Interpreter, error) {
	if b == nil {
		return nil, compiler.ErrBindingNil
	}
	snapshot, err := data.Capture(b)
	if err != nil {
		return nil, fmt.Errorf("failed to capture binding: %w", err)
	}

	in := &Interpreter{
		binding: snapshot,
		rows:    snapshot.Rows(),
		workers: cfg.Workers,
		grain:   cfg.GrainSize,
	}
	if cfg.Logger != nil {
		in.logger = cfg.Logger
		in.logHandler = cfg.Logger.Handler()
	} else {
		in.logHandler, in.logger = helpers.SetupLogger(cfg.LogHandler, "vector", "Interpreter")
	}

	in.logger.Debug("interpreter ready",
		"columns", len(snapshot.Names()), "rows", in.rows,
		"workers", in.workers, "grain", in.grain)
	return in, nil
}

func (in *Interpreter) String() string {
	return "vector.Interpreter"
}

// Rows returns the number of rows every program evaluates.
func (in *Interpreter) Rows() int {
	return in.rows
}

// Binding returns the captured snapshot.
func (in *Interpreter) Binding() data.Binding {
	return in.binding
}

// Compile lays t out against the captured columns with fresh leaf buffers.
func (in *Interpreter) Compile(t *tree.Tree) (compiler.Program, error) {
	return compiler.Build(t, in.binding)
}

// Evaluate compiles t and runs it.
func (in *Interpreter) Evaluate(t *tree.Tree) ([]float64, error) {
	code, err := in.Compile(t)
	if err != nil {
		return nil, err
	}
	return in.Run(code)
}

// Run evaluates code over every row and returns the result column.
//
// The scan goes from the last slot to the first. Each step is one parallel
// kernel that finishes before the next step starts. A binary slot takes over
// its first child's buffer, combines the second child's buffer into it, then
// releases the second; a unary slot takes over its child's buffer. The root
// buffer is handed to the caller and the slot is left empty, so code may be
// run again.
func (in *Interpreter) Run(code compiler.Program) ([]float64, error) {
	if len(code) == 0 {
		return nil, bytecode.ErrEmptyProgram
	}
	n := in.rows

	for i := len(code) - 1; i >= 0; i-- {
		ins := &code[i]
		switch ins.Op {
		case tree.OpVariable:
			if len(ins.Column) < n {
				return nil, fmt.Errorf("%w: column %q has %d rows, want %d",
					bytecode.ErrRowIndexOutOfRange, ins.Name, len(ins.Column), n)
			}
			ins.Payload = in.leafBuffer(ins.Payload)
			parallel(n, in.grain, in.workers, scaleKernel(ins.Payload, ins.Column, ins.Weight))

		case tree.OpConstant:
			ins.Payload = in.leafBuffer(ins.Payload)
			parallel(n, in.grain, in.workers, fillKernel(ins.Payload, ins.Value))

		case tree.OpAdd, tree.OpSub, tree.OpMul, tree.OpDiv:
			if err := checkOperands(code, i); err != nil {
				return nil, err
			}
			a, b := &code[ins.Index], &code[ins.Index+1]
			dst, src := a.Payload, b.Payload
			if len(dst) != n || len(src) != n {
				return nil, fmt.Errorf("%w: slot %d operands are unresolved", bytecode.ErrLayout, i)
			}
			a.Payload = nil
			parallel(n, in.grain, in.workers, binaryKernel(ins.Op, dst, src))
			b.Payload = nil
			ins.Payload = dst

		case tree.OpNeg, tree.OpExp, tree.OpLog:
			if err := checkOperands(code, i); err != nil {
				return nil, err
			}
			a := &code[ins.Index]
			dst := a.Payload
			if len(dst) != n {
				return nil, fmt.Errorf("%w: slot %d operand is unresolved", bytecode.ErrLayout, i)
			}
			a.Payload = nil
			parallel(n, in.grain, in.workers, unaryKernel(ins.Op, dst))
			ins.Payload = dst

		default:
			return nil, fmt.Errorf("%w: slot %d has %s", bytecode.ErrStructuralMismatch, i, ins.Op)
		}
	}

	out := code[0].Payload
	code[0].Payload = nil
	return out, nil
}

// leafBuffer reuses buf when it already has one slot per row.
func (in *Interpreter) leafBuffer(buf []float64) []float64 {
	if len(buf) == in.rows {
		return buf
	}
	return make([]float64, in.rows)
}

func checkOperands(code compiler.Program, i int) error {
	ins := &code[i]
	if ins.Arity != ins.Op.Arity() {
		return fmt.Errorf("%w: slot %d (%s) has arity %d",
			bytecode.ErrStructuralMismatch, i, ins.Op, ins.Arity)
	}
	if ins.Index <= i || ins.Index+ins.Arity > len(code) {
		return fmt.Errorf("%w: slot %d children at %d", bytecode.ErrLayout, i, ins.Index)
	}
	return nil
}
