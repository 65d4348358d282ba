package compiler

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-symeval/engines/types"
	"github.com/robbyt/go-symeval/platform/bytecode"
	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/platform/metrics"
	"github.com/robbyt/go-symeval/platform/script"
	"github.com/robbyt/go-symeval/tree"
)

// Program is a compiled vector program. Each slot's payload is a buffer with
// one value per row.
type Program = []bytecode.Instruction[[]float64]

// LeafBuffer allocates the initial payload of a slot. Leaves get a buffer
// sized to the row count; internal slots start empty and take over a child's
// buffer during evaluation.
func LeafBuffer(op tree.Op, rows int) []float64 {
	if op.IsLeaf() {
		return make([]float64, rows)
	}
	return nil
}

// Build lays t out against b with fresh leaf buffers.
func Build(t *tree.Tree, b data.Binding) (Program, error) {
	return bytecode.Compile(t, b, LeafBuffer)
}

type Compiler struct {
	logHandler slog.Handler
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// New creates a new vector Compiler instance with the provided options.
func New(opts ...FunctionalOption) (*Compiler, error) {
	c := &Compiler{}
	c.applyDefaults()

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("error applying compiler option: %w", err)
		}
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid compiler configuration: %w", err)
	}

	c.setupLogger()
	return c, nil
}

func (c *Compiler) String() string {
	return "vector.Compiler"
}

// Compile validates t and binds its variables to the columns of b. The
// returned content holds the layout only; buffers are allocated per
// evaluation by Executable.NewProgram.
func (c *Compiler) Compile(t *tree.Tree, b data.Binding) (script.ExecutableContent, error) {
	exe, err := c.compile(t, b)
	c.metrics.ObserveCompile(types.Vector, err)
	if err != nil {
		return nil, err
	}
	return exe, nil
}

func (c *Compiler) compile(t *tree.Tree, b data.Binding) (*Executable, error) {
	logger := c.logger.WithGroup("compile")
	if t == nil {
		return nil, ErrTreeNil
	}
	if b == nil {
		return nil, ErrBindingNil
	}

	logger.Debug("Starting compilation", "size", t.Size(), "depth", t.Depth(), "rows", b.Rows())

	layout, err := bytecode.Compile[[]float64](t, b, nil)
	if err != nil {
		logger.Warn("Compilation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}

	exe := newExecutable(t, layout, b.Rows())
	if exe == nil {
		logger.Warn("Failed to create Executable from layout")
		return nil, ErrExecCreationFailed
	}

	logger.Debug("Compilation successful", "instructionCount", len(layout))
	return exe, nil
}
