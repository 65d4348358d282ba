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

// Program is a compiled scalar program: one float64 slot per tree node.
type Program = []bytecode.Instruction[float64]

// Build lays t out against b as a scalar program.
func Build(t *tree.Tree, b data.Binding) (Program, error) {
	return bytecode.Compile[float64](t, b, nil)
}

type Compiler struct {
	logHandler slog.Handler
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// New creates a new scalar Compiler instance with the provided options.
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
	return "scalar.Compiler"
}

// Compile validates t and binds its variables to the columns of b.
func (c *Compiler) Compile(t *tree.Tree, b data.Binding) (script.ExecutableContent, error) {
	exe, err := c.compile(t, b)
	c.metrics.ObserveCompile(types.Scalar, err)
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

	code, err := Build(t, b)
	if err != nil {
		logger.Warn("Compilation failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}

	exe := newExecutable(t, code)
	if exe == nil {
		logger.Warn("Failed to create Executable from program")
		return nil, ErrExecCreationFailed
	}

	logger.Debug("Compilation successful", "instructionCount", len(code))
	return exe, nil
}
