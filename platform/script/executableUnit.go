package script

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	machineTypes "github.com/robbyt/go-symeval/engines/types"
	"github.com/robbyt/go-symeval/internal/helpers"
	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/tree"
)

const checksumLength = 12

// ExecutableUnit is a tree compiled against one binding, ready for repeated evaluation.
type ExecutableUnit struct {
	// ID identifies this unit, derived from the tree's structural fingerprint
	// unless the caller supplies one.
	ID string

	// CreatedAt records when this executable unit was instantiated.
	CreatedAt time.Time

	// Tree is the expression tree that was compiled.
	Tree *tree.Tree

	// Compiler is the engine-specific compiler that produced Content.
	Compiler Compiler

	// Content holds the compiled program and its source rendering.
	Content ExecutableContent

	// Binding supplies the columns the program reads. It is never mutated.
	Binding data.Binding

	logHandler slog.Handler
	logger     *slog.Logger
}

// NewExecutableUnit compiles t against binding with the given compiler.
// An empty versionID is replaced by a short hex form of the tree fingerprint.
func NewExecutableUnit(
	handler slog.Handler,
	versionID string,
	t *tree.Tree,
	compiler Compiler,
	binding data.Binding,
) (*ExecutableUnit, error) {
	handler, logger := helpers.SetupLogger(handler, "script", "ExecutableUnit")

	if compiler == nil {
		return nil, errors.New("compiler is nil")
	}
	if t == nil {
		return nil, errors.New("tree is nil")
	}

	exe, err := compiler.Compile(t, binding)
	if err != nil {
		return nil, fmt.Errorf("compiler failed: %w", err)
	}

	if versionID == "" {
		versionID = helpers.HexID(t.Fingerprint())[:checksumLength]
	}

	logger = logger.With("ID", versionID)
	logger.Debug("executable unit created", "size", t.Size(), "depth", t.Depth())

	return &ExecutableUnit{
		ID:         versionID,
		CreatedAt:  time.Now(),
		Tree:       t,
		Content:    exe,
		Compiler:   compiler,
		Binding:    binding,
		logHandler: handler,
		logger:     logger,
	}, nil
}

func (exe *ExecutableUnit) String() string {
	return fmt.Sprintf("ExecutableUnit{ID: %s, CreatedAt: %s, Compiler: %T, Size: %d}",
		exe.ID, exe.CreatedAt, exe.Compiler, exe.Tree.Size())
}

// GetID returns the unique identifier for this unit.
func (exe *ExecutableUnit) GetID() string {
	return exe.ID
}

// GetContent returns the compiled content.
func (exe *ExecutableUnit) GetContent() ExecutableContent {
	return exe.Content
}

// GetCreatedAt returns the timestamp when the unit was created.
func (exe *ExecutableUnit) GetCreatedAt() time.Time {
	return exe.CreatedAt
}

// GetMachineType returns the engine this unit is intended to run on.
func (exe *ExecutableUnit) GetMachineType() machineTypes.Type {
	return exe.Content.GetMachineType()
}

// GetCompiler returns the compiler used to build the content.
func (exe *ExecutableUnit) GetCompiler() Compiler {
	return exe.Compiler
}

// GetTree returns the compiled tree.
func (exe *ExecutableUnit) GetTree() *tree.Tree {
	return exe.Tree
}

// GetBinding returns the binding the unit was compiled against.
func (exe *ExecutableUnit) GetBinding() data.Binding {
	return exe.Binding
}
