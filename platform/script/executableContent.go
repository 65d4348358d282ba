package script

import (
	machineTypes "github.com/robbyt/go-symeval/engines/types"
	"github.com/robbyt/go-symeval/tree"
)

// ExecutableContent represents a validated tree that has been compiled for one engine.
// Implementations like the scalar compiler's executable keep the tree alongside its
// compiled program so evaluators can build a fresh, call-owned copy of the program.
type ExecutableContent interface {
	// GetSource returns the infix rendering of the compiled tree.
	GetSource() string

	// GetByteCode returns the compiled program in an engine-specific form.
	// The evaluator asserts it into the type its engine requires; a mismatch is
	// reported at evaluation time, so the engine type and ByteCode must agree.
	GetByteCode() any

	// GetTree returns the tree the content was compiled from.
	GetTree() *tree.Tree

	// GetMachineType returns the engine this content is intended to run on.
	GetMachineType() machineTypes.Type
}
