package compiler

import (
	"slices"

	machineTypes "github.com/robbyt/go-symeval/engines/types"
	"github.com/robbyt/go-symeval/tree"
)

// Executable is a scalar program together with the tree it came from. The
// stored program is a template: evaluators take their own copy with
// GetProgram because evaluation writes into the payload slots.
type Executable struct {
	tree *tree.Tree
	code Program
}

func newExecutable(t *tree.Tree, code Program) *Executable {
	if t == nil || len(code) == 0 {
		return nil
	}

	return &Executable{
		tree: t,
		code: code,
	}
}

func (e *Executable) GetSource() string {
	return e.tree.String()
}

func (e *Executable) GetByteCode() any {
	return e.code
}

// GetProgram returns a copy of the program that the caller owns.
func (e *Executable) GetProgram() Program {
	return slices.Clone(e.code)
}

func (e *Executable) GetTree() *tree.Tree {
	return e.tree
}

func (e *Executable) GetMachineType() machineTypes.Type {
	return machineTypes.Scalar
}

// Size returns the number of instructions.
func (e *Executable) Size() int {
	return len(e.code)
}
