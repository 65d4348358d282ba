package compiler

import (
	"slices"

	machineTypes "github.com/robbyt/go-symeval/engines/types"
	"github.com/robbyt/go-symeval/tree"
)

// Executable is the buffer-free layout of a vector program.
type Executable struct {
	tree   *tree.Tree
	layout Program
	rows   int
}

func newExecutable(t *tree.Tree, layout Program, rows int) *Executable {
	if t == nil || len(layout) == 0 || rows < 0 {
		return nil
	}

	return &Executable{
		tree:   t,
		layout: layout,
		rows:   rows,
	}
}

func (e *Executable) GetSource() string {
	return e.tree.String()
}

// GetByteCode returns the layout. Its payloads are all nil.
func (e *Executable) GetByteCode() any {
	return e.layout
}

// NewProgram copies the layout and allocates fresh leaf buffers. The caller
// owns the result.
func (e *Executable) NewProgram() Program {
	code := slices.Clone(e.layout)
	for i := range code {
		code[i].Payload = LeafBuffer(code[i].Op, e.rows)
	}
	return code
}

func (e *Executable) GetTree() *tree.Tree {
	return e.tree
}

func (e *Executable) GetMachineType() machineTypes.Type {
	return machineTypes.Vector
}

// Size returns the number of instructions.
func (e *Executable) Size() int {
	return len(e.layout)
}

// Rows returns the row count the layout was bound against.
func (e *Executable) Rows() int {
	return e.rows
}
