// Package bytecode linearizes expression trees into flat, index-addressed
// instruction arrays.
//
// Nodes are laid out breadth-first: the root sits at position 0 and the
// children of every internal node occupy consecutive positions starting at
// that node's Index. Every child position is strictly greater than its
// parent's, so a single scan from the last position to the first resolves
// every operand before the instruction that consumes it.
//
// The layout is generic over the payload each slot carries during
// evaluation, so the scalar and vector engines share one compiler and can
// never disagree on the shape of a program.
package bytecode

import "github.com/robbyt/go-symeval/tree"

// Instruction is one slot of a compiled program.
type Instruction[P any] struct {
	Op tree.Op

	// Index is the position of the first child. Unused for leaves.
	Index int

	// Arity is the number of children, taken from Op at compile time.
	Arity int

	Label string

	// Name is the bound column name of a variable.
	Name string

	// Value is the literal of a constant.
	Value float64

	// Weight scales a variable's column values.
	Weight float64

	// Column is the bound, read-only column of a variable.
	Column []float64

	// Rows is the row count of the binding the program was compiled
	// against. Every slot carries the same value.
	Rows int

	// Payload holds the slot's working value during evaluation.
	Payload P
}

// Allocator produces the initial payload for an instruction. rows is the
// row count of the binding the program is compiled against.
type Allocator[P any] func(op tree.Op, rows int) P

// Children returns the positions of the instruction's children.
func (ins *Instruction[P]) Children() []int {
	if ins.Arity <= 0 {
		return nil
	}
	out := make([]int, ins.Arity)
	for i := range out {
		out[i] = ins.Index + i
	}
	return out
}
