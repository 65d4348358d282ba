package bytecode

import (
	"fmt"

	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/tree"
)

// Compile lays t out breadth-first against binding b. Variables resolve their
// column through b; alloc, when non-nil, supplies each slot's initial payload.
// The returned program has exactly t.Size() instructions.
func Compile[P any](t *tree.Tree, b data.Binding, alloc Allocator[P]) ([]Instruction[P], error) {
	if t == nil || t.Root() == tree.NoNode {
		return nil, fmt.Errorf("%w: %w", ErrEmptyProgram, tree.ErrEmptyTree)
	}

	rows := 0
	if b != nil {
		rows = b.Rows()
	}

	code := make([]Instruction[P], t.Size())
	if err := emit(code, 0, t, t.Root(), b, rows, alloc); err != nil {
		return nil, err
	}

	cursor := 1
	slot := 0
	for id := range t.BreadthFirst() {
		children := t.Children(id)
		if len(children) > 0 {
			if cursor+len(children) > len(code) {
				return nil, fmt.Errorf("%w: node %d children overflow %d slots",
					ErrLayout, id, len(code))
			}
			code[slot].Index = cursor
			for k, child := range children {
				if err := emit(code, cursor+k, t, child, b, rows, alloc); err != nil {
					return nil, err
				}
			}
			cursor += len(children)
		}
		slot++
	}

	if cursor != len(code) {
		return nil, fmt.Errorf("%w: placed %d of %d instructions", ErrLayout, cursor, len(code))
	}
	return code, nil
}

func emit[P any](
	code []Instruction[P],
	pos int,
	t *tree.Tree,
	id tree.NodeID,
	b data.Binding,
	rows int,
	alloc Allocator[P],
) error {
	if err := t.CheckNode(id); err != nil {
		return err
	}

	op := t.Op(id)
	ins := Instruction[P]{
		Op:    op,
		Arity: op.Arity(),
		Label: t.Label(id),
		Rows:  rows,
	}

	switch op {
	case tree.OpConstant:
		ins.Value = t.Value(id)
	case tree.OpVariable:
		ins.Name = t.Name(id)
		ins.Weight = t.Weight(id)
		if b == nil {
			return fmt.Errorf("%w: %q (no binding)", data.ErrColumnNotFound, ins.Name)
		}
		col, err := b.Column(ins.Name)
		if err != nil {
			return fmt.Errorf("variable at slot %d: %w", pos, err)
		}
		ins.Column = col
	}

	if alloc != nil {
		ins.Payload = alloc(op, rows)
	}
	code[pos] = ins
	return nil
}

// Check validates t against b without allocating payloads: structure, arity
// and that every variable's column is bound.
func Check(t *tree.Tree, b data.Binding) error {
	_, err := Compile[struct{}](t, b, nil)
	return err
}
