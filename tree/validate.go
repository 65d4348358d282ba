package tree

import "fmt"

// Validate checks every node reachable from the root: known opcode, arity
// matching the opcode, and a column name on each variable.
func (t *Tree) Validate() error {
	if t.root == NoNode {
		return ErrEmptyTree
	}
	for id := range t.BreadthFirst() {
		if err := t.CheckNode(id); err != nil {
			return err
		}
	}
	return nil
}

// CheckNode validates a single node without descending into its children.
func (t *Tree) CheckNode(id NodeID) error {
	n := &t.nodes[id]
	if !n.op.Valid() {
		return fmt.Errorf("%w: node %d has unknown %s", ErrStructuralMismatch, id, n.op)
	}
	if want := n.op.Arity(); len(n.children) != want {
		return fmt.Errorf("%w: node %d (%s) has %d children, want %d",
			ErrStructuralMismatch, id, n.op, len(n.children), want)
	}
	if n.op == OpVariable && n.name == "" {
		return fmt.Errorf("%w: variable node %d has no column name", ErrStructuralMismatch, id)
	}
	return nil
}
