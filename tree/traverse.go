package tree

import "iter"

// BreadthFirst yields the nodes reachable from the root level by level, each
// level left to right. The sequence can be ranged over any number of times.
func (t *Tree) BreadthFirst() iter.Seq[NodeID] {
	return t.BreadthFirstFrom(t.root)
}

// BreadthFirstFrom is BreadthFirst for the subtree rooted at start.
func (t *Tree) BreadthFirstFrom(start NodeID) iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		if start == NoNode {
			return
		}
		queue := []NodeID{start}
		for i := 0; i < len(queue); i++ {
			id := queue[i]
			if !yield(id) {
				return
			}
			queue = append(queue, t.nodes[id].children...)
		}
	}
}

// Preorder yields the nodes reachable from the root using an explicit stack.
// Children are pushed in order, so siblings come out last-first.
func (t *Tree) Preorder() iter.Seq[NodeID] {
	return func(yield func(NodeID) bool) {
		if t.root == NoNode {
			return
		}
		stack := []NodeID{t.root}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(id) {
				return
			}
			stack = append(stack, t.nodes[id].children...)
		}
	}
}
