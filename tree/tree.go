// Package tree holds the expression trees evaluated by the symeval engines.
//
// Nodes live in an arena owned by a Tree and are addressed by stable NodeID
// values. A node's parent is a plain id (a relation, never ownership) and its
// children are an ordered id list into the same arena, so cloning is a copy
// with id remapping and dropping a Tree drops every node it holds.
package tree

import (
	"fmt"
	"slices"
)

// NodeID addresses a node inside the arena of one Tree.
type NodeID int32

// NoNode marks the absence of a node, e.g. the parent of a root.
const NoNode NodeID = -1

type node struct {
	op       Op
	label    string
	name     string
	value    float64
	weight   float64
	parent   NodeID
	children []NodeID

	// memoized, zero means not yet computed
	size  int
	depth int
}

// Tree is an arena of expression nodes with a designated root. Size and Depth
// fill their memo on first use, so a Tree assembled node by node is not safe
// for concurrent use until both have been read once. Build does this before
// returning, and any structural edit clears the memo again.
type Tree struct {
	nodes []node
	root  NodeID
}

// New creates an empty tree without a root.
func New() *Tree {
	return &Tree{root: NoNode}
}

// NewNode allocates a detached node for op. The label defaults to the op symbol.
func (t *Tree) NewNode(op Op) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		op:     op,
		label:  op.Symbol(),
		parent: NoNode,
	})
	return id
}

// NewConstant allocates a detached constant leaf.
func (t *Tree) NewConstant(value float64) NodeID {
	id := t.NewNode(OpConstant)
	t.nodes[id].value = value
	return id
}

// NewVariable allocates a detached variable leaf bound to the named column.
func (t *Tree) NewVariable(name string, weight float64) NodeID {
	id := t.NewNode(OpVariable)
	n := &t.nodes[id]
	n.name = name
	n.label = name
	n.weight = weight
	return id
}

// SetRoot designates a detached node as the root of the tree.
func (t *Tree) SetRoot(id NodeID) error {
	if !t.Contains(id) {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	if t.nodes[id].parent != NoNode {
		return fmt.Errorf("%w: %d", ErrNodeAttached, id)
	}
	t.root = id
	return nil
}

// Root returns the root id, or NoNode for an empty tree.
func (t *Tree) Root() NodeID {
	return t.root
}

// Contains reports whether id addresses a node in this arena.
func (t *Tree) Contains(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Len returns the number of nodes allocated in the arena, reachable or not.
func (t *Tree) Len() int {
	return len(t.nodes)
}

func (t *Tree) Op(id NodeID) Op          { return t.nodes[id].op }
func (t *Tree) Label(id NodeID) string   { return t.nodes[id].label }
func (t *Tree) Name(id NodeID) string    { return t.nodes[id].name }
func (t *Tree) Value(id NodeID) float64  { return t.nodes[id].value }
func (t *Tree) Weight(id NodeID) float64 { return t.nodes[id].weight }
func (t *Tree) Parent(id NodeID) NodeID  { return t.nodes[id].parent }

func (t *Tree) SetLabel(id NodeID, label string)    { t.nodes[id].label = label }
func (t *Tree) SetValue(id NodeID, value float64)   { t.nodes[id].value = value }
func (t *Tree) SetWeight(id NodeID, weight float64) { t.nodes[id].weight = weight }

// SetName rebinds a variable to another column. The label follows the name.
func (t *Tree) SetName(id NodeID, name string) {
	n := &t.nodes[id]
	n.name = name
	n.label = name
}

// Children returns the ordered child list of id. The slice belongs to the
// tree and must not be modified.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.nodes[id].children
}

// ChildCount returns the number of children of id.
func (t *Tree) ChildCount(id NodeID) int {
	return len(t.nodes[id].children)
}

// Size returns the node count of the tree reachable from the root.
func (t *Tree) Size() int {
	if t.root == NoNode {
		return 0
	}
	return t.SizeOf(t.root)
}

// Depth returns the number of levels below and including the root.
func (t *Tree) Depth() int {
	if t.root == NoNode {
		return 0
	}
	return t.DepthOf(t.root)
}

// SizeOf returns the number of nodes in the subtree rooted at id (itself included).
func (t *Tree) SizeOf(id NodeID) int {
	n := &t.nodes[id]
	if n.size > 0 {
		return n.size
	}
	size := 1
	for _, c := range n.children {
		size += t.SizeOf(c)
	}
	t.nodes[id].size = size
	return size
}

// DepthOf returns the longest path from id to a leaf, counting nodes; a leaf has depth 1.
func (t *Tree) DepthOf(id NodeID) int {
	n := &t.nodes[id]
	if n.depth > 0 {
		return n.depth
	}
	depth := 1
	for _, c := range n.children {
		depth = max(depth, t.DepthOf(c)+1)
	}
	t.nodes[id].depth = depth
	return depth
}

// AddChild appends child to the children of parent.
func (t *Tree) AddChild(parent, child NodeID) error {
	return t.InsertChildAt(parent, -1, child)
}

// InsertChildAt inserts child into the children of parent at index.
// A negative index appends.
func (t *Tree) InsertChildAt(parent NodeID, index int, child NodeID) error {
	if err := t.checkAttach(parent, child); err != nil {
		return err
	}
	p := &t.nodes[parent]
	if index < 0 {
		index = len(p.children)
	}
	if index > len(p.children) {
		return fmt.Errorf("%w: %d > %d", ErrIndexOutOfRange, index, len(p.children))
	}
	p.children = slices.Insert(p.children, index, child)
	t.nodes[child].parent = parent
	t.invalidate(parent)
	return nil
}

// RemoveChild detaches child from parent. The detached subtree stays in the
// arena and may be attached elsewhere.
func (t *Tree) RemoveChild(parent, child NodeID) error {
	if !t.Contains(parent) || !t.Contains(child) {
		return fmt.Errorf("%w: %d/%d", ErrNodeNotFound, parent, child)
	}
	i := t.IndexOfChild(parent, child)
	if i < 0 {
		return fmt.Errorf("%w: %d under %d", ErrNotAChild, child, parent)
	}
	p := &t.nodes[parent]
	p.children = slices.Delete(p.children, i, i+1)
	t.nodes[child].parent = NoNode
	t.invalidate(parent)
	return nil
}

// IndexOfChild returns the position of child among the children of parent, or -1.
func (t *Tree) IndexOfChild(parent, child NodeID) int {
	return slices.Index(t.nodes[parent].children, child)
}

func (t *Tree) checkAttach(parent, child NodeID) error {
	if !t.Contains(parent) || !t.Contains(child) {
		return fmt.Errorf("%w: %d/%d", ErrNodeNotFound, parent, child)
	}
	if t.nodes[child].parent != NoNode || child == t.root {
		return fmt.Errorf("%w: %d", ErrNodeAttached, child)
	}
	for a := parent; a != NoNode; a = t.nodes[a].parent {
		if a == child {
			return fmt.Errorf("%w: %d is an ancestor of %d", ErrCycle, child, parent)
		}
	}
	return nil
}

// invalidate drops memoized size and depth from id up to its root.
func (t *Tree) invalidate(id NodeID) {
	for ; id != NoNode; id = t.nodes[id].parent {
		t.nodes[id].size = 0
		t.nodes[id].depth = 0
	}
}
