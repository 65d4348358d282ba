package tree

// Clone returns a deep copy of the nodes reachable from the root. Detached
// nodes are not carried over, so ids in the clone are compacted and do not
// correspond to ids in t.
func (t *Tree) Clone() *Tree {
	return t.CloneSubtree(t.root)
}

// CloneSubtree returns a new tree whose root is a deep copy of id.
func (t *Tree) CloneSubtree(id NodeID) *Tree {
	c := New()
	if id == NoNode {
		return c
	}
	c.nodes = make([]node, 0, t.SizeOf(id))
	c.root = c.copyFrom(t, id, NoNode)
	return c
}

func (t *Tree) copyFrom(src *Tree, id, parent NodeID) NodeID {
	n := &src.nodes[id]
	nid := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		op:     n.op,
		label:  n.label,
		name:   n.name,
		value:  n.value,
		weight: n.weight,
		parent: parent,
		size:   n.size,
		depth:  n.depth,
	})
	if len(n.children) == 0 {
		return nid
	}
	children := make([]NodeID, 0, len(n.children))
	for _, c := range n.children {
		children = append(children, t.copyFrom(src, c, nid))
	}
	t.nodes[nid].children = children
	return nid
}
