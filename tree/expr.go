package tree

// Expr is a value description of a subtree, used to build trees literally:
//
//	t := tree.Build(tree.Add(tree.Var("x1", 2), tree.Const(3)))
//
// Build does not check arity, so malformed shapes can be described on purpose.
type Expr struct {
	Op     Op
	Name   string
	Value  float64
	Weight float64
	Args   []Expr
}

func Add(a, b Expr) Expr { return Expr{Op: OpAdd, Args: []Expr{a, b}} }
func Sub(a, b Expr) Expr { return Expr{Op: OpSub, Args: []Expr{a, b}} }
func Mul(a, b Expr) Expr { return Expr{Op: OpMul, Args: []Expr{a, b}} }
func Div(a, b Expr) Expr { return Expr{Op: OpDiv, Args: []Expr{a, b}} }
func Neg(a Expr) Expr    { return Expr{Op: OpNeg, Args: []Expr{a}} }
func Exp(a Expr) Expr    { return Expr{Op: OpExp, Args: []Expr{a}} }
func Log(a Expr) Expr    { return Expr{Op: OpLog, Args: []Expr{a}} }

// Const describes a constant leaf.
func Const(value float64) Expr { return Expr{Op: OpConstant, Value: value} }

// Var describes a variable leaf reading column name scaled by weight.
func Var(name string, weight float64) Expr {
	return Expr{Op: OpVariable, Name: name, Weight: weight}
}

// Build creates a new tree whose root is e. The size and depth memo is
// filled before Build returns, so the tree is safe for concurrent readers.
func Build(e Expr) *Tree {
	t := New()
	t.root = t.Graft(e)
	t.Size()
	t.Depth()
	return t
}

// Graft allocates e as a detached subtree of t and returns its root id.
func (t *Tree) Graft(e Expr) NodeID {
	var id NodeID
	switch e.Op {
	case OpVariable:
		id = t.NewVariable(e.Name, e.Weight)
	case OpConstant:
		id = t.NewConstant(e.Value)
	default:
		id = t.NewNode(e.Op)
	}
	if len(e.Args) == 0 {
		return id
	}
	children := make([]NodeID, 0, len(e.Args))
	for _, a := range e.Args {
		c := t.Graft(a)
		t.nodes[c].parent = id
		children = append(children, c)
	}
	t.nodes[id].children = children
	return id
}
