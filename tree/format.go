package tree

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// String renders the tree in infix notation, e.g. "(2*x1 + 3)".
func (t *Tree) String() string {
	if t.root == NoNode {
		return "<empty>"
	}
	var sb strings.Builder
	t.writeInfix(&sb, t.root)
	return sb.String()
}

func (t *Tree) writeInfix(sb *strings.Builder, id NodeID) {
	n := &t.nodes[id]
	switch {
	case n.op == OpConstant:
		sb.WriteString(formatFloat(n.value))
	case n.op == OpVariable:
		sb.WriteString(formatFloat(n.weight))
		sb.WriteByte('*')
		sb.WriteString(n.name)
	case n.op.Arity() == 2 && len(n.children) == 2:
		sb.WriteByte('(')
		t.writeInfix(sb, n.children[0])
		sb.WriteByte(' ')
		sb.WriteString(n.op.Symbol())
		sb.WriteByte(' ')
		t.writeInfix(sb, n.children[1])
		sb.WriteByte(')')
	default:
		if n.op == OpNeg {
			sb.WriteByte('-')
		} else {
			sb.WriteString(n.op.Symbol())
		}
		sb.WriteByte('(')
		for i, c := range n.children {
			if i > 0 {
				sb.WriteString(", ")
			}
			t.writeInfix(sb, c)
		}
		sb.WriteByte(')')
	}
}

// Format draws the tree as an indented box diagram:
//
//	add┬─mul┬─ 2 x1
//	   │    └─ 1.5 x2
//	   └─ 3
func Format(t *Tree) string {
	var sb strings.Builder
	if t.root != NoNode {
		t.format(&sb, t.root, "")
	}
	return sb.String()
}

func (t *Tree) format(sb *strings.Builder, id NodeID, prefix string) {
	n := &t.nodes[id]
	if len(n.children) == 0 {
		sb.WriteByte(' ')
		sb.WriteString(t.leafText(id))
		sb.WriteByte('\n')
		return
	}

	label := n.op.String()
	sb.WriteString(label)
	padding := prefix + strings.Repeat(" ", utf8.RuneCountInString(label))
	for i, c := range n.children {
		last := i == len(n.children)-1
		var connector, extender string
		switch {
		case i == 0 && !last:
			connector, extender = "┬", "│"
		case i == 0:
			connector, extender = "─", " "
		case last:
			connector, extender = "└", " "
		default:
			connector, extender = "├", "│"
		}
		if i > 0 {
			sb.WriteString(padding)
		}
		sb.WriteString(connector)
		sb.WriteString("─")
		t.format(sb, c, padding+extender+" ")
	}
}

func (t *Tree) leafText(id NodeID) string {
	n := &t.nodes[id]
	switch n.op {
	case OpConstant:
		return formatFloat(n.value)
	case OpVariable:
		return formatFloat(n.weight) + " " + n.name
	default:
		return n.label
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
