package tree

import "fmt"

// Op identifies the operation a node performs.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpNeg
	OpExp
	OpLog
	OpConstant
	OpVariable
)

// BinaryOps lists the operations with two operands, in opcode order.
var BinaryOps = []Op{OpAdd, OpSub, OpMul, OpDiv}

// Arity returns the number of children an op requires, or -1 for an unknown op.
func (o Op) Arity() int {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv:
		return 2
	case OpNeg, OpExp, OpLog:
		return 1
	case OpConstant, OpVariable:
		return 0
	default:
		return -1
	}
}

// IsLeaf reports whether the op is a terminal.
func (o Op) IsLeaf() bool {
	return o == OpConstant || o == OpVariable
}

// Valid reports whether o is a known opcode.
func (o Op) Valid() bool {
	return o <= OpVariable
}

// Symbol returns the short display label used for internal nodes.
func (o Op) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpNeg:
		return "!"
	case OpExp:
		return "exp"
	case OpLog:
		return "log"
	case OpConstant:
		return "C"
	case OpVariable:
		return "V"
	default:
		return "?"
	}
}

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpNeg:
		return "neg"
	case OpExp:
		return "exp"
	case OpLog:
		return "log"
	case OpConstant:
		return "const"
	case OpVariable:
		return "var"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}
