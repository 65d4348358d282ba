package evaluator

import (
	"fmt"
	"math"

	"github.com/robbyt/go-symeval/engines/scalar/compiler"
	"github.com/robbyt/go-symeval/platform/bytecode"
	"github.com/robbyt/go-symeval/tree"
)

// Run evaluates code for one row. The scan goes from the last slot to the
// first, so every operand is resolved before the instruction reading it.
// Run writes into the payload slots of code. row must lie within the
// binding the program was compiled against, whether or not the program
// reads a column.
func Run(code compiler.Program, row int) (float64, error) {
	if len(code) == 0 {
		return 0, bytecode.ErrEmptyProgram
	}
	if row < 0 || row >= code[0].Rows {
		return 0, fmt.Errorf("%w: row %d of %d",
			bytecode.ErrRowIndexOutOfRange, row, code[0].Rows)
	}

	for i := len(code) - 1; i >= 0; i-- {
		ins := &code[i]
		if ins.Op.Valid() && !ins.Op.IsLeaf() {
			if err := checkOperands(code, i); err != nil {
				return 0, err
			}
		}
		switch ins.Op {
		case tree.OpVariable:
			if row < 0 || row >= len(ins.Column) {
				return 0, fmt.Errorf("%w: row %d, column %q has %d rows",
					bytecode.ErrRowIndexOutOfRange, row, ins.Name, len(ins.Column))
			}
			ins.Payload = ins.Column[row] * ins.Weight
		case tree.OpConstant:
			ins.Payload = ins.Value
		case tree.OpAdd:
			ins.Payload = code[ins.Index].Payload + code[ins.Index+1].Payload
		case tree.OpSub:
			ins.Payload = code[ins.Index].Payload - code[ins.Index+1].Payload
		case tree.OpMul:
			ins.Payload = code[ins.Index].Payload * code[ins.Index+1].Payload
		case tree.OpDiv:
			ins.Payload = code[ins.Index].Payload / code[ins.Index+1].Payload
		case tree.OpNeg:
			ins.Payload = -code[ins.Index].Payload
		case tree.OpExp:
			ins.Payload = math.Exp(code[ins.Index].Payload)
		case tree.OpLog:
			ins.Payload = math.Log(code[ins.Index].Payload)
		default:
			return 0, fmt.Errorf("%w: slot %d has %s", bytecode.ErrStructuralMismatch, i, ins.Op)
		}
	}
	return code[0].Payload, nil
}

func checkOperands(code compiler.Program, i int) error {
	ins := &code[i]
	if ins.Arity != ins.Op.Arity() {
		return fmt.Errorf("%w: slot %d (%s) has arity %d",
			bytecode.ErrStructuralMismatch, i, ins.Op, ins.Arity)
	}
	if ins.Index <= i || ins.Index+ins.Arity > len(code) {
		return fmt.Errorf("%w: slot %d children at %d", bytecode.ErrLayout, i, ins.Index)
	}
	return nil
}

// RunRows evaluates code once per requested row and returns the results in
// request order.
func RunRows(code compiler.Program, rows []int) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, r := range rows {
		v, err := Run(code, r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// runRange evaluates rows 0..n-1.
func runRange(code compiler.Program, n int) ([]float64, error) {
	out := make([]float64, n)
	for r := range n {
		v, err := Run(code, r)
		if err != nil {
			return nil, err
		}
		out[r] = v
	}
	return out, nil
}
