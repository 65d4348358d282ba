package bytecode

import "fmt"

// Verify checks that code is a well-formed program: known opcodes with
// matching arity, children placed strictly after their parent and in range,
// and every slot other than the root claimed by exactly one parent.
func Verify[P any](code []Instruction[P]) error {
	if len(code) == 0 {
		return ErrEmptyProgram
	}

	claimed := make([]bool, len(code))
	for i := range code {
		ins := &code[i]
		if !ins.Op.Valid() || ins.Arity != ins.Op.Arity() {
			return fmt.Errorf("%w: slot %d (%s) has arity %d",
				ErrStructuralMismatch, i, ins.Op, ins.Arity)
		}
		if ins.Arity == 0 {
			continue
		}
		if ins.Index <= i {
			return fmt.Errorf("%w: slot %d points back to %d", ErrLayout, i, ins.Index)
		}
		if ins.Index+ins.Arity > len(code) {
			return fmt.Errorf("%w: slot %d children [%d,%d) exceed %d slots",
				ErrLayout, i, ins.Index, ins.Index+ins.Arity, len(code))
		}
		for c := ins.Index; c < ins.Index+ins.Arity; c++ {
			if claimed[c] {
				return fmt.Errorf("%w: slot %d has two parents", ErrLayout, c)
			}
			claimed[c] = true
		}
	}

	for i := 1; i < len(code); i++ {
		if !claimed[i] {
			return fmt.Errorf("%w: slot %d is unreachable", ErrLayout, i)
		}
	}
	return nil
}
