package bytecode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robbyt/go-symeval/tree"
)

// Disassemble returns a human-readable listing of the program.
func Disassemble[P any](code []Instruction[P]) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "; %d instructions\n", len(code))

	for i := range code {
		ins := &code[i]
		fmt.Fprintf(&sb, "%04d  %-5s", i, ins.Op)
		switch {
		case ins.Op == tree.OpConstant:
			sb.WriteString("  ")
			sb.WriteString(strconv.FormatFloat(ins.Value, 'g', -1, 64))
		case ins.Op == tree.OpVariable:
			fmt.Fprintf(&sb, "  %s w=%s", ins.Name, strconv.FormatFloat(ins.Weight, 'g', -1, 64))
		case ins.Arity > 0:
			for _, c := range ins.Children() {
				fmt.Fprintf(&sb, "  @%04d", c)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
