package bytecode

import (
	"errors"

	"github.com/robbyt/go-symeval/tree"
)

var (
	ErrEmptyProgram       = errors.New("program has no instructions")
	ErrLayout             = errors.New("instruction layout is invalid")
	ErrRowIndexOutOfRange = errors.New("row index out of range")

	// ErrStructuralMismatch is the tree package's error, re-exported so callers
	// of the compiler need not import tree to match it.
	ErrStructuralMismatch = tree.ErrStructuralMismatch
)
