package script

import (
	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/tree"
)

// Compiler validates a tree against a binding and lays it out as an engine
// program. A valid tree is returned as ExecutableContent.
//
// Example usage:
//
//	comp, err := compiler.New(compiler.WithLogHandler(handler))
//	content, err := comp.Compile(t, binding)
//	if err != nil {
//	    // malformed tree or unbound column
//	}
type Compiler interface {
	// Compile checks the tree and binds its variables to columns of b.
	//
	// Returns:
	//   - ExecutableContent: The compiled tree
	//   - error: structural mismatches or unbound column names
	Compile(t *tree.Tree, b data.Binding) (ExecutableContent, error)
}
