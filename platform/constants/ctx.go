// Description: This file contains constants used for accessing values from context objects.
package constants

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// EvalRows is the key used to store the requested row indices in the context
	EvalRows ContextKey = "eval_rows" // []int added to ctx objects sent to the evaluator, load with ctx.Value()
)
