package tree

import "errors"

var (
	ErrEmptyTree          = errors.New("tree has no root")
	ErrNodeNotFound       = errors.New("node not found in tree")
	ErrNodeAttached       = errors.New("node already has a parent")
	ErrNotAChild          = errors.New("node is not a child of the given parent")
	ErrIndexOutOfRange    = errors.New("child index out of range")
	ErrCycle              = errors.New("edit would create a cycle")
	ErrStructuralMismatch = errors.New("node arity does not match its operation")
)
