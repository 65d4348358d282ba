package compiler

import "errors"

var (
	ErrTreeNil            = errors.New("tree is nil")
	ErrBindingNil         = errors.New("binding is nil")
	ErrCompileFailed      = errors.New("scalar compilation failed")
	ErrExecCreationFailed = errors.New("unable to create scalar executable")
)
