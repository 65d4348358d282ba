package mocks

import (
	"github.com/stretchr/testify/mock"
)

// EvaluatorResponse is a mock implementation of the platform.EvaluatorResponse interface.
type EvaluatorResponse struct {
	mock.Mock
}

// Values returns mockable result values.
func (m *EvaluatorResponse) Values() []float64 {
	args := m.Called()
	values, _ := args.Get(0).([]float64)
	return values
}

// Rows returns mockable row indices.
func (m *EvaluatorResponse) Rows() []int {
	args := m.Called()
	rows, _ := args.Get(0).([]int)
	return rows
}

// Inspect returns a mockable string.
func (m *EvaluatorResponse) Inspect() string {
	args := m.Called()
	return args.String(0)
}

// Interface returns a mockable value of "any" type, and must be type asserted to the correct type.
func (m *EvaluatorResponse) Interface() any {
	args := m.Called()
	return args.Get(0)
}

// GetScriptExeID returns a mockable executable unit ID.
func (m *EvaluatorResponse) GetScriptExeID() string {
	args := m.Called()
	return args.String(0)
}

// GetExecTime returns a mockable execution time.
func (m *EvaluatorResponse) GetExecTime() string {
	args := m.Called()
	return args.String(0)
}
