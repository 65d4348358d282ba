package mocks

import (
	"context"

	"github.com/robbyt/go-symeval/platform"
	"github.com/stretchr/testify/mock"
)

// Evaluator is a mock implementation of platform.Evaluator for testing purposes.
type Evaluator struct {
	mock.Mock
}

// Eval is a mock implementation of the Eval method.
func (m *Evaluator) Eval(ctx context.Context) (platform.EvaluatorResponse, error) {
	args := m.Called(ctx)
	resp, _ := args.Get(0).(platform.EvaluatorResponse)
	return resp, args.Error(1)
}

// AddRowsToContext is a mock implementation of the AddRowsToContext method.
func (m *Evaluator) AddRowsToContext(ctx context.Context, rows ...[]int) (context.Context, error) {
	args := m.Called(ctx, rows)
	return args.Get(0).(context.Context), args.Error(1)
}
