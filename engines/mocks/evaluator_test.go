package mocks

import (
	"context"
	"testing"

	"github.com/robbyt/go-symeval/platform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// TestEvaluatorImplementsEvaluator verifies at compile time
// that our mock Evaluator implements the platform.Evaluator interface.
func TestEvaluatorImplementsEvaluator(t *testing.T) {
	t.Parallel()
	var _ platform.Evaluator = (*Evaluator)(nil)
}

func TestEvaluatorAddRowsToContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := new(Evaluator)
	m.On("AddRowsToContext", ctx, mock.Anything).Return(ctx, nil)

	got, err := m.AddRowsToContext(ctx, []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, ctx, got)
	m.AssertExpectations(t)
}

func TestEvaluatorEvalNilResponse(t *testing.T) {
	t.Parallel()

	m := new(Evaluator)
	m.On("Eval", mock.Anything).Return(nil, assert.AnError)

	resp, err := m.Eval(context.Background())
	require.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, resp)
}
