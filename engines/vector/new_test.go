package vector

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/robbyt/go-symeval/engines/vector/evaluator"
	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/platform/metrics"
	"github.com/robbyt/go-symeval/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	b, err := data.NewStaticBinding(map[string][]float64{"x1": {1, 2, 5}})
	require.NoError(t, err)

	got, err := Evaluate(tree.Build(tree.Add(tree.Var("x1", 2), tree.Const(3))), b)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 7, 13}, got)

	_, err = Evaluate(tree.Build(tree.Var("x1", 1)), nil)
	require.Error(t, err)
}

func TestFromColumns(t *testing.T) {
	t.Parallel()

	handler := slog.NewTextHandler(&bytes.Buffer{}, nil)
	e, err := FromColumns(handler,
		tree.Build(tree.Mul(tree.Var("a", 1), tree.Var("b", 1))),
		map[string][]float64{"a": {1, 2, 3}, "b": {4, 5, 6}},
		evaluator.WithMetrics(metrics.New()),
	)
	require.NoError(t, err)

	resp, err := e.Eval(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 10, 18}, resp.Values())

	_, err = FromColumns(handler, tree.Build(tree.Const(1)),
		map[string][]float64{"a": {1}, "b": {1, 2}})
	require.ErrorIs(t, err, data.ErrColumnLengthMismatch)
}

func TestNewEvaluator_Errors(t *testing.T) {
	t.Parallel()

	b, err := data.NewStaticBinding(map[string][]float64{"x": {1}})
	require.NoError(t, err)

	_, err = NewEvaluator(nil, tree.Build(tree.Const(1)), nil)
	require.Error(t, err)

	_, err = NewEvaluator(nil, tree.Build(tree.Var("y", 1)), b)
	require.ErrorIs(t, err, data.ErrColumnNotFound)

	_, err = NewEvaluator(nil, tree.Build(tree.Const(1)), b, evaluator.WithGrainSize(0))
	require.Error(t, err)
}
