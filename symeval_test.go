package symeval

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/robbyt/go-symeval/engines/types"
	"github.com/robbyt/go-symeval/options"
	"github.com/robbyt/go-symeval/platform/bytecode"
	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/platform/metrics"
	"github.com/robbyt/go-symeval/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietHandler() slog.Handler {
	return slog.NewTextHandler(&bytes.Buffer{}, nil)
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	// each subtest grows its own tree; memoized sizes are filled in lazily
	newTree := func() *tree.Tree {
		return tree.Build(tree.Add(tree.Var("x1", 2), tree.Const(3)))
	}
	columns := map[string][]float64{"x1": {1, 2, 5}}

	tests := []struct {
		name string
		new  func() (*EvaluatorWrapper, error)
	}{
		{
			name: "scalar",
			new: func() (*EvaluatorWrapper, error) {
				return NewScalarEvaluator(
					options.WithTree(newTree()),
					options.WithColumns(columns),
					options.WithLogHandler(quietHandler()),
				)
			},
		},
		{
			name: "vector",
			new: func() (*EvaluatorWrapper, error) {
				return NewVectorEvaluator(
					options.WithTree(newTree()),
					options.WithColumns(columns),
					options.WithLogHandler(quietHandler()),
					options.WithWorkers(2),
					options.WithGrainSize(1),
				)
			},
		},
		{
			name: "FromTree scalar",
			new: func() (*EvaluatorWrapper, error) {
				return FromTree(types.Scalar, newTree(),
					options.WithColumns(columns),
					options.WithLogHandler(quietHandler()))
			},
		},
		{
			name: "FromTree vector",
			new: func() (*EvaluatorWrapper, error) {
				return FromTree(types.Vector, newTree(),
					options.WithColumns(columns),
					options.WithLogHandler(quietHandler()),
					options.WithMetrics(metrics.New()))
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			e, err := tc.new()
			require.NoError(t, err)
			require.NotNil(t, e.GetExecutableUnit())

			resp, err := e.Eval(context.Background())
			require.NoError(t, err)
			assert.Equal(t, []float64{5, 7, 13}, resp.Values())

			ctx, err := e.AddRowsToContext(context.Background(), []int{1})
			require.NoError(t, err)
			resp, err = e.Eval(ctx)
			require.NoError(t, err)
			assert.Equal(t, []float64{7}, resp.Values())
		})
	}
}

func TestConstructors_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		engine  types.Type
		tree    *tree.Tree
		opts    []options.Option
		wantErr error
	}{
		{
			name:   "nil tree",
			engine: types.Scalar,
			tree:   nil,
		},
		{
			name:   "unknown engine",
			engine: types.Type("gpu"),
			tree:   tree.Build(tree.Const(1)),
		},
		{
			name:    "unbound column",
			engine:  types.Vector,
			tree:    tree.Build(tree.Var("x", 1)),
			wantErr: data.ErrColumnNotFound,
		},
		{
			name:    "structural mismatch",
			engine:  types.Scalar,
			tree:    tree.Build(tree.Expr{Op: tree.OpMul, Args: []tree.Expr{tree.Const(1)}}),
			wantErr: bytecode.ErrStructuralMismatch,
		},
		{
			name:   "bad option",
			engine: types.Vector,
			tree:   tree.Build(tree.Const(1)),
			opts:   []options.Option{options.WithWorkers(0)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := append([]options.Option{options.WithLogHandler(quietHandler())}, tc.opts...)
			e, err := FromTree(tc.engine, tc.tree, opts...)
			require.Error(t, err)
			assert.Nil(t, e)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestConstantsOnly(t *testing.T) {
	t.Parallel()

	// no binding: the default has zero rows
	tr := tree.Build(tree.Div(tree.Const(1), tree.Const(0)))

	e, err := FromTree(types.Scalar, tr, options.WithLogHandler(quietHandler()))
	require.NoError(t, err)
	resp, err := e.Eval(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.Values())

	e, err = FromTree(types.Scalar, tr,
		options.WithLogHandler(quietHandler()),
		options.WithColumns(map[string][]float64{"unused": {0}}))
	require.NoError(t, err)
	resp, err = e.Eval(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Values(), 1)
	assert.True(t, math.IsInf(resp.Values()[0], 1))
}

func TestWithID(t *testing.T) {
	t.Parallel()

	e, err := FromTree(types.Vector, tree.Build(tree.Const(2)),
		options.WithLogHandler(quietHandler()),
		options.WithColumns(map[string][]float64{"x": {1}}),
		options.WithID("model-7"))
	require.NoError(t, err)
	assert.Equal(t, "model-7", e.GetExecutableUnit().GetID())

	resp, err := e.Eval(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "model-7", resp.GetScriptExeID())
}
