package bytecode

import (
	"fmt"
	"testing"

	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/random"
	"github.com/robbyt/go-symeval/synth"
	"github.com/robbyt/go-symeval/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBinding(t *testing.T, cols map[string][]float64) data.Binding {
	t.Helper()
	b, err := data.NewStaticBinding(cols)
	require.NoError(t, err)
	return b
}

func bufferAlloc(_ tree.Op, rows int) []float64 {
	return make([]float64, rows)
}

func TestCompile_Layout(t *testing.T) {
	t.Parallel()

	b := newBinding(t, map[string][]float64{"a": {1, 2}, "b": {3, 4}})
	tr := tree.Build(tree.Mul(
		tree.Add(tree.Var("a", 1), tree.Var("b", 0.5)),
		tree.Neg(tree.Const(2)),
	))

	code, err := Compile[float64](tr, b, nil)
	require.NoError(t, err)
	require.Len(t, code, 6)

	want := []struct {
		op    tree.Op
		index int
	}{
		{tree.OpMul, 1},
		{tree.OpAdd, 3},
		{tree.OpNeg, 5},
		{tree.OpVariable, 0},
		{tree.OpVariable, 0},
		{tree.OpConstant, 0},
	}
	for i, w := range want {
		assert.Equal(t, w.op, code[i].Op, "slot %d op", i)
		assert.Equal(t, w.index, code[i].Index, "slot %d index", i)
		assert.Equal(t, w.op.Arity(), code[i].Arity, "slot %d arity", i)
	}

	assert.Equal(t, "a", code[3].Name)
	assert.Equal(t, []float64{1, 2}, code[3].Column)
	assert.Equal(t, "b", code[4].Name)
	assert.InDelta(t, 0.5, code[4].Weight, 0)
	assert.InDelta(t, 2.0, code[5].Value, 0)
	assert.Equal(t, []int{1, 2}, code[0].Children())
	assert.Nil(t, code[5].Children())

	require.NoError(t, Verify(code))
}

func TestCompile_ChildrenAfterParent(t *testing.T) {
	t.Parallel()

	columns := []string{"x1", "x2", "x3"}
	b := newBinding(t, map[string][]float64{"x1": {1}, "x2": {2}, "x3": {3}})
	rng := random.New(1234)

	for depth := 1; depth <= 10; depth++ {
		t.Run(fmt.Sprintf("depth %d", depth), func(t *testing.T) {
			for range 20 {
				tr, err := synth.Random(rng, columns, depth)
				require.NoError(t, err)

				code, err := Compile(tr, b, bufferAlloc)
				require.NoError(t, err)
				assert.Len(t, code, tr.Size(), "one instruction per node")
				require.NoError(t, Verify(code))

				for i, ins := range code {
					for _, c := range ins.Children() {
						assert.Greater(t, c, i)
					}
				}
			}
		})
	}
}

func TestCompile_Idempotent(t *testing.T) {
	t.Parallel()

	b := newBinding(t, map[string][]float64{"x1": {1, 2, 5}})
	tr := tree.Build(tree.Sub(
		tree.Div(tree.Var("x1", 2), tree.Const(3)),
		tree.Exp(tree.Var("x1", -1)),
	))

	first, err := Compile(tr, b, bufferAlloc)
	require.NoError(t, err)
	second, err := Compile(tr, b, bufferAlloc)
	require.NoError(t, err)
	require.Len(t, second, len(first))

	for i := range first {
		assert.Equal(t, first[i].Op, second[i].Op)
		assert.Equal(t, first[i].Index, second[i].Index)
		assert.Equal(t, first[i].Arity, second[i].Arity)
		require.Len(t, first[i].Payload, 3)
		assert.NotSame(t, &first[i].Payload[0], &second[i].Payload[0],
			"payload buffers are distinct per compile")
	}
}

func TestCompile_AllocatorSeesRowCount(t *testing.T) {
	t.Parallel()

	b := newBinding(t, map[string][]float64{"x": {1, 2, 3, 4}})
	tr := tree.Build(tree.Add(tree.Var("x", 1), tree.Const(1)))

	var ops []tree.Op
	code, err := Compile(tr, b, func(op tree.Op, rows int) int {
		ops = append(ops, op)
		return rows
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []tree.Op{tree.OpAdd, tree.OpVariable, tree.OpConstant}, ops)
	for _, ins := range code {
		assert.Equal(t, 4, ins.Payload)
		assert.Equal(t, 4, ins.Rows)
	}

	constOnly, err := Compile[float64](tree.Build(tree.Const(2)), b, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, constOnly[0].Rows, "row count is kept without variables")

	unbound, err := Compile[float64](tree.Build(tree.Const(2)), nil, nil)
	require.NoError(t, err)
	assert.Zero(t, unbound[0].Rows)
}

func TestCompile_SingleLeaf(t *testing.T) {
	t.Parallel()

	b := newBinding(t, map[string][]float64{"x": {7}})
	code, err := Compile[float64](tree.Build(tree.Var("x", 3)), b, nil)
	require.NoError(t, err)
	require.Len(t, code, 1)
	assert.Equal(t, tree.OpVariable, code[0].Op)
	require.NoError(t, Verify(code))
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	b := newBinding(t, map[string][]float64{"x1": {1}})

	tests := []struct {
		name    string
		tree    *tree.Tree
		binding data.Binding
		wantErr error
	}{
		{
			name:    "nil tree",
			tree:    nil,
			binding: b,
			wantErr: ErrEmptyProgram,
		},
		{
			name:    "empty tree",
			tree:    tree.New(),
			binding: b,
			wantErr: tree.ErrEmptyTree,
		},
		{
			name:    "unbound column",
			tree:    tree.Build(tree.Add(tree.Var("x1", 1), tree.Var("x9", 1))),
			binding: b,
			wantErr: data.ErrColumnNotFound,
		},
		{
			name:    "no binding",
			tree:    tree.Build(tree.Var("x1", 1)),
			binding: nil,
			wantErr: data.ErrColumnNotFound,
		},
		{
			name: "binary op with one child",
			tree: tree.Build(tree.Expr{
				Op:   tree.OpAdd,
				Args: []tree.Expr{tree.Const(1)},
			}),
			binding: b,
			wantErr: ErrStructuralMismatch,
		},
		{
			name: "leaf with children",
			tree: tree.Build(tree.Neg(tree.Expr{
				Op:   tree.OpConstant,
				Args: []tree.Expr{tree.Const(1)},
			})),
			binding: b,
			wantErr: ErrStructuralMismatch,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, err := Compile[float64](tc.tree, tc.binding, nil)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, code)
			require.ErrorIs(t, Check(tc.tree, tc.binding), tc.wantErr)
		})
	}

	t.Run("structural mismatch is the tree error", func(t *testing.T) {
		assert.Equal(t, tree.ErrStructuralMismatch, ErrStructuralMismatch)
	})
}

func TestCheck(t *testing.T) {
	t.Parallel()

	b := newBinding(t, map[string][]float64{"x1": {1, 2}})
	require.NoError(t, Check(tree.Build(tree.Log(tree.Var("x1", 1))), b))
	require.NoError(t, Check(tree.Build(tree.Const(4)), nil), "constants need no binding")
}

func TestVerify(t *testing.T) {
	t.Parallel()

	compile := func(t *testing.T) []Instruction[float64] {
		t.Helper()
		b := newBinding(t, map[string][]float64{"a": {1}, "b": {2}})
		code, err := Compile[float64](tree.Build(tree.Mul(
			tree.Add(tree.Var("a", 1), tree.Var("b", 1)),
			tree.Neg(tree.Const(2)),
		)), b, nil)
		require.NoError(t, err)
		return code
	}

	t.Run("empty", func(t *testing.T) {
		require.ErrorIs(t, Verify[float64](nil), ErrEmptyProgram)
	})

	t.Run("child before parent", func(t *testing.T) {
		code := compile(t)
		code[1].Index = 0
		require.ErrorIs(t, Verify(code), ErrLayout)
	})

	t.Run("child out of range", func(t *testing.T) {
		code := compile(t)
		code[2].Index = 6
		require.ErrorIs(t, Verify(code), ErrLayout)
	})

	t.Run("shared child", func(t *testing.T) {
		code := compile(t)
		code[2].Index = 3
		require.ErrorIs(t, Verify(code), ErrLayout)
	})

	t.Run("arity disagrees with op", func(t *testing.T) {
		code := compile(t)
		code[2].Arity = 2
		require.ErrorIs(t, Verify(code), ErrStructuralMismatch)
	})

	t.Run("unreachable slot", func(t *testing.T) {
		code := compile(t)
		code = append(code, Instruction[float64]{Op: tree.OpConstant})
		require.ErrorIs(t, Verify(code), ErrLayout)
	})
}

func TestDisassemble(t *testing.T) {
	t.Parallel()

	b := newBinding(t, map[string][]float64{"x1": {1, 2, 5}})
	code, err := Compile[float64](tree.Build(tree.Add(tree.Var("x1", 2), tree.Const(3))), b, nil)
	require.NoError(t, err)

	want := "; 3 instructions\n" +
		"0000  add    @0001  @0002\n" +
		"0001  var    x1 w=2\n" +
		"0002  const  3\n"
	assert.Equal(t, want, Disassemble(code))
}

func BenchmarkCompile(b *testing.B) {
	binding, err := data.NewStaticBinding(map[string][]float64{
		"x1": make([]float64, 1024),
		"x2": make([]float64, 1024),
	})
	require.NoError(b, err)
	tr, err := synth.Random(random.New(1234), []string{"x1", "x2"}, 8)
	require.NoError(b, err)

	b.ResetTimer()
	for b.Loop() {
		if _, err := Compile(tr, binding, bufferAlloc); err != nil {
			b.Fatal(err)
		}
	}
}
