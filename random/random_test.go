package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRand_Deterministic(t *testing.T) {
	t.Parallel()

	a, b := New(1234), New(1234)
	for range 100 {
		require.Equal(t, a.Int(10), b.Int(10))
		require.Equal(t, a.Float(), b.Float())
	}

	a.Seed(7)
	c := New(7)
	assert.Equal(t, c.FloatRange(-5, 5), a.FloatRange(-5, 5))
}

func TestRand_Ranges(t *testing.T) {
	t.Parallel()

	r := New(42)
	seen := make(map[int]bool)
	for range 2000 {
		v := r.Int(3)
		require.GreaterOrEqual(t, v, 0)
		require.LessOrEqual(t, v, 3)
		seen[v] = true

		w := r.IntRange(-2, 2)
		require.GreaterOrEqual(t, w, -2)
		require.LessOrEqual(t, w, 2)

		f := r.FloatRange(-5, 5)
		require.GreaterOrEqual(t, f, -5.0)
		require.Less(t, f, 5.0)

		g := r.FloatN(2)
		require.GreaterOrEqual(t, g, 0.0)
		require.Less(t, g, 2.0)
	}
	assert.Len(t, seen, 4, "both ends of [0, n] are reachable")

	t.Run("degenerate", func(t *testing.T) {
		assert.Equal(t, 0, r.Int(0))
		assert.Equal(t, 3, r.IntRange(3, 3))
		assert.Equal(t, 0.0, r.FloatN(0))
		assert.Equal(t, 1.5, r.FloatRange(1.5, 1.5))
	})
}
