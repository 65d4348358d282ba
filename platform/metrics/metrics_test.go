package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/robbyt/go-symeval/engines/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Register(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m := New()
	require.NoError(t, m.Register(reg))
	require.NoError(t, m.Register(reg), "registering twice is tolerated")

	m.ObserveCompile(types.Scalar, nil)
	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	m.Unregister(reg)
	families, err = reg.Gather()
	require.NoError(t, err)
	assert.Empty(t, families)
}

func TestMetrics_Observe(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveCompile(types.Vector, nil)
	m.ObserveCompile(types.Vector, errors.New("bad tree"))
	m.ObserveCompile(types.Vector, nil)

	assert.InDelta(t, 2.0, testutil.ToFloat64(m.compilations.WithLabelValues("vector", "success")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.compilations.WithLabelValues("vector", "failure")), 0)

	m.ObserveEval(types.Scalar, time.Now(), 7, 100, nil)
	m.ObserveEval(types.Scalar, time.Now(), 7, 100, errors.New("row out of range"))

	assert.InDelta(t, 1.0, testutil.ToFloat64(m.evaluations.WithLabelValues("scalar", "success")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.evaluations.WithLabelValues("scalar", "failure")), 0)
	assert.InDelta(t, 100.0, testutil.ToFloat64(m.rowsEvaluated.WithLabelValues("scalar")), 0)
	assert.InDelta(t, 700.0, testutil.ToFloat64(m.nodeEvaluations.WithLabelValues("scalar")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.evalDuration))
}

func TestMetrics_Nil(t *testing.T) {
	t.Parallel()

	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveCompile(types.Scalar, nil)
		m.ObserveEval(types.Scalar, time.Now(), 1, 1, nil)
		require.NoError(t, m.Register(prometheus.NewRegistry()))
		m.Unregister(prometheus.NewRegistry())
	})
}
