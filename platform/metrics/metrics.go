// Package metrics records compile and evaluation activity of the engines as
// Prometheus collectors. A nil *Metrics is valid and records nothing.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robbyt/go-symeval/engines/types"
)

type status string

const (
	statusSuccess status = "success"
	statusFailure status = "failure"
)

func statusOf(err error) status {
	if err != nil {
		return statusFailure
	}
	return statusSuccess
}

// Metrics holds the collectors shared by every evaluator that is given it.
type Metrics struct {
	compilations    *prometheus.CounterVec
	evaluations     *prometheus.CounterVec
	evalDuration    *prometheus.HistogramVec
	rowsEvaluated   *prometheus.CounterVec
	nodeEvaluations *prometheus.CounterVec
}

// New creates unregistered collectors.
func New() *Metrics {
	return &Metrics{
		compilations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "symeval_compilations_total",
			Help: "Total number of tree compilations",
		}, []string{"engine", "status"}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "symeval_evaluations_total",
			Help: "Total number of program evaluations",
		}, []string{"engine", "status"}),
		evalDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:                            "symeval_evaluation_seconds",
			Help:                            "Time taken to evaluate a compiled program over the requested rows in seconds",
			Buckets:                         prometheus.ExponentialBuckets(1e-6, 4, 12),
			NativeHistogramBucketFactor:     1.1,
			NativeHistogramMaxBucketNumber:  100,
			NativeHistogramMinResetDuration: 0,
		}, []string{"engine"}),
		rowsEvaluated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "symeval_rows_evaluated_total",
			Help: "Total number of rows produced by successful evaluations",
		}, []string{"engine"}),
		nodeEvaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "symeval_node_evaluations_total",
			Help: "Total number of node evaluations (program size times rows) of successful evaluations",
		}, []string{"engine"}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.compilations,
		m.evaluations,
		m.evalDuration,
		m.rowsEvaluated,
		m.nodeEvaluations,
	}
}

// Register adds the collectors to reg. Collectors that are already
// registered are not an error.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	if m == nil || reg == nil {
		return nil
	}
	for _, collector := range m.collectors() {
		if err := reg.Register(collector); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return err
			}
		}
	}
	return nil
}

// Unregister removes the collectors from reg.
func (m *Metrics) Unregister(reg prometheus.Registerer) {
	if m == nil || reg == nil {
		return
	}
	for _, collector := range m.collectors() {
		reg.Unregister(collector)
	}
}

// ObserveCompile counts one compilation for engine.
func (m *Metrics) ObserveCompile(engine types.Type, err error) {
	if m == nil {
		return
	}
	m.compilations.WithLabelValues(engine.String(), string(statusOf(err))).Inc()
}

// ObserveEval records one evaluation of a program with size instructions
// over rows rows that started at start.
func (m *Metrics) ObserveEval(engine types.Type, start time.Time, size, rows int, err error) {
	if m == nil {
		return
	}
	e := engine.String()
	m.evaluations.WithLabelValues(e, string(statusOf(err))).Inc()
	if err != nil {
		return
	}
	if !start.IsZero() {
		m.evalDuration.WithLabelValues(e).Observe(time.Since(start).Seconds())
	}
	m.rowsEvaluated.WithLabelValues(e).Add(float64(rows))
	m.nodeEvaluations.WithLabelValues(e).Add(float64(size) * float64(rows))
}
