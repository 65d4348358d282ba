package evaluator

import (
	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/platform/metrics"
)

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithMetrics records every evaluation in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Evaluator) {
		e.metrics = m
	}
}

// WithRowProvider replaces the context provider used to find the row selection.
func WithRowProvider(p data.RowProvider) Option {
	return func(e *Evaluator) {
		if p != nil {
			e.rowProvider = p
		}
	}
}
