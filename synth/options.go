package synth

import (
	"fmt"
	"slices"

	"github.com/robbyt/go-symeval/tree"
)

// Options holds the configuration for tree synthesis
type Options struct {
	// Terminals lists the leaf kinds drawn when growth stops.
	Terminals []tree.Op
	// MinWeight and MaxWeight bound variable weights and constant values.
	MinWeight float64
	MaxWeight float64
}

// FunctionalOption is a function that configures an Options instance
type FunctionalOption func(*Options) error

// WithTerminals sets the leaf kinds to draw from. The default is variables only.
func WithTerminals(ops ...tree.Op) FunctionalOption {
	return func(cfg *Options) error {
		if len(ops) == 0 {
			return fmt.Errorf("%w: no terminals given", ErrInvalidTerminal)
		}
		for _, op := range ops {
			if !op.IsLeaf() {
				return fmt.Errorf("%w: %s", ErrInvalidTerminal, op)
			}
		}
		cfg.Terminals = slices.Clone(ops)
		return nil
	}
}

// WithWeightRange sets the interval variable weights and constant values are drawn from.
func WithWeightRange(lo, hi float64) FunctionalOption {
	return func(cfg *Options) error {
		if lo > hi {
			return fmt.Errorf("weight range is inverted: [%g, %g]", lo, hi)
		}
		cfg.MinWeight = lo
		cfg.MaxWeight = hi
		return nil
	}
}

func defaultOptions() *Options {
	return &Options{
		Terminals: []tree.Op{tree.OpVariable},
		MinWeight: -5,
		MaxWeight: 5,
	}
}
