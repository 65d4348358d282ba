package data

import (
	"errors"
	"fmt"
	"slices"
)

// CompositeBinding combines multiple bindings, with later bindings shadowing
// columns of the same name in earlier ones.
type CompositeBinding struct {
	bindings []Binding
	rows     int
}

// NewCompositeBinding creates a binding that looks columns up in the given
// bindings, last first. Every non-empty binding must report the same row count.
func NewCompositeBinding(bindings ...Binding) (*CompositeBinding, error) {
	p := &CompositeBinding{}
	seen := false
	for i, b := range bindings {
		if b == nil {
			continue
		}
		p.bindings = append(p.bindings, b)
		if len(b.Names()) == 0 {
			continue
		}
		if !seen {
			p.rows = b.Rows()
			seen = true
			continue
		}
		if b.Rows() != p.rows {
			return nil, fmt.Errorf("%w: binding %d has %d rows, want %d",
				ErrColumnLengthMismatch, i, b.Rows(), p.rows)
		}
	}
	return p, nil
}

// Column queries bindings from last to first and returns the first hit.
// A lookup error other than ErrColumnNotFound stops the search.
func (p *CompositeBinding) Column(name string) ([]float64, error) {
	for i := len(p.bindings) - 1; i >= 0; i-- {
		col, err := p.bindings[i].Column(name)
		if err == nil {
			return col, nil
		}
		if !errors.Is(err, ErrColumnNotFound) {
			return nil, fmt.Errorf("error from binding %d: %w", i, err)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// Rows implements Binding.
func (p *CompositeBinding) Rows() int {
	return p.rows
}

// Names returns the union of all column names, sorted.
func (p *CompositeBinding) Names() []string {
	var names []string
	for _, b := range p.bindings {
		names = append(names, b.Names()...)
	}
	slices.Sort(names)
	return slices.Compact(names)
}
