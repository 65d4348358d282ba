package data

import (
	"fmt"
	"maps"
	"slices"
)

// StaticBinding is a Binding over a fixed map of columns.
// It's useful for tests and for data that is fully known in advance.
type StaticBinding struct {
	columns map[string][]float64
	names   []string
	rows    int
}

// NewStaticBinding creates a binding over columns. The map is copied, the
// column slices are not. All columns must share one length.
func NewStaticBinding(columns map[string][]float64) (*StaticBinding, error) {
	b := &StaticBinding{
		columns: maps.Clone(columns),
		names:   slices.Sorted(maps.Keys(columns)),
	}
	if b.columns == nil {
		b.columns = make(map[string][]float64)
	}
	for i, name := range b.names {
		n := len(b.columns[name])
		if i == 0 {
			b.rows = n
			continue
		}
		if n != b.rows {
			return nil, fmt.Errorf("%w: %q has %d rows, %q has %d",
				ErrColumnLengthMismatch, name, n, b.names[0], b.rows)
		}
	}
	return b, nil
}

// Capture snapshots every column of b into a StaticBinding. Column slices
// are shared with b, so capturing is cheap and never copies row data.
func Capture(b Binding) (*StaticBinding, error) {
	if sb, ok := b.(*StaticBinding); ok {
		return sb, nil
	}
	columns := make(map[string][]float64, len(b.Names()))
	for _, name := range b.Names() {
		col, err := b.Column(name)
		if err != nil {
			return nil, err
		}
		columns[name] = col
	}
	sb, err := NewStaticBinding(columns)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		sb.rows = b.Rows()
	}
	return sb, nil
}

// Column implements Binding.
func (b *StaticBinding) Column(name string) ([]float64, error) {
	col, ok := b.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return col, nil
}

// Rows implements Binding.
func (b *StaticBinding) Rows() int {
	return b.rows
}

// Names implements Binding. Names are sorted.
func (b *StaticBinding) Names() []string {
	return slices.Clone(b.names)
}

func (b *StaticBinding) String() string {
	return fmt.Sprintf("StaticBinding{columns: %d, rows: %d}", len(b.names), b.rows)
}
