// Package dataset is a columnar container of named float64 columns backed by
// Apache Arrow arrays. A Dataset satisfies data.Binding, so it can be handed
// to the compilers and interpreters directly.
package dataset

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/robbyt/go-symeval/platform/data"
	"github.com/robbyt/go-symeval/random"
)

var ErrEmptyName = errors.New("column name is empty")

// Dataset holds equal-length float64 columns in insertion order. Mutating
// methods are safe for concurrent use, but a column slice returned by Column
// stays valid only until the column is removed or the dataset released.
type Dataset struct {
	mu      sync.RWMutex
	alloc   memory.Allocator
	names   []string
	index   map[string]int
	columns []*array.Float64
	rows    int
}

// Option configures a Dataset.
type Option func(*Dataset)

// WithAllocator sets the Arrow allocator used for column buffers.
func WithAllocator(alloc memory.Allocator) Option {
	return func(d *Dataset) {
		if alloc != nil {
			d.alloc = alloc
		}
	}
}

// New creates an empty dataset.
func New(opts ...Option) *Dataset {
	d := &Dataset{
		alloc: memory.DefaultAllocator,
		index: make(map[string]int),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Add copies values into a new column. The first column fixes the row count.
func (d *Dataset) Add(name string, values []float64) error {
	if name == "" {
		return ErrEmptyName
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.index[name]; ok {
		return fmt.Errorf("%w: %q", data.ErrColumnExists, name)
	}
	if len(d.columns) > 0 && len(values) != d.rows {
		return fmt.Errorf("%w: %q has %d rows, want %d",
			data.ErrColumnLengthMismatch, name, len(values), d.rows)
	}

	b := array.NewFloat64Builder(d.alloc)
	defer b.Release()
	b.Reserve(len(values))
	b.AppendValues(values, nil)
	col := b.NewFloat64Array()

	if len(d.columns) == 0 {
		d.rows = len(values)
	}
	d.index[name] = len(d.columns)
	d.names = append(d.names, name)
	d.columns = append(d.columns, col)
	return nil
}

// Remove drops the named column and releases its buffer.
func (d *Dataset) Remove(name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	i, ok := d.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", data.ErrColumnNotFound, name)
	}
	d.columns[i].Release()
	d.columns = slices.Delete(d.columns, i, i+1)
	d.names = slices.Delete(d.names, i, i+1)
	delete(d.index, name)
	for j := i; j < len(d.names); j++ {
		d.index[d.names[j]] = j
	}
	if len(d.columns) == 0 {
		d.rows = 0
	}
	return nil
}

// Contains reports whether the named column exists.
func (d *Dataset) Contains(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.index[name]
	return ok
}

// Column implements data.Binding. The returned slice aliases the Arrow buffer.
func (d *Dataset) Column(name string) ([]float64, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	i, ok := d.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", data.ErrColumnNotFound, name)
	}
	return d.columns[i].Float64Values(), nil
}

// Rows implements data.Binding.
func (d *Dataset) Rows() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.rows
}

// Names implements data.Binding. Names are returned in insertion order.
func (d *Dataset) Names() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.names)
}

// Release frees every column buffer and empties the dataset.
func (d *Dataset) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, col := range d.columns {
		col.Release()
	}
	d.columns = nil
	d.names = nil
	d.index = make(map[string]int)
	d.rows = 0
}

// Random builds a dataset with columns x1..xn, each holding nrows values
// drawn uniformly from [0, 1).
func Random(rng random.Source, nvars, nrows int, opts ...Option) (*Dataset, error) {
	if nvars < 0 || nrows < 0 {
		return nil, fmt.Errorf("invalid dataset shape: %d vars x %d rows", nvars, nrows)
	}
	d := New(opts...)
	values := make([]float64, nrows)
	for i := range nvars {
		for r := range values {
			values[r] = rng.Float()
		}
		if err := d.Add("x"+strconv.Itoa(i+1), values); err != nil {
			d.Release()
			return nil, err
		}
	}
	return d, nil
}
