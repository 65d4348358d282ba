package data

import (
	"context"
)

// Binding is a read-only mapping from column name to a column of values,
// one value per row. Every column of a binding has the same length.
// Implementations must be safe for concurrent readers and must never mutate
// a column after handing it out.
type Binding interface {
	// Column returns the values of the named column. The slice is shared and
	// must not be modified. Unknown names fail with ErrColumnNotFound.
	Column(name string) ([]float64, error)

	// Rows returns the common length of all columns.
	Rows() int

	// Names returns the bound column names in a stable order.
	Names() []string
}

// RowGetter retrieves the row selection attached to a context.
type RowGetter interface {
	// GetRows returns the selected rows and whether a selection was present.
	GetRows(ctx context.Context) ([]int, bool, error)
}

// RowSetter attaches a row selection to a context so that a later Eval only
// computes those rows.
type RowSetter interface {
	// AddRowsToContext appends rows to the selection stored in ctx.
	//
	// Example:
	//  ctx, err := evaluator.AddRowsToContext(ctx, []int{0, 2})
	//  if err != nil {
	//      return err
	//  }
	//  result, err := evaluator.Eval(ctx)
	AddRowsToContext(ctx context.Context, rows ...[]int) (context.Context, error)
}

// RowProvider combines RowGetter and RowSetter.
type RowProvider interface {
	RowGetter
	RowSetter
}
