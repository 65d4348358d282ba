package data

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/robbyt/go-symeval/platform/constants"
)

// ContextProvider retrieves and stores a row selection in the context using a specified key.
type ContextProvider struct {
	contextKey constants.ContextKey
}

// NewContextProvider creates a new ContextProvider with the given context key.
// The context key determines where the selection is stored in the context object.
func NewContextProvider(contextKey constants.ContextKey) *ContextProvider {
	return &ContextProvider{
		contextKey: contextKey,
	}
}

// GetRows extracts the row selection from the context using the configured context key.
// The boolean is false when no selection was stored, meaning "all rows".
func (p *ContextProvider) GetRows(ctx context.Context) ([]int, bool, error) {
	if p.contextKey == "" {
		return nil, false, fmt.Errorf("context key is empty")
	}

	value := ctx.Value(p.contextKey)
	if value == nil {
		return nil, false, nil
	}

	rows, ok := value.([]int)
	if !ok {
		return nil, false, fmt.Errorf("invalid row selection type: expected []int, got %T", value)
	}
	return rows, true, nil
}

// AddRowsToContext appends the given rows to any selection already stored in
// the context. Order and duplicates are preserved. Negative rows are rejected
// and skipped; the returned context still carries the valid rows.
func (p *ContextProvider) AddRowsToContext(
	ctx context.Context,
	rows ...[]int,
) (context.Context, error) {
	if p.contextKey == "" {
		return ctx, fmt.Errorf("context key is empty")
	}

	var errz []error
	var toStore []int
	if existing, ok := ctx.Value(p.contextKey).([]int); ok {
		toStore = slices.Clone(existing)
	}

	for _, batch := range rows {
		for _, r := range batch {
			if r < 0 {
				errz = append(errz, fmt.Errorf("%w: %d", ErrNegativeRow, r))
				continue
			}
			toStore = append(toStore, r)
		}
	}

	newCtx := context.WithValue(ctx, p.contextKey, toStore)
	return newCtx, errors.Join(errz...)
}

// WithRows is a shorthand that stores rows under constants.EvalRows.
func WithRows(ctx context.Context, rows ...int) (context.Context, error) {
	return NewContextProvider(constants.EvalRows).AddRowsToContext(ctx, rows)
}
