package data

import "errors"

var (
	ErrColumnNotFound       = errors.New("column not found in binding")
	ErrColumnExists         = errors.New("column already present in binding")
	ErrColumnLengthMismatch = errors.New("column length differs from binding row count")
	ErrNegativeRow          = errors.New("row index is negative")
)
