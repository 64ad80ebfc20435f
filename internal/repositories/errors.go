package repositories

import "errors"

var (
	// ErrNotFound is returned when a specific record is not found.
	ErrNotFound = errors.New("requested record not found")

	// ErrDuplicateKey is returned when a create/update would repeat a unique value.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")

	// ErrStockOverflow is returned when an adjustment would take stock past the int range.
	ErrStockOverflow = errors.New("stock adjustment overflows current stock")
)
