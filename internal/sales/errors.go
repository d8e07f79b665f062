package sales

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSale marks a malformed submission: empty line list,
	// non-positive quantity, negative price, unknown payment method or
	// unknown medicine reference. Nothing was written to the store.
	ErrInvalidSale = errors.New("invalid sale")

	// ErrInsufficientStock is the sentinel matched by errors.Is for any
	// *StockError.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockError identifies the first line, in submission order, whose
// requested quantity exceeds the on-hand stock. The whole submission was
// rolled back; retrying with an adjusted quantity is safe.
type StockError struct {
	MedicineID int64
	Requested  int64
	Available  int64
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for medicine %d: requested %d, available %d",
		e.MedicineID, e.Requested, e.Available)
}

func (e *StockError) Is(target error) bool { return target == ErrInsufficientStock }

// PersistenceError wraps an unexpected store failure. The transaction
// scope was rolled back in full, so resubmitting the identical payload
// is safe.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
