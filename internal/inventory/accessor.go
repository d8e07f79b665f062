// Package inventory is the only path through which sale processing
// reads or mutates a medicine's on-hand quantity.
package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound          = errors.New("medicine not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Accessor performs atomic quantity reads and deltas against the
// medicines table. Every method takes the executor explicitly so calls
// made on an open *sqlx.Tx stay inside that transaction and observe its
// uncommitted writes.
type Accessor struct{}

// Quantity returns the current on-hand count for a medicine.
func (Accessor) Quantity(ctx context.Context, e sqlx.ExtContext, medicineID int64) (int64, error) {
	var qty int64
	err := sqlx.GetContext(ctx, e, &qty, `SELECT quantity FROM medicines WHERE id = $1`, medicineID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query quantity: %w", err)
	}
	return qty, nil
}

// ApplyDelta adjusts a medicine's quantity by delta (negative for a
// sale) in a single conditional statement. The guard and the write are
// one indivisible UPDATE, so concurrent decrements against the same row
// serialize at the database and can never jointly drive the quantity
// below zero.
func (Accessor) ApplyDelta(ctx context.Context, e sqlx.ExtContext, medicineID, delta int64) error {
	result, err := e.ExecContext(ctx, `
		UPDATE medicines
		SET quantity = quantity + $1, updated_at = NOW()
		WHERE id = $2 AND quantity + $1 >= 0`,
		delta, medicineID,
	)
	if err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}
	if rows > 0 {
		return nil
	}

	// The guard rejected the update: either the row is missing or the
	// delta would overdraw it.
	var exists bool
	if err := sqlx.GetContext(ctx, e, &exists, `SELECT EXISTS(SELECT 1 FROM medicines WHERE id = $1)`, medicineID); err != nil {
		return fmt.Errorf("check medicine: %w", err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrInsufficientStock
}
