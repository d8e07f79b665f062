// Package sales turns candidate sale submissions into durable, immutable
// sale records with all-or-nothing semantics across every line.
package sales

import (
	"context"
	"errors"
	"fmt"

	"pharmapos/m/domain"
	"pharmapos/m/internal/inventory"
)

// Line is one requested item of a candidate sale. UnitPrice is taken as
// submitted and is not re-read from the catalog, so counter discounts
// flow through unchanged.
type Line struct {
	MedicineID int64   `json:"medicine_id"`
	Quantity   int64   `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}

// Request is a caller-submitted candidate sale. A nil CustomerID means a
// walk-in sale; an empty PaymentMethod defaults to cash.
type Request struct {
	CustomerID    *int64 `json:"customer_id"`
	PaymentMethod string `json:"payment_method"`
	Lines         []Line `json:"items"`
}

// Tx is the set of store operations available inside one transaction
// scope. Reads observe the scope's own uncommitted writes.
type Tx interface {
	// StockOnHand returns the current quantity for a medicine, or
	// inventory.ErrNotFound.
	StockOnHand(ctx context.Context, medicineID int64) (int64, error)

	// ApplyStockDelta atomically adjusts a medicine's quantity; it fails
	// with inventory.ErrInsufficientStock when the result would go
	// negative.
	ApplyStockDelta(ctx context.Context, medicineID, delta int64) error

	// InsertSale persists the sale header and fills in ID and CreatedAt.
	InsertSale(ctx context.Context, sale *domain.Sale) error

	// InsertSaleLine persists one line of an already-inserted sale.
	InsertSaleLine(ctx context.Context, line *domain.SaleLine) error
}

// Store opens transaction scopes for the engine. When fn returns an
// error every write made inside the scope is rolled back; otherwise the
// scope commits and all writes become visible together.
type Store interface {
	RunInTx(ctx context.Context, fn func(tx Tx) error) error
}

// Engine validates and commits multi-line sales against the inventory.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Submit processes a candidate sale. Lines are validated strictly in
// submission order, so when more than one line is short on stock the
// first offender is the one reported. The sale header, every line and
// every stock decrement commit as one unit; any failure leaves the store
// untouched.
func (e *Engine) Submit(ctx context.Context, req Request) (*domain.Sale, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	method := req.PaymentMethod
	if method == "" {
		method = domain.PaymentCash
	}

	var total float64
	for _, line := range req.Lines {
		total += float64(line.Quantity) * line.UnitPrice
	}

	var sale *domain.Sale
	err := e.store.RunInTx(ctx, func(tx Tx) error {
		for i, line := range req.Lines {
			onHand, err := tx.StockOnHand(ctx, line.MedicineID)
			if errors.Is(err, inventory.ErrNotFound) {
				return fmt.Errorf("%w: item %d references unknown medicine %d", ErrInvalidSale, i+1, line.MedicineID)
			}
			if err != nil {
				return &PersistenceError{Op: "read stock", Err: err}
			}
			if line.Quantity > onHand {
				return &StockError{MedicineID: line.MedicineID, Requested: line.Quantity, Available: onHand}
			}
		}

		s := &domain.Sale{
			CustomerID:    req.CustomerID,
			TotalAmount:   total,
			PaymentMethod: method,
		}
		if err := tx.InsertSale(ctx, s); err != nil {
			return &PersistenceError{Op: "insert sale", Err: err}
		}

		for _, line := range req.Lines {
			sl := domain.SaleLine{
				SaleID:     s.ID,
				MedicineID: line.MedicineID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				TotalPrice: float64(line.Quantity) * line.UnitPrice,
			}
			if err := tx.InsertSaleLine(ctx, &sl); err != nil {
				return &PersistenceError{Op: "insert sale item", Err: err}
			}

			if err := tx.ApplyStockDelta(ctx, line.MedicineID, -line.Quantity); err != nil {
				if errors.Is(err, inventory.ErrInsufficientStock) {
					// A concurrent sale consumed the stock between our
					// validation read and this decrement. The conditional
					// update refused, so nothing was overdrawn; report the
					// latest count.
					onHand, readErr := tx.StockOnHand(ctx, line.MedicineID)
					if readErr != nil {
						return &PersistenceError{Op: "read stock", Err: readErr}
					}
					return &StockError{MedicineID: line.MedicineID, Requested: line.Quantity, Available: onHand}
				}
				return &PersistenceError{Op: "decrement stock", Err: err}
			}
			s.Lines = append(s.Lines, sl)
		}

		sale = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// validate checks the shape of a submission before any store
// interaction.
func validate(req Request) error {
	if len(req.Lines) == 0 {
		return fmt.Errorf("%w: sale must have at least one item", ErrInvalidSale)
	}
	if req.PaymentMethod != "" && !domain.ValidPaymentMethod(req.PaymentMethod) {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidSale, req.PaymentMethod)
	}
	for i, line := range req.Lines {
		if line.MedicineID <= 0 {
			return fmt.Errorf("%w: item %d is missing a medicine reference", ErrInvalidSale, i+1)
		}
		if line.Quantity <= 0 {
			return fmt.Errorf("%w: item %d must have a positive quantity", ErrInvalidSale, i+1)
		}
		if line.UnitPrice < 0 {
			return fmt.Errorf("%w: item %d has a negative unit price", ErrInvalidSale, i+1)
		}
	}
	return nil
}
