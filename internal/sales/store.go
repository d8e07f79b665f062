package sales

import (
	"context"

	"github.com/jmoiron/sqlx"

	"pharmapos/m/domain"
	"pharmapos/m/internal/inventory"
)

// PostgresStore backs the engine with a PostgreSQL database. Each
// RunInTx call maps to one database transaction; the inventory accessor
// is enlisted on the same transaction handle so its reads see the
// scope's uncommitted writes.
type PostgresStore struct {
	db  *sqlx.DB
	inv inventory.Accessor
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) RunInTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: "begin transaction", Err: err}
	}
	defer tx.Rollback()

	if err := fn(&pgTx{tx: tx, inv: s.inv}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "commit", Err: err}
	}
	return nil
}

type pgTx struct {
	tx  *sqlx.Tx
	inv inventory.Accessor
}

func (t *pgTx) StockOnHand(ctx context.Context, medicineID int64) (int64, error) {
	return t.inv.Quantity(ctx, t.tx, medicineID)
}

func (t *pgTx) ApplyStockDelta(ctx context.Context, medicineID, delta int64) error {
	return t.inv.ApplyDelta(ctx, t.tx, medicineID, delta)
}

func (t *pgTx) InsertSale(ctx context.Context, sale *domain.Sale) error {
	return t.tx.QueryRowxContext(ctx, `
		INSERT INTO sales (customer_id, total_amount, payment_method)
		VALUES ($1, $2, $3) RETURNING id, created_at`,
		sale.CustomerID, sale.TotalAmount, sale.PaymentMethod,
	).Scan(&sale.ID, &sale.CreatedAt)
}

func (t *pgTx) InsertSaleLine(ctx context.Context, line *domain.SaleLine) error {
	return t.tx.QueryRowxContext(ctx, `
		INSERT INTO sale_items (sale_id, medicine_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		line.SaleID, line.MedicineID, line.Quantity, line.UnitPrice, line.TotalPrice,
	).Scan(&line.ID)
}
