package domain

// Payment methods accepted at the counter. A sale submitted without one
// defaults to cash.
const (
	PaymentCash   = "cash"
	PaymentCard   = "card"
	PaymentOnline = "online"
)

// ValidPaymentMethod reports whether m belongs to the closed set of
// accepted payment methods.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentCard || m == PaymentOnline
}

// Sale is a committed, immutable sale transaction. Lines and the stock
// decrements they imply become visible together at commit; TotalAmount
// is always the sum of the line totals.
type Sale struct {
	ID            int64      `db:"id" json:"id"`
	CustomerID    *int64     `db:"customer_id" json:"customer_id,omitempty"`
	TotalAmount   float64    `db:"total_amount" json:"total_amount"`
	PaymentMethod string     `db:"payment_method" json:"payment_method"`
	CreatedAt     string     `db:"created_at" json:"created_at"`
	Lines         []SaleLine `db:"-" json:"items,omitempty"`
}

type SaleLine struct {
	ID         int64   `db:"id" json:"id,omitempty"`
	SaleID     int64   `db:"sale_id" json:"sale_id,omitempty"`
	MedicineID int64   `db:"medicine_id" json:"medicine_id"`
	Quantity   int64   `db:"quantity" json:"quantity"`
	UnitPrice  float64 `db:"unit_price" json:"unit_price"`
	TotalPrice float64 `db:"total_price" json:"total_price"`
}
