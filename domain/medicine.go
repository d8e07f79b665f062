package domain

type Medicine struct {
	ID           int64   `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	GenericName  string  `db:"generic_name" json:"generic_name"`
	Manufacturer string  `db:"manufacturer" json:"manufacturer"`
	BatchNumber  string  `db:"batch_number" json:"batch_number"`
	ExpiryDate   *string `db:"expiry_date" json:"expiry_date,omitempty"`
	Quantity     int64   `db:"quantity" json:"quantity"`
	UnitPrice    float64 `db:"unit_price" json:"unit_price"`
	Category     string  `db:"category" json:"category"`
	Description  string  `db:"description" json:"description"`
	CreatedAt    string  `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt    string  `db:"updated_at" json:"updated_at,omitempty"`
}
