package domain

type Prescription struct {
	ID               int64   `db:"id" json:"id"`
	CustomerID       *int64  `db:"customer_id" json:"customer_id,omitempty"`
	DoctorName       string  `db:"doctor_name" json:"doctor_name"`
	PrescriptionDate *string `db:"prescription_date" json:"prescription_date,omitempty"`
	Notes            string  `db:"notes" json:"notes"`
	Status           string  `db:"status" json:"status"`
	CreatedAt        string  `db:"created_at" json:"created_at,omitempty"`
}

type PrescriptionItem struct {
	ID             int64  `db:"id" json:"id,omitempty"`
	PrescriptionID int64  `db:"prescription_id" json:"prescription_id,omitempty"`
	MedicineID     int64  `db:"medicine_id" json:"medicine_id"`
	Quantity       int64  `db:"quantity" json:"quantity"`
	Dosage         string `db:"dosage" json:"dosage"`
	Instructions   string `db:"instructions" json:"instructions"`
}
