package migrations

import (
	"log"

	"github.com/jmoiron/sqlx"
)

// Run creates the database schema required for the pharmacy POS backend.
func Run(db *sqlx.DB) {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'pharmacist',
			created_at TIMESTAMPTZ DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS medicines (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			generic_name TEXT DEFAULT '',
			manufacturer TEXT DEFAULT '',
			batch_number TEXT DEFAULT '',
			expiry_date DATE,
			quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
			unit_price DOUBLE PRECISION NOT NULL,
			category TEXT DEFAULT '',
			description TEXT DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS customers (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			phone TEXT DEFAULT '',
			email TEXT DEFAULT '',
			address TEXT DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS suppliers (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			contact_person TEXT DEFAULT '',
			phone TEXT DEFAULT '',
			email TEXT DEFAULT '',
			address TEXT DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS sales (
			id SERIAL PRIMARY KEY,
			customer_id INTEGER REFERENCES customers(id),
			total_amount DOUBLE PRECISION NOT NULL,
			payment_method TEXT NOT NULL DEFAULT 'cash',
			created_at TIMESTAMPTZ DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS sale_items (
			id SERIAL PRIMARY KEY,
			sale_id INTEGER NOT NULL REFERENCES sales(id),
			medicine_id INTEGER NOT NULL REFERENCES medicines(id),
			quantity INTEGER NOT NULL,
			unit_price DOUBLE PRECISION NOT NULL,
			total_price DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS prescriptions (
			id SERIAL PRIMARY KEY,
			customer_id INTEGER REFERENCES customers(id),
			doctor_name TEXT DEFAULT '',
			prescription_date DATE,
			notes TEXT DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS prescription_items (
			id SERIAL PRIMARY KEY,
			prescription_id INTEGER NOT NULL REFERENCES prescriptions(id),
			medicine_id INTEGER NOT NULL REFERENCES medicines(id),
			quantity INTEGER NOT NULL,
			dosage TEXT DEFAULT '',
			instructions TEXT DEFAULT ''
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}
}
