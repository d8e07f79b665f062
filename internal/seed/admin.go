package seed

import (
	"log"
	"os"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin creates the default admin account when no user with that
// name exists yet, so a fresh install is usable immediately.
func EnsureAdmin(db *sqlx.DB) {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("unable to hash admin password: %v", err)
		return
	}

	_, err = db.Exec(`INSERT INTO users (username, password, role)
		SELECT 'admin', $1, 'admin'
		WHERE NOT EXISTS (SELECT 1 FROM users WHERE username = 'admin')`, string(hashed))
	if err != nil {
		log.Printf("unable to seed admin user: %v", err)
	}
}
