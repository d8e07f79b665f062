package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

// Config holds application configuration values.
type Config struct {
	Secret      string
	DatabaseDSN string
	HTTPPort    string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "pharmacy_secret_key_2024"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "5000"
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		dbPort := os.Getenv("DB_PORT")
		if dbPort == "" {
			dbPort = "5432"
		}
		name := os.Getenv("DB_NAME")
		if name == "" {
			name = "pharmacy"
		}
		password := os.Getenv("DB_PASSWORD")

		dsn = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, dbPort, name)
	}

	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 5000", port)
		port = "5000"
	}

	return Config{Secret: secret, DatabaseDSN: dsn, HTTPPort: port}
}
