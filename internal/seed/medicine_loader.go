package seed

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// LoadMedicines ingests the CSV into the medicines table, skipping rows
// whose name already exists. Missing file is not an error; the catalog
// can be managed entirely through the API.
func LoadMedicines(db *sqlx.DB, csvPath string) {
	file, err := os.Open(csvPath)
	if err != nil {
		log.Printf("no medicine catalog at %s, skipping seed", csvPath)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Skip header
	if _, err := reader.Read(); err != nil {
		log.Printf("unable to read medicine header: %v", err)
		return
	}

	tx, err := db.Beginx()
	if err != nil {
		log.Printf("unable to start medicine transaction: %v", err)
		return
	}
	stmt, err := tx.Preparex(`INSERT INTO medicines (name, generic_name, manufacturer, category, quantity, unit_price)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE NOT EXISTS (SELECT 1 FROM medicines WHERE name = $1)`)
	if err != nil {
		log.Printf("unable to prepare medicine insert: %v", err)
		_ = tx.Rollback()
		return
	}
	defer stmt.Close()

	rows := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("unable to read medicine row: %v", err)
			continue
		}
		if len(record) < 6 {
			continue
		}
		name := strings.TrimSpace(record[0])
		generic := strings.TrimSpace(record[1])
		manufacturer := strings.TrimSpace(record[2])
		category := strings.TrimSpace(record[3])
		quantity, _ := strconv.ParseInt(strings.TrimSpace(record[4]), 10, 64)
		price, _ := strconv.ParseFloat(strings.TrimSpace(record[5]), 64)

		if name == "" || quantity < 0 || price < 0 {
			continue
		}

		if _, err := stmt.Exec(name, generic, manufacturer, category, quantity, price); err != nil {
			log.Printf("unable to insert medicine %s: %v", name, err)
		} else {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("unable to commit medicine seed: %v", err)
	} else {
		log.Printf("seeded medicine catalog with %d rows", rows)
	}
}
