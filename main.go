package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"pharmapos/m/internal/api"
	"pharmapos/m/internal/config"
	"pharmapos/m/internal/database"
	"pharmapos/m/internal/migrations"
	"pharmapos/m/internal/sales"
	"pharmapos/m/internal/seed"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	db := database.Connect(cfg.DatabaseDSN)
	defer db.Close()

	migrations.Run(db)
	seed.EnsureAdmin(db)
	seed.LoadMedicines(db, "assets/medicines.csv")

	engine := sales.NewEngine(sales.NewPostgresStore(db))
	handler := api.New(db, cfg.Secret, engine)

	log.Printf("pharmacy server starting on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
