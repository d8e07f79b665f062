package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"pharmapos/m/domain"
)

type medicineRequest struct {
	Name         string  `json:"name"`
	GenericName  string  `json:"generic_name"`
	Manufacturer string  `json:"manufacturer"`
	BatchNumber  string  `json:"batch_number"`
	ExpiryDate   string  `json:"expiry_date"`
	Quantity     int64   `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
}

func (h *Handler) listMedicines(w http.ResponseWriter, r *http.Request) {
	query := `SELECT id, name, generic_name, manufacturer, batch_number, expiry_date,
		quantity, unit_price, category, description, created_at, updated_at
		FROM medicines WHERE 1=1`
	var args []any

	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		like := "%" + search + "%"
		args = append(args, like)
		query += " AND (name ILIKE $" + strconv.Itoa(len(args)) + " OR generic_name ILIKE $" + strconv.Itoa(len(args)) + ")"
	}
	if category := strings.TrimSpace(r.URL.Query().Get("category")); category != "" {
		args = append(args, category)
		query += " AND category = $" + strconv.Itoa(len(args))
	}
	if r.URL.Query().Get("lowStock") == "true" {
		query += " AND quantity < 10"
	}
	query += " ORDER BY name"

	medicines := []domain.Medicine{}
	if err := h.db.Select(&medicines, query, args...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list medicines")
		return
	}
	respondJSON(w, http.StatusOK, medicines)
}

func (h *Handler) getMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid medicine id")
		return
	}
	var medicine domain.Medicine
	err = h.db.Get(&medicine, `SELECT id, name, generic_name, manufacturer, batch_number, expiry_date,
		quantity, unit_price, category, description, created_at, updated_at
		FROM medicines WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "medicine not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load medicine")
		return
	}
	respondJSON(w, http.StatusOK, medicine)
}

func (h *Handler) createMedicine(w http.ResponseWriter, r *http.Request) {
	var req medicineRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Quantity < 0 || req.UnitPrice < 0 {
		respondError(w, http.StatusBadRequest, "quantity and unit_price must not be negative")
		return
	}

	var id int64
	err := h.db.QueryRowx(`INSERT INTO medicines (name, generic_name, manufacturer, batch_number, expiry_date, quantity, unit_price, category, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		req.Name, req.GenericName, req.Manufacturer, req.BatchNumber, nullIfEmpty(req.ExpiryDate),
		req.Quantity, req.UnitPrice, req.Category, req.Description).Scan(&id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to add medicine")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "message": "medicine added successfully"})
}

func (h *Handler) updateMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid medicine id")
		return
	}
	var req medicineRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Quantity < 0 || req.UnitPrice < 0 {
		respondError(w, http.StatusBadRequest, "quantity and unit_price must not be negative")
		return
	}

	result, err := h.db.Exec(`UPDATE medicines SET name = $1, generic_name = $2, manufacturer = $3, batch_number = $4,
		expiry_date = $5, quantity = $6, unit_price = $7, category = $8, description = $9, updated_at = NOW()
		WHERE id = $10`,
		req.Name, req.GenericName, req.Manufacturer, req.BatchNumber, nullIfEmpty(req.ExpiryDate),
		req.Quantity, req.UnitPrice, req.Category, req.Description, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update medicine")
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		respondError(w, http.StatusNotFound, "medicine not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "medicine updated successfully"})
}

func (h *Handler) deleteMedicine(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid medicine id")
		return
	}
	result, err := h.db.Exec(`DELETE FROM medicines WHERE id = $1`, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete medicine")
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		respondError(w, http.StatusNotFound, "medicine not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "medicine deleted successfully"})
}
