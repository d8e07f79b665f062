package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"pharmapos/m/domain"
)

type customerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	query := `SELECT id, name, phone, email, address, created_at FROM customers WHERE 1=1`
	var args []any

	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		like := "%" + search + "%"
		args = append(args, like)
		query += " AND (name ILIKE $1 OR phone ILIKE $1)"
	}
	query += " ORDER BY name"

	customers := []domain.Customer{}
	if err := h.db.Select(&customers, query, args...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list customers")
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	var id int64
	err := h.db.QueryRowx(`INSERT INTO customers (name, phone, email, address) VALUES ($1, $2, $3, $4) RETURNING id`,
		req.Name, req.Phone, req.Email, req.Address).Scan(&id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to add customer")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "message": "customer added successfully"})
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	var req customerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	result, err := h.db.Exec(`UPDATE customers SET name = $1, phone = $2, email = $3, address = $4 WHERE id = $5`,
		req.Name, req.Phone, req.Email, req.Address, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update customer")
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		respondError(w, http.StatusNotFound, "customer not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "customer updated successfully"})
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid customer id")
		return
	}
	result, err := h.db.Exec(`DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete customer")
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		respondError(w, http.StatusNotFound, "customer not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "customer deleted successfully"})
}
