package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"pharmapos/m/domain"
)

type supplierRequest struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	query := `SELECT id, name, contact_person, phone, email, address, created_at FROM suppliers WHERE 1=1`
	var args []any

	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		like := "%" + search + "%"
		args = append(args, like)
		query += " AND (name ILIKE $1 OR contact_person ILIKE $1)"
	}
	query += " ORDER BY name"

	suppliers := []domain.Supplier{}
	if err := h.db.Select(&suppliers, query, args...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list suppliers")
		return
	}
	respondJSON(w, http.StatusOK, suppliers)
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var req supplierRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	var id int64
	err := h.db.QueryRowx(`INSERT INTO suppliers (name, contact_person, phone, email, address) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		req.Name, req.ContactPerson, req.Phone, req.Email, req.Address).Scan(&id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to add supplier")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "message": "supplier added successfully"})
}

func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	var req supplierRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	result, err := h.db.Exec(`UPDATE suppliers SET name = $1, contact_person = $2, phone = $3, email = $4, address = $5 WHERE id = $6`,
		req.Name, req.ContactPerson, req.Phone, req.Email, req.Address, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update supplier")
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		respondError(w, http.StatusNotFound, "supplier not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "supplier updated successfully"})
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid supplier id")
		return
	}
	result, err := h.db.Exec(`DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete supplier")
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		respondError(w, http.StatusNotFound, "supplier not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "supplier deleted successfully"})
}
