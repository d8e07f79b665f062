package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pharmapos/m/domain"
	"pharmapos/m/internal/sales"
)

func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var req sales.Request
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sale, err := h.engine.Submit(r.Context(), req)
	if err != nil {
		var stockErr *sales.StockError
		switch {
		case errors.As(err, &stockErr):
			respondJSON(w, http.StatusBadRequest, map[string]any{
				"error":       fmt.Sprintf("insufficient stock for medicine ID %d", stockErr.MedicineID),
				"medicine_id": stockErr.MedicineID,
				"requested":   stockErr.Requested,
				"available":   stockErr.Available,
			})
		case errors.Is(err, sales.ErrInvalidSale):
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "unable to complete sale")
		}
		return
	}

	respondJSON(w, http.StatusCreated, sale)
}

type saleListEntry struct {
	domain.Sale
	CustomerName *string `db:"customer_name" json:"customer_name,omitempty"`
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	query := `SELECT s.id, s.customer_id, s.total_amount, s.payment_method, s.created_at, c.name AS customer_name
		FROM sales s
		LEFT JOIN customers c ON s.customer_id = c.id
		WHERE 1=1`
	var args []any

	if startDate := strings.TrimSpace(r.URL.Query().Get("startDate")); startDate != "" {
		if _, err := time.Parse("2006-01-02", startDate); err != nil {
			respondError(w, http.StatusBadRequest, "startDate must be in YYYY-MM-DD format")
			return
		}
		args = append(args, startDate)
		query += fmt.Sprintf(" AND DATE(s.created_at) >= $%d", len(args))
	}
	if endDate := strings.TrimSpace(r.URL.Query().Get("endDate")); endDate != "" {
		if _, err := time.Parse("2006-01-02", endDate); err != nil {
			respondError(w, http.StatusBadRequest, "endDate must be in YYYY-MM-DD format")
			return
		}
		args = append(args, endDate)
		query += fmt.Sprintf(" AND DATE(s.created_at) <= $%d", len(args))
	}
	query += " ORDER BY s.created_at DESC"

	entries := []saleListEntry{}
	if err := h.db.Select(&entries, query, args...); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list sales")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

type saleItemDetail struct {
	ID           int64   `db:"id" json:"id"`
	MedicineID   int64   `db:"medicine_id" json:"medicine_id"`
	MedicineName string  `db:"medicine_name" json:"medicine_name"`
	Quantity     int64   `db:"quantity" json:"quantity"`
	UnitPrice    float64 `db:"unit_price" json:"unit_price"`
	TotalPrice   float64 `db:"total_price" json:"total_price"`
}

type saleDetail struct {
	ID            int64            `db:"id" json:"id"`
	CustomerID    *int64           `db:"customer_id" json:"customer_id,omitempty"`
	CustomerName  *string          `db:"customer_name" json:"customer_name,omitempty"`
	CustomerPhone *string          `db:"customer_phone" json:"customer_phone,omitempty"`
	TotalAmount   float64          `db:"total_amount" json:"total_amount"`
	PaymentMethod string           `db:"payment_method" json:"payment_method"`
	CreatedAt     string           `db:"created_at" json:"created_at"`
	Items         []saleItemDetail `db:"-" json:"items"`
}

func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sale id")
		return
	}

	var detail saleDetail
	err = h.db.Get(&detail, `SELECT s.id, s.customer_id, s.total_amount, s.payment_method, s.created_at,
		c.name AS customer_name, c.phone AS customer_phone
		FROM sales s
		LEFT JOIN customers c ON s.customer_id = c.id
		WHERE s.id = $1`, id)
	if err != nil {
		respondError(w, http.StatusNotFound, "sale not found")
		return
	}

	items := []saleItemDetail{}
	err = h.db.Select(&items, `SELECT si.id, si.medicine_id, m.name AS medicine_name, si.quantity, si.unit_price, si.total_price
		FROM sale_items si
		JOIN medicines m ON si.medicine_id = m.id
		WHERE si.sale_id = $1
		ORDER BY si.id`, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load sale items")
		return
	}
	detail.Items = items

	respondJSON(w, http.StatusOK, detail)
}
