package api

import (
	"net/http"
	"strings"

	"pharmapos/m/domain"
)

type prescriptionItemRequest struct {
	MedicineID   int64  `json:"medicine_id"`
	Quantity     int64  `json:"quantity"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions"`
}

type prescriptionRequest struct {
	CustomerID       *int64                    `json:"customer_id"`
	DoctorName       string                    `json:"doctor_name"`
	PrescriptionDate string                    `json:"prescription_date"`
	Notes            string                    `json:"notes"`
	Items            []prescriptionItemRequest `json:"items"`
}

type prescriptionListEntry struct {
	domain.Prescription
	CustomerName *string `db:"customer_name" json:"customer_name,omitempty"`
}

func (h *Handler) listPrescriptions(w http.ResponseWriter, r *http.Request) {
	entries := []prescriptionListEntry{}
	err := h.db.Select(&entries, `SELECT p.id, p.customer_id, p.doctor_name, p.prescription_date, p.notes, p.status, p.created_at,
		c.name AS customer_name
		FROM prescriptions p
		LEFT JOIN customers c ON p.customer_id = c.id
		ORDER BY p.created_at DESC`)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list prescriptions")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *Handler) createPrescription(w http.ResponseWriter, r *http.Request) {
	var req prescriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.DoctorName) == "" {
		respondError(w, http.StatusBadRequest, "doctor_name is required")
		return
	}
	for _, item := range req.Items {
		if item.MedicineID <= 0 || item.Quantity <= 0 {
			respondError(w, http.StatusBadRequest, "prescription items need a medicine_id and a positive quantity")
			return
		}
	}

	tx, err := h.db.Beginx()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to start prescription")
		return
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowx(`INSERT INTO prescriptions (customer_id, doctor_name, prescription_date, notes)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		req.CustomerID, req.DoctorName, nullIfEmpty(req.PrescriptionDate), req.Notes).Scan(&id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to create prescription")
		return
	}

	for _, item := range req.Items {
		_, err = tx.Exec(`INSERT INTO prescription_items (prescription_id, medicine_id, quantity, dosage, instructions)
			VALUES ($1, $2, $3, $4, $5)`,
			id, item.MedicineID, item.Quantity, item.Dosage, item.Instructions)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "unable to add prescription items")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to save prescription")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"id": id, "message": "prescription added successfully"})
}
