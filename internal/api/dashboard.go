package api

import "net/http"

type dashboardStats struct {
	TotalMedicines    int64   `json:"totalMedicines"`
	LowStockMedicines int64   `json:"lowStockMedicines"`
	TotalCustomers    int64   `json:"totalCustomers"`
	TodaySales        float64 `json:"todaySales"`
	TodayTransactions int64   `json:"todayTransactions"`
}

func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	var stats dashboardStats

	queries := []struct {
		dest any
		sql  string
	}{
		{&stats.TotalMedicines, `SELECT COUNT(*) FROM medicines`},
		{&stats.LowStockMedicines, `SELECT COUNT(*) FROM medicines WHERE quantity < 10`},
		{&stats.TotalCustomers, `SELECT COUNT(*) FROM customers`},
		{&stats.TodaySales, `SELECT COALESCE(SUM(total_amount), 0) FROM sales WHERE DATE(created_at) = CURRENT_DATE`},
		{&stats.TodayTransactions, `SELECT COUNT(*) FROM sales WHERE DATE(created_at) = CURRENT_DATE`},
	}

	for _, q := range queries {
		if err := h.db.Get(q.dest, q.sql); err != nil {
			respondError(w, http.StatusInternalServerError, "unable to fetch dashboard stats")
			return
		}
	}

	respondJSON(w, http.StatusOK, stats)
}
