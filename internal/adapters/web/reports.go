package web

import (
	"net/http"
	"strconv"

	"gastrodesk/internal/app"
	"gastrodesk/internal/core"
)

// recordSales handles POST /api/reports/sales.
func (h *Handler) recordSales(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Day    string `json:"day"`
		Gross  string `json:"gross"`
		Covers int    `json:"covers"`
		Notes  string `json:"notes"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	gross, err := parseDecimalField(payload.Gross, "gross")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	record, err := h.svc.RecordSales(r.Context(), app.RecordSalesRequest{
		Day:    payload.Day,
		Gross:  gross,
		Covers: payload.Covers,
		Notes:  payload.Notes,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, record)
}

// recordPurchase handles POST /api/reports/purchases.
func (h *Handler) recordPurchase(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Day      string `json:"day"`
		Supplier string `json:"supplier"`
		Amount   string `json:"amount"`
		Category string `json:"category"`
		Notes    string `json:"notes"`
	}
	if !decodeJSON(w, r, &payload) {
		return
	}
	amount, err := parseDecimalField(payload.Amount, "amount")
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	record, err := h.svc.RecordPurchase(r.Context(), app.RecordPurchaseRequest{
		Day:      payload.Day,
		Supplier: payload.Supplier,
		Amount:   amount,
		Category: payload.Category,
		Notes:    payload.Notes,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, record)
}

// monthlyReport handles GET /api/reports/monthly?year=&month=.
func (h *Handler) monthlyReport(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, r, "year query parameter is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, r, "month query parameter is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	summary, err := h.svc.GetMonthlyReport(r.Context(), year, month)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, summary)
}

// getSettings handles GET /api/settings.
func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetSettings(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, settings)
}

// updateSettings handles PUT /api/settings.
func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var settings core.Settings
	if !decodeJSON(w, r, &settings) {
		return
	}
	updated, err := h.svc.UpdateSettings(r.Context(), settings)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, updated)
}
