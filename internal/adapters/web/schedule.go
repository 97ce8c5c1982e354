package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gastrodesk/internal/app"
	"gastrodesk/internal/core"
)

// listEmployees handles GET /api/employees.
func (h *Handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListEmployees(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result.Employees)
}

// saveEmployee handles POST /api/employees — create or update by code.
func (h *Handler) saveEmployee(w http.ResponseWriter, r *http.Request) {
	var req app.SaveEmployeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	emp, err := h.svc.SaveEmployee(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, emp)
}

// archiveEmployee handles DELETE /api/employees/{code}.
func (h *Handler) archiveEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ArchiveEmployee(r.Context(), chi.URLParam(r, "code")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listShiftTypes handles GET /api/shift-types.
func (h *Handler) listShiftTypes(w http.ResponseWriter, r *http.Request) {
	shifts, err := h.svc.ListShiftTypes(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, shifts)
}

// createShiftType handles POST /api/shift-types.
func (h *Handler) createShiftType(w http.ResponseWriter, r *http.Request) {
	var st core.ShiftType
	if !decodeJSON(w, r, &st) {
		return
	}
	created, err := h.svc.CreateShiftType(r.Context(), st)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, created)
}

// scheduleWeek handles GET /api/schedule/week?start=YYYY-MM-DD.
func (h *Handler) scheduleWeek(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	if start == "" {
		writeError(w, r, "start query parameter is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.GetScheduleWeek(r.Context(), start)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// setAssignment handles PUT /api/schedule/assignment.
func (h *Handler) setAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EmployeeCode string `json:"employee_code"`
		Date         string `json:"date"`
		ShiftCode    string `json:"shift_code"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.svc.SetAssignment(r.Context(), req.EmployeeCode, req.Date, req.ShiftCode); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// employeeBalance handles GET /api/schedule/balance/{code}?from=&to=.
func (h *Handler) employeeBalance(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, r, "from and to query parameters are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	report, err := h.svc.GetBalance(r.Context(), chi.URLParam(r, "code"), from, to)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, report)
}

// periodBalances handles GET /api/schedule/balances?from=&to=&period=week|month.
func (h *Handler) periodBalances(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, r, "from and to query parameters are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	period := core.BalancePeriod(r.URL.Query().Get("period"))
	if period == "" {
		period = core.PeriodMonth
	}

	result, err := h.svc.GetPeriodBalances(r.Context(), from, to, period)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// proposeRoster handles POST /api/schedule/roster/propose. The returned draft
// is not persisted; the client must confirm it via /api/schedule/roster/apply.
func (h *Handler) proposeRoster(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WeekStart   string `json:"week_start"`
		Constraints string `json:"constraints"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	proposal, err := h.svc.ProposeRoster(r.Context(), req.WeekStart, req.Constraints)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, proposal)
}

// applyRoster handles POST /api/schedule/roster/apply.
func (h *Handler) applyRoster(w http.ResponseWriter, r *http.Request) {
	var proposal core.RosterProposal
	if !decodeJSON(w, r, &proposal) {
		return
	}
	proposal.Normalize()
	if err := h.svc.ApplyRoster(r.Context(), proposal); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
