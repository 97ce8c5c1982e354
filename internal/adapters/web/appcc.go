package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gastrodesk/internal/app"
	"gastrodesk/internal/core"
)

// listEquipment handles GET /api/appcc/equipment.
func (h *Handler) listEquipment(w http.ResponseWriter, r *http.Request) {
	equipment, err := h.svc.ListEquipment(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, equipment)
}

// createEquipment handles POST /api/appcc/equipment.
func (h *Handler) createEquipment(w http.ResponseWriter, r *http.Request) {
	var eq core.Equipment
	if !decodeJSON(w, r, &eq) {
		return
	}
	created, err := h.svc.CreateEquipment(r.Context(), eq)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, created)
}

// recordTemperature handles POST /api/appcc/temperature. The recorded_by
// field defaults to the authenticated username.
func (h *Handler) recordTemperature(w http.ResponseWriter, r *http.Request) {
	var req app.RecordTemperatureRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RecordedBy == "" {
		if claims := authFromContext(r.Context()); claims != nil {
			if user, err := h.svc.GetUser(r.Context(), claims.UserID); err == nil {
				req.RecordedBy = user.Username
			}
		}
	}

	log, err := h.svc.RecordTemperature(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, log)
}

// recordCleaning handles POST /api/appcc/cleaning.
func (h *Handler) recordCleaning(w http.ResponseWriter, r *http.Request) {
	var req app.RecordCleaningRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CompletedBy == "" {
		if claims := authFromContext(r.Context()); claims != nil {
			if user, err := h.svc.GetUser(r.Context(), claims.UserID); err == nil {
				req.CompletedBy = user.Username
			}
		}
	}

	log, err := h.svc.RecordCleaning(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, log)
}

// appccDay handles GET /api/appcc/day/{date}.
func (h *Handler) appccDay(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetAppccDay(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
