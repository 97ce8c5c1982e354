package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"gastrodesk/internal/app"
)

// ingredientPayload is the wire shape for creating or updating a price-book
// entry. Price and waste come in as strings so the browser never sends floats
// for money.
type ingredientPayload struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	Unit      string   `json:"unit"`
	Price     string   `json:"price"`
	WastePct  string   `json:"waste_pct"`
	Category  string   `json:"category"`
	Allergens []string `json:"allergens"`
}

// listIngredients handles GET /api/ingredients.
func (h *Handler) listIngredients(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListIngredients(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result.Ingredients)
}

// getIngredient handles GET /api/ingredients/{code}.
func (h *Handler) getIngredient(w http.ResponseWriter, r *http.Request) {
	ing, err := h.svc.GetIngredient(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, ing)
}

// saveIngredient handles POST /api/ingredients — create or update by code.
func (h *Handler) saveIngredient(w http.ResponseWriter, r *http.Request) {
	var payload ingredientPayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	price, err := decimal.NewFromString(payload.Price)
	if err != nil {
		writeError(w, r, "invalid price: "+payload.Price, "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	waste := decimal.Zero
	if payload.WastePct != "" {
		if waste, err = decimal.NewFromString(payload.WastePct); err != nil {
			writeError(w, r, "invalid waste_pct: "+payload.WastePct, "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	}

	ing, err := h.svc.SaveIngredient(r.Context(), app.SaveIngredientRequest{
		Code:      payload.Code,
		Name:      payload.Name,
		Unit:      payload.Unit,
		Price:     price,
		WastePct:  waste,
		Category:  payload.Category,
		Allergens: payload.Allergens,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, ing)
}

// archiveIngredient handles DELETE /api/ingredients/{code}.
func (h *Handler) archiveIngredient(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ArchiveIngredient(r.Context(), chi.URLParam(r, "code")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
