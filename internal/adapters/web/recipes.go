package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"gastrodesk/internal/app"
)

type recipeLinePayload struct {
	IngredientRef string `json:"ingredient_ref"`
	Quantity      string `json:"quantity"`
	WastePct      string `json:"waste_pct"`
}

type recipePayload struct {
	Code        string              `json:"code"`
	Name        string              `json:"name"`
	Category    string              `json:"category"`
	Servings    int                 `json:"servings"`
	PVP         string              `json:"pvp"`
	TaxRate     string              `json:"tax_rate"`
	Coefficient string              `json:"coefficient"`
	Lines       []recipeLinePayload `json:"lines"`
}

// listRecipes handles GET /api/recipes?category=.
func (h *Handler) listRecipes(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListRecipes(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result.Recipes)
}

// getRecipe handles GET /api/recipes/{code}.
func (h *Handler) getRecipe(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.svc.GetRecipe(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, recipe)
}

// saveRecipe handles POST /api/recipes — create or update by code.
func (h *Handler) saveRecipe(w http.ResponseWriter, r *http.Request) {
	var payload recipePayload
	if !decodeJSON(w, r, &payload) {
		return
	}

	req := app.SaveRecipeRequest{
		Code:     payload.Code,
		Name:     payload.Name,
		Category: payload.Category,
		Servings: payload.Servings,
	}
	var err error
	if req.PVP, err = parseDecimalField(payload.PVP, "pvp"); err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if req.TaxRate, err = parseDecimalField(payload.TaxRate, "tax_rate"); err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if req.Coefficient, err = parseDecimalField(payload.Coefficient, "coefficient"); err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	for _, l := range payload.Lines {
		qty, err := parseDecimalField(l.Quantity, "line quantity")
		if err != nil {
			writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		waste, err := parseDecimalField(l.WastePct, "line waste_pct")
		if err != nil {
			writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		req.Lines = append(req.Lines, app.RecipeLineInput{
			IngredientRef: l.IngredientRef,
			Quantity:      qty,
			WastePct:      waste,
		})
	}

	recipe, err := h.svc.SaveRecipe(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, recipe)
}

// archiveRecipe handles DELETE /api/recipes/{code}.
func (h *Handler) archiveRecipe(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ArchiveRecipe(r.Context(), chi.URLParam(r, "code")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// costRecipe handles GET /api/recipes/{code}/cost.
func (h *Handler) costRecipe(w http.ResponseWriter, r *http.Request) {
	costed, err := h.svc.CostRecipe(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, costed)
}

// costMenu handles GET /api/menu/cost?category=.
func (h *Handler) costMenu(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.CostMenu(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// generateRecipeCopy handles POST /api/recipes/{code}/copy.
func (h *Handler) generateRecipeCopy(w http.ResponseWriter, r *http.Request) {
	copy, err := h.svc.GenerateRecipeCopy(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, copy)
}

// parseDecimalField parses an optional decimal wire field; empty means zero.
func parseDecimalField(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &fieldError{field: field, value: s}
	}
	return d, nil
}

type fieldError struct {
	field string
	value string
}

func (e *fieldError) Error() string {
	return "invalid " + e.field + ": " + e.value
}
