package web

import (
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"gastrodesk/internal/app"
	webui "gastrodesk/web"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc        app.ApplicationService
	router     chi.Router
	jwtSecret  string
	fileServer http.Handler
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	staticFS, err := fs.Sub(webui.Static, "static")
	if err != nil {
		panic("web/static embed sub-FS failed: " + err.Error())
	}

	h := &Handler{
		svc:        svc,
		jwtSecret:  jwtSecret,
		fileServer: http.FileServer(http.FS(staticFS)),
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	// ── Public ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	// Landing page and app assets. The SPA handles its own login redirect;
	// every data route below requires the auth cookie.
	r.Get("/", h.index)
	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		http.StripPrefix("/static", h.fileServer).ServeHTTP(w, req)
	})

	// ── Protected API ─────────────────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/auth/me", h.me)

		// Price book
		r.Get("/api/ingredients", h.listIngredients)
		r.Post("/api/ingredients", h.saveIngredient)
		r.Get("/api/ingredients/{code}", h.getIngredient)
		r.Delete("/api/ingredients/{code}", h.archiveIngredient)

		// Recipes and costing
		r.Get("/api/recipes", h.listRecipes)
		r.Post("/api/recipes", h.saveRecipe)
		r.Get("/api/recipes/{code}", h.getRecipe)
		r.Delete("/api/recipes/{code}", h.archiveRecipe)
		r.Get("/api/recipes/{code}/cost", h.costRecipe)
		r.Post("/api/recipes/{code}/copy", h.generateRecipeCopy)
		r.Get("/api/menu/cost", h.costMenu)

		// Scheduling
		r.Get("/api/employees", h.listEmployees)
		r.Post("/api/employees", h.saveEmployee)
		r.Delete("/api/employees/{code}", h.archiveEmployee)
		r.Get("/api/shift-types", h.listShiftTypes)
		r.Post("/api/shift-types", h.createShiftType)
		r.Get("/api/schedule/week", h.scheduleWeek)
		r.Put("/api/schedule/assignment", h.setAssignment)
		r.Get("/api/schedule/balance/{code}", h.employeeBalance)
		r.Get("/api/schedule/balances", h.periodBalances)

		// AI roster drafts (propose, then apply after confirmation)
		r.Post("/api/schedule/roster/propose", h.proposeRoster)
		r.Post("/api/schedule/roster/apply", h.applyRoster)

		// APPCC
		r.Get("/api/appcc/equipment", h.listEquipment)
		r.Post("/api/appcc/equipment", h.createEquipment)
		r.Post("/api/appcc/temperature", h.recordTemperature)
		r.Post("/api/appcc/cleaning", h.recordCleaning)
		r.Get("/api/appcc/day/{date}", h.appccDay)

		// Financial records
		r.Post("/api/reports/sales", h.recordSales)
		r.Post("/api/reports/purchases", h.recordPurchase)
		r.Get("/api/reports/monthly", h.monthlyReport)

		// Settings
		r.Get("/api/settings", h.getSettings)
		r.Put("/api/settings", h.updateSettings)
	})

	h.router = r
	return r
}

// health returns service status and the configured restaurant name.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	name := ""
	if settings, err := h.svc.GetSettings(r.Context()); err == nil {
		name = settings.Name
	}

	type response struct {
		Status     string `json:"status"`
		Restaurant string `json:"restaurant"`
	}
	writeJSON(w, response{Status: "ok", Restaurant: name})
}

// index serves the landing page from the embedded static bundle.
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	page, err := webui.Static.ReadFile("static/index.html")
	if err != nil {
		writeError(w, r, "landing page missing from build", "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// decodeJSON decodes the request body into v and returns false + writes an
// appropriate error response on failure. Returns HTTP 413 when the body
// exceeds the RequestBodyLimit cap; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
