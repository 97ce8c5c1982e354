package app

import (
	"context"

	"gastrodesk/internal/core"
)

// ApplicationService is the single interface all UI adapters (CLI, Web) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// ── Price book ────────────────────────────────────────────────────────

	// ListIngredients returns the active ingredient price book.
	ListIngredients(ctx context.Context) (*IngredientListResult, error)

	// GetIngredient returns one price-book entry by code.
	GetIngredient(ctx context.Context, code string) (*core.Ingredient, error)

	// SaveIngredient creates or updates a price-book entry by code.
	SaveIngredient(ctx context.Context, req SaveIngredientRequest) (*core.Ingredient, error)

	// ArchiveIngredient deactivates an ingredient.
	ArchiveIngredient(ctx context.Context, code string) error

	// ── Recipes and costing ───────────────────────────────────────────────

	// ListRecipes returns active recipes, optionally filtered by category.
	ListRecipes(ctx context.Context, category string) (*RecipeListResult, error)

	// GetRecipe returns one recipe with its lines.
	GetRecipe(ctx context.Context, code string) (*core.Recipe, error)

	// SaveRecipe creates or updates a recipe and its full line set.
	SaveRecipe(ctx context.Context, req SaveRecipeRequest) (*core.Recipe, error)

	// ArchiveRecipe deactivates a recipe.
	ArchiveRecipe(ctx context.Context, code string) error

	// CostRecipe returns the recipe costed against the current price book.
	CostRecipe(ctx context.Context, code string) (*core.CostedRecipe, error)

	// CostMenu costs every active recipe, for the menu engineering view.
	CostMenu(ctx context.Context, category string) (*MenuCostResult, error)

	// ── Scheduling ────────────────────────────────────────────────────────

	// ListEmployees returns active staff.
	ListEmployees(ctx context.Context) (*EmployeeListResult, error)

	// SaveEmployee creates or updates an employee by code.
	SaveEmployee(ctx context.Context, req SaveEmployeeRequest) (*core.Employee, error)

	// ArchiveEmployee deactivates an employee.
	ArchiveEmployee(ctx context.Context, code string) error

	// ListShiftTypes returns the active shift catalogue.
	ListShiftTypes(ctx context.Context) ([]core.ShiftType, error)

	// CreateShiftType adds a shift definition.
	CreateShiftType(ctx context.Context, st core.ShiftType) (*core.ShiftType, error)

	// GetScheduleWeek returns the grid for the 7 days from weekStart.
	GetScheduleWeek(ctx context.Context, weekStart string) (*ScheduleWeekResult, error)

	// SetAssignment upserts one schedule cell; empty shift code clears it.
	SetAssignment(ctx context.Context, employeeCode, date, shiftCode string) error

	// GetBalance returns the cumulative worked-vs-target balance for one
	// employee over [from, to].
	GetBalance(ctx context.Context, employeeCode, from, to string) (*core.BalanceReport, error)

	// GetPeriodBalances returns flat-target balances for all staff.
	GetPeriodBalances(ctx context.Context, from, to string, period core.BalancePeriod) (*BalanceListResult, error)

	// ── AI drafts (human confirmation required before persisting) ─────────

	// ProposeRoster asks the agent to draft a week's roster.
	ProposeRoster(ctx context.Context, weekStart, constraints string) (*core.RosterProposal, error)

	// ApplyRoster persists a confirmed roster proposal.
	// Must only be called after explicit user approval.
	ApplyRoster(ctx context.Context, proposal core.RosterProposal) error

	// GenerateRecipeCopy asks the agent to draft menu text for a recipe.
	GenerateRecipeCopy(ctx context.Context, recipeCode string) (*core.RecipeCopy, error)

	// ── APPCC ─────────────────────────────────────────────────────────────

	// ListEquipment returns monitored APPCC control points.
	ListEquipment(ctx context.Context) ([]core.Equipment, error)

	// CreateEquipment registers a monitored unit with its safe temperature range.
	CreateEquipment(ctx context.Context, e core.Equipment) (*core.Equipment, error)

	// RecordTemperature stores one reading; conformity is computed server-side.
	RecordTemperature(ctx context.Context, req RecordTemperatureRequest) (*core.TemperatureLog, error)

	// RecordCleaning stores a completed cleaning task.
	RecordCleaning(ctx context.Context, req RecordCleaningRequest) (*core.CleaningLog, error)

	// GetAppccDay returns the daily checklist summary with full logs.
	GetAppccDay(ctx context.Context, date string) (*AppccDayResult, error)

	// ── Financial records ─────────────────────────────────────────────────

	// RecordSales stores one day's close-out figure.
	RecordSales(ctx context.Context, req RecordSalesRequest) (*core.SalesRecord, error)

	// RecordPurchase stores a supplier invoice total.
	RecordPurchase(ctx context.Context, req RecordPurchaseRequest) (*core.PurchaseRecord, error)

	// GetMonthlyReport returns the sales-vs-purchases summary for a month.
	GetMonthlyReport(ctx context.Context, year, month int) (*core.MonthlySummary, error)

	// ── Settings and auth ─────────────────────────────────────────────────

	// GetSettings returns the restaurant configuration.
	GetSettings(ctx context.Context) (*core.Settings, error)

	// UpdateSettings overwrites the restaurant configuration.
	UpdateSettings(ctx context.Context, s core.Settings) (*core.Settings, error)

	// AuthenticateUser verifies credentials and returns a session on success.
	AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error)

	// GetUser returns user profile by ID.
	GetUser(ctx context.Context, userID int) (*UserResult, error)
}
