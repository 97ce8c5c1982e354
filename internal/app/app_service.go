package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"gastrodesk/internal/ai"
	"gastrodesk/internal/core"
)

type appService struct {
	ingredients core.IngredientService
	recipes     core.RecipeService
	schedule    core.ScheduleService
	appcc       core.AppccService
	reporting   core.ReportingService
	settings    core.SettingsService
	users       core.UserService
	agent       ai.AgentService
}

// NewAppService constructs an appService that satisfies ApplicationService.
// agent may be nil when no API key is configured; AI operations then fail
// with a clear error instead of at startup.
func NewAppService(
	ingredients core.IngredientService,
	recipes core.RecipeService,
	schedule core.ScheduleService,
	appcc core.AppccService,
	reporting core.ReportingService,
	settings core.SettingsService,
	users core.UserService,
	agent ai.AgentService,
) ApplicationService {
	return &appService{
		ingredients: ingredients,
		recipes:     recipes,
		schedule:    schedule,
		appcc:       appcc,
		reporting:   reporting,
		settings:    settings,
		users:       users,
		agent:       agent,
	}
}

// ── Price book ────────────────────────────────────────────────────────────────

func (s *appService) ListIngredients(ctx context.Context) (*IngredientListResult, error) {
	ingredients, err := s.ingredients.List(ctx)
	if err != nil {
		return nil, err
	}
	return &IngredientListResult{Ingredients: ingredients}, nil
}

func (s *appService) GetIngredient(ctx context.Context, code string) (*core.Ingredient, error) {
	return s.ingredients.Get(ctx, code)
}

// SaveIngredient upserts by code: the price-book form does not distinguish
// create from edit.
func (s *appService) SaveIngredient(ctx context.Context, req SaveIngredientRequest) (*core.Ingredient, error) {
	ing := core.Ingredient{
		Code:      req.Code,
		Name:      req.Name,
		Unit:      core.Unit(req.Unit),
		Price:     req.Price,
		WastePct:  req.WastePct,
		Category:  req.Category,
		Allergens: req.Allergens,
	}

	if _, err := s.ingredients.Get(ctx, req.Code); err == nil {
		return s.ingredients.Update(ctx, ing)
	}
	return s.ingredients.Create(ctx, ing)
}

func (s *appService) ArchiveIngredient(ctx context.Context, code string) error {
	return s.ingredients.Archive(ctx, code)
}

// ── Recipes and costing ───────────────────────────────────────────────────────

func (s *appService) ListRecipes(ctx context.Context, category string) (*RecipeListResult, error) {
	recipes, err := s.recipes.List(ctx, category)
	if err != nil {
		return nil, err
	}
	return &RecipeListResult{Recipes: recipes, Category: category}, nil
}

func (s *appService) GetRecipe(ctx context.Context, code string) (*core.Recipe, error) {
	return s.recipes.Get(ctx, code)
}

func (s *appService) SaveRecipe(ctx context.Context, req SaveRecipeRequest) (*core.Recipe, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	r := core.Recipe{
		Code:        req.Code,
		Name:        req.Name,
		Category:    req.Category,
		Servings:    req.Servings,
		PVP:         req.PVP,
		TaxRate:     req.TaxRate,
		Coefficient: req.Coefficient,
	}
	// Defaults are frozen into the row at save time so later settings edits
	// do not silently reprice existing menu items.
	if r.TaxRate.IsZero() {
		r.TaxRate = settings.DefaultTaxRate
	}
	if r.Coefficient.IsZero() {
		r.Coefficient = settings.DefaultCoefficient
	}
	for _, l := range req.Lines {
		r.Lines = append(r.Lines, core.RecipeLine{
			IngredientRef: l.IngredientRef,
			Quantity:      l.Quantity,
			WastePct:      l.WastePct,
		})
	}

	if _, err := s.recipes.Get(ctx, req.Code); err == nil {
		return s.recipes.Update(ctx, r)
	}
	return s.recipes.Create(ctx, r)
}

func (s *appService) ArchiveRecipe(ctx context.Context, code string) error {
	return s.recipes.Archive(ctx, code)
}

func (s *appService) CostRecipe(ctx context.Context, code string) (*core.CostedRecipe, error) {
	return s.recipes.GetCosted(ctx, code)
}

// CostMenu costs every active recipe against one price-book snapshot so the
// menu engineering view is internally consistent.
func (s *appService) CostMenu(ctx context.Context, category string) (*MenuCostResult, error) {
	recipes, err := s.recipes.List(ctx, category)
	if err != nil {
		return nil, err
	}
	book, err := s.ingredients.List(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	result := &MenuCostResult{Currency: settings.Currency}
	for _, r := range recipes {
		full, err := s.recipes.Get(ctx, r.Code)
		if err != nil {
			return nil, err
		}
		result.Recipes = append(result.Recipes, core.Cost(*full, book, *settings))
	}
	return result, nil
}

// ── Scheduling ────────────────────────────────────────────────────────────────

func (s *appService) ListEmployees(ctx context.Context) (*EmployeeListResult, error) {
	employees, err := s.schedule.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return &EmployeeListResult{Employees: employees}, nil
}

func (s *appService) SaveEmployee(ctx context.Context, req SaveEmployeeRequest) (*core.Employee, error) {
	e := core.Employee{
		Code:        req.Code,
		Name:        req.Name,
		Role:        req.Role,
		TargetHours: req.TargetHours,
	}
	if e.TargetHours == 0 {
		settings, err := s.settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		e.TargetHours = settings.DefaultTargetHours
	}

	if _, err := s.schedule.GetEmployee(ctx, req.Code); err == nil {
		return s.schedule.UpdateEmployee(ctx, e)
	}
	return s.schedule.CreateEmployee(ctx, e)
}

func (s *appService) ArchiveEmployee(ctx context.Context, code string) error {
	return s.schedule.ArchiveEmployee(ctx, code)
}

func (s *appService) ListShiftTypes(ctx context.Context) ([]core.ShiftType, error) {
	return s.schedule.ListShiftTypes(ctx)
}

func (s *appService) CreateShiftType(ctx context.Context, st core.ShiftType) (*core.ShiftType, error) {
	return s.schedule.CreateShiftType(ctx, st)
}

func (s *appService) GetScheduleWeek(ctx context.Context, weekStart string) (*ScheduleWeekResult, error) {
	grid, err := s.schedule.GetWeek(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	shifts, err := s.schedule.ListShiftTypes(ctx)
	if err != nil {
		return nil, err
	}
	return &ScheduleWeekResult{WeekStart: weekStart, Grid: grid, Shifts: shifts}, nil
}

func (s *appService) SetAssignment(ctx context.Context, employeeCode, date, shiftCode string) error {
	return s.schedule.SetAssignment(ctx, employeeCode, date, shiftCode)
}

func (s *appService) GetBalance(ctx context.Context, employeeCode, from, to string) (*core.BalanceReport, error) {
	return s.schedule.Balance(ctx, employeeCode, from, to)
}

func (s *appService) GetPeriodBalances(ctx context.Context, from, to string, period core.BalancePeriod) (*BalanceListResult, error) {
	reports, err := s.schedule.PeriodBalances(ctx, from, to, period)
	if err != nil {
		return nil, err
	}
	return &BalanceListResult{Period: period, Reports: reports}, nil
}

// ── AI drafts ─────────────────────────────────────────────────────────────────

var errNoAgent = errors.New("AI agent not configured: set OPENAI_API_KEY")

func (s *appService) ProposeRoster(ctx context.Context, weekStart, constraints string) (*core.RosterProposal, error) {
	if s.agent == nil {
		return nil, errNoAgent
	}
	employees, err := s.schedule.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	shifts, err := s.schedule.ListShiftTypes(ctx)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 || len(shifts) == 0 {
		return nil, errors.New("cannot draft a roster without employees and shift types")
	}
	return s.agent.ProposeRoster(ctx, weekStart, constraints, employees, shifts)
}

func (s *appService) ApplyRoster(ctx context.Context, proposal core.RosterProposal) error {
	return s.schedule.ApplyProposal(ctx, proposal)
}

func (s *appService) GenerateRecipeCopy(ctx context.Context, recipeCode string) (*core.RecipeCopy, error) {
	if s.agent == nil {
		return nil, errNoAgent
	}
	recipe, err := s.recipes.Get(ctx, recipeCode)
	if err != nil {
		return nil, err
	}
	book, err := s.ingredients.List(ctx)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, l := range recipe.Lines {
		if ing := core.ResolveIngredient(l.IngredientRef, book); ing != nil {
			names = append(names, ing.Name)
		}
	}
	return s.agent.WriteRecipeCopy(ctx, *recipe, names)
}

// ── APPCC ─────────────────────────────────────────────────────────────────────

func (s *appService) ListEquipment(ctx context.Context) ([]core.Equipment, error) {
	return s.appcc.ListEquipment(ctx)
}

func (s *appService) CreateEquipment(ctx context.Context, e core.Equipment) (*core.Equipment, error) {
	return s.appcc.CreateEquipment(ctx, e)
}

func (s *appService) RecordTemperature(ctx context.Context, req RecordTemperatureRequest) (*core.TemperatureLog, error) {
	return s.appcc.RecordTemperature(ctx, req.EquipmentCode, req.Temperature, req.Notes, req.RecordedBy)
}

func (s *appService) RecordCleaning(ctx context.Context, req RecordCleaningRequest) (*core.CleaningLog, error) {
	return s.appcc.RecordCleaning(ctx, core.CleaningLog{
		Area:        req.Area,
		Task:        req.Task,
		Product:     req.Product,
		CompletedBy: req.CompletedBy,
	})
}

func (s *appService) GetAppccDay(ctx context.Context, date string) (*AppccDayResult, error) {
	summary, err := s.appcc.DaySummary(ctx, date)
	if err != nil {
		return nil, err
	}
	temps, err := s.appcc.TemperatureLogs(ctx, date)
	if err != nil {
		return nil, err
	}
	cleanings, err := s.appcc.CleaningLogs(ctx, date)
	if err != nil {
		return nil, err
	}
	return &AppccDayResult{Summary: summary, Temperatures: temps, Cleanings: cleanings}, nil
}

// ── Financial records ─────────────────────────────────────────────────────────

func (s *appService) RecordSales(ctx context.Context, req RecordSalesRequest) (*core.SalesRecord, error) {
	return s.reporting.RecordSales(ctx, core.SalesRecord{
		Day:    req.Day,
		Gross:  req.Gross,
		Covers: req.Covers,
		Notes:  req.Notes,
	})
}

func (s *appService) RecordPurchase(ctx context.Context, req RecordPurchaseRequest) (*core.PurchaseRecord, error) {
	return s.reporting.RecordPurchase(ctx, core.PurchaseRecord{
		Day:      req.Day,
		Supplier: req.Supplier,
		Amount:   req.Amount,
		Category: req.Category,
		Notes:    req.Notes,
	})
}

func (s *appService) GetMonthlyReport(ctx context.Context, year, month int) (*core.MonthlySummary, error) {
	return s.reporting.Monthly(ctx, year, month)
}

// ── Settings and auth ─────────────────────────────────────────────────────────

func (s *appService) GetSettings(ctx context.Context) (*core.Settings, error) {
	return s.settings.Get(ctx)
}

func (s *appService) UpdateSettings(ctx context.Context, settings core.Settings) (*core.Settings, error) {
	return s.settings.Update(ctx, settings)
}

// AuthenticateUser verifies credentials against the stored bcrypt hash.
// The same error is returned for unknown user and wrong password so the
// login form does not leak which usernames exist.
func (s *appService) AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	return &UserSession{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

func (s *appService) GetUser(ctx context.Context, userID int) (*UserResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &UserResult{ID: user.ID, Username: user.Username, Email: user.Email, Role: user.Role}, nil
}
