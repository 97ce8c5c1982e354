package app

import "gastrodesk/internal/core"

// IngredientListResult is returned by ListIngredients.
type IngredientListResult struct {
	Ingredients []core.Ingredient
}

// RecipeListResult is returned by ListRecipes.
type RecipeListResult struct {
	Recipes  []core.Recipe
	Category string
}

// MenuCostResult is returned by CostMenu: every active recipe costed against
// the same price-book snapshot.
type MenuCostResult struct {
	Currency string
	Recipes  []core.CostedRecipe
}

// EmployeeListResult is returned by ListEmployees.
type EmployeeListResult struct {
	Employees []core.Employee
}

// ScheduleWeekResult is returned by GetScheduleWeek. Grid maps employee code
// to that employee's date→shift assignments within the week.
type ScheduleWeekResult struct {
	WeekStart string
	Grid      map[string]core.Assignment
	Shifts    []core.ShiftType
}

// BalanceListResult is returned by GetPeriodBalances.
type BalanceListResult struct {
	Period  core.BalancePeriod
	Reports []core.BalanceReport
}

// AppccDayResult is returned by GetAppccDay.
type AppccDayResult struct {
	Summary      *core.AppccDaySummary
	Temperatures []core.TemperatureLog
	Cleanings    []core.CleaningLog
}

// UserSession is returned by AuthenticateUser.
type UserSession struct {
	UserID   int
	Username string
	Role     string
}

// UserResult is returned by GetUser.
type UserResult struct {
	ID       int
	Username string
	Email    string
	Role     string
}
