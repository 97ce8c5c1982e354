package app

import "github.com/shopspring/decimal"

// SaveIngredientRequest is the input for creating or updating a price-book entry.
type SaveIngredientRequest struct {
	Code      string
	Name      string
	Unit      string
	Price     decimal.Decimal
	WastePct  decimal.Decimal
	Category  string
	Allergens []string
}

// SaveRecipeRequest is the input for creating or updating a recipe. Lines
// replace the stored set wholesale.
type SaveRecipeRequest struct {
	Code        string
	Name        string
	Category    string
	Servings    int
	PVP         decimal.Decimal
	TaxRate     decimal.Decimal // zero means "use the restaurant default"
	Coefficient decimal.Decimal // zero means "use the restaurant default"
	Lines       []RecipeLineInput
}

// RecipeLineInput is a single line within a SaveRecipeRequest.
type RecipeLineInput struct {
	IngredientRef string
	Quantity      decimal.Decimal
	WastePct      decimal.Decimal
}

// SaveEmployeeRequest is the input for creating or updating an employee.
type SaveEmployeeRequest struct {
	Code        string
	Name        string
	Role        string
	TargetHours float64
}

// RecordTemperatureRequest is the input for one APPCC temperature reading.
type RecordTemperatureRequest struct {
	EquipmentCode string
	Temperature   float64
	Notes         string
	RecordedBy    string
}

// RecordCleaningRequest is the input for one completed cleaning task.
type RecordCleaningRequest struct {
	Area        string
	Task        string
	Product     string
	CompletedBy string
}

// RecordSalesRequest is the input for one day's close-out figure.
type RecordSalesRequest struct {
	Day    string // YYYY-MM-DD
	Gross  decimal.Decimal
	Covers int
	Notes  string
}

// RecordPurchaseRequest is the input for one supplier invoice total.
type RecordPurchaseRequest struct {
	Day      string // YYYY-MM-DD
	Supplier string
	Amount   decimal.Decimal
	Category string
	Notes    string
}
