package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit is the pricing unit of an ingredient. Prices are per kilogram, per
// litre, or per piece; recipe line quantities are always grams or millilitres.
type Unit string

const (
	UnitKg    Unit = "kg"
	UnitL     Unit = "l"
	UnitPiece Unit = "pz"
)

// Ingredient is one entry in the restaurant's price book.
// WastePct is the default trim/peel loss for the ingredient (0–100); recipe
// lines may override it per use.
type Ingredient struct {
	ID        int             `json:"id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Unit      Unit            `json:"unit"`
	Price     decimal.Decimal `json:"price"`
	WastePct  decimal.Decimal `json:"waste_pct"`
	Category  string          `json:"category"`
	Allergens []string        `json:"allergens,omitempty"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

// RecipeLine is one ingredient usage inside a recipe. IngredientRef is an
// ingredient code or a free-text name — resolution is deliberately permissive
// so a recipe with a typo'd ingredient still displays, with that line costed
// at zero. Quantity is the net (edible) amount in grams or millilitres.
type RecipeLine struct {
	ID            int             `json:"id"`
	RecipeID      int             `json:"recipe_id"`
	IngredientRef string          `json:"ingredient_ref"`
	Quantity      decimal.Decimal `json:"quantity"`
	WastePct      decimal.Decimal `json:"waste_pct"`
}

// Recipe is a costed menu item. PVP is the tax-inclusive menu price.
// Coefficient is the target multiplier for the recommended price; zero means
// "use the restaurant default".
type Recipe struct {
	ID          int             `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Servings    int             `json:"servings"`
	PVP         decimal.Decimal `json:"pvp"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Coefficient decimal.Decimal `json:"coefficient"`
	Lines       []RecipeLine    `json:"lines"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Settings is the restaurant-wide configuration singleton.
type Settings struct {
	ID                 int             `json:"id"`
	Name               string          `json:"name"`
	Currency           string          `json:"currency"`
	DefaultTaxRate     decimal.Decimal `json:"default_tax_rate"`
	DefaultCoefficient decimal.Decimal `json:"default_coefficient"`
	DefaultTargetHours float64         `json:"default_target_hours"`
}

// LineCostBreakdown is the costed view of a single recipe line.
// Resolved is false when the ingredient reference matched nothing, in which
// case GrossQuantity and Cost are zero.
type LineCostBreakdown struct {
	Line           RecipeLine      `json:"line"`
	IngredientName string          `json:"ingredient_name,omitempty"`
	Unit           Unit            `json:"unit,omitempty"`
	GrossQuantity  decimal.Decimal `json:"gross_quantity"`
	Cost           decimal.Decimal `json:"cost"`
	Resolved       bool            `json:"resolved"`
}

// RecipeFinancials are the derived per-serving figures for a recipe.
// NetBenefit may be negative — a loss-making dish is a valid state, not an error.
type RecipeFinancials struct {
	TotalCost      decimal.Decimal `json:"total_cost"`
	CostPerServing decimal.Decimal `json:"cost_per_serving"`
	PVPExTax       decimal.Decimal `json:"pvp_ex_tax"`
	FoodCostPct    decimal.Decimal `json:"food_cost_pct"`
	NetBenefit     decimal.Decimal `json:"net_benefit"`
	RecommendedPVP decimal.Decimal `json:"recommended_pvp"`
}

// CostedRecipe bundles a recipe with its line breakdown and financials.
type CostedRecipe struct {
	Recipe     Recipe              `json:"recipe"`
	Breakdown  []LineCostBreakdown `json:"breakdown"`
	Financials RecipeFinancials    `json:"financials"`
}
