package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
)

// positive reports whether d is strictly greater than zero. All cost-engine
// divisions are guarded through this predicate so the fallback policy lives in
// one place instead of being re-derived at every call site.
func positive(d decimal.Decimal) bool {
	return d.Sign() > 0
}

// ResolveIngredient maps a recipe line reference to a price-book entry.
// Matching is a two-step policy: exact code equality first, then
// case-insensitive name equality. Returns nil when nothing matches — callers
// must cost an unresolved line at zero rather than fail, so recipes with
// typo'd or freeform ingredient names remain displayable.
func ResolveIngredient(ref string, ingredients []Ingredient) *Ingredient {
	for i := range ingredients {
		if ingredients[i].Code == ref {
			return &ingredients[i]
		}
	}
	for i := range ingredients {
		if strings.EqualFold(ingredients[i].Name, ref) {
			return &ingredients[i]
		}
	}
	return nil
}

// wasteFactor returns the edible fraction left after waste: 1 − pct/100.
// A factor ≤ 0 (100% or more declared waste) means the line is fully wasted
// and must be excluded rather than scaled toward infinity.
func wasteFactor(pct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Sub(pct.Div(hundred))
}

// LineCost computes the waste-adjusted cost of one recipe line.
//
// The net quantity (grams or ml) is scaled up by the waste factor to the gross
// quantity actually purchased, converted to the priced unit, and multiplied by
// the unit price. Degenerate inputs — unresolved ingredient, non-positive
// price or quantity, waste ≥ 100% — cost zero by policy.
//
// The /1000 gram-to-kilogram conversion is applied to piece-priced ("pz")
// ingredients too. That is how the price book has always been interpreted, so
// stored piece prices compensate; changing it would silently reprice every
// piece-based recipe.
func LineCost(line RecipeLine, ing *Ingredient) decimal.Decimal {
	_, cost := lineGrossAndCost(line, ing)
	return cost
}

func lineGrossAndCost(line RecipeLine, ing *Ingredient) (gross, cost decimal.Decimal) {
	if ing == nil || !positive(ing.Price) || !positive(line.Quantity) {
		return decimal.Zero, decimal.Zero
	}
	wf := wasteFactor(line.WastePct)
	if !positive(wf) {
		return decimal.Zero, decimal.Zero
	}
	gross = line.Quantity.Div(thousand).Div(wf)
	return gross, gross.Mul(ing.Price)
}

// RecipeCost sums LineCost over every line of the recipe, resolving each
// reference against the given price book. Order-independent and additive:
// the total is exactly the sum of the individual line costs.
func RecipeCost(recipe Recipe, ingredients []Ingredient) decimal.Decimal {
	total := decimal.Zero
	for _, line := range recipe.Lines {
		total = total.Add(LineCost(line, ResolveIngredient(line.IngredientRef, ingredients)))
	}
	return total
}

// CostBreakdown returns the per-line costed view used by the recipe detail
// screen and the costed exports.
func CostBreakdown(recipe Recipe, ingredients []Ingredient) []LineCostBreakdown {
	out := make([]LineCostBreakdown, 0, len(recipe.Lines))
	for _, line := range recipe.Lines {
		ing := ResolveIngredient(line.IngredientRef, ingredients)
		gross, cost := lineGrossAndCost(line, ing)
		b := LineCostBreakdown{Line: line, GrossQuantity: gross, Cost: cost}
		if ing != nil {
			b.Resolved = true
			b.IngredientName = ing.Name
			b.Unit = ing.Unit
		}
		out = append(out, b)
	}
	return out
}

// Financials derives the per-serving figures for a recipe from its total cost.
//
// Every division is guarded: cost per serving is zero unless both the total
// cost and the serving count are positive; a zero tax divisor (tax rate of
// −100%) leaves the PVP unchanged; the food-cost ratio is zero when there is
// no tax-exclusive price to divide by. These fallbacks define what the UI
// shows for brand-new recipes with no price data.
func Financials(recipe Recipe, totalCost decimal.Decimal, settings Settings) RecipeFinancials {
	f := RecipeFinancials{TotalCost: totalCost}

	if positive(totalCost) && recipe.Servings > 0 {
		f.CostPerServing = totalCost.Div(decimal.NewFromInt(int64(recipe.Servings)))
	}

	taxDivisor := decimal.NewFromInt(1).Add(recipe.TaxRate.Div(hundred))
	if taxDivisor.IsZero() {
		f.PVPExTax = recipe.PVP
	} else {
		f.PVPExTax = recipe.PVP.Div(taxDivisor)
	}

	if positive(f.PVPExTax) {
		f.FoodCostPct = f.CostPerServing.Div(f.PVPExTax).Mul(hundred)
	}

	f.NetBenefit = f.PVPExTax.Sub(f.CostPerServing)

	coefficient := recipe.Coefficient
	if !positive(coefficient) {
		coefficient = settings.DefaultCoefficient
	}
	f.RecommendedPVP = f.CostPerServing.Mul(coefficient).Mul(taxDivisor)

	return f
}

// Cost is the one-call convenience used by services: breakdown + financials.
func Cost(recipe Recipe, ingredients []Ingredient, settings Settings) CostedRecipe {
	breakdown := CostBreakdown(recipe, ingredients)
	total := decimal.Zero
	for _, b := range breakdown {
		total = total.Add(b.Cost)
	}
	return CostedRecipe{
		Recipe:     recipe,
		Breakdown:  breakdown,
		Financials: Financials(recipe, total, settings),
	}
}
