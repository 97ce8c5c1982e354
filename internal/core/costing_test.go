package core_test

import (
	"testing"

	"gastrodesk/internal/core"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var testBook = []core.Ingredient{
	{ID: 1, Code: "OLI", Name: "Aceite de oliva", Unit: core.UnitL, Price: dec("8.0")},
	{ID: 2, Code: "TOM", Name: "Tomate pera", Unit: core.UnitKg, Price: dec("2.40"), WastePct: dec("10")},
	{ID: 3, Code: "HUE", Name: "Huevo", Unit: core.UnitPiece, Price: dec("0.18")},
	{ID: 4, Code: "SAL", Name: "Sal fina", Unit: core.UnitKg, Price: dec("0")},
}

func TestResolveIngredient(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		wantCode string
		wantNil  bool
	}{
		{name: "exact code match", ref: "OLI", wantCode: "OLI"},
		{name: "case-insensitive name match", ref: "tomate PERA", wantCode: "TOM"},
		{name: "code takes precedence over name", ref: "HUE", wantCode: "HUE"},
		{name: "no match", ref: "Tomat pera", wantNil: true},
		{name: "empty ref", ref: "", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.ResolveIngredient(tt.ref, testBook)
			if tt.wantNil {
				if got != nil {
					t.Errorf("expected nil, got %s", got.Code)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %s, got nil", tt.wantCode)
			}
			if got.Code != tt.wantCode {
				t.Errorf("expected %s, got %s", tt.wantCode, got.Code)
			}
		})
	}
}

func TestLineCost(t *testing.T) {
	oil := &testBook[0]
	tomato := &testBook[1]
	salt := &testBook[3]

	tests := []struct {
		name string
		line core.RecipeLine
		ing  *core.Ingredient
		want decimal.Decimal
	}{
		{
			// 50 ml at 8.0/l with no waste: (50/1000)/1 × 8.0 = 0.4
			name: "oil 50 ml no waste",
			line: core.RecipeLine{IngredientRef: "OLI", Quantity: dec("50")},
			ing:  oil,
			want: dec("0.4"),
		},
		{
			// 450 g net at 10% waste: (450/1000)/0.9 × 2.40 = 1.2
			name: "tomato with waste",
			line: core.RecipeLine{IngredientRef: "TOM", Quantity: dec("450"), WastePct: dec("10")},
			ing:  tomato,
			want: dec("1.2"),
		},
		{name: "unresolved ingredient", line: core.RecipeLine{Quantity: dec("100")}, ing: nil, want: decimal.Zero},
		{name: "zero price", line: core.RecipeLine{Quantity: dec("100")}, ing: salt, want: decimal.Zero},
		{name: "zero quantity", line: core.RecipeLine{Quantity: decimal.Zero}, ing: oil, want: decimal.Zero},
		{name: "negative quantity", line: core.RecipeLine{Quantity: dec("-5")}, ing: oil, want: decimal.Zero},
		{name: "fully wasted line", line: core.RecipeLine{Quantity: dec("100"), WastePct: dec("100")}, ing: oil, want: decimal.Zero},
		{name: "over 100 percent waste", line: core.RecipeLine{Quantity: dec("100"), WastePct: dec("150")}, ing: oil, want: decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.LineCost(tt.line, tt.ing)
			if !got.Equal(tt.want) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestRecipeCost_IsSumOfLines(t *testing.T) {
	recipe := core.Recipe{
		Lines: []core.RecipeLine{
			{IngredientRef: "OLI", Quantity: dec("50")},
			{IngredientRef: "TOM", Quantity: dec("450"), WastePct: dec("10")},
			{IngredientRef: "Tomat pera", Quantity: dec("999")}, // typo, costs zero
		},
	}

	total := core.RecipeCost(recipe, testBook)
	want := dec("0.4").Add(dec("1.2"))
	if !total.Equal(want) {
		t.Errorf("expected %s, got %s", want, total)
	}

	sum := decimal.Zero
	for _, line := range recipe.Lines {
		sum = sum.Add(core.LineCost(line, core.ResolveIngredient(line.IngredientRef, testBook)))
	}
	if !total.Equal(sum) {
		t.Errorf("total %s does not equal sum of line costs %s", total, sum)
	}
}

func TestRecipeCost_OnlyUnresolvedLines(t *testing.T) {
	recipe := core.Recipe{
		Lines: []core.RecipeLine{{IngredientRef: "no such thing", Quantity: dec("100")}},
	}
	if total := core.RecipeCost(recipe, testBook); !total.IsZero() {
		t.Errorf("expected zero total, got %s", total)
	}
}

func TestFinancials(t *testing.T) {
	settings := core.Settings{DefaultCoefficient: dec("3"), Currency: "EUR"}

	t.Run("happy path", func(t *testing.T) {
		recipe := core.Recipe{Servings: 4, PVP: dec("12"), TaxRate: dec("10"), Coefficient: dec("3")}
		f := core.Financials(recipe, dec("10"), settings)

		if !f.CostPerServing.Equal(dec("2.5")) {
			t.Errorf("cost per serving: expected 2.5, got %s", f.CostPerServing)
		}
		wantExTax := dec("12").Div(dec("1.1"))
		if !f.PVPExTax.Equal(wantExTax) {
			t.Errorf("pvp ex tax: expected %s, got %s", wantExTax, f.PVPExTax)
		}
		if !f.NetBenefit.Equal(f.PVPExTax.Sub(f.CostPerServing)) {
			t.Errorf("net benefit identity broken: %s != %s - %s", f.NetBenefit, f.PVPExTax, f.CostPerServing)
		}
		wantFoodCost := f.CostPerServing.Div(f.PVPExTax).Mul(dec("100"))
		if !f.FoodCostPct.Equal(wantFoodCost) {
			t.Errorf("food cost: expected %s, got %s", wantFoodCost, f.FoodCostPct)
		}
		// 2.5 × 3 × 1.1 = 8.25
		if !f.RecommendedPVP.Equal(dec("8.25")) {
			t.Errorf("recommended pvp: expected 8.25, got %s", f.RecommendedPVP)
		}
	})

	t.Run("cost per serving reconstructs total", func(t *testing.T) {
		recipe := core.Recipe{Servings: 4, PVP: dec("12"), TaxRate: dec("10")}
		f := core.Financials(recipe, dec("10"), settings)
		if !f.CostPerServing.Mul(dec("4")).Equal(dec("10")) {
			t.Errorf("cost per serving × servings = %s, expected 10", f.CostPerServing.Mul(dec("4")))
		}
	})

	t.Run("zero servings means zero cost per serving", func(t *testing.T) {
		recipe := core.Recipe{Servings: 0, PVP: dec("12"), TaxRate: dec("10")}
		f := core.Financials(recipe, dec("10"), settings)
		if !f.CostPerServing.IsZero() {
			t.Errorf("expected zero cost per serving, got %s", f.CostPerServing)
		}
	})

	t.Run("zero total cost means zero cost per serving", func(t *testing.T) {
		recipe := core.Recipe{Servings: 4, PVP: dec("12"), TaxRate: dec("10")}
		f := core.Financials(recipe, decimal.Zero, settings)
		if !f.CostPerServing.IsZero() {
			t.Errorf("expected zero cost per serving, got %s", f.CostPerServing)
		}
		if !f.FoodCostPct.IsZero() {
			t.Errorf("expected zero food cost, got %s", f.FoodCostPct)
		}
	})

	t.Run("tax divisor of zero leaves pvp unchanged", func(t *testing.T) {
		recipe := core.Recipe{Servings: 2, PVP: dec("12"), TaxRate: dec("-100")}
		f := core.Financials(recipe, dec("4"), settings)
		if !f.PVPExTax.Equal(dec("12")) {
			t.Errorf("expected pvp passed through unchanged, got %s", f.PVPExTax)
		}
	})

	t.Run("zero pvp means zero food cost, negative benefit", func(t *testing.T) {
		recipe := core.Recipe{Servings: 2, PVP: decimal.Zero, TaxRate: dec("10")}
		f := core.Financials(recipe, dec("4"), settings)
		if !f.FoodCostPct.IsZero() {
			t.Errorf("expected zero food cost, got %s", f.FoodCostPct)
		}
		if f.NetBenefit.Sign() >= 0 {
			t.Errorf("expected negative net benefit, got %s", f.NetBenefit)
		}
	})

	t.Run("coefficient falls back to settings default", func(t *testing.T) {
		recipe := core.Recipe{Servings: 4, PVP: dec("12"), TaxRate: dec("10")}
		f := core.Financials(recipe, dec("10"), settings)
		// 2.5 × 3 (default) × 1.1 = 8.25
		if !f.RecommendedPVP.Equal(dec("8.25")) {
			t.Errorf("expected default coefficient applied, got %s", f.RecommendedPVP)
		}
	})
}

func TestCost_BreakdownMarksUnresolvedLines(t *testing.T) {
	recipe := core.Recipe{
		Servings: 2, PVP: dec("9"), TaxRate: dec("10"),
		Lines: []core.RecipeLine{
			{IngredientRef: "OLI", Quantity: dec("50")},
			{IngredientRef: "mystery", Quantity: dec("200")},
		},
	}
	costed := core.Cost(recipe, testBook, core.Settings{DefaultCoefficient: dec("3")})

	if len(costed.Breakdown) != 2 {
		t.Fatalf("expected 2 breakdown lines, got %d", len(costed.Breakdown))
	}
	if !costed.Breakdown[0].Resolved {
		t.Error("expected first line resolved")
	}
	if costed.Breakdown[1].Resolved {
		t.Error("expected second line unresolved")
	}
	if !costed.Breakdown[1].Cost.IsZero() {
		t.Errorf("unresolved line should cost zero, got %s", costed.Breakdown[1].Cost)
	}
	if !costed.Financials.TotalCost.Equal(dec("0.4")) {
		t.Errorf("expected total 0.4, got %s", costed.Financials.TotalCost)
	}
}
