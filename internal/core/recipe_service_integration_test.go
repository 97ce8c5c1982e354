package core_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"gastrodesk/internal/core"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Clean and seed test DB
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE recipe_lines, recipes, ingredients, settings CASCADE;

		INSERT INTO settings (name, currency, default_tax_rate, default_coefficient, default_target_hours)
		VALUES ('Test Kitchen', 'EUR', 10.00, 4.00, 160);

		INSERT INTO ingredients (code, name, unit, price, waste_pct) VALUES
		('OLI', 'Olive oil', 'l', 8.00, 0),
		('TOM', 'Tomatoes', 'kg', 2.40, 10);
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

func TestRecipeService_CreateAndCost(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	ingredients := core.NewIngredientService(pool)
	settings := core.NewSettingsService(pool)
	recipes := core.NewRecipeService(pool, ingredients, settings)

	created, err := recipes.Create(ctx, core.Recipe{
		Code:        "GAZP",
		Name:        "Gazpacho",
		Category:    "starters",
		Servings:    4,
		PVP:         dec("11.00"),
		TaxRate:     dec("10"),
		Coefficient: dec("4"),
		Lines: []core.RecipeLine{
			{IngredientRef: "OLI", Quantity: dec("50")},
			{IngredientRef: "TOM", Quantity: dec("900"), WastePct: dec("10")},
			{IngredientRef: "nonexistent", Quantity: dec("100")},
		},
	})
	if err != nil {
		t.Fatalf("failed to create recipe: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected a database-assigned recipe ID")
	}

	costed, err := recipes.GetCosted(ctx, "GAZP")
	if err != nil {
		t.Fatalf("failed to cost recipe: %v", err)
	}
	if len(costed.Breakdown) != 3 {
		t.Fatalf("expected 3 breakdown lines, got %d", len(costed.Breakdown))
	}
	if costed.Breakdown[2].Resolved {
		t.Error("expected typo'd line to be unresolved")
	}

	// 50ml oil @ 8/l = 0.40; 900g tomatoes @ 10% waste = 1kg gross @ 2.40.
	wantTotal := dec("2.80")
	if !costed.Financials.TotalCost.Equal(wantTotal) {
		t.Errorf("total cost = %s, want %s", costed.Financials.TotalCost, wantTotal)
	}
	if !costed.Financials.CostPerServing.Equal(dec("0.70")) {
		t.Errorf("cost per serving = %s, want 0.70", costed.Financials.CostPerServing)
	}

	// Full line replacement on update.
	created.Lines = created.Lines[:1]
	updated, err := recipes.Update(ctx, *created)
	if err != nil {
		t.Fatalf("failed to update recipe: %v", err)
	}
	reloaded, err := recipes.Get(ctx, updated.Code)
	if err != nil {
		t.Fatalf("failed to reload recipe: %v", err)
	}
	if len(reloaded.Lines) != 1 {
		t.Errorf("expected line set replaced, got %d lines", len(reloaded.Lines))
	}

	if err := recipes.Archive(ctx, "GAZP"); err != nil {
		t.Fatalf("failed to archive recipe: %v", err)
	}
	active, err := recipes.List(ctx, "")
	if err != nil {
		t.Fatalf("failed to list recipes: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected archived recipe excluded from list, got %d", len(active))
	}
}

func TestIngredientService_Validation(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	ingredients := core.NewIngredientService(pool)

	if _, err := ingredients.Create(ctx, core.Ingredient{Code: "X", Name: "Bad unit", Unit: "lbs"}); err == nil {
		t.Error("expected unknown unit to be rejected")
	}
	if _, err := ingredients.Create(ctx, core.Ingredient{
		Code: "X", Name: "Bad price", Unit: core.UnitKg, Price: dec("-1"),
	}); err == nil {
		t.Error("expected negative price to be rejected")
	}
	if _, err := ingredients.Get(ctx, "MISSING"); err == nil {
		t.Error("expected not-found error for unknown code")
	}
}
