package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecipeService manages recipes and their ingredient lines, and produces the
// costed views by loading the current price book and running the cost engine.
type RecipeService interface {
	// List returns all active recipes without their lines.
	List(ctx context.Context, category string) ([]Recipe, error)

	// Get returns one recipe with lines.
	Get(ctx context.Context, code string) (*Recipe, error)

	// Create inserts a recipe with its lines atomically.
	Create(ctx context.Context, r Recipe) (*Recipe, error)

	// Update replaces the recipe header and its full line set atomically.
	Update(ctx context.Context, r Recipe) (*Recipe, error)

	// Archive deactivates a recipe.
	Archive(ctx context.Context, code string) error

	// GetCosted returns the recipe with its per-line cost breakdown and
	// financials, computed against the current price book and settings.
	GetCosted(ctx context.Context, code string) (*CostedRecipe, error)
}

type recipeService struct {
	pool        *pgxpool.Pool
	ingredients IngredientService
	settings    SettingsService
}

// NewRecipeService constructs a RecipeService backed by the given pool.
func NewRecipeService(pool *pgxpool.Pool, ingredients IngredientService, settings SettingsService) RecipeService {
	return &recipeService{pool: pool, ingredients: ingredients, settings: settings}
}

const recipeColumns = `id, code, name, category, servings, pvp, tax_rate, coefficient, is_active, created_at`

func scanRecipe(row pgx.Row) (*Recipe, error) {
	r := &Recipe{}
	err := row.Scan(&r.ID, &r.Code, &r.Name, &r.Category, &r.Servings,
		&r.PVP, &r.TaxRate, &r.Coefficient, &r.IsActive, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (s *recipeService) List(ctx context.Context, category string) ([]Recipe, error) {
	q := `SELECT ` + recipeColumns + ` FROM recipes WHERE is_active = true`
	args := []any{}
	if category != "" {
		args = append(args, category)
		q += " AND category = $1"
	}
	q += " ORDER BY code"

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	var out []Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

func (s *recipeService) Get(ctx context.Context, code string) (*Recipe, error) {
	r, err := scanRecipe(s.pool.QueryRow(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("recipe %s not found", code)
		}
		return nil, fmt.Errorf("failed to fetch recipe %s: %w", code, err)
	}

	if err := s.loadLines(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *recipeService) loadLines(ctx context.Context, r *Recipe) error {
	rows, err := s.pool.Query(ctx, `
		SELECT id, recipe_id, ingredient_ref, quantity, waste_pct
		FROM recipe_lines WHERE recipe_id = $1 ORDER BY id`, r.ID)
	if err != nil {
		return fmt.Errorf("failed to query lines for recipe %s: %w", r.Code, err)
	}
	defer rows.Close()

	for rows.Next() {
		var l RecipeLine
		if err := rows.Scan(&l.ID, &l.RecipeID, &l.IngredientRef, &l.Quantity, &l.WastePct); err != nil {
			return fmt.Errorf("failed to scan recipe line: %w", err)
		}
		r.Lines = append(r.Lines, l)
	}
	return rows.Err()
}

func (s *recipeService) Create(ctx context.Context, r Recipe) (*Recipe, error) {
	if r.Code == "" || r.Name == "" {
		return nil, errors.New("recipe code and name are required")
	}
	if r.Servings < 0 {
		return nil, fmt.Errorf("servings cannot be negative, got %d", r.Servings)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	created, err := scanRecipe(tx.QueryRow(ctx, `
		INSERT INTO recipes (code, name, category, servings, pvp, tax_rate, coefficient)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+recipeColumns,
		r.Code, r.Name, r.Category, r.Servings, r.PVP, r.TaxRate, r.Coefficient))
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe %s: %w", r.Code, err)
	}

	if err := insertLines(ctx, tx, created.ID, r.Lines); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit recipe %s: %w", r.Code, err)
	}
	created.Lines = r.Lines
	return created, nil
}

func (s *recipeService) Update(ctx context.Context, r Recipe) (*Recipe, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	updated, err := scanRecipe(tx.QueryRow(ctx, `
		UPDATE recipes
		SET name = $2, category = $3, servings = $4, pvp = $5, tax_rate = $6, coefficient = $7
		WHERE code = $1
		RETURNING `+recipeColumns,
		r.Code, r.Name, r.Category, r.Servings, r.PVP, r.TaxRate, r.Coefficient))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("recipe %s not found", r.Code)
		}
		return nil, fmt.Errorf("failed to update recipe %s: %w", r.Code, err)
	}

	// Full line replacement keeps the edit semantics of the recipe form:
	// the submitted line set is the truth.
	if _, err := tx.Exec(ctx, "DELETE FROM recipe_lines WHERE recipe_id = $1", updated.ID); err != nil {
		return nil, fmt.Errorf("failed to clear lines for recipe %s: %w", r.Code, err)
	}
	if err := insertLines(ctx, tx, updated.ID, r.Lines); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit recipe %s: %w", r.Code, err)
	}
	updated.Lines = r.Lines
	return updated, nil
}

func insertLines(ctx context.Context, tx pgx.Tx, recipeID int, lines []RecipeLine) error {
	for _, l := range lines {
		if _, err := tx.Exec(ctx, `
			INSERT INTO recipe_lines (recipe_id, ingredient_ref, quantity, waste_pct)
			VALUES ($1, $2, $3, $4)`,
			recipeID, l.IngredientRef, l.Quantity, l.WastePct); err != nil {
			return fmt.Errorf("failed to insert recipe line %q: %w", l.IngredientRef, err)
		}
	}
	return nil
}

func (s *recipeService) Archive(ctx context.Context, code string) error {
	tag, err := s.pool.Exec(ctx, "UPDATE recipes SET is_active = false WHERE code = $1", code)
	if err != nil {
		return fmt.Errorf("failed to archive recipe %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recipe %s not found", code)
	}
	return nil
}

// GetCosted loads the recipe, the active price book, and the settings, then
// hands everything to the pure cost engine. The engine itself never touches
// the database — it costs a snapshot.
func (s *recipeService) GetCosted(ctx context.Context, code string) (*CostedRecipe, error) {
	recipe, err := s.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	book, err := s.ingredients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load price book: %w", err)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	costed := Cost(*recipe, book, *settings)
	return &costed, nil
}
