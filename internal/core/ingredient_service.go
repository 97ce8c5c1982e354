package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IngredientService manages the restaurant's ingredient price book.
type IngredientService interface {
	// List returns all active ingredients ordered by code.
	List(ctx context.Context) ([]Ingredient, error)

	// Get returns one ingredient by code.
	Get(ctx context.Context, code string) (*Ingredient, error)

	// Create inserts a new price-book entry.
	Create(ctx context.Context, ing Ingredient) (*Ingredient, error)

	// Update overwrites price, waste, name, category and allergens for a code.
	Update(ctx context.Context, ing Ingredient) (*Ingredient, error)

	// Archive deactivates an ingredient. Recipes referencing it keep their
	// lines; those lines simply stop resolving and cost zero.
	Archive(ctx context.Context, code string) error
}

type ingredientService struct {
	pool *pgxpool.Pool
}

// NewIngredientService constructs an IngredientService backed by the given pool.
func NewIngredientService(pool *pgxpool.Pool) IngredientService {
	return &ingredientService{pool: pool}
}

const ingredientColumns = `id, code, name, unit, price, waste_pct, category, allergens, is_active, created_at`

func scanIngredient(row pgx.Row) (*Ingredient, error) {
	ing := &Ingredient{}
	err := row.Scan(&ing.ID, &ing.Code, &ing.Name, &ing.Unit, &ing.Price,
		&ing.WastePct, &ing.Category, &ing.Allergens, &ing.IsActive, &ing.CreatedAt)
	if err != nil {
		return nil, err
	}
	return ing, nil
}

func (s *ingredientService) List(ctx context.Context) ([]Ingredient, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE is_active = true ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer rows.Close()

	var out []Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		out = append(out, *ing)
	}
	return out, rows.Err()
}

func (s *ingredientService) Get(ctx context.Context, code string) (*Ingredient, error) {
	ing, err := scanIngredient(s.pool.QueryRow(ctx,
		`SELECT `+ingredientColumns+` FROM ingredients WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ingredient %s not found", code)
		}
		return nil, fmt.Errorf("failed to fetch ingredient %s: %w", code, err)
	}
	return ing, nil
}

func (s *ingredientService) Create(ctx context.Context, ing Ingredient) (*Ingredient, error) {
	if ing.Code == "" || ing.Name == "" {
		return nil, errors.New("ingredient code and name are required")
	}
	switch ing.Unit {
	case UnitKg, UnitL, UnitPiece:
	default:
		return nil, fmt.Errorf("unknown unit %q (want kg, l or pz)", ing.Unit)
	}
	if ing.Price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative, got %s", ing.Price)
	}

	created, err := scanIngredient(s.pool.QueryRow(ctx, `
		INSERT INTO ingredients (code, name, unit, price, waste_pct, category, allergens)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+ingredientColumns,
		ing.Code, ing.Name, ing.Unit, ing.Price, ing.WastePct, ing.Category, ing.Allergens))
	if err != nil {
		return nil, fmt.Errorf("failed to create ingredient %s: %w", ing.Code, err)
	}
	return created, nil
}

func (s *ingredientService) Update(ctx context.Context, ing Ingredient) (*Ingredient, error) {
	updated, err := scanIngredient(s.pool.QueryRow(ctx, `
		UPDATE ingredients
		SET name = $2, unit = $3, price = $4, waste_pct = $5, category = $6, allergens = $7
		WHERE code = $1
		RETURNING `+ingredientColumns,
		ing.Code, ing.Name, ing.Unit, ing.Price, ing.WastePct, ing.Category, ing.Allergens))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ingredient %s not found", ing.Code)
		}
		return nil, fmt.Errorf("failed to update ingredient %s: %w", ing.Code, err)
	}
	return updated, nil
}

func (s *ingredientService) Archive(ctx context.Context, code string) error {
	tag, err := s.pool.Exec(ctx,
		"UPDATE ingredients SET is_active = false WHERE code = $1", code)
	if err != nil {
		return fmt.Errorf("failed to archive ingredient %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("ingredient %s not found", code)
	}
	return nil
}
