package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SettingsService reads and writes the restaurant configuration singleton.
type SettingsService interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, s Settings) (*Settings, error)
}

type settingsService struct {
	pool *pgxpool.Pool
}

// NewSettingsService constructs a SettingsService backed by the given pool.
func NewSettingsService(pool *pgxpool.Pool) SettingsService {
	return &settingsService{pool: pool}
}

const settingsColumns = `id, name, currency, default_tax_rate, default_coefficient, default_target_hours`

func (s *settingsService) Get(ctx context.Context) (*Settings, error) {
	out := &Settings{}
	err := s.pool.QueryRow(ctx,
		`SELECT `+settingsColumns+` FROM settings ORDER BY id LIMIT 1`,
	).Scan(&out.ID, &out.Name, &out.Currency, &out.DefaultTaxRate,
		&out.DefaultCoefficient, &out.DefaultTargetHours)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("settings row missing — have migrations run?")
		}
		return nil, fmt.Errorf("failed to fetch settings: %w", err)
	}
	return out, nil
}

func (s *settingsService) Update(ctx context.Context, in Settings) (*Settings, error) {
	out := &Settings{}
	err := s.pool.QueryRow(ctx, `
		UPDATE settings
		SET name = $1, currency = $2, default_tax_rate = $3,
		    default_coefficient = $4, default_target_hours = $5
		WHERE id = (SELECT id FROM settings ORDER BY id LIMIT 1)
		RETURNING `+settingsColumns,
		in.Name, in.Currency, in.DefaultTaxRate, in.DefaultCoefficient, in.DefaultTargetHours,
	).Scan(&out.ID, &out.Name, &out.Currency, &out.DefaultTaxRate,
		&out.DefaultCoefficient, &out.DefaultTargetHours)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return out, nil
}
