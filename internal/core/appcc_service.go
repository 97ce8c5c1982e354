package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AppccService records food-safety controls: equipment temperature readings
// and cleaning-plan completions, plus the daily checklist summary.
type AppccService interface {
	ListEquipment(ctx context.Context) ([]Equipment, error)
	CreateEquipment(ctx context.Context, e Equipment) (*Equipment, error)

	// RecordTemperature stores one reading. Conform is decided here, against
	// the equipment's configured range, never trusted from the caller.
	RecordTemperature(ctx context.Context, equipmentCode string, temperature float64, notes, recordedBy string) (*TemperatureLog, error)

	// TemperatureLogs returns readings for one day, newest first.
	TemperatureLogs(ctx context.Context, date string) ([]TemperatureLog, error)

	RecordCleaning(ctx context.Context, l CleaningLog) (*CleaningLog, error)
	CleaningLogs(ctx context.Context, date string) ([]CleaningLog, error)

	// DaySummary aggregates one day's activity for the checklist view.
	DaySummary(ctx context.Context, date string) (*AppccDaySummary, error)
}

type appccService struct {
	pool *pgxpool.Pool
}

// NewAppccService constructs an AppccService backed by the given pool.
func NewAppccService(pool *pgxpool.Pool) AppccService {
	return &appccService{pool: pool}
}

func (s *appccService) ListEquipment(ctx context.Context) ([]Equipment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, code, name, min_temp, max_temp, is_active
		FROM appcc_equipment WHERE is_active = true ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipment: %w", err)
	}
	defer rows.Close()

	var out []Equipment
	for rows.Next() {
		var e Equipment
		if err := rows.Scan(&e.ID, &e.Code, &e.Name, &e.MinTemp, &e.MaxTemp, &e.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *appccService) CreateEquipment(ctx context.Context, e Equipment) (*Equipment, error) {
	if e.Code == "" || e.Name == "" {
		return nil, errors.New("equipment code and name are required")
	}
	if e.MinTemp > e.MaxTemp {
		return nil, fmt.Errorf("min temp %.1f above max temp %.1f", e.MinTemp, e.MaxTemp)
	}

	created := &Equipment{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO appcc_equipment (code, name, min_temp, max_temp)
		VALUES ($1, $2, $3, $4)
		RETURNING id, code, name, min_temp, max_temp, is_active`,
		e.Code, e.Name, e.MinTemp, e.MaxTemp,
	).Scan(&created.ID, &created.Code, &created.Name, &created.MinTemp, &created.MaxTemp, &created.IsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to create equipment %s: %w", e.Code, err)
	}
	return created, nil
}

func (s *appccService) getEquipment(ctx context.Context, code string) (*Equipment, error) {
	e := &Equipment{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, code, name, min_temp, max_temp, is_active
		FROM appcc_equipment WHERE code = $1 AND is_active = true`, code,
	).Scan(&e.ID, &e.Code, &e.Name, &e.MinTemp, &e.MaxTemp, &e.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("equipment %s not found", code)
		}
		return nil, fmt.Errorf("failed to fetch equipment %s: %w", code, err)
	}
	return e, nil
}

func (s *appccService) RecordTemperature(ctx context.Context, equipmentCode string, temperature float64, notes, recordedBy string) (*TemperatureLog, error) {
	eq, err := s.getEquipment(ctx, equipmentCode)
	if err != nil {
		return nil, err
	}

	log := &TemperatureLog{
		EquipmentCode: eq.Code,
		EquipmentName: eq.Name,
		Temperature:   temperature,
		Conform:       eq.WithinRange(temperature),
		Notes:         notes,
		RecordedBy:    recordedBy,
	}
	err = s.pool.QueryRow(ctx, `
		INSERT INTO temperature_logs (equipment_id, temperature, conform, notes, recorded_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, recorded_at`,
		eq.ID, temperature, log.Conform, notes, recordedBy,
	).Scan(&log.ID, &log.RecordedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record temperature for %s: %w", equipmentCode, err)
	}
	return log, nil
}

func (s *appccService) TemperatureLogs(ctx context.Context, date string) ([]TemperatureLog, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT t.id, e.code, e.name, t.temperature, t.conform, t.notes, t.recorded_by, t.recorded_at
		FROM temperature_logs t
		JOIN appcc_equipment e ON e.id = t.equipment_id
		WHERE t.recorded_at::date = $1
		ORDER BY t.recorded_at DESC`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query temperature logs: %w", err)
	}
	defer rows.Close()

	var out []TemperatureLog
	for rows.Next() {
		var l TemperatureLog
		if err := rows.Scan(&l.ID, &l.EquipmentCode, &l.EquipmentName,
			&l.Temperature, &l.Conform, &l.Notes, &l.RecordedBy, &l.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan temperature log: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *appccService) RecordCleaning(ctx context.Context, l CleaningLog) (*CleaningLog, error) {
	if l.Area == "" || l.Task == "" {
		return nil, errors.New("cleaning area and task are required")
	}

	created := l
	err := s.pool.QueryRow(ctx, `
		INSERT INTO cleaning_logs (area, task, product, completed_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, completed_at`,
		l.Area, l.Task, l.Product, l.CompletedBy,
	).Scan(&created.ID, &created.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record cleaning entry: %w", err)
	}
	return &created, nil
}

func (s *appccService) CleaningLogs(ctx context.Context, date string) ([]CleaningLog, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, area, task, product, completed_by, completed_at
		FROM cleaning_logs
		WHERE completed_at::date = $1
		ORDER BY completed_at DESC`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query cleaning logs: %w", err)
	}
	defer rows.Close()

	var out []CleaningLog
	for rows.Next() {
		var l CleaningLog
		if err := rows.Scan(&l.ID, &l.Area, &l.Task, &l.Product, &l.CompletedBy, &l.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cleaning log: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *appccService) DaySummary(ctx context.Context, date string) (*AppccDaySummary, error) {
	temps, err := s.TemperatureLogs(ctx, date)
	if err != nil {
		return nil, err
	}
	cleanings, err := s.CleaningLogs(ctx, date)
	if err != nil {
		return nil, err
	}

	summary := &AppccDaySummary{
		Date:            date,
		Readings:        len(temps),
		CleaningEntries: len(cleanings),
	}
	for _, l := range temps {
		if !l.Conform {
			summary.NonConform = append(summary.NonConform, l)
		}
	}
	return summary, nil
}
