package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ScheduleService manages employees, shift definitions and the schedule grid,
// and produces worked-hours balance reports via the pure balance engine.
type ScheduleService interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	GetEmployee(ctx context.Context, code string) (*Employee, error)
	CreateEmployee(ctx context.Context, e Employee) (*Employee, error)
	UpdateEmployee(ctx context.Context, e Employee) (*Employee, error)
	ArchiveEmployee(ctx context.Context, code string) error

	ListShiftTypes(ctx context.Context) ([]ShiftType, error)
	CreateShiftType(ctx context.Context, st ShiftType) (*ShiftType, error)

	// GetWeek returns the schedule grid for the 7 days starting at weekStart:
	// employee code → date → shift code.
	GetWeek(ctx context.Context, weekStart string) (map[string]Assignment, error)

	// SetAssignment upserts one schedule cell. An empty shift code clears it.
	SetAssignment(ctx context.Context, employeeCode, date, shiftCode string) error

	// Balance computes the cumulative worked-vs-target balance for one
	// employee over [from, to].
	Balance(ctx context.Context, employeeCode, from, to string) (*BalanceReport, error)

	// PeriodBalances computes the flat-target balance for every active
	// employee over [from, to], using the week or month target variant.
	PeriodBalances(ctx context.Context, from, to string, period BalancePeriod) ([]BalanceReport, error)

	// ApplyProposal persists a validated AI roster atomically. Every cell
	// must reference a known employee and shift code or nothing is written.
	ApplyProposal(ctx context.Context, p RosterProposal) error
}

type scheduleService struct {
	pool *pgxpool.Pool
}

// NewScheduleService constructs a ScheduleService backed by the given pool.
func NewScheduleService(pool *pgxpool.Pool) ScheduleService {
	return &scheduleService{pool: pool}
}

// ── Employees ─────────────────────────────────────────────────────────────────

const employeeColumns = `id, code, name, role, target_hours, is_active, created_at`

func scanEmployee(row pgx.Row) (*Employee, error) {
	e := &Employee{}
	err := row.Scan(&e.ID, &e.Code, &e.Name, &e.Role, &e.TargetHours, &e.IsActive, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *scheduleService) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE is_active = true ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (s *scheduleService) GetEmployee(ctx context.Context, code string) (*Employee, error) {
	e, err := scanEmployee(s.pool.QueryRow(ctx,
		`SELECT `+employeeColumns+` FROM employees WHERE code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("employee %s not found", code)
		}
		return nil, fmt.Errorf("failed to fetch employee %s: %w", code, err)
	}
	return e, nil
}

func (s *scheduleService) CreateEmployee(ctx context.Context, e Employee) (*Employee, error) {
	if e.Code == "" || e.Name == "" {
		return nil, errors.New("employee code and name are required")
	}
	if e.TargetHours < 0 {
		return nil, fmt.Errorf("target hours cannot be negative, got %.2f", e.TargetHours)
	}

	created, err := scanEmployee(s.pool.QueryRow(ctx, `
		INSERT INTO employees (code, name, role, target_hours)
		VALUES ($1, $2, $3, $4)
		RETURNING `+employeeColumns,
		e.Code, e.Name, e.Role, e.TargetHours))
	if err != nil {
		return nil, fmt.Errorf("failed to create employee %s: %w", e.Code, err)
	}
	return created, nil
}

func (s *scheduleService) UpdateEmployee(ctx context.Context, e Employee) (*Employee, error) {
	updated, err := scanEmployee(s.pool.QueryRow(ctx, `
		UPDATE employees SET name = $2, role = $3, target_hours = $4
		WHERE code = $1
		RETURNING `+employeeColumns,
		e.Code, e.Name, e.Role, e.TargetHours))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("employee %s not found", e.Code)
		}
		return nil, fmt.Errorf("failed to update employee %s: %w", e.Code, err)
	}
	return updated, nil
}

func (s *scheduleService) ArchiveEmployee(ctx context.Context, code string) error {
	tag, err := s.pool.Exec(ctx, "UPDATE employees SET is_active = false WHERE code = $1", code)
	if err != nil {
		return fmt.Errorf("failed to archive employee %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %s not found", code)
	}
	return nil
}

// ── Shift types ───────────────────────────────────────────────────────────────

func (s *scheduleService) ListShiftTypes(ctx context.Context) ([]ShiftType, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, code, name, span, hours, is_active
		FROM shift_types WHERE is_active = true ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift types: %w", err)
	}
	defer rows.Close()

	var out []ShiftType
	for rows.Next() {
		var st ShiftType
		if err := rows.Scan(&st.ID, &st.Code, &st.Name, &st.Span, &st.Hours, &st.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan shift type: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *scheduleService) CreateShiftType(ctx context.Context, st ShiftType) (*ShiftType, error) {
	if st.Code == "" {
		return nil, errors.New("shift code is required")
	}
	// Hours left at zero are derived from the span description once, at
	// creation, so the stored row is always directly usable by the engine.
	if st.Hours == 0 && st.Span != "" {
		st.Hours = ParseShiftSpan(st.Span)
	}

	created := &ShiftType{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO shift_types (code, name, span, hours)
		VALUES ($1, $2, $3, $4)
		RETURNING id, code, name, span, hours, is_active`,
		st.Code, st.Name, st.Span, st.Hours,
	).Scan(&created.ID, &created.Code, &created.Name, &created.Span, &created.Hours, &created.IsActive)
	if err != nil {
		return nil, fmt.Errorf("failed to create shift type %s: %w", st.Code, err)
	}
	return created, nil
}

func (s *scheduleService) shiftMap(ctx context.Context) (map[string]ShiftType, error) {
	shifts, err := s.ListShiftTypes(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]ShiftType, len(shifts))
	for _, st := range shifts {
		m[st.Code] = st
	}
	return m, nil
}

// ── Schedule grid ─────────────────────────────────────────────────────────────

func (s *scheduleService) GetWeek(ctx context.Context, weekStart string) (map[string]Assignment, error) {
	start, err := time.Parse(dateLayout, weekStart)
	if err != nil {
		return nil, fmt.Errorf("invalid week start %q: %w", weekStart, err)
	}
	end := start.AddDate(0, 0, 6)

	rows, err := s.pool.Query(ctx, `
		SELECT e.code, a.day::text, a.shift_code
		FROM schedule_assignments a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.day BETWEEN $1 AND $2
		ORDER BY e.code, a.day`,
		start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule week: %w", err)
	}
	defer rows.Close()

	grid := make(map[string]Assignment)
	for rows.Next() {
		var empCode, day, shiftCode string
		if err := rows.Scan(&empCode, &day, &shiftCode); err != nil {
			return nil, fmt.Errorf("failed to scan schedule cell: %w", err)
		}
		if grid[empCode] == nil {
			grid[empCode] = Assignment{}
		}
		grid[empCode][day] = shiftCode
	}
	return grid, rows.Err()
}

func (s *scheduleService) SetAssignment(ctx context.Context, employeeCode, date, shiftCode string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}
	emp, err := s.GetEmployee(ctx, employeeCode)
	if err != nil {
		return err
	}

	if shiftCode == "" {
		_, err := s.pool.Exec(ctx,
			"DELETE FROM schedule_assignments WHERE employee_id = $1 AND day = $2", emp.ID, date)
		if err != nil {
			return fmt.Errorf("failed to clear assignment: %w", err)
		}
		return nil
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO schedule_assignments (employee_id, day, shift_code)
		VALUES ($1, $2, $3)
		ON CONFLICT (employee_id, day) DO UPDATE SET shift_code = EXCLUDED.shift_code`,
		emp.ID, date, shiftCode)
	if err != nil {
		return fmt.Errorf("failed to set assignment for %s on %s: %w", employeeCode, date, err)
	}
	return nil
}

// assignmentRange loads one employee's schedule cells within [from, to] as an
// Assignment map for the pure engine.
func (s *scheduleService) assignmentRange(ctx context.Context, employeeID int, from, to string) (Assignment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT day::text, shift_code
		FROM schedule_assignments
		WHERE employee_id = $1 AND day BETWEEN $2 AND $3`,
		employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	a := Assignment{}
	for rows.Next() {
		var day, code string
		if err := rows.Scan(&day, &code); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		a[day] = code
	}
	return a, rows.Err()
}

// ── Balance reports ───────────────────────────────────────────────────────────

func (s *scheduleService) Balance(ctx context.Context, employeeCode, from, to string) (*BalanceReport, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, fmt.Errorf("invalid from date %q: %w", from, err)
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, fmt.Errorf("invalid to date %q: %w", to, err)
	}

	emp, err := s.GetEmployee(ctx, employeeCode)
	if err != nil {
		return nil, err
	}
	shifts, err := s.shiftMap(ctx)
	if err != nil {
		return nil, err
	}
	assignment, err := s.assignmentRange(ctx, emp.ID, from, to)
	if err != nil {
		return nil, err
	}

	worked := WorkedHours(assignment, shifts, start, end)
	return &BalanceReport{
		EmployeeCode: emp.Code,
		EmployeeName: emp.Name,
		From:         from,
		To:           to,
		WorkedHours:  worked,
		TargetHours:  emp.TargetHours,
		Balance:      CumulativeBalance(*emp, assignment, shifts, start, end),
	}, nil
}

func (s *scheduleService) PeriodBalances(ctx context.Context, from, to string, period BalancePeriod) ([]BalanceReport, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, fmt.Errorf("invalid from date %q: %w", from, err)
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, fmt.Errorf("invalid to date %q: %w", to, err)
	}

	employees, err := s.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	shifts, err := s.shiftMap(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]BalanceReport, 0, len(employees))
	for _, emp := range employees {
		assignment, err := s.assignmentRange(ctx, emp.ID, from, to)
		if err != nil {
			return nil, err
		}
		worked := WorkedHours(assignment, shifts, start, end)
		reports = append(reports, BalanceReport{
			EmployeeCode: emp.Code,
			EmployeeName: emp.Name,
			From:         from,
			To:           to,
			WorkedHours:  worked,
			TargetHours:  emp.TargetHours,
			Balance:      PeriodBalance(worked, emp.TargetHours, period),
		})
	}
	return reports, nil
}

// ── AI roster application ─────────────────────────────────────────────────────

// ApplyProposal writes every cell of a validated roster proposal in one
// transaction. It re-runs Validate so a caller cannot persist an unchecked
// proposal, and rejects unknown employee or shift codes outright.
func (s *scheduleService) ApplyProposal(ctx context.Context, p RosterProposal) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("refusing to apply invalid proposal: %w", err)
	}

	shifts, err := s.shiftMap(ctx)
	if err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, cell := range p.Cells {
		if _, ok := shifts[cell.ShiftCode]; !ok {
			return fmt.Errorf("proposal references unknown shift code %s", cell.ShiftCode)
		}

		var employeeID int
		err := tx.QueryRow(ctx,
			"SELECT id FROM employees WHERE code = $1 AND is_active = true", cell.EmployeeCode,
		).Scan(&employeeID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("proposal references unknown employee %s", cell.EmployeeCode)
			}
			return fmt.Errorf("failed to resolve employee %s: %w", cell.EmployeeCode, err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO schedule_assignments (employee_id, day, shift_code)
			VALUES ($1, $2, $3)
			ON CONFLICT (employee_id, day) DO UPDATE SET shift_code = EXCLUDED.shift_code`,
			employeeID, cell.Date, cell.ShiftCode); err != nil {
			return fmt.Errorf("failed to write cell %s/%s: %w", cell.EmployeeCode, cell.Date, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit roster: %w", err)
	}
	return nil
}
