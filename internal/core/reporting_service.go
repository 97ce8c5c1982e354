package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ── Report types ──────────────────────────────────────────────────────────────

// SalesRecord is one day's revenue entry, usually keyed in from the POS
// close-out. Covers is the number of diners served.
type SalesRecord struct {
	ID     int             `json:"id"`
	Day    string          `json:"day"`
	Gross  decimal.Decimal `json:"gross"`
	Covers int             `json:"covers"`
	Notes  string          `json:"notes,omitempty"`
}

// PurchaseRecord is one supplier invoice total attributed to a day.
type PurchaseRecord struct {
	ID       int             `json:"id"`
	Day      string          `json:"day"`
	Supplier string          `json:"supplier"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category,omitempty"`
	Notes    string          `json:"notes,omitempty"`
}

// MonthlySummary sets a month's purchases against its sales. FoodCostPct is
// purchases over sales as a percentage; AvgTicket is gross over covers. Both
// are zero when the denominator is zero.
type MonthlySummary struct {
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	TotalCovers int             `json:"total_covers"`
	Purchases   decimal.Decimal `json:"purchases"`
	FoodCostPct decimal.Decimal `json:"food_cost_pct"`
	AvgTicket   decimal.Decimal `json:"avg_ticket"`
	Margin      decimal.Decimal `json:"margin"`
}

// ── Interface ─────────────────────────────────────────────────────────────────

// ReportingService records daily sales and purchase totals and produces the
// monthly food-cost summary from them.
type ReportingService interface {
	RecordSales(ctx context.Context, r SalesRecord) (*SalesRecord, error)
	RecordPurchase(ctx context.Context, r PurchaseRecord) (*PurchaseRecord, error)

	// SalesRange returns sales entries within [from, to], oldest first.
	SalesRange(ctx context.Context, from, to string) ([]SalesRecord, error)

	// PurchaseRange returns purchase entries within [from, to], oldest first.
	PurchaseRange(ctx context.Context, from, to string) ([]PurchaseRecord, error)

	// Monthly aggregates one calendar month into the food-cost summary.
	Monthly(ctx context.Context, year, month int) (*MonthlySummary, error)
}

// ── Implementation ────────────────────────────────────────────────────────────

type reportingService struct {
	pool *pgxpool.Pool
}

// NewReportingService constructs a ReportingService backed by the given pool.
func NewReportingService(pool *pgxpool.Pool) ReportingService {
	return &reportingService{pool: pool}
}

func (s *reportingService) RecordSales(ctx context.Context, r SalesRecord) (*SalesRecord, error) {
	if _, err := time.Parse(dateLayout, r.Day); err != nil {
		return nil, fmt.Errorf("invalid day %q: %w", r.Day, err)
	}
	if r.Gross.IsNegative() {
		return nil, fmt.Errorf("gross cannot be negative, got %s", r.Gross)
	}

	created := r
	// One row per day: re-submitting a close-out corrects the earlier figure.
	err := s.pool.QueryRow(ctx, `
		INSERT INTO sales_records (day, gross, covers, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (day) DO UPDATE
		SET gross = EXCLUDED.gross, covers = EXCLUDED.covers, notes = EXCLUDED.notes
		RETURNING id`,
		r.Day, r.Gross, r.Covers, r.Notes,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to record sales for %s: %w", r.Day, err)
	}
	return &created, nil
}

func (s *reportingService) RecordPurchase(ctx context.Context, r PurchaseRecord) (*PurchaseRecord, error) {
	if _, err := time.Parse(dateLayout, r.Day); err != nil {
		return nil, fmt.Errorf("invalid day %q: %w", r.Day, err)
	}
	if r.Supplier == "" {
		return nil, errors.New("supplier is required")
	}
	if r.Amount.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative, got %s", r.Amount)
	}

	created := r
	err := s.pool.QueryRow(ctx, `
		INSERT INTO purchase_records (day, supplier, amount, category, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		r.Day, r.Supplier, r.Amount, r.Category, r.Notes,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to record purchase for %s: %w", r.Day, err)
	}
	return &created, nil
}

func (s *reportingService) SalesRange(ctx context.Context, from, to string) ([]SalesRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, day::text, gross, covers, notes
		FROM sales_records
		WHERE day BETWEEN $1 AND $2
		ORDER BY day`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var out []SalesRecord
	for rows.Next() {
		var r SalesRecord
		if err := rows.Scan(&r.ID, &r.Day, &r.Gross, &r.Covers, &r.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan sales record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *reportingService) PurchaseRange(ctx context.Context, from, to string) ([]PurchaseRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, day::text, supplier, amount, category, notes
		FROM purchase_records
		WHERE day BETWEEN $1 AND $2
		ORDER BY day`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	var out []PurchaseRecord
	for rows.Next() {
		var r PurchaseRecord
		if err := rows.Scan(&r.ID, &r.Day, &r.Supplier, &r.Amount, &r.Category, &r.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan purchase record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *reportingService) Monthly(ctx context.Context, year, month int) (*MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("invalid month %d", month)
	}

	summary := &MonthlySummary{Year: year, Month: month}

	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(gross), 0), COALESCE(SUM(covers), 0)
		FROM sales_records
		WHERE EXTRACT(YEAR FROM day)::int = $1 AND EXTRACT(MONTH FROM day)::int = $2`,
		year, month,
	).Scan(&summary.TotalSales, &summary.TotalCovers)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM purchase_records
		WHERE EXTRACT(YEAR FROM day)::int = $1 AND EXTRACT(MONTH FROM day)::int = $2`,
		year, month,
	).Scan(&summary.Purchases)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate purchases: %w", err)
	}

	summary.Margin = summary.TotalSales.Sub(summary.Purchases)
	if summary.TotalSales.Sign() > 0 {
		summary.FoodCostPct = summary.Purchases.Div(summary.TotalSales).Mul(hundred)
	}
	if summary.TotalCovers > 0 {
		summary.AvgTicket = summary.TotalSales.Div(decimal.NewFromInt(int64(summary.TotalCovers)))
	}
	return summary, nil
}
