package core_test

import (
	"math"
	"testing"
	"time"

	"gastrodesk/internal/core"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParseShiftSpan(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want float64
	}{
		{name: "split shift", desc: "09:00/13:00-16:00/22:00", want: 10.0},
		{name: "simple shift", desc: "09:00/17:30", want: 8.5},
		{name: "single-digit hour", desc: "9:00/17:00", want: 8.0},
		{name: "crosses midnight", desc: "23:00/02:00", want: 3.0},
		{name: "malformed segment skipped", desc: "junk-10:00/12:00", want: 2.0},
		{name: "hour out of range", desc: "25:00/26:00", want: 0.0},
		{name: "minute out of range", desc: "10:70/11:00", want: 0.0},
		{name: "missing end", desc: "10:00", want: 0.0},
		{name: "empty", desc: "", want: 0.0},
		{name: "partial garbage keeps valid segment", desc: "08:00/12:00-nope/13:00", want: 4.0},
		{name: "quarter hours round to two decimals", desc: "09:10/09:30", want: 0.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := core.ParseShiftSpan(tt.desc); !almostEqual(got, tt.want) {
				t.Errorf("expected %.2f, got %.2f", tt.want, got)
			}
		})
	}
}

func TestShiftType_EffectiveHours(t *testing.T) {
	explicit := core.ShiftType{Code: "M", Hours: 8, Span: "09:00/13:00"}
	if got := explicit.EffectiveHours(); !almostEqual(got, 8) {
		t.Errorf("explicit hours should win, got %.2f", got)
	}
	derived := core.ShiftType{Code: "T", Span: "16:00/22:00"}
	if got := derived.EffectiveHours(); !almostEqual(got, 6) {
		t.Errorf("expected 6 from span, got %.2f", got)
	}
}

var testShifts = map[string]core.ShiftType{
	"M":   {Code: "M", Name: "Mañana", Hours: 8},
	"T":   {Code: "T", Name: "Tarde", Hours: 6},
	"OFF": {Code: "OFF", Name: "Libre", Hours: 0},
}

func TestWorkedHours(t *testing.T) {
	a := core.Assignment{
		"2026-03-02": "M",
		"2026-03-03": "T",
		"2026-03-04": "OFF",
		"2026-03-05": "XX",  // unknown shift code, counts zero
		"2026-02-28": "M",   // outside range
		"not-a-date": "M",   // tolerated, skipped
		"2026-03-06": "",    // unassigned
	}

	got := core.WorkedHours(a, testShifts, day(t, "2026-03-01"), day(t, "2026-03-07"))
	if !almostEqual(got, 14) {
		t.Errorf("expected 14 worked hours, got %.2f", got)
	}
}

func TestCumulativeBalance(t *testing.T) {
	emp := core.Employee{Code: "E001", TargetHours: 160}

	t.Run("thirty day span behind target", func(t *testing.T) {
		// 150h worked over a 30-day inclusive span against a 160h/month target:
		// daily target 160/30.44 ≈ 5.256, span target ≈ 157.687, balance ≈ -7.69.
		a := core.Assignment{}
		start := day(t, "2026-03-01")
		for i := 0; i < 25; i++ {
			a[start.AddDate(0, 0, i).Format("2006-01-02")] = "T"
		}
		// 25 × 6h = 150h
		got := core.CumulativeBalance(emp, a, testShifts, start, day(t, "2026-03-30"))
		want := 150 - 30*(160/30.44)
		if !almostEqual(got, want) {
			t.Errorf("expected %.4f, got %.4f", want, got)
		}
		if got > -7.68 || got < -7.70 {
			t.Errorf("expected balance near -7.69, got %.4f", got)
		}
	})

	t.Run("inverted range returns raw worked hours", func(t *testing.T) {
		a := core.Assignment{"2026-03-02": "M"}
		got := core.CumulativeBalance(emp, a, testShifts, day(t, "2026-03-10"), day(t, "2026-03-01"))
		if !almostEqual(got, 0) {
			t.Errorf("expected 0 (nothing inside inverted range), got %.2f", got)
		}
	})

	t.Run("single day span", func(t *testing.T) {
		d := day(t, "2026-03-02")
		a := core.Assignment{"2026-03-02": "M"}
		got := core.CumulativeBalance(emp, a, testShifts, d, d)
		want := 8 - 160/30.44
		if !almostEqual(got, want) {
			t.Errorf("expected %.4f, got %.4f", want, got)
		}
	})
}

func TestPeriodBalance(t *testing.T) {
	tests := []struct {
		name   string
		worked float64
		target float64
		period core.BalancePeriod
		want   float64
	}{
		{name: "month ahead", worked: 170, target: 160, period: core.PeriodMonth, want: 10},
		{name: "month behind", worked: 150, target: 160, period: core.PeriodMonth, want: -10},
		{name: "week uses quarter target", worked: 45, target: 160, period: core.PeriodWeek, want: 5},
		{name: "week behind", worked: 30, target: 160, period: core.PeriodWeek, want: -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := core.PeriodBalance(tt.worked, tt.target, tt.period); !almostEqual(got, tt.want) {
				t.Errorf("expected %.2f, got %.2f", tt.want, got)
			}
		})
	}
}
