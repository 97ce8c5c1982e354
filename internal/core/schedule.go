package core

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// avgDaysPerMonth pro-rates a monthly hour target to a daily one. This is a
// deliberate business approximation (365.25/12), not calendar-exact math —
// the figures it produces are what staff expect to see on the balance screen.
const avgDaysPerMonth = 30.44

const dateLayout = "2006-01-02"

var clockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseShiftSpan computes the duration in hours of a free-text shift
// description of the form "HH:MM/HH:MM", with split shifts joined by "-"
// ("09:00/13:00-16:00/22:00"). An end before its start crosses midnight.
// Malformed segments are skipped silently — the total is whatever the valid
// segments sum to — and the result is rounded to two decimals.
func ParseShiftSpan(desc string) float64 {
	totalMinutes := 0
	for _, segment := range strings.Split(desc, "-") {
		parts := strings.Split(segment, "/")
		if len(parts) != 2 {
			continue
		}
		start, okStart := parseClock(parts[0])
		end, okEnd := parseClock(parts[1])
		if !okStart || !okEnd {
			continue
		}
		minutes := end - start
		if minutes < 0 {
			minutes += 24 * 60
		}
		totalMinutes += minutes
	}
	return math.Round(float64(totalMinutes)/60*100) / 100
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, bool) {
	m := clockRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// EffectiveHours returns the shift duration, preferring the explicit hour
// count and falling back to the parsed span description.
func (s ShiftType) EffectiveHours() float64 {
	if s.Hours != 0 {
		return s.Hours
	}
	return ParseShiftSpan(s.Span)
}

// WorkedHours sums shift hours for every assigned day within [start, end]
// inclusive. Unknown shift codes and unparseable dates contribute zero — the
// schedule grid tolerates partial data the same way the cost engine tolerates
// unresolved ingredients.
func WorkedHours(a Assignment, shifts map[string]ShiftType, start, end time.Time) float64 {
	worked := 0.0
	for dateStr, code := range a {
		if code == "" {
			continue
		}
		day, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			continue
		}
		if day.Before(start) || day.After(end) {
			continue
		}
		if shift, ok := shifts[code]; ok {
			worked += shift.EffectiveHours()
		}
	}
	return worked
}

// CumulativeBalance returns signed hours worked ahead of (positive) or behind
// (negative) the pro-rated target over [start, end] inclusive.
//
// The target for the span is dayCount × targetHours/30.44, where dayCount
// counts both endpoints. When end precedes start there is no meaningful span
// to pro-rate over, so the raw worked-hours total is returned unmodified.
func CumulativeBalance(emp Employee, a Assignment, shifts map[string]ShiftType, start, end time.Time) float64 {
	worked := WorkedHours(a, shifts, start, end)
	if end.Before(start) {
		return worked
	}
	daySpan := math.Ceil(end.Sub(start).Hours()/24) + 1
	dailyTarget := emp.TargetHours / avgDaysPerMonth
	return worked - daySpan*dailyTarget
}

// PeriodBalance is the flat-target variant used by the single week/month view:
// the monthly target applies whole, or quartered for a week (a flat
// four-weeks-per-month approximation, preserved as-is).
func PeriodBalance(worked, targetHours float64, period BalancePeriod) float64 {
	if period == PeriodWeek {
		return worked - targetHours/4
	}
	return worked - targetHours
}
