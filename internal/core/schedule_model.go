package core

import "time"

// Employee is a scheduled staff member. TargetHours is the contracted monthly
// hour count the balance engine measures against.
type Employee struct {
	ID          int       `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	TargetHours float64   `json:"target_hours"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ShiftType is a named shift definition. Hours may be set directly or derived
// from Span, a free-text "HH:MM/HH:MM" description (split shifts joined by
// "-"). Hours of zero marks a non-working entry such as "off" or "vacation".
type ShiftType struct {
	ID       int     `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Span     string  `json:"span,omitempty"`
	Hours    float64 `json:"hours"`
	IsActive bool    `json:"is_active"`
}

// Assignment maps ISO dates ("2006-01-02") to shift codes for one employee.
// A missing date or empty code means no shift that day.
type Assignment map[string]string

// DayAssignment is one persisted schedule cell.
type DayAssignment struct {
	EmployeeID int    `json:"employee_id"`
	Date       string `json:"date"`
	ShiftCode  string `json:"shift_code"`
}

// BalanceReport is the worked-vs-target summary for one employee over a range.
// Balance is signed: positive means ahead of target.
type BalanceReport struct {
	EmployeeCode string  `json:"employee_code"`
	EmployeeName string  `json:"employee_name"`
	From         string  `json:"from"`
	To           string  `json:"to"`
	WorkedHours  float64 `json:"worked_hours"`
	TargetHours  float64 `json:"target_hours"`
	Balance      float64 `json:"balance"`
}

// BalancePeriod selects the flat-target variant used by the single-period view.
type BalancePeriod string

const (
	PeriodWeek  BalancePeriod = "week"
	PeriodMonth BalancePeriod = "month"
)
