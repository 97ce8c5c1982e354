package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// RosterCell is one proposed schedule cell: which shift an employee works on
// a given date. ShiftCode "OFF" marks an explicit rest day.
type RosterCell struct {
	EmployeeCode string `json:"employee_code" jsonschema_description:"The exact employee code from the provided staff list"`
	Date         string `json:"date" jsonschema_description:"The day this cell applies to, in YYYY-MM-DD format, within the requested week"`
	ShiftCode    string `json:"shift_code" jsonschema_description:"The exact shift code from the provided shift list, or OFF for a rest day"`
}

// RosterProposal is the AI-generated weekly schedule. It is never applied
// directly: callers run Normalize and Validate, show the result to a human,
// and persist only after explicit confirmation.
type RosterProposal struct {
	WeekStart  string       `json:"week_start" jsonschema_description:"Monday of the proposed week in YYYY-MM-DD format"`
	Summary    string       `json:"summary" jsonschema_description:"A brief summary of the proposed roster and its trade-offs"`
	Confidence float64      `json:"confidence" jsonschema_description:"Confidence score between 0.0 and 1.0"`
	Reasoning  string       `json:"reasoning" jsonschema_description:"Explanation of how coverage and hour targets were balanced"`
	Cells      []RosterCell `json:"cells" jsonschema_description:"One cell per employee per day. Days an employee does not appear on are unassigned."`
}

// RecipeCopy is AI-written marketing text for a recipe.
type RecipeCopy struct {
	Description        string   `json:"description" jsonschema_description:"An appetizing two-sentence menu description of the dish"`
	MenuBlurb          string   `json:"menu_blurb" jsonschema_description:"A one-line blurb suitable for a printed menu"`
	SuggestedAllergens []string `json:"suggested_allergens" jsonschema_description:"Likely EU-regulation allergens inferred from the ingredient list"`
}

// Normalize cleans up LLM output: trimmed fields, upper-cased codes, and cells
// without a shift dropped (an absent cell already means "unassigned").
func (p *RosterProposal) Normalize() {
	p.WeekStart = strings.TrimSpace(p.WeekStart)

	cells := p.Cells[:0]
	for _, c := range p.Cells {
		c.EmployeeCode = strings.ToUpper(strings.TrimSpace(c.EmployeeCode))
		c.ShiftCode = strings.ToUpper(strings.TrimSpace(c.ShiftCode))
		c.Date = strings.TrimSpace(c.Date)
		if c.ShiftCode == "" {
			continue
		}
		cells = append(cells, c)
	}
	p.Cells = cells
}

// Validate enforces structural rules on the proposal: parseable dates, every
// cell inside the proposed week, no employee double-booked on a day.
func (p *RosterProposal) Validate() error {
	weekStart, err := time.Parse(dateLayout, p.WeekStart)
	if err != nil {
		return fmt.Errorf("invalid week start %q: %w", p.WeekStart, err)
	}
	if len(p.Cells) == 0 {
		return errors.New("proposal contains no schedule cells")
	}

	weekEnd := weekStart.AddDate(0, 0, 6)
	seen := make(map[string]bool, len(p.Cells))
	for _, c := range p.Cells {
		if c.EmployeeCode == "" {
			return errors.New("cell is missing an employee code")
		}
		day, err := time.Parse(dateLayout, c.Date)
		if err != nil {
			return fmt.Errorf("invalid date %q for employee %s: %w", c.Date, c.EmployeeCode, err)
		}
		if day.Before(weekStart) || day.After(weekEnd) {
			return fmt.Errorf("date %s for employee %s is outside week %s", c.Date, c.EmployeeCode, p.WeekStart)
		}
		key := c.EmployeeCode + "|" + c.Date
		if seen[key] {
			return fmt.Errorf("employee %s has more than one shift on %s", c.EmployeeCode, c.Date)
		}
		seen[key] = true
	}
	return nil
}

// Normalize trims AI-written copy fields and drops blank allergen entries.
func (c *RecipeCopy) Normalize() {
	c.Description = strings.TrimSpace(c.Description)
	c.MenuBlurb = strings.TrimSpace(c.MenuBlurb)
	allergens := c.SuggestedAllergens[:0]
	for _, a := range c.SuggestedAllergens {
		if t := strings.TrimSpace(a); t != "" {
			allergens = append(allergens, strings.ToLower(t))
		}
	}
	c.SuggestedAllergens = allergens
}
