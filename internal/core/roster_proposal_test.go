package core_test

import (
	"testing"

	"gastrodesk/internal/core"
)

func TestRosterProposal_Normalize(t *testing.T) {
	p := core.RosterProposal{
		WeekStart: " 2026-03-02 ",
		Cells: []core.RosterCell{
			{EmployeeCode: " e001 ", Date: "2026-03-02", ShiftCode: " m "},
			{EmployeeCode: "E002", Date: "2026-03-02", ShiftCode: "   "},
			{EmployeeCode: "E003", Date: "2026-03-03", ShiftCode: "off"},
		},
	}
	p.Normalize()

	if p.WeekStart != "2026-03-02" {
		t.Errorf("week start not trimmed: %q", p.WeekStart)
	}
	if len(p.Cells) != 2 {
		t.Fatalf("expected blank-shift cell dropped, got %d cells", len(p.Cells))
	}
	if p.Cells[0].EmployeeCode != "E001" || p.Cells[0].ShiftCode != "M" {
		t.Errorf("codes not upper-cased: %+v", p.Cells[0])
	}
	if p.Cells[1].ShiftCode != "OFF" {
		t.Errorf("expected OFF preserved, got %q", p.Cells[1].ShiftCode)
	}
}

func TestRosterProposal_Validate(t *testing.T) {
	valid := func() core.RosterProposal {
		return core.RosterProposal{
			WeekStart: "2026-03-02",
			Cells: []core.RosterCell{
				{EmployeeCode: "E001", Date: "2026-03-02", ShiftCode: "M"},
				{EmployeeCode: "E001", Date: "2026-03-03", ShiftCode: "T"},
				{EmployeeCode: "E002", Date: "2026-03-08", ShiftCode: "M"}, // last day of week
			},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*core.RosterProposal)
		expectErr bool
	}{
		{name: "valid proposal", mutate: func(p *core.RosterProposal) {}, expectErr: false},
		{name: "bad week start", mutate: func(p *core.RosterProposal) { p.WeekStart = "next monday" }, expectErr: true},
		{name: "no cells", mutate: func(p *core.RosterProposal) { p.Cells = nil }, expectErr: true},
		{name: "missing employee code", mutate: func(p *core.RosterProposal) { p.Cells[0].EmployeeCode = "" }, expectErr: true},
		{name: "unparseable date", mutate: func(p *core.RosterProposal) { p.Cells[1].Date = "tuesday" }, expectErr: true},
		{name: "date before week", mutate: func(p *core.RosterProposal) { p.Cells[1].Date = "2026-03-01" }, expectErr: true},
		{name: "date after week", mutate: func(p *core.RosterProposal) { p.Cells[2].Date = "2026-03-09" }, expectErr: true},
		{name: "double booking", mutate: func(p *core.RosterProposal) { p.Cells[1].Date = "2026-03-02" }, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid()
			tt.mutate(&p)
			err := p.Validate()
			if tt.expectErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestRecipeCopy_Normalize(t *testing.T) {
	c := core.RecipeCopy{
		Description:        "  Slow-braised beef cheeks.  ",
		MenuBlurb:          " Rich and tender ",
		SuggestedAllergens: []string{" Gluten ", "", "SULPHITES"},
	}
	c.Normalize()

	if c.Description != "Slow-braised beef cheeks." {
		t.Errorf("description not trimmed: %q", c.Description)
	}
	if len(c.SuggestedAllergens) != 2 {
		t.Fatalf("expected blank allergen dropped, got %v", c.SuggestedAllergens)
	}
	if c.SuggestedAllergens[0] != "gluten" || c.SuggestedAllergens[1] != "sulphites" {
		t.Errorf("allergens not lower-cased: %v", c.SuggestedAllergens)
	}
}
