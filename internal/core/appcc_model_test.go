package core_test

import (
	"testing"

	"gastrodesk/internal/core"
)

func TestEquipment_WithinRange(t *testing.T) {
	fridge := core.Equipment{Code: "FRG1", MinTemp: 0, MaxTemp: 5}
	freezer := core.Equipment{Code: "FRZ1", MinTemp: -25, MaxTemp: -18}

	tests := []struct {
		name string
		eq   core.Equipment
		temp float64
		want bool
	}{
		{name: "fridge in range", eq: fridge, temp: 3.5, want: true},
		{name: "fridge at lower bound", eq: fridge, temp: 0, want: true},
		{name: "fridge at upper bound", eq: fridge, temp: 5, want: true},
		{name: "fridge too warm", eq: fridge, temp: 5.1, want: false},
		{name: "fridge too cold", eq: fridge, temp: -0.5, want: false},
		{name: "freezer in range", eq: freezer, temp: -20, want: true},
		{name: "freezer thawing", eq: freezer, temp: -10, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.eq.WithinRange(tt.temp); got != tt.want {
				t.Errorf("WithinRange(%.1f) = %v, want %v", tt.temp, got, tt.want)
			}
		})
	}
}
