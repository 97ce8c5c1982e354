package core

import "time"

// Equipment is a monitored APPCC control point (fridge, freezer, hot-hold).
// MinTemp/MaxTemp bound the acceptable range in °C.
type Equipment struct {
	ID       int     `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	MinTemp  float64 `json:"min_temp"`
	MaxTemp  float64 `json:"max_temp"`
	IsActive bool    `json:"is_active"`
}

// TemperatureLog is one recorded reading for a piece of equipment.
// Conform is computed at record time against the equipment range.
type TemperatureLog struct {
	ID            int       `json:"id"`
	EquipmentCode string    `json:"equipment_code"`
	EquipmentName string    `json:"equipment_name,omitempty"`
	Temperature   float64   `json:"temperature"`
	Conform       bool      `json:"conform"`
	Notes         string    `json:"notes,omitempty"`
	RecordedBy    string    `json:"recorded_by"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// WithinRange reports whether a reading is inside the equipment's band.
func (e Equipment) WithinRange(temp float64) bool {
	return temp >= e.MinTemp && temp <= e.MaxTemp
}

// CleaningLog is one completed cleaning task entry.
type CleaningLog struct {
	ID          int       `json:"id"`
	Area        string    `json:"area"`
	Task        string    `json:"task"`
	Product     string    `json:"product,omitempty"`
	CompletedBy string    `json:"completed_by"`
	CompletedAt time.Time `json:"completed_at"`
}

// AppccDaySummary is the daily checklist view: reading counts and any
// non-conforming equipment that needs corrective action.
type AppccDaySummary struct {
	Date            string           `json:"date"`
	Readings        int              `json:"readings"`
	NonConform      []TemperatureLog `json:"non_conform,omitempty"`
	CleaningEntries int              `json:"cleaning_entries"`
}
