package tui

import (
	"github.com/rgehrsitz/isoamt/internal/config"
	"github.com/rgehrsitz/isoamt/internal/domain"
)

// Field identifies one of the form's text inputs
type Field int

const (
	FieldIncome Field = iota
	FieldLongTermGains
	FieldShortTermGains
	FieldISOs
	FieldStrike
	FieldFMV
	fieldCount
)

// Label returns the form label for a field
func (f Field) Label() string {
	switch f {
	case FieldIncome:
		return "Ordinary income"
	case FieldLongTermGains:
		return "Long-term gains"
	case FieldShortTermGains:
		return "Short-term gains"
	case FieldISOs:
		return "ISOs to exercise"
	case FieldStrike:
		return "Strike price"
	case FieldFMV:
		return "Fair market value"
	default:
		return "Unknown"
	}
}

// grouped fields are whole-dollar or whole-share amounts reformatted with
// thousands separators as the user types
func (f Field) grouped() bool {
	switch f {
	case FieldIncome, FieldLongTermGains, FieldShortTermGains, FieldISOs:
		return true
	default:
		return false
	}
}

// TablesLoadedMsg signals a tax table file has been loaded
type TablesLoadedMsg struct {
	Path   string
	Tables *domain.TaxTableConfig
}

// ScenarioLoadedMsg signals a scenario file has been loaded
type ScenarioLoadedMsg struct {
	Scenario *config.Scenario
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
