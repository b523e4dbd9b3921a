// Package tuistyles holds the lipgloss palette and styles shared by the TUI
// and its components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/isoamt/pkg/numfmt"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#003366", Dark: "#7AA2F7"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#5C6370", Dark: "#A9B1D6"}
	ColorAccent    = lipgloss.AdaptiveColor{Light: "#B15C00", Dark: "#E0AF68"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#9ECE6A"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#F7768E"}

	ColorForeground = lipgloss.AdaptiveColor{Light: "#222222", Dark: "#C0CAF5"}
	ColorMuted      = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#565F89"}
	ColorBorder     = lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#3B4261"}
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(1, 2)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			MarginTop(1)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveBorderStyle = BorderStyle.
				BorderForeground(ColorPrimary)

	FieldLabelStyle = lipgloss.NewStyle().
			Width(20).
			Foreground(ColorSecondary)

	FocusedFieldLabelStyle = FieldLabelStyle.
				Foreground(ColorPrimary).
				Bold(true)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	MetricAlertStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorDanger)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(ColorForeground)
)

// MetricStyle picks the value style for a metric card
func MetricStyle(alert bool) lipgloss.Style {
	if alert {
		return MetricAlertStyle
	}
	return MetricValueStyle
}

// FormatCurrency renders whole dollars for display
func FormatCurrency(d decimal.Decimal) string {
	return numfmt.FormatCurrency(d)
}
