package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/rgehrsitz/isoamt/internal/tui/tuistyles"
	"github.com/rgehrsitz/isoamt/pkg/numfmt"
	"github.com/shopspring/decimal"
)

var exerciseColumns = []struct {
	title string
	width int
}{
	{"#", 4},
	{"ISOs", 12},
	{"Strike", 10},
	{"FMV", 10},
	{"Bargain", 14},
}

// ExerciseTable lists recorded lots in insertion order
type ExerciseTable struct {
	Lots      []domain.ExerciseLot
	Separator string
}

// NewExerciseTable creates a table over lots using sep for digit grouping
func NewExerciseTable(lots []domain.ExerciseLot, sep string) *ExerciseTable {
	if sep == "" {
		sep = ","
	}
	return &ExerciseTable{Lots: lots, Separator: sep}
}

// Render returns the table, or a placeholder line when there are no lots
func (t *ExerciseTable) Render() string {
	if len(t.Lots) == 0 {
		return tuistyles.SubtitleStyle.Render("No exercises yet. Fill in ISOs, strike and FMV, then press enter.")
	}

	var b strings.Builder
	header := make([]string, len(exerciseColumns))
	for i, col := range exerciseColumns {
		header[i] = cell(col.title, col.width)
	}
	b.WriteString(tuistyles.TableHeaderStyle.Render(strings.Join(header, " ")))

	for i, lot := range t.Lots {
		values := []string{
			fmt.Sprintf("%d", i+1),
			numfmt.Format(lot.ISOCount, t.Separator),
			"$" + lot.StrikePrice.StringFixed(2),
			"$" + lot.FairMarketValue.StringFixed(2),
			Currency(lot.BargainElement, t.Separator),
		}
		row := make([]string, len(values))
		for j, v := range values {
			row[j] = cell(v, exerciseColumns[j].width)
		}
		b.WriteString("\n")
		b.WriteString(tuistyles.TableCellStyle.Render(strings.Join(row, " ")))
	}
	return b.String()
}

// Currency renders whole dollars with sep grouping; negatives as -$N
func Currency(d decimal.Decimal, sep string) string {
	if d.Round(0).IsNegative() {
		return "-$" + numfmt.Format(d.Abs(), sep)
	}
	return "$" + numfmt.Format(d, sep)
}

func cell(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(s)
}
