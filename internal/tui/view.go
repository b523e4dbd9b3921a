package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/isoamt/internal/tui/components"
	"github.com/rgehrsitz/isoamt/pkg/numfmt"
)

// View renders the current state of the application
func (m Model) View() string {
	sections := []string{
		m.renderTitleBar(),
		m.renderForm(),
		m.renderResults(),
		m.renderExercises(),
	}
	if line := m.renderMessages(); line != "" {
		sections = append(sections, line)
	}
	sections = append(sections, StatusBarStyle.Render(m.help.View(m.keys)))

	return AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderTitleBar renders the application title and table source
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("ISO Exercise AMT Calculator")

	meta := m.report.Metadata
	source := fmt.Sprintf("Tax tables: %s", m.tablesSource)
	if meta.TaxYear != 0 {
		source = fmt.Sprintf("Tax tables: %d (%s)", meta.TaxYear, m.tablesSource)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(source))
}

func (m Model) renderForm() string {
	var b strings.Builder

	for i := range m.inputs {
		f := Field(i)
		if f == FieldISOs {
			b.WriteString("\n")
		}
		label := FieldLabelStyle.Render(f.Label())
		if f == m.focus {
			label = FocusedFieldLabelStyle.Render(f.Label())
		}
		b.WriteString(label + m.inputs[i].View() + "\n")
	}

	b.WriteString("\n")
	b.WriteString(FieldLabelStyle.Render("Filing status") + InfoStyle.Render(m.status.Label()))

	return ActiveBorderStyle.Render(b.String())
}

func (m Model) renderResults() string {
	out := m.report.Outputs
	sep := m.opts.Separator
	inAMT := out.AMTExceedsOrdinary()
	cards := []*components.MetricCard{
		components.NewMetricCard("AMTI", currency(out.AMTI, sep)),
		components.NewMetricCard("AMT exemption", currency(out.AMTExemption, sep)),
		components.NewMetricCard("AMT base", currency(out.AMTBase, sep)),
		components.NewMetricCard("AMT", currency(out.AMT, sep)).WithAlert(inAMT),
		components.NewMetricCard("Ordinary tax", currency(out.OrdinaryTax, sep)),
		components.NewMetricCard("Payable tax", currency(out.PayableTax, sep)).WithAlert(inAMT),
	}
	if inAMT {
		cards[5].WithDescription("AMT applies")
	}

	var results string
	if m.width < compactWidth {
		lines := make([]string, len(cards))
		for i, card := range cards {
			lines[i] = card.RenderCompact()
		}
		results = lipgloss.JoinVertical(lipgloss.Left, lines...)
	} else {
		columns := 3
		if m.width < 72 {
			columns = 2
		}
		cardWidth := (m.width-4)/columns - 2
		for _, card := range cards {
			card.WithWidth(cardWidth)
		}
		results = components.MetricGrid(cards, columns)
	}

	if m.report.ShowMaxISOs() {
		maxLine := ErrorStyle.Render(fmt.Sprintf("AMT exceeds ordinary tax. Max ISOs for the last exercise: %s",
			numfmt.Format(m.report.Estimate.ISOs, sep)))
		results = lipgloss.JoinVertical(lipgloss.Left, results, maxLine)
	}
	return results
}

func (m Model) renderExercises() string {
	return BorderStyle.Render(components.NewExerciseTable(m.report.Lots, m.opts.Separator).Render())
}

func (m Model) renderMessages() string {
	if m.err != nil {
		return ErrorStyle.Render("Error: " + m.err.Error())
	}
	if m.notice != "" {
		return InfoStyle.Render(m.notice)
	}
	return ""
}

// compactWidth is the terminal width below which metric cards collapse to lines
const compactWidth = 48

var currency = components.Currency
