package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/isoamt/internal/calculation"
	"github.com/rgehrsitz/isoamt/pkg/numfmt"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TablesLoadedMsg:
		m.engine = m.newEngine(msg.Tables)
		m.tablesSource = msg.Path
		m.recompute()
		return m, nil

	case ScenarioLoadedMsg:
		m.applyScenario(msg)
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	return m.updateFocused(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus((m.focus + 1) % fieldCount)

	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)

	case key.Matches(msg, m.keys.Status):
		m.status = m.status.Next()
		m.recompute()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.focus < FieldFMV {
			return m, m.setFocus(m.focus + 1)
		}
		return m, m.addExercise()
	}

	return m.updateFocused(msg)
}

// updateFocused forwards a message to the focused input, regroups digits in
// amount fields and recomputes
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	before := m.inputs[m.focus].Value()
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	if m.inputs[m.focus].Value() == before {
		return m, cmd
	}

	if m.focus.grouped() {
		grouped := numfmt.GroupDigits(m.inputs[m.focus].Value(), m.opts.Separator)
		m.inputs[m.focus].SetValue(grouped)
		m.inputs[m.focus].CursorEnd()
	}
	m.err = nil
	m.recompute()
	return m, cmd
}

func (m *Model) setFocus(f Field) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = f
	return m.inputs[f].Focus()
}

// addExercise appends the lot described by the exercise fields and clears them
func (m *Model) addExercise() tea.Cmd {
	isos := m.amount(FieldISOs)
	strike := m.amount(FieldStrike)
	fmv := m.amount(FieldFMV)

	if !isos.IsPositive() {
		m.notice = "Enter a positive number of ISOs before adding an exercise"
		return m.setFocus(FieldISOs)
	}

	lot := calculation.AddExerciseLot(m.ledger, isos, strike, fmv)
	m.notice = fmt.Sprintf("Added exercise %d: bargain element %s", m.ledger.Len(), FormatCurrency(lot.BargainElement))

	for _, f := range []Field{FieldISOs, FieldStrike, FieldFMV} {
		m.inputs[f].Reset()
	}
	m.recompute()
	return m.setFocus(FieldISOs)
}

// applyScenario replaces the form and ledger with a loaded scenario
func (m *Model) applyScenario(msg ScenarioLoadedMsg) {
	s := msg.Scenario
	inputs, err := s.Inputs()
	if err != nil {
		m.err = err
		return
	}

	m.status = inputs.FilingStatus
	m.inputs[FieldIncome].SetValue(numfmt.Format(inputs.OrdinaryIncome, m.opts.Separator))
	m.inputs[FieldLongTermGains].SetValue(numfmt.Format(inputs.LongTermGains, m.opts.Separator))
	m.inputs[FieldShortTermGains].SetValue(numfmt.Format(inputs.ShortTermGains, m.opts.Separator))
	m.ledger = s.Ledger()

	if mode, err := s.Mode(); err == nil && s.SolverMode != "" && mode != m.opts.SolverMode {
		m.opts.SolverMode = mode
		m.engine = m.newEngine(m.engine.Tables)
	}
	m.recompute()
}
