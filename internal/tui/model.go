package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/isoamt/internal/calculation"
	"github.com/rgehrsitz/isoamt/internal/config"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/rgehrsitz/isoamt/pkg/numfmt"
	"github.com/shopspring/decimal"
)

// Options configures a new Model
type Options struct {
	// TablesPath optionally loads tax tables instead of the built-in set
	TablesPath string
	// ScenarioPath optionally pre-fills the form and exercises
	ScenarioPath string
	// Separator groups thousands in inputs and results; defaults to ","
	Separator  string
	SolverMode domain.SolverMode
	Logger     calculation.Logger
}

// Model is the live calculator. Every edit recomputes the whole report.
type Model struct {
	inputs []textinput.Model
	focus  Field

	status domain.FilingStatus
	ledger *domain.ExerciseLedger
	engine *calculation.TaxEngine
	report domain.TaxReport

	opts         Options
	tablesSource string

	keys keyMap
	help help.Model

	width  int
	height int

	notice string
	err    error
}

// NewModel creates the calculator with built-in tables and an empty ledger
func NewModel(opts Options) Model {
	if opts.Separator == "" {
		opts.Separator = ","
	}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "0"
		ti.CharLimit = 20
		ti.Width = 18
		inputs[i] = ti
	}
	inputs[FieldIncome].Focus()

	m := Model{
		inputs:       inputs,
		focus:        FieldIncome,
		status:       domain.FilingSingle,
		ledger:       domain.NewExerciseLedger(),
		opts:         opts,
		tablesSource: "built-in",
		keys:         defaultKeyMap(),
		help:         help.New(),
		width:        80,
		height:       24,
	}
	m.engine = m.newEngine(nil)
	m.recompute()
	return m
}

// Init loads any configured files
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.opts.TablesPath != "" {
		cmds = append(cmds, loadTablesCmd(m.opts.TablesPath))
	}
	if m.opts.ScenarioPath != "" {
		cmds = append(cmds, loadScenarioCmd(m.opts.ScenarioPath))
	}
	return tea.Batch(cmds...)
}

func loadTablesCmd(path string) tea.Cmd {
	return func() tea.Msg {
		tables, err := config.NewInputParser().LoadTaxTablesFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return TablesLoadedMsg{Path: path, Tables: tables}
	}
}

func loadScenarioCmd(path string) tea.Cmd {
	return func() tea.Msg {
		scenario, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ScenarioLoadedMsg{Scenario: scenario}
	}
}

func (m Model) newEngine(tables *domain.TaxTableConfig) *calculation.TaxEngine {
	engine := calculation.NewTaxEngineWithOptions(tables, calculation.SolverOptions{Mode: m.opts.SolverMode})
	engine.SetLogger(m.opts.Logger)
	return engine
}

// Inputs reads the form into calculator inputs
func (m Model) Inputs() domain.TaxInputs {
	return domain.TaxInputs{
		OrdinaryIncome: m.amount(FieldIncome),
		LongTermGains:  m.amount(FieldLongTermGains),
		ShortTermGains: m.amount(FieldShortTermGains),
		FilingStatus:   m.status,
	}
}

// amount parses a field, stripping the grouping separator from grouped fields
func (m Model) amount(f Field) decimal.Decimal {
	if f.grouped() {
		return numfmt.ParseGrouped(m.inputs[f].Value(), m.opts.Separator)
	}
	return numfmt.Parse(m.inputs[f].Value())
}

// Report returns the most recent calculation
func (m Model) Report() domain.TaxReport {
	return m.report
}

// Value returns the raw text of a field
func (m Model) Value(f Field) string {
	return m.inputs[f].Value()
}

// Focused returns the field that receives keystrokes
func (m Model) Focused() Field {
	return m.focus
}

// FilingStatus returns the selected status
func (m Model) FilingStatus() domain.FilingStatus {
	return m.status
}

func (m *Model) recompute() {
	m.report = m.engine.Recompute(m.Inputs(), m.ledger)
}
