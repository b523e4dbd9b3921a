package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/isoamt/internal/calculation"
	"github.com/rgehrsitz/isoamt/internal/domain"
	"github.com/rgehrsitz/isoamt/pkg/numfmt"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario and tax table files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// Scenario is a saved set of calculator inputs. Amounts accept plain numbers
// or grouped strings such as "100,000".
type Scenario struct {
	Name           string          `yaml:"name,omitempty" json:"name,omitempty"`
	FilingStatus   string          `yaml:"filing_status" json:"filing_status"`
	OrdinaryIncome numfmt.Amount   `yaml:"ordinary_income" json:"ordinary_income"`
	LongTermGains  numfmt.Amount   `yaml:"long_term_gains" json:"long_term_gains"`
	ShortTermGains numfmt.Amount   `yaml:"short_term_gains" json:"short_term_gains"`
	Exercises      []ExerciseInput `yaml:"exercises" json:"exercises"`
	SolverMode     string          `yaml:"solver_mode,omitempty" json:"solver_mode,omitempty"`
}

// ExerciseInput is one ISO exercise as typed by the user
type ExerciseInput struct {
	ISOs   numfmt.Amount `yaml:"isos" json:"isos"`
	Strike numfmt.Amount `yaml:"strike" json:"strike"`
	FMV    numfmt.Amount `yaml:"fmv" json:"fmv"`
}

// LoadFromFile loads a scenario from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*Scenario, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.ParseScenario(data)
}

// ParseScenario decodes and validates scenario data. JSON is accepted since
// it is valid YAML.
func (ip *InputParser) ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &scenario, nil
}

// ValidateScenario rejects unknown statuses, unknown solver modes and negative amounts
func (ip *InputParser) ValidateScenario(s *Scenario) error {
	if s.FilingStatus != "" {
		if _, err := domain.ParseFilingStatus(s.FilingStatus); err != nil {
			return err
		}
	}
	if _, err := s.Mode(); err != nil {
		return err
	}

	amounts := map[string]numfmt.Amount{
		"ordinary_income":  s.OrdinaryIncome,
		"long_term_gains":  s.LongTermGains,
		"short_term_gains": s.ShortTermGains,
	}
	for name, amount := range amounts {
		if amount.IsNegative() {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}

	for i, ex := range s.Exercises {
		if ex.ISOs.IsNegative() {
			return fmt.Errorf("exercise %d: isos cannot be negative", i)
		}
		if ex.Strike.IsNegative() {
			return fmt.Errorf("exercise %d: strike cannot be negative", i)
		}
		if ex.FMV.IsNegative() {
			return fmt.Errorf("exercise %d: fmv cannot be negative", i)
		}
	}
	return nil
}

// Mode returns the solver mode, defaulting to last_lot
func (s *Scenario) Mode() (domain.SolverMode, error) {
	switch domain.SolverMode(s.SolverMode) {
	case "":
		return domain.SolverModeLastLot, nil
	case domain.SolverModeLastLot, domain.SolverModeFullAMTI:
		return domain.SolverMode(s.SolverMode), nil
	default:
		return "", fmt.Errorf("unknown solver mode %q", s.SolverMode)
	}
}

// Inputs converts the scenario into calculator inputs. An empty status means single.
func (s *Scenario) Inputs() (domain.TaxInputs, error) {
	status := domain.FilingSingle
	if s.FilingStatus != "" {
		parsed, err := domain.ParseFilingStatus(s.FilingStatus)
		if err != nil {
			return domain.TaxInputs{}, err
		}
		status = parsed
	}

	return domain.TaxInputs{
		OrdinaryIncome: s.OrdinaryIncome.Decimal,
		LongTermGains:  s.LongTermGains.Decimal,
		ShortTermGains: s.ShortTermGains.Decimal,
		FilingStatus:   status,
	}, nil
}

// Ledger records every exercise in order
func (s *Scenario) Ledger() *domain.ExerciseLedger {
	ledger := domain.NewExerciseLedger()
	for _, ex := range s.Exercises {
		calculation.AddExerciseLot(ledger, ex.ISOs.Decimal, ex.Strike.Decimal, ex.FMV.Decimal)
	}
	return ledger
}

// AddExercise appends an exercise using raw decimals
func (s *Scenario) AddExercise(isos, strike, fmv decimal.Decimal) {
	s.Exercises = append(s.Exercises, ExerciseInput{
		ISOs:   numfmt.NewAmount(isos),
		Strike: numfmt.NewAmount(strike),
		FMV:    numfmt.NewAmount(fmv),
	})
}
