package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MaxAge bounds every age in a plan file.
const MaxAge = 150

// InputParser handles parsing of plan files
type InputParser struct {
	// SkipEnv ignores FIREPLAN_* environment overrides of the default assumptions.
	SkipEnv bool
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return config, nil
}

// Parse decodes and validates a plan. Assumptions missing from the document
// keep their defaults, which may come from the environment.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	assumptions := domain.DefaultAssumptions()
	if !ip.SkipEnv {
		var err error
		assumptions, err = DefaultAssumptionsFromEnv()
		if err != nil {
			return nil, err
		}
	}

	config := domain.Configuration{GlobalAssumptions: assumptions}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("configuration is empty")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := ip.validateGlobalAssumptions(&config.GlobalAssumptions); err != nil {
		return fmt.Errorf("global assumptions validation failed: %w", err)
	}

	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if err := ip.ValidateScenario(scenario); err != nil {
			return fmt.Errorf("scenario %d (%s) validation failed: %w", i, scenario.Name, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("duplicate scenario name %q", scenario.Name)
		}
		seen[scenario.Name] = true
	}

	return nil
}

// ValidateScenario checks a single scenario, including its overrides
func (ip *InputParser) ValidateScenario(scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("name is required")
	}

	if scenario.HorizonAge != nil {
		if err := validateAge("horizon age", *scenario.HorizonAge); err != nil {
			return err
		}
	}
	if err := validateRate("annual return", scenario.AnnualReturn); err != nil {
		return err
	}
	if err := validateRate("inflation rate", scenario.InflationRate); err != nil {
		return err
	}
	if scenario.Tax != nil && scenario.Tax.GovernmentBorrowingRate.LessThan(decimal.Zero) {
		return fmt.Errorf("government borrowing rate cannot be negative")
	}

	switch {
	case scenario.Simple != nil && len(scenario.Periods) > 0:
		return fmt.Errorf("periods and simple cannot both be set")
	case scenario.Simple != nil:
		return ip.validateSimplePlan(scenario.Simple)
	case len(scenario.Periods) == 0:
		return fmt.Errorf("at least one period is required")
	}

	for i := range scenario.Periods {
		if err := ip.validatePeriod(&scenario.Periods[i]); err != nil {
			return fmt.Errorf("period %d: %w", i, err)
		}
	}
	return nil
}

func (ip *InputParser) validatePeriod(period *domain.PeriodSpec) error {
	if err := validateAge("start age", period.StartAge); err != nil {
		return err
	}
	if period.EndAge != nil {
		if err := validateAge("end age", *period.EndAge); err != nil {
			return err
		}
		if *period.EndAge < period.StartAge {
			return fmt.Errorf("end age %d is before start age %d", *period.EndAge, period.StartAge)
		}
	}
	if err := validateRate("annual return", period.AnnualReturn); err != nil {
		return err
	}
	if period.MonthlyContribution.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly contribution cannot be negative")
	}
	if period.MonthlySpending.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly spending cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateSimplePlan(plan *domain.SimplePlan) error {
	if err := validateAge("current age", plan.CurrentAge); err != nil {
		return err
	}
	if err := validateAge("retirement age", plan.RetirementAge); err != nil {
		return err
	}
	if plan.RetirementAge < plan.CurrentAge {
		return fmt.Errorf("retirement age %d is before current age %d", plan.RetirementAge, plan.CurrentAge)
	}
	if plan.MonthlyContribution.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly contribution cannot be negative")
	}
	if plan.MonthlySpending.LessThan(decimal.Zero) {
		return fmt.Errorf("monthly spending cannot be negative")
	}
	return nil
}

// validateGlobalAssumptions validates global assumptions
func (ip *InputParser) validateGlobalAssumptions(assumptions *domain.GlobalAssumptions) error {
	if err := validateAge("horizon age", assumptions.HorizonAge); err != nil {
		return err
	}
	if err := validateRate("annual return", &assumptions.AnnualReturn); err != nil {
		return err
	}
	if err := validateRate("inflation rate", &assumptions.InflationRate); err != nil {
		return err
	}
	if assumptions.Tax.GovernmentBorrowingRate.LessThan(decimal.Zero) {
		return fmt.Errorf("government borrowing rate cannot be negative")
	}
	if assumptions.Tax.GovernmentBorrowingRate.GreaterThan(maxRate) {
		return fmt.Errorf("government borrowing rate must be at most %s%%, got %s", maxRate, assumptions.Tax.GovernmentBorrowingRate)
	}
	return nil
}

// Bounds for annual percentage rates in a plan file.
var (
	minRate = decimal.NewFromInt(-100)
	maxRate = decimal.NewFromInt(100)
)

// validateRate checks an optional annual percentage rate
func validateRate(label string, rate *decimal.Decimal) error {
	if rate == nil {
		return nil
	}
	if rate.LessThan(minRate) || rate.GreaterThan(maxRate) {
		return fmt.Errorf("%s must be between %s%% and %s%%, got %s", label, minRate, maxRate, rate)
	}
	return nil
}

func validateAge(label string, age int) error {
	if age < 0 || age > MaxAge {
		return fmt.Errorf("%s must be between 0 and %d, got %d", label, MaxAge, age)
	}
	return nil
}

// SaveConfiguration writes a plan back out as YAML
func SaveConfiguration(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
