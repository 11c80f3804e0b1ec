package config

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/fireplan/internal/calculation"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ResolveAll turns every scenario of a plan into engine input, in file order.
func ResolveAll(config *domain.Configuration) ([]domain.ScenarioInput, error) {
	inputs := make([]domain.ScenarioInput, 0, len(config.Scenarios))
	for i := range config.Scenarios {
		in, err := ResolveScenario(config.GlobalAssumptions, &config.Scenarios[i])
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// ResolveScenarioByName resolves a single named scenario. An empty name picks
// the first scenario.
func ResolveScenarioByName(config *domain.Configuration, name string) (domain.ScenarioInput, error) {
	if name == "" {
		if len(config.Scenarios) == 0 {
			return domain.ScenarioInput{}, fmt.Errorf("no scenarios provided")
		}
		return ResolveScenario(config.GlobalAssumptions, &config.Scenarios[0])
	}
	scenario := config.FindScenario(name)
	if scenario == nil {
		return domain.ScenarioInput{}, fmt.Errorf("scenario %s not found in configuration", name)
	}
	return ResolveScenario(config.GlobalAssumptions, scenario)
}

// ResolveScenario applies the scenario's overrides to the global assumptions
// and stitches its periods into regimes.
func ResolveScenario(assumptions domain.GlobalAssumptions, scenario *domain.Scenario) (domain.ScenarioInput, error) {
	if scenario == nil {
		return domain.ScenarioInput{}, fmt.Errorf("scenario cannot be nil")
	}

	annualReturn := assumptions.AnnualReturn
	if scenario.AnnualReturn != nil {
		annualReturn = *scenario.AnnualReturn
	}
	inflation := assumptions.InflationRate
	if scenario.InflationRate != nil {
		inflation = *scenario.InflationRate
	}
	horizon := assumptions.HorizonAge
	if scenario.HorizonAge != nil {
		horizon = *scenario.HorizonAge
	}
	tax := assumptions.Tax
	if scenario.Tax != nil {
		tax = *scenario.Tax
	}

	var regimes []domain.Regime
	switch {
	case scenario.Simple != nil:
		s := scenario.Simple
		regimes = calculation.TwoPhaseRegimes(s.CurrentAge, s.RetirementAge, horizon,
			s.MonthlyContribution.InexactFloat64(), s.MonthlySpending.InexactFloat64())
	case len(scenario.Periods) > 0:
		regimes = StitchPeriods(scenario.Periods, horizon)
	default:
		return domain.ScenarioInput{}, fmt.Errorf("scenario %s has no periods", scenario.Name)
	}

	return domain.ScenarioInput{
		Name:        scenario.Name,
		Description: scenario.Description,
		Input: domain.ProjectionInput{
			InitialBalance: scenario.InitialBalance.InexactFloat64(),
			Regimes:        regimes,
			AnnualReturn:   annualReturn.InexactFloat64(),
			HorizonAge:     horizon,
			InflationRate:  inflation.InexactFloat64(),
			Tax:            tax.Policy(),
		},
	}, nil
}

// StitchPeriods builds a contiguous timeline: each period ends where the next
// one starts and the last ends at the horizon. An explicit end age wins.
func StitchPeriods(periods []domain.PeriodSpec, horizonAge int) []domain.Regime {
	sorted := make([]domain.PeriodSpec, len(periods))
	copy(sorted, periods)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartAge < sorted[j].StartAge
	})

	regimes := make([]domain.Regime, len(sorted))
	for i, p := range sorted {
		end := horizonAge
		if i+1 < len(sorted) {
			end = sorted[i+1].StartAge
		}
		if p.EndAge != nil {
			end = *p.EndAge
		}

		regimes[i] = domain.Regime{
			Name:                p.Name,
			StartAge:            p.StartAge,
			EndAge:              end,
			MonthlyContribution: p.MonthlyContribution.InexactFloat64(),
			MonthlySpending:     p.MonthlySpending.InexactFloat64(),
			AnnualReturn:        decimalToFloatPtr(p.AnnualReturn),
		}
	}
	return regimes
}

func decimalToFloatPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
