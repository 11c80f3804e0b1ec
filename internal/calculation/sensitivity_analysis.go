package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Sweepable parameter names
const (
	ParamAnnualReturn      = "annual_return"
	ParamInflationRate     = "inflation_rate"
	ParamSpendingScale     = "spending_scale"
	ParamContributionScale = "contribution_scale"
)

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	calculationEngine *CalculationEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer(engine *CalculationEngine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewCalculationEngine()
	}
	return &SensitivityAnalyzer{calculationEngine: engine}
}

// AnalyzeParameter sweeps one parameter across [MinValue, MaxValue] and
// projects the scenario at each point.
func (sa *SensitivityAnalyzer) AnalyzeParameter(
	ctx context.Context,
	scenario domain.ScenarioInput,
	parameter domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {
	if parameter.MaxValue.LessThan(parameter.MinValue) {
		return nil, fmt.Errorf("parameter %s: max value %s is below min value %s",
			parameter.Name, parameter.MaxValue, parameter.MinValue)
	}

	values := generateParameterValues(parameter)
	analysis := &domain.ParameterSensitivityAnalysis{
		ScenarioName: scenario.Name,
		Parameter:    parameter,
		Results:      make([]domain.SensitivityResult, 0, len(values)),
	}

	for _, value := range values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		modified, err := ApplyParameter(scenario.Input, parameter.Name, value.InexactFloat64())
		if err != nil {
			return nil, err
		}

		projection, err := sa.calculationEngine.Project(modified)
		if err != nil {
			return nil, fmt.Errorf("failed to project %s=%s: %w", parameter.Name, value, err)
		}
		summary := Summarize(scenario.Name, modified, projection)

		analysis.Results = append(analysis.Results, domain.SensitivityResult{
			Value:            value,
			FinalBalance:     summary.FinalBalance,
			FinalRealBalance: summary.FinalRealBalance,
			TotalTaxPaid:     summary.TotalTaxPaid,
			DepletionAge:     summary.DepletionAge,
			Longevity:        summary.Longevity,
		})
		if summary.DepletionAge != nil && analysis.BreakingValue == nil {
			v := value
			analysis.BreakingValue = &v
		}
	}

	analysis.RiskLevel = analysis.DetermineRiskLevel()
	return analysis, nil
}

// generateParameterValues generates evenly spaced values for a sweep
func generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.MinValue}
	}

	values := make([]decimal.Decimal, 0, param.Steps)
	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))
	for i := 0; i < param.Steps; i++ {
		values = append(values, param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}
	return values
}

// ApplyParameter returns a copy of in with the named parameter set to value.
// Rates replace the global assumption and every regime override; scales
// multiply the per-regime amounts.
func ApplyParameter(in domain.ProjectionInput, name string, value float64) (domain.ProjectionInput, error) {
	out := in.Clone()
	switch name {
	case ParamAnnualReturn:
		out.AnnualReturn = value
		for i := range out.Regimes {
			out.Regimes[i].AnnualReturn = nil
		}
	case ParamInflationRate:
		out.InflationRate = value
	case ParamSpendingScale:
		if value < 0 {
			return out, fmt.Errorf("%s must not be negative, got %g", name, value)
		}
		for i := range out.Regimes {
			out.Regimes[i].MonthlySpending *= value
		}
	case ParamContributionScale:
		if value < 0 {
			return out, fmt.Errorf("%s must not be negative, got %g", name, value)
		}
		for i := range out.Regimes {
			out.Regimes[i].MonthlyContribution *= value
		}
	default:
		return out, fmt.Errorf("unknown sensitivity parameter: %s", name)
	}
	return out, nil
}
