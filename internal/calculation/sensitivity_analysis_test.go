package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParameterValues(t *testing.T) {
	values := generateParameterValues(domain.SensitivityParameter{
		MinValue: decimal.NewFromInt(2),
		MaxValue: decimal.NewFromInt(8),
		Steps:    4,
	})

	require.Len(t, values, 4)
	for i, expected := range []int64{2, 4, 6, 8} {
		assert.True(t, values[i].Equal(decimal.NewFromInt(expected)), "value %d: %s", i, values[i])
	}

	single := generateParameterValues(domain.SensitivityParameter{MinValue: decimal.NewFromInt(5), Steps: 1})
	assert.Len(t, single, 1)
}

func TestApplyParameter(t *testing.T) {
	in := lifecycleInput(2, false)

	out, err := ApplyParameter(in, ParamAnnualReturn, 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, out.AnnualReturn)
	assert.Nil(t, out.Regimes[1].AnnualReturn, "overrides are cleared")
	assert.NotNil(t, in.Regimes[1].AnnualReturn, "input untouched")

	out, err = ApplyParameter(in, ParamInflationRate, 3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, out.InflationRate)

	out, err = ApplyParameter(in, ParamSpendingScale, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, out.Regimes[2].MonthlySpending)
	assert.Equal(t, 3000.0, in.Regimes[2].MonthlySpending)

	out, err = ApplyParameter(in, ParamContributionScale, 2)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, out.Regimes[0].MonthlyContribution)

	_, err = ApplyParameter(in, ParamSpendingScale, -1)
	assert.Error(t, err)

	_, err = ApplyParameter(in, "volatility", 1)
	assert.ErrorContains(t, err, "unknown sensitivity parameter")
}

func TestSensitivityAnalyzer_AnalyzeParameter(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(nil)
	scenario := domain.ScenarioInput{
		Name: "drawdown",
		Input: domain.ProjectionInput{
			InitialBalance: 100000,
			Regimes:        []domain.Regime{{StartAge: 60, EndAge: 70, MonthlySpending: 1000}},
			AnnualReturn:   0,
			HorizonAge:     70,
		},
	}

	analysis, err := analyzer.AnalyzeParameter(context.Background(), scenario, domain.SensitivityParameter{
		Name:     ParamSpendingScale,
		MinValue: decimal.NewFromFloat(0.5),
		MaxValue: decimal.NewFromFloat(1.5),
		Steps:    3,
		Unit:     "factor",
	})
	require.NoError(t, err)
	require.Len(t, analysis.Results, 3)

	// 100000 - 10 years of 500, 1000, 1500 a month
	assert.Equal(t, 40000.0, analysis.Results[0].FinalBalance)
	assert.Nil(t, analysis.Results[0].DepletionAge)
	assert.Equal(t, -20000.0, analysis.Results[1].FinalBalance)
	require.NotNil(t, analysis.Results[1].DepletionAge)
	assert.Equal(t, 69, *analysis.Results[1].DepletionAge)
	require.NotNil(t, analysis.BreakingValue)
	assert.True(t, analysis.BreakingValue.Equal(decimal.NewFromInt(1)))
	assert.Equal(t, "HIGH", analysis.RiskLevel)
}

func TestSensitivityAnalyzer_Errors(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(NewCalculationEngine())
	scenario := domain.ScenarioInput{Name: "base", Input: lifecycleInput(0, false)}

	_, err := analyzer.AnalyzeParameter(context.Background(), scenario, domain.SensitivityParameter{
		Name:     ParamAnnualReturn,
		MinValue: decimal.NewFromInt(8),
		MaxValue: decimal.NewFromInt(2),
		Steps:    3,
	})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = analyzer.AnalyzeParameter(ctx, scenario, domain.SensitivityParameter{
		Name:     ParamAnnualReturn,
		MinValue: decimal.NewFromInt(2),
		MaxValue: decimal.NewFromInt(8),
		Steps:    3,
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParameterSensitivityAnalysis_DetermineRiskLevel(t *testing.T) {
	age := 80
	a := &domain.ParameterSensitivityAnalysis{}
	assert.Equal(t, "LOW", a.DetermineRiskLevel())

	a.Results = []domain.SensitivityResult{{}, {}, {}}
	assert.Equal(t, "LOW", a.DetermineRiskLevel())

	a.Results[2].DepletionAge = &age
	assert.Equal(t, "MEDIUM", a.DetermineRiskLevel())

	a.Results[1].DepletionAge = &age
	assert.Equal(t, "HIGH", a.DetermineRiskLevel())
}
