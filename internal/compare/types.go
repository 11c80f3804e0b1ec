package compare

import (
	"fmt"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                    `json:"scenarioName"`
	Description  string                    `json:"description"`
	Summary      *domain.ProjectionSummary `json:"-"`

	// Key Metrics
	FinalBalance       decimal.Decimal `json:"finalBalance"`
	FinalRealBalance   decimal.Decimal `json:"finalRealBalance"`
	PeakBalance        decimal.Decimal `json:"peakBalance"`
	TotalContributions decimal.Decimal `json:"totalContributions"`
	TotalTax           decimal.Decimal `json:"totalTax"`
	MaxWithdrawalRate  decimal.Decimal `json:"maxWithdrawalRate"`
	Longevity          int             `json:"longevity"` // Years before depletion
	DepletionAge       *int            `json:"depletionAge,omitempty"`

	// Comparison to Base
	BalanceDiffFromBase     decimal.Decimal `json:"balanceDiffFromBase"`
	BalancePctFromBase      decimal.Decimal `json:"balancePctFromBase"`
	RealBalanceDiffFromBase decimal.Decimal `json:"realBalanceDiffFromBase"`
	LongevityDiff           int             `json:"longevityDiff"`
	TaxDiffFromBase         decimal.Decimal `json:"taxDiffFromBase"`
}

// Survives reports whether the money lasts through the horizon.
func (r *ComparisonResult) Survives() bool {
	return r.DepletionAge == nil
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// ToProjectionReport converts a ComparisonSet into a report the output
// formatters can render, base first.
func (cs *ComparisonSet) ToProjectionReport(planName string) *domain.ProjectionReport {
	report := &domain.ProjectionReport{PlanName: planName}

	if cs.BaseResult != nil && cs.BaseResult.Summary != nil {
		report.Scenarios = append(report.Scenarios, *cs.BaseResult.Summary)
	}
	for _, result := range cs.AlternativeResults {
		if result.Summary != nil {
			report.Scenarios = append(report.Scenarios, *result.Summary)
		}
	}
	return report
}

// MetricsCalculator extracts key metrics from projection summaries
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a projection summary.
// Amounts are rounded to cents.
func (mc *MetricsCalculator) CalculateMetrics(summary *domain.ProjectionSummary) ComparisonResult {
	return ComparisonResult{
		ScenarioName:       summary.Name,
		Description:        summary.Description,
		Summary:            summary,
		FinalBalance:       cents(summary.FinalBalance),
		FinalRealBalance:   cents(summary.FinalRealBalance),
		PeakBalance:        cents(summary.PeakBalance),
		TotalContributions: cents(summary.TotalContributions),
		TotalTax:           cents(summary.TotalTaxPaid),
		MaxWithdrawalRate:  decimal.NewFromFloat(summary.MaxWithdrawalRate).Round(2),
		Longevity:          summary.Longevity,
		DepletionAge:       summary.DepletionAge,
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.BalanceDiffFromBase = scenario.FinalBalance.Sub(base.FinalBalance)

	if !base.FinalBalance.IsZero() {
		scenario.BalancePctFromBase = scenario.BalanceDiffFromBase.
			Div(base.FinalBalance.Abs()).
			Mul(decimal.NewFromInt(100)).
			Round(2)
	}

	scenario.RealBalanceDiffFromBase = scenario.FinalRealBalance.Sub(base.FinalRealBalance)
	scenario.LongevityDiff = scenario.Longevity - base.Longevity
	scenario.TaxDiffFromBase = scenario.TotalTax.Sub(base.TotalTax)

	return scenario
}

func cents(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}

	// Best ending balance in today's money
	bestReal := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FinalRealBalance.GreaterThan(bestReal.FinalRealBalance) {
			bestReal = alt
		}
	}
	if bestReal != compSet.BaseResult {
		diff := bestReal.FinalRealBalance.Sub(compSet.BaseResult.FinalRealBalance)
		recommendations = append(recommendations,
			"Best Outcome: "+bestReal.ScenarioName+" ends with $"+diff.StringFixed(0)+
				" more (in today's money) than the base scenario")
	}

	// Best longevity
	bestLongevity := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Longevity > bestLongevity.Longevity {
			bestLongevity = alt
		}
	}
	if bestLongevity != compSet.BaseResult {
		yearsDiff := bestLongevity.Longevity - compSet.BaseResult.Longevity
		recommendations = append(recommendations,
			"Best Longevity: "+bestLongevity.ScenarioName+" keeps the portfolio alive "+
				fmt.Sprintf("%d years longer", yearsDiff))
	}

	// Lowest tax burden
	lowestTax := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalTax.LessThan(lowestTax.TotalTax) {
			lowestTax = alt
		}
	}
	if lowestTax != compSet.BaseResult {
		savings := compSet.BaseResult.TotalTax.Sub(lowestTax.TotalTax)
		recommendations = append(recommendations,
			"Lowest Taxes: "+lowestTax.ScenarioName+" saves $"+savings.StringFixed(0)+
				" in presumptive tax")
	}

	// Warn about anything that runs dry
	if !compSet.BaseResult.Survives() {
		recommendations = append(recommendations,
			fmt.Sprintf("Warning: the base scenario is depleted at age %d", *compSet.BaseResult.DepletionAge))
	}
	for _, alt := range compSet.AlternativeResults {
		if !alt.Survives() && compSet.BaseResult.Survives() {
			recommendations = append(recommendations,
				fmt.Sprintf("Warning: %s is depleted at age %d", alt.ScenarioName, *alt.DepletionAge))
		}
	}

	return recommendations
}
