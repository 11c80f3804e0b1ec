package calculation

import (
	"github.com/rgehrsitz/fireplan/internal/domain"
)

// Summarize derives the key metrics of a finished projection
func Summarize(name string, in domain.ProjectionInput, projection []domain.YearlyBalance) *domain.ProjectionSummary {
	summary := &domain.ProjectionSummary{
		Name:            name,
		Input:           in.Clone(),
		InitialBalance:  in.InitialBalance,
		Projection:      projection,
		RegimeStartAges: regimeStartAges(in.Regimes),
	}
	if len(projection) == 0 {
		return summary
	}

	first := projection[0]
	last := projection[len(projection)-1]
	summary.StartAge = first.Age
	summary.FinalBalance = last.Balance
	summary.FinalRealBalance = last.RealBalance
	summary.TotalContributions = last.Contributions
	summary.TotalTaxPaid = last.TaxPaid
	summary.PeakBalance = first.Balance
	summary.PeakAge = first.Age

	for i, year := range projection {
		if year.Balance > summary.PeakBalance {
			summary.PeakBalance = year.Balance
			summary.PeakAge = year.Age
		}
		if year.WithdrawalRate > summary.MaxWithdrawalRate {
			summary.MaxWithdrawalRate = year.WithdrawalRate
		}
		if summary.DepletionAge == nil && year.IsDepleted() {
			age := year.Age
			summary.DepletionAge = &age
			summary.Longevity = i
		}
	}
	if summary.DepletionAge == nil {
		summary.Longevity = len(projection) - 1
	}

	return summary
}

// regimeStartAges lists the distinct start ages in ascending order.
func regimeStartAges(regimes []domain.Regime) []int {
	var ages []int
	for _, r := range sortRegimes(regimes) {
		if len(ages) == 0 || ages[len(ages)-1] != r.StartAge {
			ages = append(ages, r.StartAge)
		}
	}
	return ages
}
