package calculation

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// PresumptiveTaxShare is the share of the notional yield taken as tax.
const PresumptiveTaxShare = 0.30

// Project simulates the balance month by month and samples it once per year
// of age. Each month applies, in order: the active return, the inflation
// step, the active regime's contribution and inflated spending, and at each
// year end the presumptive tax. The input is never modified.
func Project(in domain.ProjectionInput) ([]domain.YearlyBalance, error) {
	if len(in.Regimes) == 0 {
		return nil, fmt.Errorf("%w: at least one regime is required to determine the start age", ErrInvalidInput)
	}

	regimes := sortRegimes(in.Regimes)
	startAge := regimes[0].StartAge
	years := in.HorizonAge - startAge

	balance := in.InitialBalance
	contributions := in.InitialBalance
	taxPaid := 0.0
	inflationMultiplier := 1.0
	monthlyInflation := math.Pow(1+in.InflationRate/100, 1.0/12)

	first := domain.YearlyBalance{
		Age:            startAge,
		Balance:        balance,
		RealBalance:    balance,
		Contributions:  contributions,
		Growth:         0,
		WithdrawalRate: withdrawalRate(activeRegime(regimes, float64(startAge)), balance, inflationMultiplier),
		TaxPaid:        0,
	}
	if years <= 0 {
		return []domain.YearlyBalance{first}, nil
	}

	projection := make([]domain.YearlyBalance, 0, years+1)
	projection = append(projection, first)

	totalMonths := years * 12
	for month := 1; month <= totalMonths; month++ {
		age := float64(startAge) + float64(month-1)/12
		regime := activeRegime(regimes, age)

		rate := in.AnnualReturn
		if regime != nil {
			rate = regime.ReturnRate(rate)
		}
		balance *= 1 + rate/100/12

		inflationMultiplier *= monthlyInflation

		if regime != nil {
			balance += regime.MonthlyContribution
			balance -= regime.MonthlySpending * inflationMultiplier
			contributions += regime.MonthlyContribution
		}

		if month%12 != 0 {
			continue
		}

		if in.Tax.Enabled {
			tax := presumptiveTax(balance, in.Tax)
			balance -= tax
			taxPaid += tax
		}

		elapsed := month / 12
		snapshotAge := startAge + elapsed
		projection = append(projection, domain.YearlyBalance{
			Age:            snapshotAge,
			Balance:        balance,
			RealBalance:    balance / math.Pow(1+in.InflationRate/100, float64(elapsed)),
			Contributions:  contributions,
			Growth:         balance - contributions,
			WithdrawalRate: withdrawalRate(activeRegime(regimes, float64(snapshotAge)), balance, inflationMultiplier),
			TaxPaid:        taxPaid,
		})
	}

	return projection, nil
}

// presumptiveTax charges the policy's notional yield. Nothing is charged on
// a depleted balance.
func presumptiveTax(balance float64, policy domain.TaxPolicy) float64 {
	if balance <= 0 {
		return 0
	}
	return balance * (policy.GovernmentBorrowingRate / 100) * PresumptiveTaxShare
}

// withdrawalRate annualizes the inflated spending as a percentage of balance.
func withdrawalRate(regime *domain.Regime, balance, inflationMultiplier float64) float64 {
	if regime == nil || balance <= 0 {
		return 0
	}
	return regime.MonthlySpending * 12 * inflationMultiplier / balance * 100
}
