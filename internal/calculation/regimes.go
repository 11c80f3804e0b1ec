package calculation

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// sortRegimes returns a copy ordered by start age. Equal start ages keep
// their declaration order.
func sortRegimes(regimes []domain.Regime) []domain.Regime {
	sorted := make([]domain.Regime, len(regimes))
	copy(sorted, regimes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartAge < sorted[j].StartAge
	})
	return sorted
}

// activeRegime returns the first regime, in the given order, that contains age.
func activeRegime(sorted []domain.Regime, age float64) *domain.Regime {
	for i := range sorted {
		if sorted[i].Contains(age) {
			return &sorted[i]
		}
	}
	return nil
}

// ActiveRegime resolves the regime in effect at a fractional age using the
// same first-match rule as the projection.
func ActiveRegime(regimes []domain.Regime, age float64) (domain.Regime, bool) {
	r := activeRegime(sortRegimes(regimes), age)
	if r == nil {
		return domain.Regime{}, false
	}
	return *r, true
}

// findOverlaps describes every pair of regimes whose intervals intersect.
func findOverlaps(regimes []domain.Regime) []string {
	sorted := sortRegimes(regimes)
	var overlaps []string
	for i := 0; i < len(sorted); i++ {
		if sorted[i].Months() == 0 {
			continue
		}
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].Months() == 0 {
				continue
			}
			if sorted[j].StartAge < sorted[i].EndAge {
				overlaps = append(overlaps, fmt.Sprintf("%s and %s", sorted[i], sorted[j]))
			}
		}
	}
	return overlaps
}

// TwoPhaseRegimes maps the classic save-then-spend plan onto two regimes:
// contributions from currentAge until retirementAge, spending from then until
// horizonAge.
func TwoPhaseRegimes(currentAge, retirementAge, horizonAge int, monthlyContribution, monthlySpending float64) []domain.Regime {
	if retirementAge < currentAge {
		retirementAge = currentAge
	}
	if horizonAge < retirementAge {
		horizonAge = retirementAge
	}
	return []domain.Regime{
		{
			Name:                "accumulation",
			StartAge:            currentAge,
			EndAge:              retirementAge,
			MonthlyContribution: monthlyContribution,
		},
		{
			Name:            "retirement",
			StartAge:        retirementAge,
			EndAge:          horizonAge,
			MonthlySpending: monthlySpending,
		},
	}
}
