package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// AllTargets lists the targets OptimizeAll runs, in order.
var AllTargets = []OptimizationTarget{
	TargetMaxSpending,
	TargetMinContribution,
	TargetRetirementAge,
}

// OptimizeAll solves every target for the same scenario and collects the
// results. A target that cannot be solved is recorded as a failure; the call
// only errors when none succeed or the context is cancelled.
func (s *Solver) OptimizeAll(
	ctx context.Context,
	baseScenario *domain.Scenario,
	cfg *domain.Configuration,
	constraints Constraints,
) (*MultiDimensionalResult, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}

	mdResult := &MultiDimensionalResult{Failures: map[OptimizationTarget]string{}}

	for _, target := range AllTargets {
		req := OptimizationRequest{
			BaseScenario:  baseScenario,
			Config:        cfg,
			Target:        target,
			Constraints:   constraints,
			MaxIterations: s.Options.MaxIterations,
			Tolerance:     s.Options.Tolerance,
		}

		result, err := s.Optimize(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			mdResult.Failures[target] = err.Error()
			continue
		}
		mdResult.Results = append(mdResult.Results, *result)
	}

	if len(mdResult.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_all",
			Message:   "no target could be solved",
		}
	}

	mdResult.Recommendations = generateRecommendations(mdResult)
	return mdResult, nil
}

// generateRecommendations turns solved targets into plain advice
func generateRecommendations(result *MultiDimensionalResult) []string {
	var recommendations []string

	for _, res := range result.Results {
		switch res.Request.Target {
		case TargetMaxSpending:
			if res.Multiplier == nil {
				continue
			}
			pct := res.Multiplier.Sub(decimalOne).Shift(2)
			if pct.IsNegative() {
				recommendations = append(recommendations,
					fmt.Sprintf("Spending must drop %s%% to last through the horizon", pct.Neg().StringFixed(1)))
			} else {
				recommendations = append(recommendations,
					fmt.Sprintf("Spending could rise %s%% and still last through the horizon", pct.StringFixed(1)))
			}
		case TargetMinContribution:
			if res.Multiplier == nil {
				continue
			}
			if res.Multiplier.IsZero() {
				recommendations = append(recommendations, "The plan survives even without further contributions")
			} else {
				recommendations = append(recommendations,
					fmt.Sprintf("Contributions of %s%% of the plan are enough", res.Multiplier.Shift(2).StringFixed(1)))
			}
		case TargetRetirementAge:
			if res.RetirementAge != nil {
				recommendations = append(recommendations,
					fmt.Sprintf("Earliest safe retirement age: %d", *res.RetirementAge))
			}
		}
	}

	return recommendations
}
