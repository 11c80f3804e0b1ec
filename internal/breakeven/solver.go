package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/fireplan/internal/calculation"
	"github.com/rgehrsitz/fireplan/internal/config"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/transform"
	"github.com/shopspring/decimal"
)

// Solver searches for the break-even value of one plan parameter
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// evaluation is one projection at a candidate parameter value
type evaluation struct {
	scenario *domain.Scenario
	input    domain.ScenarioInput
	summary  *domain.ProjectionSummary
	minimum  float64
	minAge   int
	safe     bool
}

// Optimize performs the search described by the request
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.BaseScenario == nil || req.Config == nil {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   "base scenario and configuration are required",
		}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	switch req.Target {
	case TargetMaxSpending:
		return s.optimizeMultiplier(ctx, req, true)
	case TargetMinContribution:
		return s.optimizeMultiplier(ctx, req, false)
	case TargetRetirementAge:
		return s.optimizeRetirementAge(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
}

// optimizeMultiplier bisects a scale factor on spending (largest safe value)
// or contributions (smallest safe value). Safety is monotone in both: less
// spending and more contribution never lower the balance.
func (s *Solver) optimizeMultiplier(ctx context.Context, req OptimizationRequest, spending bool) (*OptimizationResult, error) {
	op := "optimize_" + string(req.Target)
	scale := func(factor decimal.Decimal) transform.ScenarioTransform {
		if spending {
			return &transform.ScaleSpending{Factor: factor}
		}
		return &transform.ScaleContribution{Factor: factor}
	}

	base, err := s.evaluate(ctx, req, nil)
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to calculate base scenario", Cause: err}
	}

	lo, hi := req.Constraints.multiplierBounds()
	iterations := 0

	loEval, err := s.evaluate(ctx, req, scale(lo))
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to calculate lower bound", Cause: err}
	}
	hiEval, err := s.evaluate(ctx, req, scale(hi))
	if err != nil {
		return nil, &BreakEvenError{Operation: op, Message: "failed to calculate upper bound", Cause: err}
	}
	iterations += 2

	// Bracket checks: the safe side must be safe and the unsafe side unsafe.
	safeEnd, unsafeEnd := loEval, hiEval
	safeVal, unsafeVal := lo, hi
	if !spending {
		safeEnd, unsafeEnd = hiEval, loEval
		safeVal, unsafeVal = hi, lo
	}
	if !safeEnd.safe {
		return nil, &BreakEvenError{
			Operation: op,
			Message:   fmt.Sprintf("no multiplier in [%s, %s] keeps the balance above the floor", lo, hi),
		}
	}
	if unsafeEnd.safe {
		result := s.newResult(req, unsafeEnd, base, iterations)
		result.Multiplier = &unsafeVal
		result.Success = true
		result.ConvergenceInfo = fmt.Sprintf("Every multiplier in [%s, %s] is safe", lo, hi)
		return result, nil
	}

	best := safeEnd
	for iterations < req.MaxIterations {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if safeVal.Sub(unsafeVal).Abs().LessThan(req.Tolerance) {
			result := s.newResult(req, best, base, iterations)
			result.Multiplier = &safeVal
			result.Success = true
			result.ConvergenceInfo = fmt.Sprintf("Bisection converged within %s", req.Tolerance)
			return result, nil
		}

		iterations++
		mid := safeVal.Add(unsafeVal).Div(decimal.NewFromInt(2))
		eval, err := s.evaluate(ctx, req, scale(mid))
		if err != nil {
			return nil, &BreakEvenError{Operation: op, Message: "failed to calculate scenario", Cause: err}
		}

		if eval.safe {
			safeVal, best = mid, eval
		} else {
			unsafeVal = mid
		}
	}

	result := s.newResult(req, best, base, iterations)
	result.Multiplier = &safeVal
	result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	return result, nil
}

// optimizeRetirementAge walks the drawdown start forward one year at a time
// and stops at the first safe age.
func (s *Solver) optimizeRetirementAge(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	base, err := s.evaluate(ctx, req, nil)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize_retirement_age", Message: "failed to calculate base scenario", Cause: err}
	}

	minShift, maxShift := req.Constraints.shiftBounds()
	iterations := 0
	var lastErr error

	for shift := minShift; shift <= maxShift && iterations < req.MaxIterations; shift++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		iterations++

		eval, err := s.evaluate(ctx, req, &transform.ShiftRetirement{Years: shift})
		if err != nil {
			var te *transform.TransformError
			if errors.As(err, &te) {
				// Shift falls outside the plan's other periods.
				lastErr = err
				continue
			}
			return nil, &BreakEvenError{Operation: "optimize_retirement_age", Message: "failed to calculate scenario", Cause: err}
		}
		if !eval.safe {
			continue
		}

		result := s.newResult(req, eval, base, iterations)
		age := retirementAge(eval.scenario)
		result.RetirementAge = &age
		result.Success = true
		result.ConvergenceInfo = fmt.Sprintf("Evaluated %d retirement ages", iterations)
		return result, nil
	}

	return nil, &BreakEvenError{
		Operation: "optimize_retirement_age",
		Message:   fmt.Sprintf("no retirement age within %+d..%+d years keeps the balance above the floor", minShift, maxShift),
		Cause:     lastErr,
	}
}

// evaluate applies an optional transform to the base scenario, projects it
// and checks the floor.
func (s *Solver) evaluate(ctx context.Context, req OptimizationRequest, t transform.ScenarioTransform) (*evaluation, error) {
	scenario := req.BaseScenario.DeepCopy()
	if t != nil {
		var err error
		scenario, err = transform.ApplyTransforms(req.BaseScenario, []transform.ScenarioTransform{t})
		if err != nil {
			return nil, err
		}
	}

	in, err := config.ResolveScenario(req.Config.GlobalAssumptions, scenario)
	if err != nil {
		return nil, err
	}
	summary, err := s.CalcEngine.RunScenario(ctx, in)
	if err != nil {
		return nil, err
	}

	eval := &evaluation{scenario: scenario, input: in, summary: summary}
	floor := req.Constraints.Floor.InexactFloat64()
	for i, year := range summary.Projection {
		if i == 0 || year.Balance < eval.minimum {
			eval.minimum = year.Balance
			eval.minAge = year.Age
		}
	}
	eval.safe = len(summary.Projection) > 0 && eval.minimum >= floor
	return eval, nil
}

// newResult creates an optimization result from an evaluation
func (s *Solver) newResult(req OptimizationRequest, eval, base *evaluation, iterations int) *OptimizationResult {
	result := &OptimizationResult{
		Request:       req,
		Iterations:    iterations,
		Summary:       eval.summary,
		FinalBalance:  decimal.NewFromFloat(eval.summary.FinalBalance).Round(2),
		MinBalance:    decimal.NewFromFloat(eval.minimum).Round(2),
		MinBalanceAge: eval.minAge,
		TotalTax:      decimal.NewFromFloat(eval.summary.TotalTaxPaid).Round(2),
		Amounts:       periodAmounts(eval.input.Input.Regimes),
	}

	if base != nil {
		result.BaseSummary = base.summary
		result.BaseSurvives = base.safe
		result.FinalBalanceDiff = result.FinalBalance.Sub(decimal.NewFromFloat(base.summary.FinalBalance).Round(2))
	}
	return result
}

func periodAmounts(regimes []domain.Regime) []PeriodAmount {
	amounts := make([]PeriodAmount, len(regimes))
	for i, r := range regimes {
		amounts[i] = PeriodAmount{
			Name:                r.Name,
			StartAge:            r.StartAge,
			EndAge:              r.EndAge,
			MonthlyContribution: decimal.NewFromFloat(r.MonthlyContribution).Round(2),
			MonthlySpending:     decimal.NewFromFloat(r.MonthlySpending).Round(2),
		}
	}
	return amounts
}

// retirementAge reports where drawdown starts in a scenario
func retirementAge(scenario *domain.Scenario) int {
	if scenario.Simple != nil {
		return scenario.Simple.RetirementAge
	}
	age := -1
	for _, p := range scenario.Periods {
		if p.MonthlySpending.IsPositive() && (age < 0 || p.StartAge < age) {
			age = p.StartAge
		}
	}
	return age
}
