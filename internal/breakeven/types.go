package breakeven

import (
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what parameter to solve for
type OptimizationTarget string

const (
	// TargetMaxSpending finds the largest spending multiplier that keeps the
	// balance above the floor through the horizon.
	TargetMaxSpending OptimizationTarget = "max_spending"
	// TargetMinContribution finds the smallest contribution multiplier that
	// keeps the balance above the floor.
	TargetMinContribution OptimizationTarget = "min_contribution"
	// TargetRetirementAge finds the earliest start of drawdown that keeps the
	// balance above the floor.
	TargetRetirementAge OptimizationTarget = "retirement_age"
	TargetAll           OptimizationTarget = "all"
)

// ParseTarget maps a CLI name to a target.
func ParseTarget(name string) (OptimizationTarget, error) {
	switch t := OptimizationTarget(name); t {
	case TargetMaxSpending, TargetMinContribution, TargetRetirementAge, TargetAll:
		return t, nil
	}
	return "", &BreakEvenError{
		Operation: "parse_target",
		Message:   "unknown target " + name + " (max_spending, min_contribution, retirement_age, all)",
	}
}

// Constraints define bounds for the search
type Constraints struct {
	// Floor is the lowest balance allowed at any snapshot.
	Floor decimal.Decimal `json:"floor"`

	// Multiplier bounds for the spending and contribution searches
	MinMultiplier *decimal.Decimal `json:"min_multiplier,omitempty"`
	MaxMultiplier *decimal.Decimal `json:"max_multiplier,omitempty"`

	// Retirement shift bounds in years, relative to the plan
	MinRetirementShift *int `json:"min_retirement_shift,omitempty"`
	MaxRetirementShift *int `json:"max_retirement_shift,omitempty"`
}

// DefaultConstraints returns sensible default constraints: a zero floor,
// multipliers between 0 and 10, and retirement up to 10 years earlier or 15 later.
func DefaultConstraints() Constraints {
	minMult := decimal.Zero
	maxMult := decimal.NewFromInt(10)
	minShift := -10
	maxShift := 15

	return Constraints{
		Floor:              decimal.Zero,
		MinMultiplier:      &minMult,
		MaxMultiplier:      &maxMult,
		MinRetirementShift: &minShift,
		MaxRetirementShift: &maxShift,
	}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinMultiplier != nil && c.MinMultiplier.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_multiplier cannot be negative",
		}
	}
	if c.MinMultiplier != nil && c.MaxMultiplier != nil && c.MinMultiplier.GreaterThan(*c.MaxMultiplier) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_multiplier cannot be greater than max_multiplier",
		}
	}
	if c.MinRetirementShift != nil && c.MaxRetirementShift != nil && *c.MinRetirementShift > *c.MaxRetirementShift {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min_retirement_shift cannot be greater than max_retirement_shift",
		}
	}
	return nil
}

func (c *Constraints) multiplierBounds() (decimal.Decimal, decimal.Decimal) {
	lo, hi := decimal.Zero, decimal.NewFromInt(10)
	if c.MinMultiplier != nil {
		lo = *c.MinMultiplier
	}
	if c.MaxMultiplier != nil {
		hi = *c.MaxMultiplier
	}
	return lo, hi
}

func (c *Constraints) shiftBounds() (int, int) {
	lo, hi := -10, 15
	if c.MinRetirementShift != nil {
		lo = *c.MinRetirementShift
	}
	if c.MaxRetirementShift != nil {
		hi = *c.MaxRetirementShift
	}
	return lo, hi
}

// OptimizationRequest defines the parameters for a solver run
type OptimizationRequest struct {
	BaseScenario  *domain.Scenario      `json:"-"`
	Config        *domain.Configuration `json:"-"`
	Target        OptimizationTarget    `json:"target"`
	Constraints   Constraints           `json:"constraints"`
	MaxIterations int                   `json:"max_iterations"`
	Tolerance     decimal.Decimal       `json:"tolerance"` // Multiplier tolerance for bisection
}

// PeriodAmount is the cash flow of one regime at the solved parameters
type PeriodAmount struct {
	Name                string          `json:"name"`
	StartAge            int             `json:"start_age"`
	EndAge              int             `json:"end_age"`
	MonthlyContribution decimal.Decimal `json:"monthly_contribution"`
	MonthlySpending     decimal.Decimal `json:"monthly_spending"`
}

// OptimizationResult contains the results of a solver run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"request"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`

	// Solved parameters
	Multiplier    *decimal.Decimal `json:"multiplier,omitempty"`
	RetirementAge *int             `json:"retirement_age,omitempty"`
	Amounts       []PeriodAmount   `json:"amounts"`

	// Results at the solved parameters
	Summary       *domain.ProjectionSummary `json:"-"`
	FinalBalance  decimal.Decimal           `json:"final_balance"`
	MinBalance    decimal.Decimal           `json:"min_balance"`
	MinBalanceAge int                       `json:"min_balance_age"`
	TotalTax      decimal.Decimal           `json:"total_tax"`

	// Comparison to the unmodified plan
	BaseSummary      *domain.ProjectionSummary `json:"-"`
	BaseSurvives     bool                      `json:"base_survives"`
	FinalBalanceDiff decimal.Decimal           `json:"final_balance_diff"`
}

// MultiDimensionalResult contains results when solving for every target
type MultiDimensionalResult struct {
	Results         []OptimizationResult          `json:"results"`
	Failures        map[OptimizationTarget]string `json:"failures,omitempty"`
	Recommendations []string                      `json:"recommendations"`
}

var decimalOne = decimal.NewFromInt(1)

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	Tolerance     decimal.Decimal // Bisection stops once the bracket is narrower
	MaxIterations int             // Maximum iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromFloat(0.0001),
		MaxIterations: 60,
	}
}

// BreakEvenError represents errors from the break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
