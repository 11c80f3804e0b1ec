package transform

import (
	"fmt"
	"sort"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// ShiftRetirement moves the start of drawdown by a number of years. Positive
// values retire later, negative values earlier. The drawdown is the first
// period (by start age) with spending; for a simple plan it is the retirement age.
type ShiftRetirement struct {
	Years int
}

func (sr *ShiftRetirement) Name() string {
	return "shift_retirement"
}

func (sr *ShiftRetirement) Description() string {
	switch {
	case sr.Years > 0:
		return fmt.Sprintf("Retire %d year(s) later", sr.Years)
	case sr.Years < 0:
		return fmt.Sprintf("Retire %d year(s) earlier", -sr.Years)
	}
	return "Keep the retirement age"
}

func (sr *ShiftRetirement) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(sr.Name(), "validate", "base scenario cannot be nil", nil)
	}

	if base.Simple != nil {
		newAge := base.Simple.RetirementAge + sr.Years
		if newAge < base.Simple.CurrentAge {
			return NewTransformError(sr.Name(), "validate",
				fmt.Sprintf("retirement age %d would be before current age %d", newAge, base.Simple.CurrentAge), nil)
		}
		return nil
	}

	order := periodOrder(base.Periods)
	pos := drawdownPosition(base.Periods, order)
	if pos < 0 {
		return NewTransformError(sr.Name(), "validate", "scenario has no period with spending", nil)
	}

	drawdown := base.Periods[order[pos]]
	newStart := drawdown.StartAge + sr.Years
	if newStart < 0 {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("start age %d is negative", newStart), nil)
	}
	if pos > 0 && newStart <= base.Periods[order[pos-1]].StartAge {
		return NewTransformError(sr.Name(), "validate",
			fmt.Sprintf("start age %d would overtake the previous period", newStart), nil)
	}
	if pos+1 < len(order) && newStart >= base.Periods[order[pos+1]].StartAge {
		return NewTransformError(sr.Name(), "validate",
			fmt.Sprintf("start age %d would overtake the next period", newStart), nil)
	}
	if drawdown.EndAge != nil && newStart > *drawdown.EndAge {
		return NewTransformError(sr.Name(), "validate",
			fmt.Sprintf("start age %d is after the period's end age %d", newStart, *drawdown.EndAge), nil)
	}
	return nil
}

func (sr *ShiftRetirement) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()

	if modified.Simple != nil {
		modified.Simple.RetirementAge += sr.Years
		return modified, nil
	}

	order := periodOrder(modified.Periods)
	pos := drawdownPosition(modified.Periods, order)
	if pos < 0 {
		return nil, NewTransformError(sr.Name(), "apply", "scenario has no period with spending", nil)
	}

	drawdown := &modified.Periods[order[pos]]
	oldStart := drawdown.StartAge
	drawdown.StartAge += sr.Years

	// An explicit end on the previous period is kept flush with the drawdown.
	if pos > 0 {
		prev := &modified.Periods[order[pos-1]]
		if prev.EndAge != nil && *prev.EndAge == oldStart {
			end := drawdown.StartAge
			prev.EndAge = &end
		}
	}

	return modified, nil
}

func periodOrder(periods []domain.PeriodSpec) []int {
	order := make([]int, len(periods))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return periods[order[a]].StartAge < periods[order[b]].StartAge
	})
	return order
}

func drawdownPosition(periods []domain.PeriodSpec, order []int) int {
	for pos, idx := range order {
		if periods[idx].MonthlySpending.IsPositive() {
			return pos
		}
	}
	return -1
}
