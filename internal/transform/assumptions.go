package transform

import (
	"fmt"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Assumption transforms work on the scenario's own overrides, so the scenario
// must be pinned first (see PinAssumptions).

// AdjustReturn shifts the annual return by Delta percentage points, including
// every per-period return override.
type AdjustReturn struct {
	Delta decimal.Decimal
}

func (ar *AdjustReturn) Name() string {
	return "adjust_return"
}

func (ar *AdjustReturn) Description() string {
	return fmt.Sprintf("Shift annual return by %s points", signed(ar.Delta))
}

func (ar *AdjustReturn) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(ar.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if base.AnnualReturn == nil {
		return NewTransformError(ar.Name(), "validate", "scenario has no pinned annual return", nil)
	}
	return nil
}

func (ar *AdjustReturn) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	r := modified.AnnualReturn.Add(ar.Delta)
	modified.AnnualReturn = &r
	for i := range modified.Periods {
		if p := modified.Periods[i].AnnualReturn; p != nil {
			shifted := p.Add(ar.Delta)
			modified.Periods[i].AnnualReturn = &shifted
		}
	}
	return modified, nil
}

// AdjustInflation shifts the inflation rate by Delta percentage points.
type AdjustInflation struct {
	Delta decimal.Decimal
}

func (ai *AdjustInflation) Name() string {
	return "adjust_inflation"
}

func (ai *AdjustInflation) Description() string {
	return fmt.Sprintf("Shift inflation by %s points", signed(ai.Delta))
}

func (ai *AdjustInflation) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(ai.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if base.InflationRate == nil {
		return NewTransformError(ai.Name(), "validate", "scenario has no pinned inflation rate", nil)
	}
	if base.InflationRate.Add(ai.Delta).LessThanOrEqual(decimal.NewFromInt(-100)) {
		return NewTransformError(ai.Name(), "validate", "inflation rate must stay above -100%", nil)
	}
	return nil
}

func (ai *AdjustInflation) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	r := modified.InflationRate.Add(ai.Delta)
	modified.InflationRate = &r
	return modified, nil
}

// SetTax switches the presumptive tax on or off. A nil Rate keeps the
// scenario's current borrowing rate.
type SetTax struct {
	Enabled bool
	Rate    *decimal.Decimal
}

func (st *SetTax) Name() string {
	return "set_tax"
}

func (st *SetTax) Description() string {
	if !st.Enabled {
		return "Disable the presumptive tax"
	}
	if st.Rate != nil {
		return fmt.Sprintf("Enable the presumptive tax at a %s%% borrowing rate", st.Rate.StringFixed(2))
	}
	return "Enable the presumptive tax"
}

func (st *SetTax) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(st.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if st.Rate != nil && st.Rate.IsNegative() {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("rate must be non-negative, got %s", st.Rate), nil)
	}
	if st.Rate == nil && st.Enabled && base.Tax == nil {
		return NewTransformError(st.Name(), "validate", "scenario has no pinned tax policy", nil)
	}
	return nil
}

func (st *SetTax) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	tax := domain.TaxSpec{Enabled: st.Enabled}
	switch {
	case st.Rate != nil:
		tax.GovernmentBorrowingRate = *st.Rate
	case modified.Tax != nil:
		tax.GovernmentBorrowingRate = modified.Tax.GovernmentBorrowingRate
	}
	modified.Tax = &tax
	return modified, nil
}

func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return d.StringFixed(2)
	}
	return "+" + d.StringFixed(2)
}
