package transform

import (
	"fmt"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ScaleSpending multiplies the monthly spending of every period.
// A factor of 0.9 spends 10% less.
type ScaleSpending struct {
	Factor decimal.Decimal
}

func (ss *ScaleSpending) Name() string {
	return "scale_spending"
}

func (ss *ScaleSpending) Description() string {
	return fmt.Sprintf("Scale monthly spending by %s", ss.Factor.StringFixed(2))
}

func (ss *ScaleSpending) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(ss.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if ss.Factor.IsNegative() {
		return NewTransformError(ss.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", ss.Factor), nil)
	}
	return nil
}

func (ss *ScaleSpending) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	for i := range modified.Periods {
		modified.Periods[i].MonthlySpending = modified.Periods[i].MonthlySpending.Mul(ss.Factor)
	}
	if modified.Simple != nil {
		modified.Simple.MonthlySpending = modified.Simple.MonthlySpending.Mul(ss.Factor)
	}
	return modified, nil
}

// ScaleContribution multiplies the monthly contribution of every period.
type ScaleContribution struct {
	Factor decimal.Decimal
}

func (sc *ScaleContribution) Name() string {
	return "scale_contribution"
}

func (sc *ScaleContribution) Description() string {
	return fmt.Sprintf("Scale monthly contributions by %s", sc.Factor.StringFixed(2))
}

func (sc *ScaleContribution) Validate(base *domain.Scenario) error {
	if base == nil {
		return NewTransformError(sc.Name(), "validate", "base scenario cannot be nil", nil)
	}
	if sc.Factor.IsNegative() {
		return NewTransformError(sc.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", sc.Factor), nil)
	}
	return nil
}

func (sc *ScaleContribution) Apply(base *domain.Scenario) (*domain.Scenario, error) {
	modified := base.DeepCopy()
	for i := range modified.Periods {
		modified.Periods[i].MonthlyContribution = modified.Periods[i].MonthlyContribution.Mul(sc.Factor)
	}
	if modified.Simple != nil {
		modified.Simple.MonthlyContribution = modified.Simple.MonthlyContribution.Mul(sc.Factor)
	}
	return modified, nil
}
