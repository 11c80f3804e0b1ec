package domain

import (
	"github.com/shopspring/decimal"
)

// Configuration is the top-level plan file
type Configuration struct {
	Name              string            `yaml:"name" json:"name"`
	GlobalAssumptions GlobalAssumptions `yaml:"global_assumptions" json:"globalAssumptions"`
	Scenarios         []Scenario        `yaml:"scenarios" json:"scenarios"`
}

// GlobalAssumptions holds the economic assumptions shared by every scenario.
// Rates are percentages.
type GlobalAssumptions struct {
	AnnualReturn  decimal.Decimal `yaml:"annual_return" json:"annualReturn" env:"ANNUAL_RETURN"`
	InflationRate decimal.Decimal `yaml:"inflation_rate" json:"inflationRate" env:"INFLATION_RATE"`
	HorizonAge    int             `yaml:"horizon_age" json:"horizonAge" env:"HORIZON_AGE"`
	Tax           TaxSpec         `yaml:"tax" json:"tax"`
}

// TaxSpec is the plan-file form of TaxPolicy.
type TaxSpec struct {
	Enabled                 bool            `yaml:"enabled" json:"enabled" env:"TAX_ENABLED"`
	GovernmentBorrowingRate decimal.Decimal `yaml:"government_borrowing_rate" json:"governmentBorrowingRate" env:"GOVERNMENT_BORROWING_RATE"`
}

// Policy converts the plan-file tax settings to the engine's representation.
func (t TaxSpec) Policy() TaxPolicy {
	return TaxPolicy{
		Enabled:                 t.Enabled,
		GovernmentBorrowingRate: t.GovernmentBorrowingRate.InexactFloat64(),
	}
}

// DefaultAssumptions returns the documented defaults: 7% return, no
// inflation, horizon at age 90, tax disabled.
func DefaultAssumptions() GlobalAssumptions {
	return GlobalAssumptions{
		AnnualReturn:  decimal.NewFromInt(7),
		InflationRate: decimal.Zero,
		HorizonAge:    90,
		Tax: TaxSpec{
			Enabled:                 false,
			GovernmentBorrowingRate: decimal.NewFromFloat(2.5),
		},
	}
}

// Scenario is one named set of periods projected against the global assumptions.
// The optional fields override the matching global assumption for this scenario only.
type Scenario struct {
	Name           string          `yaml:"name" json:"name"`
	Description    string          `yaml:"description,omitempty" json:"description,omitempty"`
	InitialBalance decimal.Decimal `yaml:"initial_balance" json:"initialBalance"`

	AnnualReturn  *decimal.Decimal `yaml:"annual_return,omitempty" json:"annualReturn,omitempty"`
	InflationRate *decimal.Decimal `yaml:"inflation_rate,omitempty" json:"inflationRate,omitempty"`
	HorizonAge    *int             `yaml:"horizon_age,omitempty" json:"horizonAge,omitempty"`
	Tax           *TaxSpec         `yaml:"tax,omitempty" json:"tax,omitempty"`

	// Periods and Simple are mutually exclusive.
	Periods []PeriodSpec `yaml:"periods,omitempty" json:"periods,omitempty"`
	Simple  *SimplePlan  `yaml:"simple,omitempty" json:"simple,omitempty"`
}

// PeriodSpec is the plan-file form of a Regime. EndAge is normally left empty
// and stitched to the next period's start age.
type PeriodSpec struct {
	Name                string           `yaml:"name,omitempty" json:"name,omitempty"`
	StartAge            int              `yaml:"start_age" json:"startAge"`
	EndAge              *int             `yaml:"end_age,omitempty" json:"endAge,omitempty"`
	MonthlyContribution decimal.Decimal  `yaml:"monthly_contribution" json:"monthlyContribution"`
	MonthlySpending     decimal.Decimal  `yaml:"monthly_spending" json:"monthlySpending"`
	AnnualReturn        *decimal.Decimal `yaml:"annual_return,omitempty" json:"annualReturn,omitempty"`
}

// SimplePlan is the two-phase shorthand: save until retirement, then spend.
type SimplePlan struct {
	CurrentAge          int             `yaml:"current_age" json:"currentAge"`
	RetirementAge       int             `yaml:"retirement_age" json:"retirementAge"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution" json:"monthlyContribution"`
	MonthlySpending     decimal.Decimal `yaml:"monthly_spending" json:"monthlySpending"`
}

// FindScenario returns the scenario with the given name, or nil.
func (c *Configuration) FindScenario(name string) *Scenario {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i]
		}
	}
	return nil
}

// DeepCopy creates a deep copy of the scenario
func (s *Scenario) DeepCopy() *Scenario {
	if s == nil {
		return nil
	}
	out := *s
	out.AnnualReturn = copyDecimalPtr(s.AnnualReturn)
	out.InflationRate = copyDecimalPtr(s.InflationRate)
	if s.HorizonAge != nil {
		h := *s.HorizonAge
		out.HorizonAge = &h
	}
	if s.Tax != nil {
		t := *s.Tax
		out.Tax = &t
	}
	if s.Simple != nil {
		sp := *s.Simple
		out.Simple = &sp
	}
	if s.Periods != nil {
		out.Periods = make([]PeriodSpec, len(s.Periods))
		for i, p := range s.Periods {
			out.Periods[i] = p
			out.Periods[i].AnnualReturn = copyDecimalPtr(p.AnnualReturn)
			if p.EndAge != nil {
				e := *p.EndAge
				out.Periods[i].EndAge = &e
			}
		}
	}
	return &out
}

func copyDecimalPtr(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
