package domain

import "fmt"

// Regime is a contiguous age interval [StartAge, EndAge) with its own cash flows
// and an optional return-rate override. Rates are percentages (7 means 7%).
type Regime struct {
	Name                string   `json:"name,omitempty"`
	StartAge            int      `json:"startAge"`
	EndAge              int      `json:"endAge"`
	MonthlyContribution float64  `json:"monthlyContribution"`
	MonthlySpending     float64  `json:"monthlySpending"`
	AnnualReturn        *float64 `json:"annualReturn,omitempty"`
}

// Contains reports whether the fractional age falls inside [StartAge, EndAge).
func (r Regime) Contains(age float64) bool {
	return age >= float64(r.StartAge) && age < float64(r.EndAge)
}

// Months returns the number of whole months the regime spans. Zero-length and
// inverted regimes span no months.
func (r Regime) Months() int {
	if r.EndAge <= r.StartAge {
		return 0
	}
	return (r.EndAge - r.StartAge) * 12
}

// ReturnRate returns the regime's override rate, or fallback when none is set.
func (r Regime) ReturnRate(fallback float64) float64 {
	if r.AnnualReturn != nil {
		return *r.AnnualReturn
	}
	return fallback
}

func (r Regime) String() string {
	label := r.Name
	if label == "" {
		label = "period"
	}
	return fmt.Sprintf("%s [%d, %d)", label, r.StartAge, r.EndAge)
}

// TaxPolicy describes a presumptive (ISK-style) tax charged once a year on a
// notional yield of the whole balance.
type TaxPolicy struct {
	Enabled bool `json:"enabled"`
	// GovernmentBorrowingRate is the reference rate in percent used to derive
	// the notional yield.
	GovernmentBorrowingRate float64 `json:"governmentBorrowingRate"`
}

// ProjectionInput is the fully resolved parameter set for one projection run.
type ProjectionInput struct {
	InitialBalance float64   `json:"initialBalance"`
	Regimes        []Regime  `json:"regimes"`
	AnnualReturn   float64   `json:"annualReturn"`
	HorizonAge     int       `json:"horizonAge"`
	InflationRate  float64   `json:"inflationRate"`
	Tax            TaxPolicy `json:"tax"`
}

// Clone returns a copy of the input that shares no memory with the original.
func (in ProjectionInput) Clone() ProjectionInput {
	out := in
	out.Regimes = make([]Regime, len(in.Regimes))
	for i, r := range in.Regimes {
		out.Regimes[i] = r
		if r.AnnualReturn != nil {
			rate := *r.AnnualReturn
			out.Regimes[i].AnnualReturn = &rate
		}
	}
	return out
}
