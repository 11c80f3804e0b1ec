package domain

// YearlyBalance is one snapshot of the projection at a whole year of age.
type YearlyBalance struct {
	Age            int     `json:"age"`
	Balance        float64 `json:"balance"`
	RealBalance    float64 `json:"realBalance"`
	Contributions  float64 `json:"contributions"`
	Growth         float64 `json:"growth"`
	WithdrawalRate float64 `json:"withdrawalRate"` // percent of balance, annualized
	TaxPaid        float64 `json:"taxPaid"`        // cumulative
}

// IsDepleted reports whether the balance has gone negative.
func (y YearlyBalance) IsDepleted() bool {
	return y.Balance < 0
}

// ProjectionSummary provides the key metrics of a single projection
type ProjectionSummary struct {
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Input              ProjectionInput `json:"input"`
	StartAge           int             `json:"startAge"`
	InitialBalance     float64         `json:"initialBalance"`
	FinalBalance       float64         `json:"finalBalance"`
	FinalRealBalance   float64         `json:"finalRealBalance"`
	PeakBalance        float64         `json:"peakBalance"`
	PeakAge            int             `json:"peakAge"`
	TotalContributions float64         `json:"totalContributions"`
	TotalTaxPaid       float64         `json:"totalTaxPaid"`
	MaxWithdrawalRate  float64         `json:"maxWithdrawalRate"`
	// DepletionAge is the first snapshot age with a negative balance, nil when
	// the money lasts through the horizon.
	DepletionAge *int `json:"depletionAge,omitempty"`
	// Longevity counts the snapshots before depletion.
	Longevity       int             `json:"longevity"`
	RegimeStartAges []int           `json:"regimeStartAges"`
	Projection      []YearlyBalance `json:"projection"`
}

// IsRegimeStart reports whether age coincides with the start of a regime.
func (s *ProjectionSummary) IsRegimeStart(age int) bool {
	for _, a := range s.RegimeStartAges {
		if a == age {
			return true
		}
	}
	return false
}

// Survives reports whether the balance stays non-negative through the horizon.
func (s *ProjectionSummary) Survives() bool {
	return s.DepletionAge == nil
}

// ProjectionReport groups the projections rendered together by the output formatters
type ProjectionReport struct {
	PlanName    string              `json:"planName"`
	Scenarios   []ProjectionSummary `json:"scenarios"`
	Assumptions []string            `json:"assumptions"`
}

// ScenarioInput is a named, fully resolved projection input
type ScenarioInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Input       ProjectionInput `json:"input"`
}
