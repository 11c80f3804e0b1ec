package domain

import "github.com/shopspring/decimal"

// SensitivityParameter defines a single parameter sweep
type SensitivityParameter struct {
	Name     string          `yaml:"name" json:"name"`
	MinValue decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps    int             `yaml:"steps" json:"steps"`
	Unit     string          `yaml:"unit" json:"unit"` // "percent" or "factor"
}

// SensitivityResult is the outcome of one point of a sweep
type SensitivityResult struct {
	Value            decimal.Decimal `json:"value"`
	FinalBalance     float64         `json:"finalBalance"`
	FinalRealBalance float64         `json:"finalRealBalance"`
	TotalTaxPaid     float64         `json:"totalTaxPaid"`
	DepletionAge     *int            `json:"depletionAge,omitempty"`
	Longevity        int             `json:"longevity"`
}

// ParameterSensitivityAnalysis represents a complete single-parameter sweep
type ParameterSensitivityAnalysis struct {
	ScenarioName string               `json:"scenarioName"`
	Parameter    SensitivityParameter `json:"parameter"`
	Results      []SensitivityResult  `json:"results"`
	// BreakingValue is the first swept value at which the balance depletes
	// before the horizon, nil when every point survives.
	BreakingValue *decimal.Decimal `json:"breakingValue,omitempty"`
	RiskLevel     string           `json:"riskLevel"` // "LOW", "MEDIUM", "HIGH"
}

// DetermineRiskLevel classifies a sweep by the share of points that deplete.
func (a *ParameterSensitivityAnalysis) DetermineRiskLevel() string {
	if len(a.Results) == 0 {
		return "LOW"
	}
	depleted := 0
	for _, r := range a.Results {
		if r.DepletionAge != nil {
			depleted++
		}
	}
	share := float64(depleted) / float64(len(a.Results))
	switch {
	case share == 0:
		return "LOW"
	case share < 0.5:
		return "MEDIUM"
	default:
		return "HIGH"
	}
}
