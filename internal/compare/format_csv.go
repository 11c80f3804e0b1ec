package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Final Balance",
		"Final Real Balance",
		"Peak Balance",
		"Total Contributions",
		"Total Tax",
		"Max Withdrawal Rate",
		"Longevity (Years)",
		"Depletion Age",
		"Balance Diff from Base",
		"Balance % Change",
		"Real Balance Diff from Base",
		"Longevity Diff",
		"Tax Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	depletion := ""
	if result.DepletionAge != nil {
		depletion = strconv.Itoa(*result.DepletionAge)
	}
	return []string{
		result.ScenarioName,
		scenarioType,
		result.FinalBalance.StringFixed(2),
		result.FinalRealBalance.StringFixed(2),
		result.PeakBalance.StringFixed(2),
		result.TotalContributions.StringFixed(2),
		result.TotalTax.StringFixed(2),
		result.MaxWithdrawalRate.StringFixed(2),
		strconv.Itoa(result.Longevity),
		depletion,
		result.BalanceDiffFromBase.StringFixed(2),
		result.BalancePctFromBase.StringFixed(2),
		result.RealBalanceDiffFromBase.StringFixed(2),
		strconv.Itoa(result.LongevityDiff),
		result.TaxDiffFromBase.StringFixed(2),
	}
}
