package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// SensitivityConsoleFormatter renders a parameter sweep as a table.
type SensitivityConsoleFormatter struct{}

func (f SensitivityConsoleFormatter) Format(a *domain.ParameterSensitivityAnalysis) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintf(&buf, "SENSITIVITY ANALYSIS: %s (%s)\n", a.Parameter.Name, a.ScenarioName)
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintf(&buf, "Range: %s to %s in %d steps\n", formatSweepValue(a.Parameter, a.Parameter.MinValue.StringFixed(2)),
		formatSweepValue(a.Parameter, a.Parameter.MaxValue.StringFixed(2)), a.Parameter.Steps)
	fmt.Fprintf(&buf, "Risk Level: %s\n", a.RiskLevel)
	if a.BreakingValue != nil {
		fmt.Fprintf(&buf, "Breaking Value: %s\n", formatSweepValue(a.Parameter, a.BreakingValue.StringFixed(2)))
	} else {
		fmt.Fprintln(&buf, "Breaking Value: none, every point lasts through the horizon")
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-12s %18s %18s %16s %12s\n", "Value", "Final Balance", "Real Balance", "Tax Paid", "Depletion")
	fmt.Fprintln(&buf, strings.Repeat("-", 80))
	for _, r := range a.Results {
		depletion := "-"
		if r.DepletionAge != nil {
			depletion = strconv.Itoa(*r.DepletionAge)
		}
		fmt.Fprintf(&buf, "%-12s %18s %18s %16s %12s\n",
			formatSweepValue(a.Parameter, r.Value.StringFixed(2)),
			FormatCurrency(r.FinalBalance),
			FormatCurrency(r.FinalRealBalance),
			FormatCurrency(r.TotalTaxPaid),
			depletion)
	}
	return buf.Bytes(), nil
}

// SensitivityCSVFormatter writes one row per swept value.
type SensitivityCSVFormatter struct{}

func (f SensitivityCSVFormatter) Format(a *domain.ParameterSensitivityAnalysis) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Parameter", "Value", "FinalBalance", "FinalRealBalance", "TotalTaxPaid", "DepletionAge", "Longevity"}); err != nil {
		return nil, err
	}
	for _, r := range a.Results {
		depletion := ""
		if r.DepletionAge != nil {
			depletion = strconv.Itoa(*r.DepletionAge)
		}
		row := []string{
			a.Parameter.Name,
			r.Value.String(),
			fixed(r.FinalBalance),
			fixed(r.FinalRealBalance),
			fixed(r.TotalTaxPaid),
			depletion,
			strconv.Itoa(r.Longevity),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatSweepValue(p domain.SensitivityParameter, v string) string {
	if p.Unit == "factor" {
		return v + "x"
	}
	return v + "%"
}
