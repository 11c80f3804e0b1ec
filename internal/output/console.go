package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// ConsoleFormatter renders a fixed-width year-by-year table per scenario.
// Rows where a regime starts are marked with '*'.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer

	title := "LIFETIME PROJECTION"
	if report.PlanName != "" {
		title += ": " + report.PlanName
	}
	fmt.Fprintln(&buf, strings.Repeat("=", 104))
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", 104))

	if len(report.Assumptions) > 0 {
		fmt.Fprintln(&buf, "ASSUMPTIONS:")
		for _, a := range report.Assumptions {
			fmt.Fprintf(&buf, "  • %s\n", a)
		}
		fmt.Fprintln(&buf)
	}

	for i := range report.Scenarios {
		writeScenario(&buf, &report.Scenarios[i])
	}

	return buf.Bytes(), nil
}

func writeScenario(buf *bytes.Buffer, s *domain.ProjectionSummary) {
	fmt.Fprintf(buf, "SCENARIO: %s\n", s.Name)
	if s.Description != "" {
		fmt.Fprintf(buf, "%s\n", s.Description)
	}
	fmt.Fprintln(buf, strings.Repeat("-", 104))

	fmt.Fprintf(buf, "  Final Balance:        %s (%s in today's money)\n", FormatCurrency(s.FinalBalance), FormatCurrency(s.FinalRealBalance))
	fmt.Fprintf(buf, "  Peak Balance:         %s at age %d\n", FormatCurrency(s.PeakBalance), s.PeakAge)
	fmt.Fprintf(buf, "  Total Contributions:  %s\n", FormatCurrency(s.TotalContributions))
	fmt.Fprintf(buf, "  Total Tax Paid:       %s\n", FormatCurrency(s.TotalTaxPaid))
	fmt.Fprintf(buf, "  Max Withdrawal Rate:  %s\n", FormatPercentage(s.MaxWithdrawalRate))
	if s.Survives() {
		fmt.Fprintf(buf, "  Longevity:            lasts through age %d\n", s.Input.HorizonAge)
	} else {
		fmt.Fprintf(buf, "  Longevity:            depleted at age %d (%d years)\n", *s.DepletionAge, s.Longevity)
	}
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-6s %16s %16s %16s %16s %10s %16s\n",
		"Age", "Balance", "Real Balance", "Contributions", "Growth", "W/D Rate", "Tax Paid")
	fmt.Fprintln(buf, strings.Repeat("-", 104))
	for _, y := range s.Projection {
		age := fmt.Sprintf("%d", y.Age)
		if s.IsRegimeStart(y.Age) {
			age += "*"
		}
		fmt.Fprintf(buf, "%-6s %16s %16s %16s %16s %10s %16s\n",
			age,
			FormatCurrency(y.Balance),
			FormatCurrency(y.RealBalance),
			FormatCurrency(y.Contributions),
			FormatCurrency(y.Growth),
			FormatPercentage(y.WithdrawalRate),
			FormatCurrency(y.TaxPaid))
	}
	fmt.Fprintln(buf, "* regime starts at this age")
	fmt.Fprintln(buf)
}
