package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats optimization results as a console table
type TableFormatter struct{}

// Format generates a formatted table for an optimization result
func (tf *TableFormatter) Format(result *OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN RESULTS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	sb.WriteString(fmt.Sprintf("Target:              %s\n", result.Request.Target))
	if result.Request.BaseScenario != nil {
		sb.WriteString(fmt.Sprintf("Scenario:            %s\n", result.Request.BaseScenario.Name))
	}
	sb.WriteString(fmt.Sprintf("Balance Floor:       $%s\n", tf.formatCurrency(result.Request.Constraints.Floor)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("SOLVED PARAMETERS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.Multiplier != nil {
		sb.WriteString(fmt.Sprintf("Multiplier:          %s (%s%% of plan)\n",
			result.Multiplier.StringFixed(4), result.Multiplier.Shift(2).StringFixed(1)))
	}
	if result.RetirementAge != nil {
		sb.WriteString(fmt.Sprintf("Retirement Age:      %d\n", *result.RetirementAge))
	}
	if len(result.Amounts) > 0 {
		sb.WriteString(fmt.Sprintf("\n%-20s %9s %15s %15s\n", "Period", "Ages", "Contribution", "Spending"))
		for _, a := range result.Amounts {
			sb.WriteString(fmt.Sprintf("%-20s %9s %15s %15s\n",
				tf.truncate(a.Name, 20),
				fmt.Sprintf("%d-%d", a.StartAge, a.EndAge),
				"$"+tf.formatCurrency(a.MonthlyContribution),
				"$"+tf.formatCurrency(a.MonthlySpending)))
		}
	}
	sb.WriteString("\n")

	sb.WriteString("PROJECTED RESULTS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Final Balance:       $%s\n", tf.formatCurrency(result.FinalBalance)))
	sb.WriteString(fmt.Sprintf("Lowest Balance:      $%s (age %d)\n", tf.formatCurrency(result.MinBalance), result.MinBalanceAge))
	sb.WriteString(fmt.Sprintf("Total Tax:           $%s\n", tf.formatCurrency(result.TotalTax)))
	sb.WriteString("\n")

	if result.BaseSummary != nil {
		sb.WriteString("COMPARISON TO PLAN\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		status := "survives"
		if !result.BaseSurvives {
			status = "falls below the floor"
		}
		sb.WriteString(fmt.Sprintf("Plan as written:     %s\n", status))
		sb.WriteString(fmt.Sprintf("Final Balance Change: %s$%s\n",
			tf.deltaSymbol(result.FinalBalanceDiff), tf.formatShort(result.FinalBalanceDiff.Abs())))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMultiDimensional formats results from solving every target
func (tf *TableFormatter) FormatMultiDimensional(result *MultiDimensionalResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("%-20s %15s %15s %15s\n", "Target", "Solution", "Final Balance", "Lowest Balance"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for _, res := range result.Results {
		solution := "-"
		switch {
		case res.Multiplier != nil:
			solution = "x" + res.Multiplier.StringFixed(3)
		case res.RetirementAge != nil:
			solution = fmt.Sprintf("age %d", *res.RetirementAge)
		}
		sb.WriteString(fmt.Sprintf("%-20s %15s %15s %15s\n",
			tf.truncate(string(res.Request.Target), 20),
			solution,
			"$"+tf.formatShort(res.FinalBalance),
			"$"+tf.formatShort(res.MinBalance)))
	}
	for target, reason := range result.Failures {
		sb.WriteString(fmt.Sprintf("%-20s %s\n", tf.truncate(string(target), 20), reason))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *OptimizationResult) (string, error) {
	return jf.marshal(result)
}

// FormatMultiDimensional formats multi-target results as JSON
func (jf *JSONFormatter) FormatMultiDimensional(result *MultiDimensionalResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		return d.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		return d.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
