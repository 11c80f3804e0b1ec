package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fireplan/internal/calculation"
	"github.com/rgehrsitz/fireplan/internal/config"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/output"
)

// sweepDefaults are the ranges used when --min or --max is omitted.
var sweepDefaults = map[string]domain.SensitivityParameter{
	calculation.ParamAnnualReturn: {
		MinValue: decimal.NewFromInt(3), MaxValue: decimal.NewFromInt(9), Unit: "percent",
	},
	calculation.ParamInflationRate: {
		MinValue: decimal.Zero, MaxValue: decimal.NewFromInt(5), Unit: "percent",
	},
	calculation.ParamSpendingScale: {
		MinValue: decimal.NewFromFloat(0.5), MaxValue: decimal.NewFromFloat(1.5), Unit: "factor",
	},
	calculation.ParamContributionScale: {
		MinValue: decimal.NewFromFloat(0.5), MaxValue: decimal.NewFromFloat(1.5), Unit: "factor",
	},
}

func sensitivityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensitivity [plan-file]",
		Short: "Sweep one assumption and report how the outcome moves",
		Long: `Sweep one parameter across a range and project the scenario at each point.

Parameters: annual_return, inflation_rate (percent), spending_scale,
contribution_scale (multipliers on every regime).

Examples:
  fireplan sensitivity plan.yaml --parameter annual_return --min 2 --max 8 --steps 7
  fireplan sensitivity plan.yaml --scenario Base --parameter spending_scale --format csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadPlan(args[0])
			if err != nil {
				return err
			}

			scenarioName, _ := cmd.Flags().GetString("scenario")
			scenario, err := config.ResolveScenarioByName(cfg, scenarioName)
			if err != nil {
				return err
			}

			param, err := sweepParameter(cmd)
			if err != nil {
				return err
			}

			analyzer := calculation.NewSensitivityAnalyzer(newEngine(cmd))
			analysis, err := analyzer.AnalyzeParameter(cmd.Context(), scenario, param)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			var data []byte
			switch format {
			case "table", "console":
				data, err = output.SensitivityConsoleFormatter{}.Format(analysis)
			case "csv":
				data, err = output.SensitivityCSVFormatter{}.Format(analysis)
			default:
				return fmt.Errorf("unknown output format %q (valid: table, csv)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().String("scenario", "", "Scenario to analyze (default: first scenario)")
	cmd.Flags().String("parameter", calculation.ParamAnnualReturn, "Parameter to sweep")
	cmd.Flags().String("min", "", "Lowest value of the sweep")
	cmd.Flags().String("max", "", "Highest value of the sweep")
	cmd.Flags().Int("steps", 5, "Number of points in the sweep")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv)")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

// sweepParameter builds the sweep from flags, filling in the default range
// of the parameter.
func sweepParameter(cmd *cobra.Command) (domain.SensitivityParameter, error) {
	name, _ := cmd.Flags().GetString("parameter")
	param, ok := sweepDefaults[name]
	if !ok {
		return param, fmt.Errorf("unknown sensitivity parameter: %s", name)
	}
	param.Name = name
	param.Steps, _ = cmd.Flags().GetInt("steps")
	if param.Steps < 1 {
		return param, fmt.Errorf("--steps must be at least 1, got %d", param.Steps)
	}

	for flag, target := range map[string]*decimal.Decimal{"min": &param.MinValue, "max": &param.MaxValue} {
		raw, _ := cmd.Flags().GetString(flag)
		if raw == "" {
			continue
		}
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return param, fmt.Errorf("invalid --%s value %q: %w", flag, raw, err)
		}
		*target = v
	}
	return param, nil
}
