package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fireplan/internal/compare"
	"github.com/rgehrsitz/fireplan/internal/transform"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [plan-file]",
		Short: "Compare a scenario against variations or other scenarios",
		Long: `Compare a base scenario against built-in templates, ad-hoc transforms or
other scenarios of the same plan.

Examples:
  fireplan compare plan.yaml --with retire_1yr_later,spend_10pct_less
  fireplan compare plan.yaml --base Base --with shift_retirement:years=2
  fireplan compare plan.yaml --base Base --scenarios Frugal,Lavish --format csv
  fireplan compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("plan file required for comparison (use --list-templates to see available templates)")
			}

			cfg, err := loadPlan(args[0])
			if err != nil {
				return err
			}

			base, _ := cmd.Flags().GetString("base")
			with, _ := cmd.Flags().GetString("with")
			scenarios, _ := cmd.Flags().GetStringSlice("scenarios")

			engine := compare.NewCompareEngine(newEngine(cmd))
			var compSet *compare.ComparisonSet
			switch {
			case len(scenarios) > 0:
				compSet, err = engine.CompareScenarios(cmd.Context(), cfg, base, scenarios)
			case with != "":
				templates := transform.ParseTemplateList(with)
				if len(templates) == 0 {
					return fmt.Errorf("no valid templates specified in --with flag")
				}
				compSet, err = engine.Compare(cmd.Context(), cfg, compare.CompareOptions{
					BaseScenarioName: base,
					Templates:        templates,
				})
			default:
				return fmt.Errorf("--with or --scenarios is required (use --list-templates to see available templates)")
			}
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			compSet.ConfigPath = args[0]

			format, _ := cmd.Flags().GetString("format")
			return emitComparison(cmd, compSet, cfg.Name, format)
		},
	}
	cmd.Flags().String("base", "", "Base scenario name (default: first scenario)")
	cmd.Flags().String("with", "", "Comma-separated templates or transform specs (name:key=value)")
	cmd.Flags().StringSlice("scenarios", nil, "Other scenarios of the plan to compare against the base")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json, or a report format such as html)")
	cmd.Flags().Bool("list-templates", false, "List all available scenario templates")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func emitComparison(cmd *cobra.Command, compSet *compare.ComparisonSet, planName, format string) error {
	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "table", "":
		fmt.Fprint(out, (&compare.TableFormatter{}).Format(compSet))
	case "compact":
		fmt.Fprint(out, (&compare.TableFormatter{}).FormatCompact(compSet))
	case "csv":
		data, err := (&compare.CSVFormatter{}).Format(compSet)
		if err != nil {
			return fmt.Errorf("failed to format CSV: %w", err)
		}
		fmt.Fprint(out, data)
	case "json":
		data, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
		if err != nil {
			return fmt.Errorf("failed to format JSON: %w", err)
		}
		fmt.Fprint(out, data)
	default:
		// Any projection report format renders the compared scenarios side by side.
		return emitReport(cmd, compSet.ToProjectionReport(planName), format, "", false)
	}
	return nil
}
