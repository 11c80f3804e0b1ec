package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fireplan/internal/config"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/output"
)

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [plan-file]",
		Short: "Project every scenario of a plan year by year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadPlan(args[0])
			if err != nil {
				return err
			}

			names, _ := cmd.Flags().GetStringSlice("scenario")
			inputs, err := selectScenarios(cfg, names)
			if err != nil {
				return err
			}

			report, err := newEngine(cmd).RunScenarios(cmd.Context(), cfg.Name, inputs)
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			outPath, _ := cmd.Flags().GetString("output")
			save, _ := cmd.Flags().GetBool("save")
			return emitReport(cmd, report, format, outPath, save)
		},
	}
	cmd.Flags().StringSlice("scenario", nil, "Scenario names to project (default: all)")
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file in the working directory")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func selectScenarios(cfg *domain.Configuration, names []string) ([]domain.ScenarioInput, error) {
	if len(names) == 0 {
		return config.ResolveAll(cfg)
	}
	inputs := make([]domain.ScenarioInput, 0, len(names))
	for _, name := range names {
		in, err := config.ResolveScenarioByName(cfg, name)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// emitReport renders report with the named formatter to stdout, a file, or
// a timestamped file.
func emitReport(cmd *cobra.Command, report *domain.ProjectionReport, format, outPath string, save bool) error {
	f := output.GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unknown output format %q (valid: %s; aliases: %s)", format,
			strings.Join(output.AvailableFormatterNames(), ", "),
			strings.Join(output.AvailableFormatAliases(), ", "))
	}

	switch {
	case outPath != "":
		if err := output.WriteToFile(f, report, outPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outPath)
	case save:
		name, err := output.WriteFormatted(f, report, extension(f.Name()))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", name)
	default:
		data, err := f.Format(report)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
	}
	return nil
}

func extension(formatter string) string {
	if formatter == "console" {
		return "txt"
	}
	return formatter
}
