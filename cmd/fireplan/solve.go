package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fireplan/internal/breakeven"
	"github.com/rgehrsitz/fireplan/internal/domain"
)

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [plan-file]",
		Short: "Find the safe spending, contribution or retirement age",
		Long: `Search for the parameter value that keeps the balance at or above a floor
through the horizon.

Targets:
  max_spending      largest multiplier on spending
  min_contribution  smallest multiplier on contributions
  retirement_age    earliest start of the first drawdown period
  all               every target above`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadPlan(args[0])
			if err != nil {
				return err
			}

			scenarioName, _ := cmd.Flags().GetString("scenario")
			scenario, err := pickScenario(cfg, scenarioName)
			if err != nil {
				return err
			}

			targetName, _ := cmd.Flags().GetString("target")
			target, err := breakeven.ParseTarget(targetName)
			if err != nil {
				return err
			}

			floorRaw, _ := cmd.Flags().GetString("floor")
			floor, err := decimal.NewFromString(floorRaw)
			if err != nil {
				return fmt.Errorf("invalid --floor value %q: %w", floorRaw, err)
			}
			constraints := breakeven.DefaultConstraints()
			constraints.Floor = floor

			solver := breakeven.NewDefaultSolver(newEngine(cmd))
			format, _ := cmd.Flags().GetString("format")
			out := cmd.OutOrStdout()

			if target == breakeven.TargetAll {
				result, err := solver.OptimizeAll(cmd.Context(), scenario, cfg, constraints)
				if err != nil {
					return err
				}
				if format == "json" {
					data, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(result)
					if err != nil {
						return err
					}
					fmt.Fprint(out, data)
					return nil
				}
				fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatMultiDimensional(result))
				return nil
			}

			result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
				BaseScenario:  scenario,
				Config:        cfg,
				Target:        target,
				Constraints:   constraints,
				MaxIterations: solver.Options.MaxIterations,
				Tolerance:     solver.Options.Tolerance,
			})
			if err != nil {
				return err
			}
			if format == "json" {
				data, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprint(out, data)
				return nil
			}
			fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
			return nil
		},
	}
	cmd.Flags().String("scenario", "", "Scenario to solve (default: first scenario)")
	cmd.Flags().String("target", string(breakeven.TargetAll), "max_spending, min_contribution, retirement_age or all")
	cmd.Flags().String("floor", "0", "Lowest balance allowed at any age")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func pickScenario(cfg *domain.Configuration, name string) (*domain.Scenario, error) {
	if name == "" {
		return &cfg.Scenarios[0], nil
	}
	if s := cfg.FindScenario(name); s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("scenario %s not found in configuration", name)
}
