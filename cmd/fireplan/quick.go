package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/fireplan/internal/calculation"
	"github.com/rgehrsitz/fireplan/internal/domain"
)

func quickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quick",
		Short: "Project a save-then-spend plan without a plan file",
		Long: `Project a two-regime plan straight from flags: contribute from the current
age until retirement, then spend until the horizon.

Example:
  fireplan quick --current-age 35 --retirement-age 55 --balance 50000 \
    --contribution 2000 --spending 4000 --return 6 --inflation 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			currentAge, _ := flags.GetInt("current-age")
			retirementAge, _ := flags.GetInt("retirement-age")
			horizonAge, _ := flags.GetInt("horizon-age")
			balance, _ := flags.GetFloat64("balance")
			contribution, _ := flags.GetFloat64("contribution")
			spending, _ := flags.GetFloat64("spending")
			annualReturn, _ := flags.GetFloat64("return")
			inflation, _ := flags.GetFloat64("inflation")
			taxEnabled, _ := flags.GetBool("tax")
			borrowingRate, _ := flags.GetFloat64("borrowing-rate")

			if retirementAge < currentAge {
				return fmt.Errorf("retirement age %d is before current age %d", retirementAge, currentAge)
			}
			if contribution < 0 || spending < 0 {
				return fmt.Errorf("contribution and spending cannot be negative")
			}

			in := domain.ProjectionInput{
				InitialBalance: balance,
				Regimes:        calculation.TwoPhaseRegimes(currentAge, retirementAge, horizonAge, contribution, spending),
				AnnualReturn:   annualReturn,
				HorizonAge:     horizonAge,
				InflationRate:  inflation,
				Tax:            domain.TaxPolicy{Enabled: taxEnabled, GovernmentBorrowingRate: borrowingRate},
			}

			report, err := newEngine(cmd).RunScenarios(cmd.Context(), "Quick projection", []domain.ScenarioInput{{
				Name:  "Quick",
				Input: in,
			}})
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			return emitReport(cmd, report, format, "", false)
		},
	}

	defaults := domain.DefaultAssumptions()
	cmd.Flags().Int("current-age", 30, "Age today")
	cmd.Flags().Int("retirement-age", 65, "Age at which contributions stop and spending starts")
	cmd.Flags().Int("horizon-age", defaults.HorizonAge, "Last age projected")
	cmd.Flags().Float64("balance", 0, "Balance today")
	cmd.Flags().Float64("contribution", 0, "Monthly contribution until retirement")
	cmd.Flags().Float64("spending", 0, "Monthly spending in retirement, in today's money")
	cmd.Flags().Float64("return", defaults.AnnualReturn.InexactFloat64(), "Annual return, percent")
	cmd.Flags().Float64("inflation", defaults.InflationRate.InexactFloat64(), "Annual inflation, percent")
	cmd.Flags().Bool("tax", defaults.Tax.Enabled, "Charge the yearly presumptive tax")
	cmd.Flags().Float64("borrowing-rate", defaults.Tax.GovernmentBorrowingRate.InexactFloat64(), "Government borrowing rate for the tax, percent")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, csv, json, html)")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}
