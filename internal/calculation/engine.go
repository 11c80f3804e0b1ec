package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

// ErrInvalidInput is returned when a projection cannot be started, e.g. when
// no regime is supplied to derive a start age from.
var ErrInvalidInput = errors.New("invalid projection input")

// Logger is the minimal logging surface the engine needs
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// CalculationEngine runs projections and derives their summaries. It holds no
// per-projection state, so a single engine may be shared between goroutines.
type CalculationEngine struct {
	Logger Logger
	Debug  bool // Enable debug output for detailed calculations
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{Logger: NopLogger{}}
}

// SetLogger replaces the engine's logger; nil installs a NopLogger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// Project runs the monthly projection and logs the resolved timeline.
func (ce *CalculationEngine) Project(in domain.ProjectionInput) ([]domain.YearlyBalance, error) {
	log := ce.logger()

	projection, err := Project(in)
	if err != nil {
		log.Errorf("projection failed: %v", err)
		return nil, err
	}

	if ce.Debug {
		regimes := sortRegimes(in.Regimes)
		log.Debugf("timeline: start age %d, horizon %d, %d regimes, return %.2f%%, inflation %.2f%%",
			regimes[0].StartAge, in.HorizonAge, len(regimes), in.AnnualReturn, in.InflationRate)
		for _, r := range regimes {
			log.Debugf("  %s: +%.2f/month, -%.2f/month, return %.2f%%",
				r, r.MonthlyContribution, r.MonthlySpending, r.ReturnRate(in.AnnualReturn))
		}
	}
	for _, overlap := range findOverlaps(in.Regimes) {
		log.Warnf("overlapping regimes, earliest start wins: %s", overlap)
	}
	if in.HorizonAge <= projection[0].Age {
		log.Warnf("horizon age %d is not after start age %d; returning the initial snapshot only",
			in.HorizonAge, projection[0].Age)
	}

	return projection, nil
}

// RunScenario projects a named scenario and summarizes the result
func (ce *CalculationEngine) RunScenario(ctx context.Context, scenario domain.ScenarioInput) (*domain.ProjectionSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	projection, err := ce.Project(scenario.Input)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	summary := Summarize(scenario.Name, scenario.Input, projection)
	summary.Description = scenario.Description
	if summary.DepletionAge != nil {
		ce.logger().Infof("scenario %s: balance depleted at age %d", scenario.Name, *summary.DepletionAge)
	}
	return summary, nil
}

// RunScenarios projects every scenario in order and collects them into a report
func (ce *CalculationEngine) RunScenarios(ctx context.Context, planName string, scenarios []domain.ScenarioInput) (*domain.ProjectionReport, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios to project")
	}

	report := &domain.ProjectionReport{
		PlanName:    planName,
		Scenarios:   make([]domain.ProjectionSummary, 0, len(scenarios)),
		Assumptions: DescribeAssumptions(scenarios[0].Input),
	}
	for _, sc := range scenarios {
		summary, err := ce.RunScenario(ctx, sc)
		if err != nil {
			return nil, err
		}
		report.Scenarios = append(report.Scenarios, *summary)
	}
	return report, nil
}

// DescribeAssumptions renders the global assumptions of an input as
// human-readable lines for reports.
func DescribeAssumptions(in domain.ProjectionInput) []string {
	lines := []string{
		fmt.Sprintf("Annual return: %.2f%% (compounded monthly)", in.AnnualReturn),
		fmt.Sprintf("Inflation: %.2f%% annually, applied to spending monthly", in.InflationRate),
		fmt.Sprintf("Horizon age: %d", in.HorizonAge),
	}
	if in.Tax.Enabled {
		lines = append(lines, fmt.Sprintf("Presumptive tax: %.0f%% of balance x %.2f%% reference rate, charged yearly",
			PresumptiveTaxShare*100, in.Tax.GovernmentBorrowingRate))
	} else {
		lines = append(lines, "Presumptive tax: disabled")
	}
	return lines
}
