package calculation

import (
	"context"
	"fmt"
	"testing"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLogger records every message it receives
type TestLogger struct {
	Messages []string
}

func (l *TestLogger) Debugf(format string, args ...any) { l.record("DEBUG", format, args...) }
func (l *TestLogger) Infof(format string, args ...any)  { l.record("INFO", format, args...) }
func (l *TestLogger) Warnf(format string, args ...any)  { l.record("WARN", format, args...) }
func (l *TestLogger) Errorf(format string, args ...any) { l.record("ERROR", format, args...) }

func (l *TestLogger) record(level, format string, args ...any) {
	l.Messages = append(l.Messages, level+": "+fmt.Sprintf(format, args...))
}

func (l *TestLogger) count(prefix string) int {
	n := 0
	for _, m := range l.Messages {
		if len(m) >= len(prefix) && m[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func TestNewCalculationEngine(t *testing.T) {
	engine := NewCalculationEngine()

	assert.NotNil(t, engine, "Should create engine")
	assert.NotNil(t, engine.Logger, "Should initialize logger")
	assert.False(t, engine.Debug)
}

func TestCalculationEngine_SetLogger(t *testing.T) {
	engine := NewCalculationEngine()

	customLogger := &TestLogger{}
	engine.SetLogger(customLogger)
	assert.Equal(t, customLogger, engine.Logger, "Should set custom logger")

	engine.SetLogger(nil)
	assert.NotNil(t, engine.Logger, "Should not be nil")
	assert.IsType(t, NopLogger{}, engine.Logger, "Should be no-op logger")
}

func TestCalculationEngine_ZeroValueIsUsable(t *testing.T) {
	engine := &CalculationEngine{}

	projection, err := engine.Project(lifecycleInput(0, false))
	require.NoError(t, err)
	assert.Len(t, projection, 61)
}

func TestCalculationEngine_Project_LogsTimeline(t *testing.T) {
	logger := &TestLogger{}
	engine := NewCalculationEngine()
	engine.SetLogger(logger)
	engine.Debug = true

	_, err := engine.Project(lifecycleInput(2, false))
	require.NoError(t, err)

	assert.Equal(t, 4, logger.count("DEBUG"), "timeline line plus one line per regime")
	assert.Zero(t, logger.count("WARN"))
}

func TestCalculationEngine_Project_WarnsOnOverlap(t *testing.T) {
	logger := &TestLogger{}
	engine := NewCalculationEngine()
	engine.SetLogger(logger)

	_, err := engine.Project(domain.ProjectionInput{
		Regimes: []domain.Regime{
			{StartAge: 30, EndAge: 40},
			{StartAge: 35, EndAge: 45},
		},
		HorizonAge: 45,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, logger.count("WARN"))
	assert.Zero(t, logger.count("DEBUG"), "debug output is off by default")
}

func TestCalculationEngine_Project_WarnsOnDegenerateHorizon(t *testing.T) {
	logger := &TestLogger{}
	engine := NewCalculationEngine()
	engine.SetLogger(logger)

	projection, err := engine.Project(domain.ProjectionInput{
		InitialBalance: 100,
		Regimes:        []domain.Regime{{StartAge: 50, EndAge: 60}},
		HorizonAge:     40,
	})
	require.NoError(t, err)

	assert.Len(t, projection, 1)
	assert.Equal(t, 1, logger.count("WARN"))
}

func TestCalculationEngine_Project_LogsErrors(t *testing.T) {
	logger := &TestLogger{}
	engine := NewCalculationEngine()
	engine.SetLogger(logger)

	_, err := engine.Project(domain.ProjectionInput{HorizonAge: 90})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 1, logger.count("ERROR"))
}

func TestCalculationEngine_RunScenario(t *testing.T) {
	engine := NewCalculationEngine()

	summary, err := engine.RunScenario(context.Background(), domain.ScenarioInput{
		Name:        "lifecycle",
		Description: "work, coast, retire",
		Input:       lifecycleInput(2, true),
	})
	require.NoError(t, err)

	assert.Equal(t, "lifecycle", summary.Name)
	assert.Equal(t, "work, coast, retire", summary.Description)
	assert.Equal(t, 30, summary.StartAge)
	assert.Equal(t, []int{30, 45, 55}, summary.RegimeStartAges)
	assert.Len(t, summary.Projection, 61)
	assert.Equal(t, summary.Projection[60].Balance, summary.FinalBalance)
	assert.Equal(t, summary.Projection[60].TaxPaid, summary.TotalTaxPaid)
}

func TestCalculationEngine_RunScenario_Errors(t *testing.T) {
	engine := NewCalculationEngine()

	_, err := engine.RunScenario(context.Background(), domain.ScenarioInput{Name: "empty"})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "scenario empty")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = engine.RunScenario(ctx, domain.ScenarioInput{Name: "cancelled", Input: lifecycleInput(0, false)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculationEngine_RunScenarios(t *testing.T) {
	engine := NewCalculationEngine()

	report, err := engine.RunScenarios(context.Background(), "plan", []domain.ScenarioInput{
		{Name: "A", Input: lifecycleInput(0, false)},
		{Name: "B", Input: lifecycleInput(2, true)},
	})
	require.NoError(t, err)

	assert.Equal(t, "plan", report.PlanName)
	require.Len(t, report.Scenarios, 2)
	assert.Equal(t, "A", report.Scenarios[0].Name)
	assert.Equal(t, "B", report.Scenarios[1].Name)
	assert.NotEmpty(t, report.Assumptions)

	_, err = engine.RunScenarios(context.Background(), "plan", nil)
	assert.Error(t, err)
}

func TestDescribeAssumptions(t *testing.T) {
	lines := DescribeAssumptions(lifecycleInput(2, true))

	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "7.00%")
	assert.Contains(t, lines[2], "90")
	assert.Contains(t, lines[3], "2.50%")

	lines = DescribeAssumptions(lifecycleInput(0, false))
	assert.Contains(t, lines[3], "disabled")
}

func TestSummarize(t *testing.T) {
	in := domain.ProjectionInput{
		InitialBalance: 10000,
		Regimes: []domain.Regime{
			{StartAge: 60, EndAge: 62, MonthlyContribution: 1000},
			{StartAge: 62, EndAge: 66, MonthlySpending: 2000},
		},
		AnnualReturn: 0,
		HorizonAge:   66,
	}
	projection, err := Project(in)
	require.NoError(t, err)

	summary := Summarize("drawdown", in, projection)

	// 10000 -> 22000 -> 34000 -> 10000 -> -14000 ...
	assert.Equal(t, 34000.0, summary.PeakBalance)
	assert.Equal(t, 62, summary.PeakAge)
	require.NotNil(t, summary.DepletionAge)
	assert.Equal(t, 64, *summary.DepletionAge)
	assert.Equal(t, 4, summary.Longevity)
	assert.False(t, summary.Survives())
	assert.Equal(t, 34000.0, summary.TotalContributions)
	assert.Equal(t, -62000.0, summary.FinalBalance)
	assert.InDelta(t, 2000*12/10000.0*100, summary.MaxWithdrawalRate, 1e-9)
}

func TestSummarize_Survives(t *testing.T) {
	in := lifecycleInput(0, false)
	projection, err := Project(in)
	require.NoError(t, err)

	summary := Summarize("base", in, projection)

	assert.True(t, summary.Survives())
	// 30 through 90 is 60 simulated years.
	assert.Equal(t, 60, summary.Longevity)
	assert.Equal(t, len(projection)-1, summary.Longevity)
	assert.True(t, summary.IsRegimeStart(55))
}
