package scenes

import (
	"strconv"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/tui/components"
	"github.com/rgehrsitz/fireplan/internal/tui/tuistyles"
)

// ChartModel plots balance, contributions and real balance over age
type ChartModel struct {
	summary *domain.ProjectionSummary
	width   int
	height  int
}

// NewChartModel creates a new chart scene model
func NewChartModel() *ChartModel {
	return &ChartModel{width: 80, height: 24}
}

// SetSummary updates the scenario to plot
func (m *ChartModel) SetSummary(summary *domain.ProjectionSummary) {
	m.summary = summary
}

// SetSize updates the scene dimensions
func (m *ChartModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Chart builds the chart component for the current scenario.
func (m *ChartModel) Chart() *components.ASCIIChart {
	c := components.NewASCIIChart("Balance by Age: " + m.summary.Name).
		WithSize(m.width-4, m.height-10)

	n := len(m.summary.Projection)
	balance := make([]float64, 0, n)
	contributions := make([]float64, 0, n)
	realBalance := make([]float64, 0, n)
	labels := make([]string, 0, n)
	for _, y := range m.summary.Projection {
		balance = append(balance, y.Balance)
		contributions = append(contributions, y.Contributions)
		realBalance = append(realBalance, y.RealBalance)
		labels = append(labels, strconv.Itoa(y.Age))
	}

	c.AddSeries("Balance", balance, tuistyles.ColorChartBalance).
		AddSeries("Contributions", contributions, tuistyles.ColorChartContributions)
	if m.summary.Input.InflationRate != 0 {
		c.AddSeries("Real Balance", realBalance, tuistyles.ColorChartReal)
	}
	return c.WithLabels(labels)
}

// View renders the chart scene
func (m *ChartModel) View() string {
	if m.summary == nil {
		return renderEmptyState()
	}
	return m.Chart().Render()
}
