package components

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestASCIIChart_Empty(t *testing.T) {
	out := NewASCIIChart("Nothing").Render()
	assert.Contains(t, out, "No data to display")
}

func TestASCIIChart_Render(t *testing.T) {
	c := NewASCIIChart("Balance").
		AddSeries("Balance", []float64{0, 1000, 2000, 3000}, lipgloss.Color("#fff")).
		AddSeries("Contributions", []float64{0, 500, 1000, 1500}, lipgloss.Color("#0f0")).
		WithLabels([]string{"30", "31", "32", "33"}).
		WithSize(40, 6)
	out := c.Render()

	assert.Contains(t, out, "Balance")
	assert.Contains(t, out, "Legend:")
	assert.Contains(t, out, "$3.0K")
	assert.Contains(t, out, "30")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "■")
}

func TestASCIIChart_FlatAndSinglePoint(t *testing.T) {
	out := NewASCIIChart("").
		AddSeries("Flat", []float64{5}, lipgloss.Color("#fff")).
		Render()
	assert.Contains(t, out, "●")
	// a single series has no legend
	assert.NotContains(t, out, "Legend:")
}

func TestASCIIChart_NegativeValuesStayOnGrid(t *testing.T) {
	c := NewASCIIChart("").
		AddSeries("Balance", []float64{1000, 0, -1000}, lipgloss.Color("#fff")).
		WithSize(30, 5)
	lines := strings.Split(c.Render(), "\n")
	require.GreaterOrEqual(t, len(lines), 5)
	assert.Contains(t, lines[0], "●")
	assert.Contains(t, lines[4], "●")
	assert.Contains(t, c.Render(), "-$1.0K")
}

func TestASCIIChart_SkipsNonFinitePoints(t *testing.T) {
	c := NewASCIIChart("").
		AddSeries("Balance", []float64{1000, math.Inf(1), math.NaN(), 2000}, lipgloss.Color("#fff")).
		WithSize(30, 5)

	var out string
	require.NotPanics(t, func() { out = c.Render() })
	assert.Contains(t, out, "$2.0K")
	assert.NotContains(t, out, "Inf")
}

func TestASCIIChart_WithSizeClamps(t *testing.T) {
	c := NewASCIIChart("").WithSize(1, 1)
	assert.Equal(t, yAxisWidth+12, c.Width)
	assert.Equal(t, 4, c.Height)
}

func TestDrawLine(t *testing.T) {
	grid := [][]rune{[]rune("     "), []rune("     "), []rune("     ")}
	drawLine(grid, 0, 0, 4, 2, '*')
	assert.Equal(t, '*', grid[0][0])
	assert.Equal(t, '*', grid[2][4])
	assert.Equal(t, '*', grid[1][2])

	// cells already taken are kept
	drawLine(grid, 0, 0, 0, 2, '#')
	assert.Equal(t, '*', grid[0][0])
	assert.Equal(t, '#', grid[1][0])
}

func TestMetricCard_Render(t *testing.T) {
	out := NewMetricCard("Final", "$4,600.00").
		WithTrend(true, "$3,600.00").
		WithDescription("at 33").
		Render()
	assert.Contains(t, out, "Final")
	assert.Contains(t, out, "$4,600.00")
	assert.Contains(t, out, "▲ $3,600.00")
	assert.Contains(t, out, "at 33")

	down := NewMetricCard("Longevity", "2 years").WithTrend(false, "depleted").Render()
	assert.Contains(t, down, "▼ depleted")
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 3))

	cards := []*MetricCard{
		NewMetricCard("A", "1").WithWidth(10),
		NewMetricCard("B", "2").WithWidth(10),
		NewMetricCard("C", "3").WithWidth(10),
	}
	out := MetricGrid(cards, 2)
	lines := strings.Split(out, "\n")
	// two rows of bordered cards, each four lines tall
	assert.Len(t, lines, 8)
}
