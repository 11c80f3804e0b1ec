package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fireplan/internal/tui/tuistyles"
)

// yAxisWidth is the space reserved for the value labels left of the plot.
const yAxisWidth = 10

// DataSeries is a single line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart plots one or more series of equal length on a character grid.
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // x-axis labels, one per point
	Width      int
	Height     int
	ShowLegend bool
}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      72,
		Height:     16,
		ShowLegend: true,
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// WithLabels sets the x-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions, clamped to a usable minimum.
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = max(width, yAxisWidth+12)
	c.Height = max(height, 4)
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if c.pointCount() == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		b.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	b.WriteString(c.renderGrid(lo, hi))

	if c.ShowLegend && len(c.Series) > 1 {
		b.WriteString("\n")
		b.WriteString(c.renderLegend())
	}
	return b.String()
}

func (c *ASCIIChart) pointCount() int {
	n := 0
	for _, s := range c.Series {
		n = max(n, len(s.Points))
	}
	return n
}

// bounds returns the plotted value range, always including zero so a
// depleted balance shows below the axis.
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, s := range c.Series {
		for _, p := range s.Points {
			if !plottable(p) {
				continue
			}
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

func plottable(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	plotWidth := c.Width - yAxisWidth - 3
	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", plotWidth))
	}

	n := c.pointCount()
	col := func(i int) int {
		if n == 1 {
			return 0
		}
		return int(float64(i) / float64(n-1) * float64(plotWidth-1))
	}
	row := func(v float64) int {
		return c.Height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(c.Height-1)))
	}

	for idx, s := range c.Series {
		mark := seriesMark(idx)
		for i, p := range s.Points {
			if !plottable(p) {
				continue
			}
			x, y := col(i), row(p)
			if i > 0 && plottable(s.Points[i-1]) {
				drawLine(grid, col(i-1), row(s.Points[i-1]), x, y, mark)
			}
			grid[y][x] = mark
		}
	}

	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	var b strings.Builder
	for i, r := range grid {
		label := ""
		if i == 0 || i == c.Height-1 || i == c.Height/2 {
			v := hi - float64(i)/float64(c.Height-1)*(hi-lo)
			label = tuistyles.FormatShort(v)
		}
		b.WriteString(axis.Render(label))
		b.WriteString(" │ ")
		b.WriteString(string(r))
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat(" ", yAxisWidth+1))
	b.WriteString("└")
	b.WriteString(strings.Repeat("─", plotWidth+1))
	b.WriteString("\n")

	if len(c.Labels) > 0 {
		b.WriteString(c.renderXLabels(plotWidth, col))
		b.WriteString("\n")
	}
	return b.String()
}

// renderXLabels places up to six labels under their points without overlap.
func (c *ASCIIChart) renderXLabels(plotWidth int, col func(int) int) string {
	line := []rune(strings.Repeat(" ", plotWidth+8))
	step := max(1, (len(c.Labels)+5)/6)
	next := 0
	for i := 0; i < len(c.Labels); i += step {
		x := col(i)
		if x < next {
			continue
		}
		for j, r := range c.Labels[i] {
			if x+j < len(line) {
				line[x+j] = r
			}
		}
		next = x + len(c.Labels[i]) + 1
	}
	return strings.Repeat(" ", yAxisWidth+3) +
		lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.TrimRight(string(line), " "))
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		mark := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesMark(i)))
		items = append(items, fmt.Sprintf("%s %s", mark, s.Name))
	}
	return tuistyles.SubtitleStyle.Render("Legend: " + strings.Join(items, " • "))
}

func seriesMark(index int) rune {
	marks := []rune{'●', '■', '▲', '♦'}
	return marks[index%len(marks)]
}

// drawLine fills the cells between two points with Bresenham's algorithm,
// leaving cells already taken by earlier series alone.
func drawLine(grid [][]rune, x0, y0, x1, y1 int, mark rune) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) && grid[y0][x0] == ' ' {
			grid[y0][x0] = mark
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
