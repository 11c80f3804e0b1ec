package output

import (
	"fmt"
	"math"
	"strings"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

const (
	chartWidth   = 720
	chartHeight  = 320
	chartPadding = 56
)

// chartSeries is one polyline of the balance chart.
type chartSeries struct {
	Label  string
	Color  string
	Points string
}

// chartTick is an axis label with its pixel position.
type chartTick struct {
	Pos   float64
	Label string
}

// lineChart holds the precomputed SVG geometry of a scenario chart.
type lineChart struct {
	Width   int
	Height  int
	Left    int
	Right   int
	Top     int
	Bottom  int
	ZeroY   float64
	Series  []chartSeries
	XTicks  []chartTick
	YTicks  []chartTick
	HasData bool
}

// buildChart lays out balance, contributions and growth, plus the real
// balance when inflation is non-zero.
func buildChart(s *domain.ProjectionSummary) lineChart {
	c := lineChart{
		Width:  chartWidth,
		Height: chartHeight,
		Left:   chartPadding,
		Right:  chartWidth - chartPadding/2,
		Top:    chartPadding / 2,
		Bottom: chartHeight - chartPadding,
	}
	if len(s.Projection) == 0 {
		return c
	}
	c.HasData = true

	type line struct {
		label, color string
		value        func(domain.YearlyBalance) float64
	}
	lines := []line{
		{"Balance", "#1f77b4", func(y domain.YearlyBalance) float64 { return y.Balance }},
		{"Contributions", "#2ca02c", func(y domain.YearlyBalance) float64 { return y.Contributions }},
		{"Growth", "#ff7f0e", func(y domain.YearlyBalance) float64 { return y.Growth }},
	}
	if s.Input.InflationRate != 0 {
		lines = append(lines, line{"Real Balance", "#9467bd", func(y domain.YearlyBalance) float64 { return y.RealBalance }})
	}

	minV, maxV := 0.0, 0.0
	for _, y := range s.Projection {
		for _, l := range lines {
			v := l.value(y)
			if !isFinite(v) {
				continue
			}
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}
	}
	if maxV == minV {
		maxV = minV + 1
	}

	first := s.Projection[0].Age
	last := s.Projection[len(s.Projection)-1].Age
	span := float64(last - first)
	xOf := func(age int) float64 {
		if span == 0 {
			return float64(c.Left)
		}
		return float64(c.Left) + float64(age-first)/span*float64(c.Right-c.Left)
	}
	yOf := func(v float64) float64 {
		return float64(c.Bottom) - (v-minV)/(maxV-minV)*float64(c.Bottom-c.Top)
	}
	c.ZeroY = yOf(0)

	for _, l := range lines {
		pts := make([]string, 0, len(s.Projection))
		for _, y := range s.Projection {
			if !isFinite(l.value(y)) {
				continue
			}
			pts = append(pts, fmt.Sprintf("%.1f,%.1f", xOf(y.Age), yOf(l.value(y))))
		}
		c.Series = append(c.Series, chartSeries{Label: l.label, Color: l.color, Points: strings.Join(pts, " ")})
	}

	step := tickStep(last - first)
	for age := first; age <= last; age += step {
		c.XTicks = append(c.XTicks, chartTick{Pos: xOf(age), Label: fmt.Sprintf("%d", age)})
	}
	for i := 0; i <= 4; i++ {
		v := minV + (maxV-minV)*float64(i)/4
		c.YTicks = append(c.YTicks, chartTick{Pos: yOf(v), Label: FormatShort(v)})
	}
	return c
}

// tickStep picks an age interval giving roughly ten x-axis labels.
func tickStep(years int) int {
	for _, s := range []int{1, 2, 5, 10} {
		if years/s <= 10 {
			return s
		}
	}
	return 20
}
