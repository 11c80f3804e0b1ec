package scenes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/fireplan/internal/domain"
)

func sampleSummary() *domain.ProjectionSummary {
	depleted := 62
	return &domain.ProjectionSummary{
		Name:           "Spender",
		Description:    "spend it down",
		InitialBalance: 24000,
		Input: domain.ProjectionInput{
			InitialBalance: 24000,
			HorizonAge:     63,
			InflationRate:  2,
			Regimes: []domain.Regime{
				{StartAge: 60, EndAge: 61, MonthlyContribution: 100},
				{StartAge: 61, EndAge: 63, MonthlySpending: 1000},
			},
		},
		FinalBalance:    -12000,
		PeakBalance:     25200,
		PeakAge:         61,
		DepletionAge:    &depleted,
		Longevity:       2,
		RegimeStartAges: []int{60, 61},
		Projection: []domain.YearlyBalance{
			{Age: 60, Balance: 24000, RealBalance: 24000, Contributions: 24000},
			{Age: 61, Balance: 25200, RealBalance: 24705.88, Contributions: 25200, WithdrawalRate: 48.5},
			{Age: 62, Balance: -500, RealBalance: -480.58, Contributions: 25200, Growth: -25700},
			{Age: 63, Balance: -12000, RealBalance: -11307.9, Contributions: 25200, Growth: -37200},
		},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleSummary())
	require.Len(t, rows, 4)

	assert.Equal(t, "60*", rows[0][0])
	assert.Equal(t, "61*", rows[1][0])
	assert.Equal(t, "62", rows[2][0])
	assert.Equal(t, "$25,200.00", rows[1][1])
	assert.Equal(t, "48.50%", rows[1][5])
	assert.Equal(t, "-$500.00", rows[2][1])
}

func TestSummaryModel_View(t *testing.T) {
	m := NewSummaryModel()
	assert.Contains(t, m.View(), "No projection loaded")

	m.SetSize(120, 40)
	m.SetSummary(sampleSummary())
	view := m.View()
	assert.Contains(t, view, "Spender")
	assert.Contains(t, view, "spend it down")
	assert.Contains(t, view, "depleted at 62")
	assert.Contains(t, view, "Regimes")
}

func TestChartModel_RealSeriesOnlyWithInflation(t *testing.T) {
	m := NewChartModel()
	s := sampleSummary()
	m.SetSummary(s)
	assert.Len(t, m.Chart().Series, 3)

	s.Input.InflationRate = 0
	assert.Len(t, m.Chart().Series, 2)
	assert.Contains(t, m.View(), "Balance by Age: Spender")
}

func TestTableModel(t *testing.T) {
	m := NewTableModel()
	assert.Contains(t, m.View(), "No projection loaded")

	m.SetSize(100, 30)
	m.SetSummary(sampleSummary())
	assert.Equal(t, 0, m.Cursor())
	assert.Contains(t, m.View(), "60*")
	assert.Contains(t, m.View(), "regime starts")
}
