package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/output"
	"github.com/rgehrsitz/fireplan/internal/tui/components"
	"github.com/rgehrsitz/fireplan/internal/tui/tuistyles"
)

// SummaryModel shows the headline metrics and regimes of one scenario
type SummaryModel struct {
	summary *domain.ProjectionSummary
	width   int
	height  int
}

// NewSummaryModel creates a new summary scene model
func NewSummaryModel() *SummaryModel {
	return &SummaryModel{}
}

// SetSummary updates the scenario to display
func (m *SummaryModel) SetSummary(summary *domain.ProjectionSummary) {
	m.summary = summary
}

// SetSize updates the scene dimensions
func (m *SummaryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// View renders the summary scene
func (m *SummaryModel) View() string {
	if m.summary == nil {
		return renderEmptyState()
	}
	s := m.summary

	header := lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(s.Name)
	if s.Description != "" {
		header += "\n" + tuistyles.SubtitleStyle.Render(s.Description)
	}

	columns := 3
	if m.width > 0 && m.width < 90 {
		columns = 2
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		components.MetricGrid(metricCards(s), columns),
		"",
		renderRegimes(s),
	)
}

func metricCards(s *domain.ProjectionSummary) []*components.MetricCard {
	growth := s.FinalBalance - s.InitialBalance
	final := components.NewMetricCard("Final Balance", tuistyles.FormatCurrency(s.FinalBalance)).
		WithTrend(growth >= 0, tuistyles.FormatCurrency(growth))

	peak := components.NewMetricCard("Peak Balance", tuistyles.FormatCurrency(s.PeakBalance)).
		WithDescription(fmt.Sprintf("at age %d", s.PeakAge))

	longevity := components.NewMetricCard("Longevity", fmt.Sprintf("%d years", s.Longevity))
	if s.Survives() {
		longevity.WithTrend(true, fmt.Sprintf("lasts to %d", s.Input.HorizonAge))
	} else {
		longevity.WithTrend(false, fmt.Sprintf("depleted at %d", *s.DepletionAge))
	}

	return []*components.MetricCard{
		final,
		components.NewMetricCard("Real Final Balance", tuistyles.FormatCurrency(s.FinalRealBalance)).
			WithDescription("in today's money"),
		peak,
		components.NewMetricCard("Contributions", tuistyles.FormatCurrency(s.TotalContributions)),
		components.NewMetricCard("Tax Paid", tuistyles.FormatCurrency(s.TotalTaxPaid)),
		components.NewMetricCard("Max Withdrawal", output.FormatPercentage(s.MaxWithdrawalRate)),
		longevity,
	}
}

func renderRegimes(s *domain.ProjectionSummary) string {
	var b strings.Builder
	b.WriteString(tuistyles.MetricLabelStyle.Render("Regimes"))
	for _, r := range s.Input.Regimes {
		b.WriteString("\n  ")
		b.WriteString(r.String())
	}
	return b.String()
}

func renderEmptyState() string {
	return tuistyles.BorderStyle.Render("No projection loaded yet.")
}
