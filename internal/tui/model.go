package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fireplan/internal/calculation"
	"github.com/rgehrsitz/fireplan/internal/config"
	"github.com/rgehrsitz/fireplan/internal/domain"
	"github.com/rgehrsitz/fireplan/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene
	keys          keyMap
	help          help.Model

	// Terminal dimensions
	width  int
	height int

	// Plan and projections
	planPath string
	config   *domain.Configuration
	report   *domain.ProjectionReport
	selected int

	calcEngine *calculation.CalculationEngine

	// Scene models
	summaryModel *scenes.SummaryModel
	chartModel   *scenes.ChartModel
	tableModel   *scenes.TableModel

	err     error
	loading bool
}

// NewModel creates a viewer for the plan at planPath
func NewModel(planPath string) Model {
	return Model{
		currentScene: SceneSummary,
		keys:         defaultKeyMap(),
		help:         help.New(),
		planPath:     planPath,
		calcEngine:   calculation.NewCalculationEngine(),
		summaryModel: scenes.NewSummaryModel(),
		chartModel:   scenes.NewChartModel(),
		tableModel:   scenes.NewTableModel(),
		width:        80,
		height:       24,
		loading:      true,
	}
}

// Init loads and projects the plan (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadPlanCmd(m.planPath, m.calcEngine)
}

// loadPlanCmd returns a command that parses the plan file and projects every
// scenario in it.
func loadPlanCmd(path string, engine *calculation.CalculationEngine) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		inputs, err := config.ResolveAll(cfg)
		if err != nil {
			return ErrorMsg{Err: err}
		}

		report, err := engine.RunScenarios(context.Background(), cfg.Name, inputs)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return PlanLoadedMsg{Config: cfg, Report: report}
	}
}

// SelectedScenario returns the summary on screen, nil before the plan loads.
func (m Model) SelectedScenario() *domain.ProjectionSummary {
	if m.report == nil || m.selected < 0 || m.selected >= len(m.report.Scenarios) {
		return nil
	}
	return &m.report.Scenarios[m.selected]
}

// CurrentScene returns the scene on screen.
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// selectScenario points every scene at scenario i, wrapping around.
func (m *Model) selectScenario(i int) {
	n := len(m.report.Scenarios)
	if n == 0 {
		return
	}
	m.selected = ((i % n) + n) % n
	s := m.SelectedScenario()
	m.summaryModel.SetSummary(s)
	m.chartModel.SetSummary(s)
	m.tableModel.SetSummary(s)
}

func (m *Model) resizeScenes() {
	// title, tabs and status bar take five lines
	h := m.height - 5
	m.summaryModel.SetSize(m.width, h)
	m.chartModel.SetSize(m.width, h)
	m.tableModel.SetSize(m.width, h)
	m.help.Width = m.width
}
