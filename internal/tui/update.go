package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeScenes()
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case PlanLoadedMsg:
		m.loading = false
		m.err = nil
		m.config = msg.Config
		m.report = msg.Report
		m.selectScenario(0)
		m.resizeScenes()
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		return m.navigate(SceneHelp)

	case key.Matches(msg, m.keys.Back):
		if m.currentScene == SceneHelp {
			return m.navigate(m.previousScene)
		}
		return m, nil
	}

	// everything else needs a loaded plan
	if m.report == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.NextScene):
		return m.navigate(m.nextTabScene())
	case key.Matches(msg, m.keys.Summary):
		return m.navigate(SceneSummary)
	case key.Matches(msg, m.keys.Chart):
		return m.navigate(SceneChart)
	case key.Matches(msg, m.keys.Table):
		return m.navigate(SceneTable)
	case key.Matches(msg, m.keys.PrevScenario):
		m.selectScenario(m.selected - 1)
		return m, nil
	case key.Matches(msg, m.keys.NextScenario):
		m.selectScenario(m.selected + 1)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	return m.Update(NavigateMsg{Scene: scene})
}

// nextTabScene returns the scene after the current one in tab order; help
// returns to the first.
func (m Model) nextTabScene() Scene {
	for i, s := range tabScenes {
		if s == m.currentScene {
			return tabScenes[(i+1)%len(tabScenes)]
		}
	}
	return tabScenes[0]
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.currentScene == SceneTable && m.report != nil {
		var cmd tea.Cmd
		m.tableModel, cmd = m.tableModel.Update(msg)
		return m, cmd
	}
	return m, nil
}
