package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fireplan/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	switch {
	case m.err != nil:
		return m.renderApp(tuistyles.ErrorStyle.Render(fmt.Sprintf("Error: %s", m.err)) + "\n\nPress q to quit.")
	case m.loading:
		return m.renderApp(tuistyles.BorderStyle.Render("⠋ Projecting " + m.planPath + "..."))
	}

	var content string
	switch m.currentScene {
	case SceneSummary:
		content = m.summaryModel.View()
	case SceneChart:
		content = m.chartModel.View()
	case SceneTable:
		content = m.tableModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}
	return m.renderApp(content)
}

// renderApp wraps content with the title bar, scene tabs and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		m.renderTabs(),
		"",
		content,
		"",
		tuistyles.StatusBarStyle.Render(m.help.View(m.keys)),
	)
}

func (m Model) renderTitleBar() string {
	title := "fireplan"
	if m.config != nil && m.config.Name != "" {
		title += " - " + m.config.Name
	}
	bar := tuistyles.TitleStyle.Render(title)

	if s := m.SelectedScenario(); s != nil {
		bar += tuistyles.SubtitleStyle.Render(
			fmt.Sprintf("  scenario %d/%d: %s", m.selected+1, len(m.report.Scenarios), s.Name))
	}
	return bar
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(tabScenes))
	for i, s := range tabScenes {
		label := fmt.Sprintf("%d %s", i+1, s)
		if s == m.currentScene {
			tabs = append(tabs, tuistyles.ActiveTabStyle.Render(label))
		} else {
			tabs = append(tabs, tuistyles.TabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString("Lifetime balance projection viewer\n\n")
	b.WriteString("Summary shows the headline metrics of the selected scenario, Chart\n")
	b.WriteString("plots its balance by age and Table lists every yearly snapshot.\n\n")

	full := m.help
	full.ShowAll = true
	b.WriteString(full.View(m.keys))
	return tuistyles.BorderStyle.Render(b.String())
}
