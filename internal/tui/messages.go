package tui

import (
	"github.com/rgehrsitz/fireplan/internal/tui/tuimsg"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneSummary Scene = iota
	SceneChart
	SceneTable
	SceneHelp
)

// tabScenes are the scenes cycled by tab, in order.
var tabScenes = []Scene{SceneSummary, SceneChart, SceneTable}

func (s Scene) String() string {
	switch s {
	case SceneSummary:
		return "Summary"
	case SceneChart:
		return "Chart"
	case SceneTable:
		return "Table"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// Messages produced by commands live in tuimsg so the scene packages can
// use them without importing this package.
type (
	PlanLoadedMsg = tuimsg.PlanLoadedMsg
	ErrorMsg      = tuimsg.ErrorMsg
)
