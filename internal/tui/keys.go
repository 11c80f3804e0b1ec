package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextScene    key.Binding
	Summary      key.Binding
	Chart        key.Binding
	Table        key.Binding
	PrevScenario key.Binding
	NextScenario key.Binding
	Help         key.Binding
	Back         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextScene: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		Summary: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "summary"),
		),
		Chart: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "chart"),
		),
		Table: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "table"),
		),
		PrevScenario: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev scenario"),
		),
		NextScenario: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next scenario"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap for the status bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextScene, k.PrevScenario, k.NextScenario, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap for the help scene.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextScene, k.Summary, k.Chart, k.Table},
		{k.PrevScenario, k.NextScenario},
		{k.Help, k.Back, k.Quit},
	}
}
