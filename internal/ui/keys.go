package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextPanel key.Binding
	PrevPanel key.Binding
	Up        key.Binding
	Down      key.Binding
	Owner     key.Binding
	Status    key.Binding
	Reset     key.Binding
	Refresh   key.Binding
	Theme     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		NextPanel: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "switch panel")),
		PrevPanel: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "previous panel")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
		Owner:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "owner")),
		Status:    key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "status")),
		Reset:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "regenerate")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPanel, k.Owner, k.Status, k.Refresh, k.Theme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPanel, k.PrevPanel, k.Up, k.Down},
		{k.Owner, k.Status, k.Reset},
		{k.Refresh, k.Theme, k.Help, k.Quit},
	}
}
