package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Score  key.Binding
	Claim  key.Binding
	Add    key.Binding
	Delete key.Binding
	Clear  key.Binding
	Save   key.Binding
	Load   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Score: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "c", "h", "k"),
			key.WithHelp("1-6/c/h/k", "enter a score"),
		),
		Claim: key.NewBinding(
			key.WithKeys("s", "l", "y"),
			key.WithHelp("s/l/y", "claim a straight or yacht"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add player"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete player"),
		),
		Clear: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear all scores"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save game"),
		),
		Load: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "load game"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Score, k.Claim, k.Add, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Score, k.Claim, k.Clear},
		{k.Add, k.Delete},
		{k.Save, k.Load},
		{k.Help, k.Quit},
	}
}
