package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Sort        key.Binding
	Unavailable key.Binding
	Edit        key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Sort:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort burden/profit")),
		Unavailable: key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "show unavailable")),
		Edit:        key.NewBinding(key.WithKeys("e", "r"), key.WithHelp("e", "edit revenue")),
		Confirm:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "recalculate")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sort, k.Unavailable, k.Edit, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Sort, k.Unavailable},
		{k.Edit, k.Confirm, k.Cancel},
		{k.Help, k.Quit},
	}
}
