package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the board view.
type KeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Drop    key.Binding // Play the column under the cursor.
	Column  key.Binding // Play a column directly by its number.
	Dismiss key.Binding
	Quit    key.Binding
}

var DefaultKeyMap = KeyMap{
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	Drop: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "drop"),
	),
	Column: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7"),
		key.WithHelp("1-7", "drop in column"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "dismiss"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k KeyMap) help(spectating bool) []key.Binding {
	if spectating {
		return []key.Binding{k.Dismiss, k.Quit}
	}
	return []key.Binding{k.Left, k.Right, k.Drop, k.Column, k.Dismiss, k.Quit}
}
