package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the board colours. ANSI 256-colour codes keep it readable
// on most terminals.
type Theme struct {
	Player1    lipgloss.Color
	Player2    lipgloss.Color
	EmptyCell  lipgloss.Color
	Frame      lipgloss.Color
	Cursor     lipgloss.Color
	Notice     lipgloss.Color
	FaintText  lipgloss.Color
	HeaderText lipgloss.Color
}

var DefaultTheme = Theme{
	Player1:    lipgloss.Color("196"),
	Player2:    lipgloss.Color("226"),
	EmptyCell:  lipgloss.Color("240"),
	Frame:      lipgloss.Color("27"),
	Cursor:     lipgloss.Color("255"),
	Notice:     lipgloss.Color("214"),
	FaintText:  lipgloss.Color("245"),
	HeaderText: lipgloss.Color("81"),
}
