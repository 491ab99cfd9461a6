package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/fwojciec/refbot"
)

// Styles holds the lipgloss styles for the card preview.
type Styles struct {
	Frame       lipgloss.Style
	Title       lipgloss.Style
	FieldLabel  lipgloss.Style
	Footer      lipgloss.Style
	Attribution lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles creates the default styles. The frame border uses the card
// accent color.
func NewStyles() *Styles {
	accent := lipgloss.Color(fmt.Sprintf("#%06X", refbot.AccentColor))
	return &Styles{
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(accent),
		FieldLabel:  lipgloss.NewStyle().Bold(true),
		Footer:      lipgloss.NewStyle().Faint(true),
		Attribution: lipgloss.NewStyle().Faint(true).Italic(true),
		Help:        lipgloss.NewStyle().Faint(true),
	}
}
