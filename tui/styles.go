package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title     lipgloss.Style
	Prompt    lipgloss.Style
	Section   lipgloss.Style
	Excerpt   lipgloss.Style
	Selected  lipgloss.Style
	Highlight lipgloss.Style
	Dim       lipgloss.Style
	Empty     lipgloss.Style
	Status    lipgloss.Style
	Help      lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Prompt:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Section:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Excerpt:   lipgloss.NewStyle().Faint(true).PaddingLeft(4),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Underline(true), // yellow
		Dim:       lipgloss.NewStyle().Faint(true),
		Empty:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			MarginTop(1),
		Help: lipgloss.NewStyle().Faint(true).MarginTop(1),
	}
}
