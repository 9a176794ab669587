// Package ui holds the lipgloss styles for wallshift's command output.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Styles bundles the styled renderers used by the CLI commands.
type Styles struct {
	renderer *lipgloss.Renderer

	Title     lipgloss.Style
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Success   lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
}

// NewStyles creates styles bound to the given output file, so color
// detection matches where the text actually goes.
func NewStyles(output *os.File) *Styles {
	r := lipgloss.NewRenderer(output)
	return &Styles{
		renderer:  r,
		Title:     r.NewStyle().Bold(true),
		Primary:   r.NewStyle().Foreground(lipgloss.Color("10")), // bright green
		Secondary: r.NewStyle().Foreground(lipgloss.Color("12")), // bright blue
		Success:   r.NewStyle().Foreground(lipgloss.Color("10")),
		Error:     r.NewStyle().Foreground(lipgloss.Color("9")),
		Muted:     r.NewStyle().Foreground(lipgloss.Color("8")), // grey
	}
}

// DefaultStyles returns styles for stdout.
func DefaultStyles() *Styles {
	return NewStyles(os.Stdout)
}
