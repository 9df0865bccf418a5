package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the visual styling shared by every pane. Styles are built
// from a lipgloss renderer so tests can use a detached renderer without a
// real terminal.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor

	Selected lipgloss.Style
	Border   lipgloss.Style
	Title    lipgloss.Style
	Marker   lipgloss.Style
	Centroid lipgloss.Style
}

// DefaultTheme builds the standard color scheme on the given renderer.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#1a7f37", Dark: "#3fb950"},
		Secondary: lipgloss.AdaptiveColor{Light: "#9a6700", Dark: "#d29922"},
		Muted:     lipgloss.AdaptiveColor{Light: "#6e7781", Dark: "#8b949e"},
		Highlight: lipgloss.AdaptiveColor{Light: "#0969da", Dark: "#58a6ff"},
	}
	t.Selected = r.NewStyle().Reverse(true).Bold(true)
	t.Border = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Muted)
	t.Title = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.Marker = r.NewStyle().Foreground(t.Secondary)
	t.Centroid = r.NewStyle().Foreground(t.Highlight).Bold(true)
	return t
}
