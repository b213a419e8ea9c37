package diagnostic

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorError  = lipgloss.Color("#EF4444") // Red
	ColorAccent = lipgloss.Color("#F59E0B") // Amber
	ColorInfo   = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted  = lipgloss.Color("#6B7280") // Gray
)

// Styles used by the Renderer
type Styles struct {
	Severity lipgloss.Style
	Message  lipgloss.Style
	Location lipgloss.Style
	Gutter   lipgloss.Style
	Pointer  lipgloss.Style
	Name     lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the colored style set.
func DefaultStyles() Styles {
	return Styles{
		Severity: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Message: lipgloss.NewStyle().
			Bold(true),
		Location: lipgloss.NewStyle().
			Foreground(ColorInfo),
		Gutter: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Pointer: lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true),
		Name: lipgloss.NewStyle().
			Foreground(ColorAccent),
		Help: lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true),
	}
}
