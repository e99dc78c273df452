package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	bannerStyle     = lipgloss.NewStyle().Faint(true).Italic(true)
	focusedStyle    = lipgloss.NewStyle().Bold(true)
	successStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

// titleColor derives the title style from the form's accent color when the
// owner configured one.
func titleColor(hex string) lipgloss.Style {
	if hex == "" {
		return titleStyle
	}
	return titleStyle.Foreground(lipgloss.Color(hex))
}
