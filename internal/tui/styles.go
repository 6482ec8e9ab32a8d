package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorDanger  = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorText    = lipgloss.Color("#F3F4F6")
	colorBorder  = lipgloss.Color("#4B5563")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	dayStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Width(6).
			Align(lipgloss.Center)

	busyDayStyle = dayStyle.
			Foreground(colorInfo).
			Bold(true)

	selectedDayStyle = dayStyle.
				Foreground(colorText).
				Background(colorPrimary).
				Bold(true)

	weekdayStyle = dayStyle.
			Foreground(colorMuted)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2)

	activeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDanger).
			Padding(0, 1)

	pendingStyle  = lipgloss.NewStyle().Foreground(colorWarning).SetString("○")
	doneStyle     = lipgloss.NewStyle().Foreground(colorSuccess).SetString("✓")
	canceledStyle = lipgloss.NewStyle().Foreground(colorDanger).SetString("✗")

	kpiLabelStyle = lipgloss.NewStyle().Foreground(colorMuted)
	kpiValueStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
)

// FormatStatus returns a styled status indicator
func FormatStatus(status string) string {
	switch status {
	case "pending":
		return pendingStyle.Render() + " " + lipgloss.NewStyle().Foreground(colorWarning).Render(status)
	case "done":
		return doneStyle.Render() + " " + lipgloss.NewStyle().Foreground(colorSuccess).Render(status)
	case "canceled":
		return canceledStyle.Render() + " " + lipgloss.NewStyle().Foreground(colorDanger).Render(status)
	default:
		return mutedStyle.Render(status)
	}
}
