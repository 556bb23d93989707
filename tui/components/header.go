package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"vigia/tui/styles"
)

// RenderHeader renders the top header bar with app name, backend URL,
// connectivity status, and version.
func RenderHeader(theme styles.Theme, serverURL string, connected bool, width int, ver string) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Base0D).
		Background(theme.Base01).
		Bold(true).
		Render("vigia")

	center := lipgloss.NewStyle().
		Foreground(theme.Base05).
		Background(theme.Base01).
		Render(serverURL)

	status := "OFFLINE"
	statusColor := theme.Base08
	if connected {
		status = "CONNECTED"
		statusColor = theme.Base0B
	}
	right := lipgloss.NewStyle().
		Foreground(statusColor).
		Background(theme.Base01).
		Render(status)

	versionSeg := lipgloss.NewStyle().
		Foreground(theme.Base04).
		Background(theme.Base01).
		Render("v" + ver)

	content := fmt.Sprintf(" %s  |  %s  |  %s  |  %s ", left, center, right, versionSeg)

	return lipgloss.NewStyle().
		Background(theme.Base01).
		Width(width).
		Render(content)
}
