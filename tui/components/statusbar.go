package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"vigia/tui/styles"
)

// RenderStatusBar renders the two-line status/footer bar. The top line shows
// the live notification when one is active, otherwise poll info; the bottom
// line shows key bindings.
func RenderStatusBar(theme styles.Theme, interval time.Duration, lastUpdate time.Time, polls, errors int, notif *Notification, width int) string {
	bg := theme.Base01
	bgStyle := lipgloss.NewStyle().Background(bg)

	var topContent string
	if notif != nil {
		color := theme.Base0D
		switch notif.Level {
		case NotifySuccess:
			color = theme.Base0B
		case NotifyError:
			color = theme.Base08
		}
		topContent = bgStyle.Render(" ") + lipgloss.NewStyle().
			Foreground(color).
			Background(bg).
			Bold(true).
			Render("● "+notif.Message)
	} else {
		sep := lipgloss.NewStyle().Foreground(theme.Base03).Background(bg).Render(" | ")

		pollSeg := lipgloss.NewStyle().Foreground(theme.Base05).Background(bg).
			Render(fmt.Sprintf("poll: %s", interval))

		lastStr := "never"
		if !lastUpdate.IsZero() {
			lastStr = lastUpdate.Format("15:04:05")
		}
		lastSeg := lipgloss.NewStyle().Foreground(theme.Base05).Background(bg).
			Render(fmt.Sprintf("last: %s", lastStr))

		errColor := theme.Base0B
		if errors > 0 {
			errColor = theme.Base0A
		}
		countSeg := lipgloss.NewStyle().Foreground(errColor).Background(bg).
			Render(fmt.Sprintf("%d polls / %d errors", polls, errors))

		topContent = bgStyle.Render(" ") + pollSeg + sep + lastSeg + sep + countSeg
	}

	topWidth := lipgloss.Width(topContent)
	if topWidth < width {
		topContent += bgStyle.Render(strings.Repeat(" ", width-topWidth))
	}

	keyStyle := lipgloss.NewStyle().Foreground(theme.Base0D).Background(bg).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.Base04).Background(bg)
	spacer := bgStyle.Render("  ")

	keys := bgStyle.Render(" ") +
		keyStyle.Render("1/2/3") + descStyle.Render(":period") + spacer +
		keyStyle.Render("←/→") + descStyle.Render(":cycle") + spacer +
		keyStyle.Render("s") + descStyle.Render(":start") + spacer +
		keyStyle.Render("x") + descStyle.Render(":stop") + spacer +
		keyStyle.Render("R") + descStyle.Render(":reset") + spacer +
		keyStyle.Render("r") + descStyle.Render(":refresh") + spacer +
		keyStyle.Render("?") + descStyle.Render(":help") + spacer +
		keyStyle.Render("q") + descStyle.Render(":quit")

	keysWidth := lipgloss.Width(keys)
	if keysWidth < width {
		keys += bgStyle.Render(strings.Repeat(" ", width-keysWidth))
	}

	return lipgloss.JoinVertical(lipgloss.Left, topContent, keys)
}
