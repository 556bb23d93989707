package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"vigia/tui/styles"
)

// ConfirmView is the modal shown before a count reset is sent to the
// backend. The app owns visibility; this view only renders.
type ConfirmView struct {
	theme  styles.Theme
	sty    *styles.Styles
	width  int
	height int
}

// NewConfirmView creates a new ConfirmView with the given theme.
func NewConfirmView(theme styles.Theme) ConfirmView {
	return ConfirmView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// SetSize updates the available dimensions for the overlay.
func (v *ConfirmView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// View renders the confirmation dialog as a centered modal box.
func (v ConfirmView) View() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base0D).
		Bold(true)
	textStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base05)
	warnStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base0A)

	lines := []string{
		v.sty.ModalTitle.Render("Reset vehicle count?"),
		"",
		textStyle.Render("This zeroes the running count, clears all"),
		textStyle.Render("tracked objects, and resets the analytics."),
		warnStyle.Render("The backend count cannot be restored."),
		"",
		keyStyle.Render("[y]") + textStyle.Render(" reset    ") +
			keyStyle.Render("[n/esc]") + textStyle.Render(" cancel"),
	}

	modal := v.sty.ModalBorder.Render(strings.Join(lines, "\n"))

	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, modal)
}
