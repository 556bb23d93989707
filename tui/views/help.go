package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"vigia/tui/styles"
)

// HelpView renders a modal overlay showing all keyboard shortcuts.
type HelpView struct {
	theme   styles.Theme
	sty     *styles.Styles
	width   int
	height  int
	visible bool
}

// NewHelpView creates a new HelpView with the given theme.
func NewHelpView(theme styles.Theme) HelpView {
	return HelpView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// Toggle flips the help overlay visibility.
func (v *HelpView) Toggle() {
	v.visible = !v.visible
}

// IsVisible returns whether the help overlay is currently shown.
func (v HelpView) IsVisible() bool {
	return v.visible
}

// SetSize updates the available dimensions for the overlay.
func (v *HelpView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// View renders the help overlay as a centered modal box.
func (v HelpView) View() string {
	sectionStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base0E).
		Bold(true)
	keyStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base0D).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base05)
	dimStyle := lipgloss.NewStyle().
		Foreground(v.theme.Base04)

	// Helper to format a keybinding line with aligned columns.
	bindingLine := func(keys, desc string) string {
		return fmt.Sprintf("  %s  %s",
			keyStyle.Render(padRight(keys, 14)),
			descStyle.Render(desc),
		)
	}

	var lines []string

	lines = append(lines, v.sty.ModalTitle.Render("Keyboard Shortcuts"))
	lines = append(lines, "")

	lines = append(lines, sectionStyle.Render("Periods"))
	lines = append(lines, bindingLine("1 / 2 / 3", "Day / Week / Month"))
	lines = append(lines, bindingLine("Left / Right", "Cycle period"))
	lines = append(lines, bindingLine("Tab", "Next period"))
	lines = append(lines, "")

	lines = append(lines, sectionStyle.Render("Detection"))
	lines = append(lines, bindingLine("s", "Start detection"))
	lines = append(lines, bindingLine("x", "Stop detection"))
	lines = append(lines, bindingLine("R", "Reset count (asks first)"))
	lines = append(lines, bindingLine("r", "Refresh now"))
	lines = append(lines, "")

	lines = append(lines, sectionStyle.Render("Table"))
	lines = append(lines, bindingLine("Up / Down", "Scroll objects"))
	lines = append(lines, "")

	lines = append(lines, sectionStyle.Render("Global"))
	lines = append(lines, bindingLine("Esc", "Dismiss notification"))
	lines = append(lines, bindingLine("?", "Toggle this help"))
	lines = append(lines, bindingLine("q / Ctrl+C", "Quit"))
	lines = append(lines, "")

	lines = append(lines, dimStyle.Render("[?] close"))

	modal := v.sty.ModalBorder.Render(strings.Join(lines, "\n"))

	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, modal)
}
