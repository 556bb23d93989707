package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Day        key.Binding
	Week       key.Binding
	Month      key.Binding
	PrevPeriod key.Binding
	NextPeriod key.Binding
	Refresh    key.Binding
	Start      key.Binding
	Stop       key.Binding
	Reset      key.Binding
	Confirm    key.Binding
	Help       key.Binding
	Escape     key.Binding
	Quit       key.Binding
}

// DefaultKeyMap provides the default set of key bindings.
var DefaultKeyMap = KeyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("up/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("down/j", "down")),
	Day:        key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "day")),
	Week:       key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "week")),
	Month:      key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "month")),
	PrevPeriod: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("left/h", "prev period")),
	NextPeriod: key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("right/l", "next period")),
	Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Start:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
	Stop:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "stop")),
	Reset:      key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset count")),
	Confirm:    key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
