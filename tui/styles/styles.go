package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds all themed lipgloss styles for the application.
type Styles struct {
	// Layout
	AppContainer lipgloss.Style

	// Header / Footer
	Header       lipgloss.Style
	HeaderTitle  lipgloss.Style
	HeaderStatus lipgloss.Style
	Footer       lipgloss.Style
	FooterKey    lipgloss.Style
	FooterDesc   lipgloss.Style

	// Table
	TableHeader  lipgloss.Style
	TableRow     lipgloss.Style
	TableRowSel  lipgloss.Style
	TableCellDim lipgloss.Style

	// Status colors
	StatusUp   lipgloss.Style
	StatusDown lipgloss.Style
	StatusWarn lipgloss.Style

	// Confidence tiers
	ConfHigh lipgloss.Style // >= 80
	ConfMid  lipgloss.Style // >= 60
	ConfLow  lipgloss.Style // < 60

	// Vehicle badges
	BadgeCar        lipgloss.Style
	BadgeMotorcycle lipgloss.Style

	// Object status
	ObjActive  lipgloss.Style
	ObjExpired lipgloss.Style

	// Period selector
	PeriodTab       lipgloss.Style
	PeriodTabActive lipgloss.Style

	// Chart accents, one per period
	ChartDay   lipgloss.Style
	ChartWeek  lipgloss.Style
	ChartMonth lipgloss.Style
	ChartAxis  lipgloss.Style

	// Sparkline
	SparklineStyle lipgloss.Style

	// Panel headings
	PanelTitle lipgloss.Style

	// Modal / overlay
	ModalBorder lipgloss.Style
	ModalTitle  lipgloss.Style

	// Notifications
	NotifyInfo lipgloss.Style
	NotifyOK   lipgloss.Style
	NotifyErr  lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(theme Theme) *Styles {
	return &Styles{
		AppContainer: lipgloss.NewStyle().
			Foreground(theme.Base05).
			Background(theme.Base00),

		Header: lipgloss.NewStyle().
			Foreground(theme.Base05).
			Background(theme.Base01).
			Bold(true).
			Padding(0, 1),
		HeaderTitle: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		HeaderStatus: lipgloss.NewStyle().
			Foreground(theme.Base0B),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Base04).
			Background(theme.Base01).
			Padding(0, 1),
		FooterKey: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		FooterDesc: lipgloss.NewStyle().
			Foreground(theme.Base04),

		TableHeader: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		TableRow: lipgloss.NewStyle().
			Foreground(theme.Base05),
		TableRowSel: lipgloss.NewStyle().
			Foreground(theme.Base05).
			Background(theme.Base02),
		TableCellDim: lipgloss.NewStyle().
			Foreground(theme.Base03),

		StatusUp: lipgloss.NewStyle().
			Foreground(theme.Base0B),
		StatusDown: lipgloss.NewStyle().
			Foreground(theme.Base08),
		StatusWarn: lipgloss.NewStyle().
			Foreground(theme.Base0A),

		ConfHigh: lipgloss.NewStyle().
			Foreground(theme.Base0B),
		ConfMid: lipgloss.NewStyle().
			Foreground(theme.Base0A),
		ConfLow: lipgloss.NewStyle().
			Foreground(theme.Base08),

		BadgeCar: lipgloss.NewStyle().
			Foreground(theme.Base0D),
		BadgeMotorcycle: lipgloss.NewStyle().
			Foreground(theme.Base09),

		ObjActive: lipgloss.NewStyle().
			Foreground(theme.Base0B),
		ObjExpired: lipgloss.NewStyle().
			Foreground(theme.Base03),

		PeriodTab: lipgloss.NewStyle().
			Foreground(theme.Base04),
		PeriodTabActive: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),

		ChartDay: lipgloss.NewStyle().
			Foreground(theme.Base0D),
		ChartWeek: lipgloss.NewStyle().
			Foreground(theme.Base0E),
		ChartMonth: lipgloss.NewStyle().
			Foreground(theme.Base0B),
		ChartAxis: lipgloss.NewStyle().
			Foreground(theme.Base03),

		SparklineStyle: lipgloss.NewStyle().
			Foreground(theme.Base0C),

		PanelTitle: lipgloss.NewStyle().
			Foreground(theme.Base0E).
			Bold(true),

		ModalBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base0D).
			BorderBackground(theme.Base00).
			Background(theme.Base00).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),

		NotifyInfo: lipgloss.NewStyle().
			Foreground(theme.Base0D),
		NotifyOK: lipgloss.NewStyle().
			Foreground(theme.Base0B),
		NotifyErr: lipgloss.NewStyle().
			Foreground(theme.Base08),
	}
}
