package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"vigia/internal/api"
	"vigia/internal/engine"
	"vigia/tui/components"
	"vigia/tui/keys"
	"vigia/tui/styles"
)

// Column width constants (minimum widths).
const (
	colID     = 6
	colType   = 15
	colConf   = 12
	colTime   = 11
	colStatus = 10
)

// Chart reveal advances by this much per animation frame.
const revealStep = 0.2

// confTier buckets a confidence score for presentation.
type confTier int

const (
	confLow confTier = iota
	confMid
	confHigh
)

// confidenceTier classifies a confidence score; both boundaries are
// inclusive.
func confidenceTier(score float64) confTier {
	switch {
	case score >= 80:
		return confHigh
	case score >= 60:
		return confMid
	default:
		return confLow
	}
}

// statsPanelWidth is the fixed width of the left stats panel; the chart
// takes the rest.
const statsPanelWidth = 36

// panelHeight is the height of the stats/chart panel row.
const panelHeight = 9

// sampleSeries are the placeholder analytics shown right after a period
// switch, before the next live poll replaces them with real data.
var sampleSeries = map[api.Period]api.Series{
	api.PeriodDay: {
		Labels: []string{
			"00:00", "01:00", "02:00", "03:00", "04:00", "05:00",
			"06:00", "07:00", "08:00", "09:00", "10:00", "11:00",
			"12:00", "13:00", "14:00", "15:00", "16:00", "17:00",
			"18:00", "19:00", "20:00", "21:00", "22:00", "23:00",
		},
		Data: []float64{
			2, 1, 1, 0, 0, 1, 4, 9, 14, 11, 8, 7,
			9, 10, 8, 9, 12, 16, 18, 15, 11, 7, 4, 3,
		},
	},
	api.PeriodWeek: {
		Labels: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		Data:   []float64{38, 42, 35, 47, 52, 61, 44},
	},
	api.PeriodMonth: {
		Labels: []string{"Week 1", "Week 2", "Week 3", "Week 4", "Week 5"},
		Data:   []float64{180, 215, 198, 240, 96},
	},
}

// SampleSeries returns the placeholder chart series for a period.
func SampleSeries(p api.Period) api.Series {
	return sampleSeries[p]
}

// DashboardView is the main monitoring view: stats panel, period bar chart,
// and the detected-object table.
type DashboardView struct {
	theme     styles.Theme
	sty       *styles.Styles
	snapshot  *engine.Snapshot
	period    api.Period
	labels    []string
	data      []float64
	reveal    float64
	busy      string // in-progress command label, empty when idle
	busyFrame string // current spinner frame while busy
	cursor    int
	offset    int
	width     int
	height    int
}

// NewDashboardView creates a new DashboardView with the given theme. The
// chart starts on the day period's placeholder samples, not yet revealed.
func NewDashboardView(theme styles.Theme) DashboardView {
	v := DashboardView{
		theme:  theme,
		sty:    styles.NewStyles(theme),
		period: api.PeriodDay,
	}
	s := SampleSeries(api.PeriodDay)
	v.labels, v.data = s.Labels, s.Data
	return v
}

// Period returns the currently selected analytics period.
func (v DashboardView) Period() api.Period {
	return v.period
}

// SetPeriod switches the selected period, loads its placeholder samples,
// and restarts the chart reveal so the app can animate the redraw.
func (v *DashboardView) SetPeriod(p api.Period) {
	v.period = p
	v.ResetChart()
}

// ResetChart returns the chart to the current period's placeholder samples.
func (v *DashboardView) ResetChart() {
	s := SampleSeries(v.period)
	v.labels, v.data = s.Labels, s.Data
	v.reveal = 0
}

// SetSnapshot installs the latest poll snapshot. Analytics for the current
// period replace the chart data in place, without restarting the reveal, so
// live updates redraw without animation.
func (v *DashboardView) SetSnapshot(snap *engine.Snapshot) {
	v.snapshot = snap
	if snap == nil {
		return
	}
	if s, ok := snap.Analytics[v.period]; ok && len(s.Labels) == len(s.Data) {
		v.labels = s.Labels
		v.data = s.Data
	}
	if n := len(snap.Objects); v.cursor >= n {
		v.cursor = 0
		v.offset = 0
		if n > 0 {
			v.cursor = n - 1
		}
	}
}

// AdvanceReveal moves the chart reveal animation forward one frame and
// reports whether more frames remain.
func (v *DashboardView) AdvanceReveal() bool {
	v.reveal += revealStep
	if v.reveal >= 1 {
		v.reveal = 1
		return false
	}
	return true
}

// SetBusy marks a command as in flight with its in-progress label, or clears
// it with an empty string.
func (v *DashboardView) SetBusy(label string) {
	v.busy = label
}

// Busy returns the in-progress command label, empty when idle.
func (v DashboardView) Busy() string {
	return v.busy
}

// SetBusyFrame updates the spinner frame shown next to the busy label.
func (v *DashboardView) SetBusyFrame(frame string) {
	v.busyFrame = frame
}

// SetSize updates the available dimensions for the view.
func (v *DashboardView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// ChartSeries exposes the chart's current labels and values.
func (v DashboardView) ChartSeries() ([]string, []float64) {
	return v.labels, v.data
}

// Update handles key messages for cursor navigation within the table.
func (v DashboardView) Update(msg tea.Msg) (DashboardView, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		total := 0
		if v.snapshot != nil {
			total = len(v.snapshot.Objects)
		}
		switch {
		case key.Matches(msg, keys.DefaultKeyMap.Up):
			if v.cursor > 0 {
				v.cursor--
				v.ensureVisible()
			}
		case key.Matches(msg, keys.DefaultKeyMap.Down):
			if v.cursor < total-1 {
				v.cursor++
				v.ensureVisible()
			}
		}
	}
	return v, nil
}

// View renders the dashboard: stats and chart panels on top, object table
// below.
func (v DashboardView) View() string {
	statsW := statsPanelWidth
	chartW := v.width - statsW
	if v.width < 64 {
		statsW = v.width
		chartW = v.width
	}

	stats := v.renderStatsPanel(statsW)
	chart := v.renderChartPanel(chartW)

	var top string
	if v.width < 64 {
		top = stats
	} else {
		top = lipgloss.JoinHorizontal(lipgloss.Top, stats, chart)
	}

	tableH := v.height - panelHeight - 1
	if tableH < 3 {
		tableH = 3
	}
	table := v.renderObjectTable(tableH)

	return lipgloss.JoinVertical(lipgloss.Left, top, "", table)
}

// renderStatsPanel renders the left panel: running indicator, counts,
// last-update age, and the active-count trend sparkline.
func (v DashboardView) renderStatsPanel(width int) string {
	var lines []string

	lines = append(lines, " "+v.sty.PanelTitle.Render("Detection"))
	lines = append(lines, "")

	// Two-state running indicator, overridden by the in-flight command.
	var indicator string
	switch {
	case v.busy != "":
		indicator = v.sty.StatusWarn.Render(v.busyFrame + " " + v.busy)
	case v.snapshot != nil && v.snapshot.Running:
		indicator = v.sty.StatusUp.Render("▶ Detection running")
	default:
		indicator = v.sty.StatusDown.Render("■ Detection stopped")
	}
	lines = append(lines, " "+indicator)
	lines = append(lines, "")

	active, total := int64(0), int64(0)
	if v.snapshot != nil {
		active = int64(v.snapshot.ActiveObjects)
		total = v.snapshot.CurrentCount
	}
	counts := fmt.Sprintf("%s active   %s total",
		v.sty.HeaderTitle.Render(fmt.Sprintf("%d", active)),
		v.sty.TableRow.Render(humanize.Comma(total)),
	)
	lines = append(lines, " "+counts)

	updated := "no data yet"
	if v.snapshot != nil && !v.snapshot.LastUpdate.IsZero() {
		updated = "updated " + humanize.Time(v.snapshot.LastUpdate)
	}
	lines = append(lines, " "+v.sty.TableCellDim.Render(updated))
	lines = append(lines, "")

	sparkW := width - 2
	if sparkW < 4 {
		sparkW = 4
	}
	var history []engine.CountSample
	if v.snapshot != nil {
		history = v.snapshot.History
	}
	lines = append(lines, " "+v.sty.SparklineStyle.Render(components.Sparkline(sparkTrend(history), sparkW)))
	lines = append(lines, " "+v.sty.TableCellDim.Render("active objects trend"))

	panel := strings.Join(lines, "\n")
	return lipgloss.NewStyle().Width(width).Height(panelHeight).Render(panel)
}

// renderChartPanel renders the period selector and the analytics bar chart.
func (v DashboardView) renderChartPanel(width int) string {
	var tabs []string
	for _, p := range api.Periods() {
		if p == v.period {
			tabs = append(tabs, v.sty.PeriodTabActive.Render("["+p.Title()+"]"))
		} else {
			tabs = append(tabs, v.sty.PeriodTab.Render(" "+p.Title()+" "))
		}
	}
	selector := " " + strings.Join(tabs, " ")

	chart := components.RenderBarChart(
		v.labels, v.data,
		width-1, panelHeight-1,
		v.reveal,
		v.chartStyle(), v.sty.ChartAxis,
	)

	return lipgloss.JoinVertical(lipgloss.Left, selector, chart)
}

// chartStyle returns the accent style bound to the current period.
func (v DashboardView) chartStyle() lipgloss.Style {
	switch v.period {
	case api.PeriodWeek:
		return v.sty.ChartWeek
	case api.PeriodMonth:
		return v.sty.ChartMonth
	default:
		return v.sty.ChartDay
	}
}

// renderObjectTable renders the detected-object section: title, column
// headers, and one row per object, or the empty state.
func (v DashboardView) renderObjectTable(height int) string {
	var objects []api.DetectedObject
	if v.snapshot != nil {
		objects = v.snapshot.Objects
	}

	title := " " + v.sty.PanelTitle.Render(fmt.Sprintf("Detected Objects (%d)", len(objects)))

	if len(objects) == 0 {
		empty := v.sty.TableCellDim.Render("No objects detected")
		body := lipgloss.Place(v.width, height-1, lipgloss.Center, lipgloss.Center, empty)
		return lipgloss.JoinVertical(lipgloss.Left, title, body)
	}

	durW := v.width - colID - colType - colConf - colTime - colStatus
	if durW < 8 {
		durW = 8
	}

	headerStyle := v.sty.TableHeader
	header := fmt.Sprintf("%s%s%s%s%s%s",
		headerStyle.Render(padLeft("ID", colID-2)+"  "),
		headerStyle.Render(padRight("Type", colType)),
		headerStyle.Render(padLeft("Confidence", colConf-2)+"  "),
		headerStyle.Render(padRight("Detected", colTime)),
		headerStyle.Render(padRight("Status", colStatus)),
		headerStyle.Render(padRight("Duration", durW)),
	)

	visible := height - 2 // title and header rows
	if visible < 1 {
		visible = 1
	}
	start := v.offset
	if start > len(objects)-visible {
		start = len(objects) - visible
	}
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(objects) {
		end = len(objects)
	}

	var rows []string
	for i := start; i < end; i++ {
		rows = append(rows, v.renderObjectRow(objects[i], durW, i == v.cursor))
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, header, strings.Join(rows, "\n"))
}

// renderObjectRow renders a single object row with derived presentation
// classes: confidence tier, vehicle badge, and status style.
func (v DashboardView) renderObjectRow(obj api.DetectedObject, durW int, selected bool) string {
	rowStyle := v.sty.TableRow
	if selected {
		rowStyle = v.sty.TableRowSel
	}

	id := rowStyle.Render(padLeft(fmt.Sprintf("%d", obj.ID), colID-2) + "  ")

	// Vehicle badge
	badge := v.sty.BadgeCar
	glyph := "●"
	if obj.Type == api.VehicleMotorcycle {
		badge = v.sty.BadgeMotorcycle
		glyph = "◆"
	}
	if selected {
		badge = badge.Background(v.theme.Base02)
	}
	typeStr := badge.Render(padRight(glyph+" "+obj.Type, colType))

	// Confidence tier
	tier := v.sty.ConfLow
	switch confidenceTier(obj.Confidence) {
	case confHigh:
		tier = v.sty.ConfHigh
	case confMid:
		tier = v.sty.ConfMid
	}
	if selected {
		tier = tier.Background(v.theme.Base02)
	}
	confStr := tier.Render(padLeft(fmt.Sprintf("%.1f%%", obj.Confidence), colConf-2) + "  ")

	timeStr := rowStyle.Render(padRight(obj.DetectedAt, colTime))

	// Status
	statusStyle := v.sty.StatusWarn
	switch obj.Status {
	case api.StatusActive:
		statusStyle = v.sty.ObjActive
	case api.StatusExpired:
		statusStyle = v.sty.ObjExpired
	}
	if selected {
		statusStyle = statusStyle.Background(v.theme.Base02)
	}
	statusStr := statusStyle.Render(padRight(obj.Status, colStatus))

	durStyle := v.sty.TableCellDim
	if selected {
		durStyle = durStyle.Background(v.theme.Base02)
	}
	durStr := durStyle.Render(padRight(truncate(obj.Duration, durW-1), durW))

	return fmt.Sprintf("%s%s%s%s%s%s", id, typeStr, confStr, timeStr, statusStr, durStr)
}

// ensureVisible adjusts the scroll offset so the cursor row is visible.
func (v *DashboardView) ensureVisible() {
	visible := v.height - panelHeight - 3
	if visible < 1 {
		visible = 1
	}
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}
}

// sparkTrend pulls active-object counts from the history samples.
func sparkTrend(history []engine.CountSample) []float64 {
	if len(history) == 0 {
		return nil
	}
	data := make([]float64, len(history))
	for i, s := range history {
		data[i] = float64(s.Active)
	}
	return data
}

// padRight pads s with spaces on the right to the given width.
func padRight(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

// padLeft pads s with spaces on the left to the given width.
func padLeft(s string, width int) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return strings.Repeat(" ", width-len(r)) + s
}

// truncate shortens s to maxLen characters, adding an ellipsis if needed.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
