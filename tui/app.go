package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"vigia/internal/api"
	"vigia/internal/config"
	"vigia/internal/engine"
	"vigia/tui/components"
	"vigia/tui/keys"
	"vigia/tui/styles"
	"vigia/tui/views"
)

// AppState represents the current screen/view of the application.
type AppState int

const (
	StateDashboard AppState = iota
	StateConfirmReset
	StateHelp
)

// One-shot command names.
const (
	cmdStart = "start"
	cmdStop  = "stop"
	cmdReset = "reset"
)

// commandTimeout bounds one-shot control requests.
const commandTimeout = 10 * time.Second

// reconcileDelay is how long after a command finishes the poller re-fetches
// to reconcile displayed state with backend truth.
const reconcileDelay = 500 * time.Millisecond

// revealInterval paces chart reveal animation frames.
const revealInterval = 40 * time.Millisecond

// TickMsg triggers a periodic UI refresh to age timestamps and expire
// notifications.
type TickMsg struct{}

// revealMsg advances the chart reveal animation by one frame.
type revealMsg struct{}

// snapshotMsg carries a fresh poller snapshot.
type snapshotMsg struct {
	snap *engine.Snapshot
}

// commandDoneMsg carries the outcome of a one-shot control request.
type commandDoneMsg struct {
	name string
	resp *api.CommandResponse
	err  error
}

// reconcileMsg fires the post-command refresh.
type reconcileMsg struct{}

// AppModel is the root Bubble Tea model that manages all views and state.
type AppModel struct {
	state     AppState
	theme     styles.Theme
	config    *config.Config
	client    *api.Client
	poller    *engine.Poller
	events    <-chan engine.Event
	dashboard views.DashboardView
	confirm   views.ConfirmView
	help      views.HelpView
	spin      spinner.Model
	notif     *components.Notification
	lastSnap  *engine.Snapshot
	busyCmd   string
	width     int
	height    int
	version   string
}

// NewAppModel creates a new AppModel wired to the given poller and client.
func NewAppModel(cfg *config.Config, client *api.Client, poller *engine.Poller, version string) AppModel {
	theme := styles.DefaultTheme
	if t := styles.GetThemeByName(cfg.Theme); t != nil {
		theme = *t
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Base0A)

	return AppModel{
		state:     StateDashboard,
		theme:     theme,
		config:    cfg,
		client:    client,
		poller:    poller,
		events:    poller.Subscribe(),
		dashboard: views.NewDashboardView(theme),
		confirm:   views.NewConfirmView(theme),
		help:      views.NewHelpView(theme),
		spin:      sp,
		version:   version,
	}
}

// Init starts the UI tick, the initial chart reveal, and the poller event
// wait.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(), revealCmd(), waitForEvent(m.events))
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

func revealCmd() tea.Cmd {
	return tea.Tick(revealInterval, func(time.Time) tea.Msg {
		return revealMsg{}
	})
}

func reconcileCmd() tea.Cmd {
	return tea.Tick(reconcileDelay, func(time.Time) tea.Msg {
		return reconcileMsg{}
	})
}

// waitForEvent blocks on the poller's event channel and converts the next
// event into a message.
func waitForEvent(events <-chan engine.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return snapshotMsg{snap: ev.Snapshot}
	}
}

// issueCommand performs the one-shot POST for a control command off the UI
// loop.
func (m AppModel) issueCommand(name string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		var resp api.CommandResponse
		var err error
		switch name {
		case cmdStart:
			resp, err = client.StartDetection(ctx)
		case cmdStop:
			resp, err = client.StopDetection(ctx)
		case cmdReset:
			resp, err = client.ResetCount(ctx)
		}
		if err != nil {
			return commandDoneMsg{name: name, err: err}
		}
		return commandDoneMsg{name: name, resp: &resp}
	}
}

// beginCommand disables the controls, shows the in-progress label with a
// spinner, and dispatches the request.
func (m *AppModel) beginCommand(name, label string) tea.Cmd {
	m.busyCmd = name
	m.dashboard.SetBusy(label)
	m.dashboard.SetBusyFrame(m.spin.View())
	return tea.Batch(m.issueCommand(name), m.spin.Tick)
}

// setNotif replaces any live notification; the newest always wins.
func (m *AppModel) setNotif(level components.NotifyLevel, text string) {
	n := components.NewNotification(level, text)
	m.notif = &n
}

// Update handles messages and dispatches to the active view.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Body height = total - 1 (header) - 2 (status bar lines)
		m.dashboard.SetSize(msg.Width, msg.Height-3)
		m.confirm.SetSize(msg.Width, msg.Height-3)
		m.help.SetSize(msg.Width, msg.Height-3)
		return m, nil

	case tea.FocusMsg:
		m.poller.Resume()
		return m, nil

	case tea.BlurMsg:
		m.poller.Pause()
		return m, nil

	case TickMsg:
		if m.notif != nil && m.notif.Expired(time.Now()) {
			m.notif = nil
		}
		// Health probes move connectivity between cycles; pick that up
		// even if no poll event arrives.
		snap := m.poller.Snapshot()
		m.lastSnap = snap
		m.dashboard.SetSnapshot(snap)
		return m, tickCmd()

	case revealMsg:
		if m.dashboard.AdvanceReveal() {
			return m, revealCmd()
		}
		return m, nil

	case snapshotMsg:
		m.lastSnap = msg.snap
		m.dashboard.SetSnapshot(msg.snap)
		return m, waitForEvent(m.events)

	case spinner.TickMsg:
		if m.busyCmd == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		m.dashboard.SetBusyFrame(m.spin.View())
		return m, cmd

	case commandDoneMsg:
		return m.finishCommand(msg)

	case reconcileMsg:
		m.poller.Refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// finishCommand re-enables the controls, reports the outcome, and schedules
// the reconcile fetch.
func (m AppModel) finishCommand(msg commandDoneMsg) (tea.Model, tea.Cmd) {
	m.busyCmd = ""
	m.dashboard.SetBusy("")

	switch {
	case msg.err != nil:
		m.setNotif(components.NotifyError, msg.err.Error())
	case msg.resp != nil && !msg.resp.Success:
		text := msg.resp.Message
		if text == "" {
			text = "command failed"
		}
		m.setNotif(components.NotifyError, text)
	default:
		text := ""
		if msg.resp != nil {
			text = msg.resp.Message
		}
		if text == "" {
			text = "done"
		}
		m.setNotif(components.NotifySuccess, text)
		if msg.name == cmdReset {
			// A confirmed reset clears the table at once and returns the
			// chart to the period's samples; the reconcile fetch then
			// verifies against the backend.
			m.poller.ResetData()
			m.dashboard.ResetChart()
			return m, tea.Batch(revealCmd(), reconcileCmd())
		}
	}

	return m, reconcileCmd()
}

// changePeriod selects a new analytics period: placeholder samples, accent
// theme, animated redraw, and a notification naming the period.
func (m AppModel) changePeriod(p api.Period) (tea.Model, tea.Cmd) {
	m.dashboard.SetPeriod(p)
	m.setNotif(components.NotifyInfo, "period: "+p.Title())
	return m, revealCmd()
}

// handleKey routes key presses by application state.
func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := keys.DefaultKeyMap

	if key.Matches(msg, km.Quit) {
		m.poller.Stop()
		return m, tea.Quit
	}

	switch m.state {
	case StateHelp:
		if key.Matches(msg, km.Help) || key.Matches(msg, km.Escape) {
			m.state = StateDashboard
			m.help.Toggle()
		}
		return m, nil

	case StateConfirmReset:
		switch {
		case key.Matches(msg, km.Confirm):
			m.state = StateDashboard
			return m, m.beginCommand(cmdReset, "resetting count")
		case key.Matches(msg, km.Escape), msg.String() == "n":
			m.state = StateDashboard
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, km.Day):
		return m.changePeriod(api.PeriodDay)
	case key.Matches(msg, km.Week):
		return m.changePeriod(api.PeriodWeek)
	case key.Matches(msg, km.Month):
		return m.changePeriod(api.PeriodMonth)
	case key.Matches(msg, km.NextPeriod):
		return m.changePeriod(m.dashboard.Period().Next())
	case key.Matches(msg, km.PrevPeriod):
		return m.changePeriod(m.dashboard.Period().Prev())

	case key.Matches(msg, km.Refresh):
		m.poller.Refresh()
		return m, nil

	case key.Matches(msg, km.Start):
		if m.busyCmd != "" {
			return m, nil
		}
		return m, m.beginCommand(cmdStart, "starting detection")

	case key.Matches(msg, km.Stop):
		if m.busyCmd != "" {
			return m, nil
		}
		return m, m.beginCommand(cmdStop, "stopping detection")

	case key.Matches(msg, km.Reset):
		if m.busyCmd != "" {
			return m, nil
		}
		m.state = StateConfirmReset
		return m, nil

	case key.Matches(msg, km.Help):
		m.state = StateHelp
		m.help.Toggle()
		return m, nil

	case key.Matches(msg, km.Escape):
		m.notif = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.dashboard, cmd = m.dashboard.Update(msg)
	return m, cmd
}

// View renders the full application UI by composing header, body, and
// status bar.
func (m AppModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	connected := m.lastSnap != nil && m.lastSnap.Connected
	header := components.RenderHeader(m.theme, m.client.BaseURL(), connected, m.width, m.version)

	var body string
	switch m.state {
	case StateConfirmReset:
		body = m.confirm.View()
	case StateHelp:
		body = m.help.View()
	default:
		body = m.dashboard.View()
	}

	var lastUpdate time.Time
	var polls, errCount int
	if m.lastSnap != nil {
		lastUpdate = m.lastSnap.LastUpdate
		polls = m.lastSnap.PollCount
		errCount = m.lastSnap.ErrorCount
	}
	statusBar := components.RenderStatusBar(
		m.theme, m.config.PollInterval, lastUpdate, polls, errCount, m.notif, m.width,
	)

	bodyHeight := m.height - 1 - 2 // 1 header line, 2 status bar lines
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	bodyStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		Background(m.theme.Base00).
		Foreground(m.theme.Base05)

	return lipgloss.JoinVertical(lipgloss.Left, header, bodyStyle.Render(body), statusBar)
}
