// Package ui provides the interactive terminal dashboard.
// Uses Bubbletea for input handling and Lipgloss for layout.
package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robfig/cron/v3"

	"github.com/marcus/missioncontrol/internal/config"
	"github.com/marcus/missioncontrol/internal/dashboard"
	"github.com/marcus/missioncontrol/internal/filter"
	"github.com/marcus/missioncontrol/internal/logging"
	"github.com/marcus/missioncontrol/internal/tasks"
)

// Panel represents which panel is currently focused.
type Panel int

const (
	PanelTasks Panel = iota
	PanelBreakdown
	PanelTeam
	panelCount
)

func (p Panel) String() string {
	switch p {
	case PanelTasks:
		return "Tasks Overview"
	case PanelBreakdown:
		return "Status Breakdown"
	case PanelTeam:
		return "Team"
	default:
		return "Unknown"
	}
}

// Options configures the model.
type Options struct {
	Service   *dashboard.Service
	Selection filter.Selection
	Theme     string
	// Session is shown first; nil generates one from Service.
	Session *tasks.Session
	// Refresh is a cron schedule for automatic regeneration; nil disables it.
	Refresh cron.Schedule
	// Now overrides the clock in tests.
	Now func() time.Time
}

// Model holds the TUI state.
type Model struct {
	// Display state
	width       int
	height      int
	activePanel Panel
	quitting    bool

	// Data
	svc       *dashboard.Service
	session   *tasks.Session
	selection filter.Selection
	view      dashboard.View
	refreshed time.Time

	// Panel state
	selected   int
	teamScroll int

	// Auto refresh
	schedule cron.Schedule
	nextRun  time.Time
	now      func() time.Time

	theme  string
	styles *Styles
	keys   keyMap
	help   help.Model
	logger *logging.Logger
}

// refreshMsg fires when the refresh schedule is due. at identifies the
// scheduled time so stale ticks from a reset schedule are ignored.
type refreshMsg struct {
	at time.Time
}

// New creates a new TUI model with a freshly generated session.
func New(opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	theme := config.ThemeLight
	if strings.EqualFold(strings.TrimSpace(opts.Theme), config.ThemeDark) {
		theme = config.ThemeDark
	}

	m := &Model{
		width:       100,
		height:      40,
		activePanel: PanelTasks,
		svc:         opts.Service,
		selection:   opts.Selection,
		schedule:    opts.Refresh,
		now:         opts.Now,
		theme:       theme,
		styles:      newStyles(theme),
		keys:        newKeyMap(),
		help:        help.New(),
		logger:      logging.Component("ui"),
	}
	if opts.Session != nil {
		m.setSession(opts.Session)
	} else {
		m.regenerate()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.scheduleRefresh()
}

// scheduleRefresh waits until the next scheduled refresh, if any.
func (m Model) scheduleRefresh() tea.Cmd {
	if m.schedule == nil || m.nextRun.IsZero() {
		return nil
	}
	at := m.nextRun
	wait := at.Sub(m.now())
	if wait < 0 {
		wait = 0
	}
	return tea.Tick(wait, func(time.Time) tea.Msg {
		return refreshMsg{at: at}
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case refreshMsg:
		if !msg.at.Equal(m.nextRun) {
			return m, nil
		}
		m.regenerate()
		m.logger.Infof("auto refresh: session %s", m.session.ID)
		return m, m.scheduleRefresh()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextPanel):
		m.activePanel = (m.activePanel + 1) % panelCount
		return m, nil

	case key.Matches(msg, m.keys.PrevPanel):
		m.activePanel = (m.activePanel + panelCount - 1) % panelCount
		return m, nil

	case key.Matches(msg, m.keys.Up):
		return m.handleUp(), nil

	case key.Matches(msg, m.keys.Down):
		return m.handleDown(), nil

	case key.Matches(msg, m.keys.Owner):
		m.selection = m.selection.WithOwner(nextOwner(m.svc.Owners(), m.selection.Owner))
		m.rebuild()
		return m, nil

	case key.Matches(msg, m.keys.Status):
		idx := int(msg.Runes[0] - '1')
		if idx >= 0 && idx < len(tasks.Statuses) {
			m.selection = m.selection.Toggle(tasks.Statuses[idx])
			m.rebuild()
		}
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.selection = filter.AllStatuses()
		m.rebuild()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.regenerate()
		return m, m.scheduleRefresh()

	case key.Matches(msg, m.keys.Theme):
		m.ToggleTheme()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// nextOwner cycles All -> roster[0] -> ... -> All.
func nextOwner(roster []string, current string) string {
	if current == "" || current == filter.AllOwners {
		if len(roster) == 0 {
			return filter.AllOwners
		}
		return roster[0]
	}
	for i, o := range roster {
		if o == current && i+1 < len(roster) {
			return roster[i+1]
		}
	}
	return filter.AllOwners
}

// handleUp handles up arrow / k key.
func (m Model) handleUp() Model {
	switch m.activePanel {
	case PanelTasks:
		if m.selected > 0 {
			m.selected--
		}
	case PanelTeam:
		if m.teamScroll > 0 {
			m.teamScroll--
		}
	}
	return m
}

// handleDown handles down arrow / j key.
func (m Model) handleDown() Model {
	switch m.activePanel {
	case PanelTasks:
		if m.selected < len(m.view.Rows)-1 {
			m.selected++
		}
	case PanelTeam:
		if m.teamScroll < len(m.view.OwnerLoads)-1 {
			m.teamScroll++
		}
	}
	return m
}

// regenerate replaces the session and advances the refresh schedule.
func (m *Model) regenerate() {
	m.setSession(m.svc.Refresh())
}

func (m *Model) setSession(sess *tasks.Session) {
	m.session = sess
	m.refreshed = m.now()
	if m.schedule != nil {
		m.nextRun = m.schedule.Next(m.refreshed)
	}
	m.rebuild()
}

// rebuild recomputes the view after the session or selection changed.
func (m *Model) rebuild() {
	m.view = m.svc.View(m.session, m.selection)
	if m.selected >= len(m.view.Rows) {
		m.selected = max(len(m.view.Rows)-1, 0)
	}
}

// ToggleTheme switches between the light and dark palettes.
func (m *Model) ToggleTheme() {
	if m.theme == config.ThemeDark {
		m.theme = config.ThemeLight
	} else {
		m.theme = config.ThemeDark
	}
	m.styles = newStyles(m.theme)
}

// Theme returns the active theme name.
func (m Model) Theme() string {
	return m.theme
}

// Selection returns the active filter selection.
func (m Model) Selection() filter.Selection {
	return m.selection
}

// Session returns the session on screen.
func (m Model) Session() *tasks.Session {
	return m.session
}

// DashboardView returns the current render model.
func (m Model) DashboardView() dashboard.View {
	return m.view
}

// Run starts the TUI.
func (m *Model) Run() error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
