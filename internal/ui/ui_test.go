package ui

import (
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/missioncontrol/internal/config"
	"github.com/marcus/missioncontrol/internal/dashboard"
	"github.com/marcus/missioncontrol/internal/filter"
	"github.com/marcus/missioncontrol/internal/scheduler"
	"github.com/marcus/missioncontrol/internal/tasks"
)

var clock = time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return clock }

func newTestModel(t *testing.T, refresh string) Model {
	t.Helper()
	sched, err := scheduler.ParseRefresh(refresh)
	if err != nil {
		t.Fatalf("ParseRefresh(%q): %v", refresh, err)
	}
	svc := dashboard.NewService(dashboard.Options{
		Title:     "Mission Control",
		Seed:      42,
		TaskCount: 12,
		Location:  time.UTC,
		Now:       fixedNow,
	})
	return *New(Options{Service: svc, Refresh: sched, Now: fixedNow})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	var next tea.Model = m
	for _, msg := range msgs {
		next, cmd = next.Update(msg)
	}
	return next.(Model), cmd
}

func TestNew(t *testing.T) {
	m := newTestModel(t, "")
	if m.activePanel != PanelTasks {
		t.Errorf("expected activePanel PanelTasks, got %d", m.activePanel)
	}
	if m.Theme() != config.ThemeLight {
		t.Errorf("expected light theme, got %s", m.Theme())
	}
	if m.Session() == nil || len(m.Session().Tasks) != 12 {
		t.Fatal("expected a generated session of 12 tasks")
	}
	if len(m.DashboardView().Rows) != 12 {
		t.Errorf("expected unfiltered rows, got %d", len(m.DashboardView().Rows))
	}
	if m.Init() != nil {
		t.Error("Init should not schedule a refresh without a schedule")
	}
}

func TestPanelNavigation(t *testing.T) {
	m := newTestModel(t, "")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activePanel != PanelBreakdown {
		t.Errorf("after tab: %s", m.activePanel)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	if m.activePanel != PanelTasks {
		t.Errorf("tab should wrap around, got %s", m.activePanel)
	}
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.activePanel != PanelTeam {
		t.Errorf("shift+tab should go back, got %s", m.activePanel)
	}
}

func TestScrolling(t *testing.T) {
	m := newTestModel(t, "")

	m, _ = press(m, runes("k"))
	if m.selected != 0 {
		t.Errorf("selected should not go below 0, got %d", m.selected)
	}
	for i := 0; i < 20; i++ {
		m, _ = press(m, runes("j"))
	}
	if m.selected != 11 {
		t.Errorf("selected should stop at last row, got %d", m.selected)
	}
}

func TestOwnerCycle(t *testing.T) {
	m := newTestModel(t, "")
	roster := m.svc.Owners()

	for _, want := range append(roster, "") {
		m, _ = press(m, runes("o"))
		if m.Selection().Owner != want {
			t.Fatalf("owner = %q, want %q", m.Selection().Owner, want)
		}
		for _, r := range m.DashboardView().Rows {
			if want != "" && r.Owner != want {
				t.Errorf("row owned by %q shown while filtering on %q", r.Owner, want)
			}
		}
	}
}

func TestStatusToggle(t *testing.T) {
	m := newTestModel(t, "")

	m, _ = press(m, runes("1"), runes("4"))
	want := []tasks.Status{tasks.StatusInProgress, tasks.StatusAtRisk}
	if got := m.Selection().Statuses; !slices.Equal(got, want) {
		t.Fatalf("statuses = %v, want %v", got, want)
	}
	for _, r := range m.DashboardView().Rows {
		if r.Status == tasks.StatusBlocked || r.Status == tasks.StatusOnTrack {
			t.Errorf("row with hidden status %s leaked through", r.Status)
		}
	}

	m, _ = press(m, runes("1"))
	want = []tasks.Status{tasks.StatusBlocked, tasks.StatusInProgress, tasks.StatusAtRisk}
	if got := m.Selection().Statuses; !slices.Equal(got, want) {
		t.Errorf("toggling again should show Blocked, got %v", got)
	}

	m, _ = press(m, runes("o"), runes("a"))
	if sel := m.Selection(); sel.OwnerFiltered() || !slices.Equal(sel.Statuses, tasks.Statuses) {
		t.Errorf("reset should select every status for all owners, got %+v", sel)
	}
}

func TestResetThenToggle(t *testing.T) {
	m := newTestModel(t, "")
	m.selection = filter.AllStatuses()
	m.rebuild()

	m, _ = press(m, runes("1"))
	fromDefault := m.Selection().Statuses

	m, _ = press(m, runes("a"), runes("1"))
	afterReset := m.Selection().Statuses
	if !slices.Equal(fromDefault, afterReset) {
		t.Fatalf("1 after reset = %v, from default = %v", afterReset, fromDefault)
	}
	if slices.Contains(afterReset, tasks.StatusBlocked) {
		t.Errorf("1 after reset should hide Blocked, got %v", afterReset)
	}
	for _, r := range m.DashboardView().Rows {
		if r.Status == tasks.StatusBlocked {
			t.Error("Blocked row shown after hiding Blocked")
		}
	}
}

func TestFilterKeepsMetrics(t *testing.T) {
	m := newTestModel(t, "")
	before := m.DashboardView().Summary

	m, _ = press(m, runes("2"))
	after := m.DashboardView().Summary
	if len(after.Urgent) != len(before.Urgent) || after.AverageSentiment != before.AverageSentiment {
		t.Error("filters must not change the summary")
	}
}

func TestRegenerate(t *testing.T) {
	m := newTestModel(t, "")
	first := m.Session()

	m, _ = press(m, runes("r"))
	if m.Session().ID == first.ID || m.Session().Seed == first.Seed {
		t.Error("r should generate a new session")
	}
}

func TestThemeToggle(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = press(m, runes("t"))
	if m.Theme() != config.ThemeDark {
		t.Errorf("theme = %s, want dark", m.Theme())
	}
	m, _ = press(m, runes("t"))
	if m.Theme() != config.ThemeLight {
		t.Errorf("theme = %s, want light", m.Theme())
	}

	svc := dashboard.NewService(dashboard.Options{Seed: 1, Location: time.UTC, Now: fixedNow})
	if got := New(Options{Service: svc, Theme: "Dark", Now: fixedNow}).Theme(); got != config.ThemeDark {
		t.Errorf("theme name should be case-insensitive, got %s", got)
	}
}

func TestAutoRefresh(t *testing.T) {
	m := newTestModel(t, "@every 30s")
	if want := clock.Add(30 * time.Second); !m.nextRun.Equal(want) {
		t.Fatalf("nextRun = %v, want %v", m.nextRun, want)
	}
	if m.Init() == nil {
		t.Fatal("Init should schedule a refresh")
	}

	first := m.Session().ID
	m, cmd := press(m, refreshMsg{at: clock})
	if m.Session().ID != first || cmd != nil {
		t.Error("stale refresh tick should be ignored")
	}

	m, cmd = press(m, refreshMsg{at: m.nextRun})
	if m.Session().ID == first {
		t.Error("due refresh tick should regenerate the session")
	}
	if cmd == nil {
		t.Error("refresh should schedule the next tick")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, "")
	m, cmd := press(m, runes("q"))
	if !m.quitting || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t, "")
	m, _ = press(m, tea.WindowSizeMsg{Width: 120, Height: 50})
	out := m.View()

	for _, want := range []string{
		"Mission Control",
		"Urgent Issues",
		"Upcoming Deadlines (3 days)",
		"Team Sentiment",
		"Insights for You",
		"Insight 1:",
		"Tasks Overview",
		"Status Breakdown",
		"Team",
		"Zainab",
		"quit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewEmptyFilter(t *testing.T) {
	m := newTestModel(t, "")
	m.selection = filter.Selection{Owner: "Nobody"}
	m.rebuild()
	if !strings.Contains(m.View(), "No tasks match the current filters.") {
		t.Error("expected empty-table notice")
	}
}

func TestNextOwner(t *testing.T) {
	roster := []string{"A", "B"}
	tests := []struct {
		current, want string
	}{
		{"", "A"},
		{"All", "A"},
		{"A", "B"},
		{"B", "All"},
		{"gone", "All"},
	}
	for _, tt := range tests {
		if got := nextOwner(roster, tt.current); got != tt.want {
			t.Errorf("nextOwner(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}
	if got := nextOwner(nil, ""); got != "All" {
		t.Errorf("empty roster: got %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{5 * time.Minute, "5m"},
		{3 * time.Hour, "3h"},
		{48 * time.Hour, "2d"},
		{-time.Second, "0s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestNewWithSession(t *testing.T) {
	svc := dashboard.NewService(dashboard.Options{Seed: 1, Location: time.UTC, Now: fixedNow})
	sess := svc.SessionFor(1234)
	m := New(Options{Service: svc, Session: sess, Now: fixedNow})
	if m.Session() != sess {
		t.Error("model should show the given session")
	}
	if m.DashboardView().SessionID != sess.ID {
		t.Errorf("view session = %q, want %q", m.DashboardView().SessionID, sess.ID)
	}
}
