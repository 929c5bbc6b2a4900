package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/missioncontrol/internal/reporting"
	"github.com/marcus/missioncontrol/internal/tasks"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := m.renderHeader()
	overview := m.renderOverview()
	insights := m.renderInsights()
	helpBar := "  " + m.help.View(m.keys)

	used := lipgloss.Height(header) + lipgloss.Height(overview) + lipgloss.Height(insights) + lipgloss.Height(helpBar)
	panelHeight := m.height - used - 2 // borders
	if panelHeight < 6 {
		panelHeight = 6
	}
	leftWidth := m.width * 3 / 5
	rightWidth := m.width - leftWidth
	breakdownHeight := panelHeight / 2
	teamHeight := panelHeight - breakdownHeight - 2

	taskBorder := m.getBorder(PanelTasks).Width(leftWidth - 2).Height(panelHeight)
	breakdownBorder := m.getBorder(PanelBreakdown).Width(rightWidth - 2).Height(breakdownHeight)
	teamBorder := m.getBorder(PanelTeam).Width(rightWidth - 2).Height(teamHeight)

	right := lipgloss.JoinVertical(
		lipgloss.Left,
		breakdownBorder.Render(m.renderBreakdownPanel(rightWidth-4)),
		teamBorder.Render(m.renderTeamPanel(teamHeight)),
	)
	panels := lipgloss.JoinHorizontal(
		lipgloss.Top,
		taskBorder.Render(m.renderTaskPanel(panelHeight)),
		right,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		overview,
		insights,
		panels,
		helpBar,
	)
}

// getBorder returns the appropriate border style for a panel.
func (m Model) getBorder(panel Panel) lipgloss.Style {
	if m.activePanel == panel {
		return m.styles.ActiveBorder
	}
	return m.styles.InactiveBorder
}

func (m Model) renderHeader() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render(m.view.Title))
	if m.view.Caption != "" {
		b.WriteString("  ")
		b.WriteString(m.styles.Caption.Render(m.view.Caption))
	}
	b.WriteString("\n")

	meta := fmt.Sprintf("Today %s · refreshed %s", m.view.Today, m.refreshed.Format("15:04:05"))
	if m.schedule != nil && !m.nextRun.IsZero() {
		meta += fmt.Sprintf(" · next in %s", formatDuration(m.nextRun.Sub(m.now())))
	}
	meta += " · " + m.theme + " theme"
	b.WriteString(m.styles.Muted.Render(meta))
	return b.String()
}

// renderOverview renders the three headline cards and the on-track bar.
func (m Model) renderOverview() string {
	cards := m.view.Cards()
	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		rendered = append(rendered, m.styles.Card.Render(
			m.styles.Label.Render(c.Label)+"\n"+m.styles.Value.Render(c.Value),
		))
	}

	pct := m.view.Summary.OnTrackPercent
	progress := fmt.Sprintf("%s %s",
		m.renderProgressBar(int(pct), 20),
		m.styles.Muted.Render(fmt.Sprintf("%.0f%% on track · avg sentiment %+.2f", pct, m.view.Summary.AverageSentiment)),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, rendered...),
		progress,
	)
}

// renderProgressBar renders a progress bar.
func (m Model) renderProgressBar(pct, width int) string {
	if width < 10 {
		width = 10
	}

	filled := width * pct / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	return "[" + m.styles.BarFilled.Render(strings.Repeat("=", filled)) +
		m.styles.BarEmpty.Render(strings.Repeat("-", width-filled)) + "]"
}

func (m Model) renderInsights() string {
	var b strings.Builder
	b.WriteString(m.styles.Highlight.Render("Insights for You"))
	for _, in := range m.view.Insights {
		b.WriteString("\n")
		b.WriteString(m.styles.Insight.Render(in.String()))
	}
	return b.String()
}

// renderTaskPanel renders the filtered task table.
func (m Model) renderTaskPanel(height int) string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(PanelTasks.String()))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(m.view.Selection.String()))
	b.WriteString("\n\n")

	rows := m.view.Rows
	if len(rows) == 0 {
		b.WriteString(m.styles.Muted.Render("No tasks match the current filters."))
		return b.String()
	}

	b.WriteString(m.styles.Label.Render(fmt.Sprintf(" %-9s %-9s %-12s %-11s %s", "Task", "Owner", "Status", "Deadline", "Sentiment")))
	b.WriteString("\n")

	visible := height - 6 // title, selection, header, scroll info
	if visible < 1 {
		visible = 1
	}
	scroll := 0
	if m.selected >= visible {
		scroll = m.selected - visible + 1
	}

	for i := scroll; i < len(rows) && i < scroll+visible; i++ {
		t := rows[i]
		status := m.styles.statusStyle(t.Status).Render(fmt.Sprintf("%-12s", t.Status))
		line := fmt.Sprintf(" %-9s %-9s %s %-11s %s %s", t.Name, t.Owner, status, t.Deadline, t.Sentiment.Icon(), t.Sentiment)
		if t.Overdue(m.view.Today) {
			line += m.styles.statusStyle(t.Status).Render(" overdue")
		}
		if i == m.selected && m.activePanel == PanelTasks {
			line = m.styles.RowSelected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(rows) > visible {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf(" [%d/%d]", m.selected+1, len(rows))))
	}

	return b.String()
}

// renderBreakdownPanel renders the status counts as horizontal bars.
func (m Model) renderBreakdownPanel(width int) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(PanelBreakdown.String()))
	b.WriteString("\n")

	if len(m.view.StatusCounts) == 0 {
		b.WriteString(m.styles.Muted.Render("No tasks"))
		return b.String()
	}

	barWidth := width - 18
	if barWidth < 5 {
		barWidth = 5
	}
	maxCount := m.view.MaxStatusCount()
	for _, c := range m.view.StatusCounts {
		n := reporting.BarLength(c.Count, maxCount, barWidth)
		b.WriteString(fmt.Sprintf("%-12s %s %d\n",
			c.Status,
			m.styles.statusStyle(c.Status).Render(strings.Repeat("█", n)),
			c.Count,
		))
	}
	return b.String()
}

// renderTeamPanel renders per-owner workload.
func (m Model) renderTeamPanel(height int) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(PanelTeam.String()))
	b.WriteString("\n")

	loads := m.view.OwnerLoads
	if len(loads) == 0 {
		b.WriteString(m.styles.Muted.Render("No team members"))
		return b.String()
	}

	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	start := m.teamScroll
	if start+visible > len(loads) {
		start = max(len(loads)-visible, 0)
	}

	for i := start; i < len(loads) && i < start+visible; i++ {
		l := loads[i]
		overdue := m.styles.Value.Render(fmt.Sprintf("%d", l.Overdue))
		if l.Overdue > 0 {
			overdue = m.styles.statusStyle(tasks.StatusBlocked).Render(fmt.Sprintf("%d", l.Overdue))
		}
		name := l.Owner
		if name == m.view.Selection.Owner {
			name = m.styles.Highlight.Render(name)
		}
		b.WriteString(fmt.Sprintf("%-10s %s %d  %s %s  %s %d\n",
			name,
			m.styles.Label.Render("tasks"), l.Total,
			m.styles.Label.Render("overdue"), overdue,
			m.styles.Label.Render("soon"), l.Upcoming,
		))
	}
	return b.String()
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	} else if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return fmt.Sprintf("%dd", int(d.Hours()/24))
}
