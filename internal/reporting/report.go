// Package reporting renders dashboard views as text: styled terminal output,
// markdown, or JSON.
package reporting

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/missioncontrol/internal/dashboard"
	"github.com/marcus/missioncontrol/internal/tasks"
)

// Format selects a text rendering.
type Format string

const (
	FormatFancy    Format = "fancy"
	FormatPlain    Format = "plain"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatFancy, FormatPlain, FormatMarkdown, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want fancy, plain, markdown or json)", name)
	}
}

// Writer renders views to an io.Writer in a fixed format.
type Writer struct {
	out    io.Writer
	format Format
	styles Styles
}

// NewWriter creates a report writer. FormatPlain uses the same layout as
// FormatFancy; callers disable colours through the lipgloss colour profile.
func NewWriter(out io.Writer, format Format) *Writer {
	return &Writer{out: out, format: format, styles: NewStyles()}
}

// Render implements dashboard.Renderer.
func (w *Writer) Render(_ context.Context, v dashboard.View) error {
	switch w.format {
	case FormatJSON:
		enc := json.NewEncoder(w.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatMarkdown:
		_, err := io.WriteString(w.out, Markdown(v))
		return err
	case FormatFancy, FormatPlain, "":
		_, err := io.WriteString(w.out, Fancy(w.styles, v))
		return err
	default:
		return fmt.Errorf("unknown format %q", w.format)
	}
}

// Styles holds lipgloss styles for the fancy report.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Section  lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Card     lipgloss.Style
	Status   map[tasks.Status]lipgloss.Style
}

// NewStyles returns the report palette.
func NewStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1a3e72")),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Section:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2c4a7a")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Value:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Accent:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("238")),
		Status: StatusStyles(),
	}
}

// StatusStyles colours each status the way the dashboard table does.
func StatusStyles() map[tasks.Status]lipgloss.Style {
	return map[tasks.Status]lipgloss.Style{
		tasks.StatusBlocked:    lipgloss.NewStyle().Foreground(lipgloss.Color("#eb1818")).Bold(true),
		tasks.StatusAtRisk:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcf6d")).Bold(true),
		tasks.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("#6db9ff")),
		tasks.StatusOnTrack:    lipgloss.NewStyle().Foreground(lipgloss.Color("#16c44c")),
	}
}

// Fancy renders the full dashboard with lipgloss styling.
func Fancy(s Styles, v dashboard.View) string {
	var b strings.Builder

	b.WriteString(s.Title.Render(v.Title))
	b.WriteString("\n")
	if v.Caption != "" {
		b.WriteString(s.Subtitle.Render(v.Caption))
		b.WriteString("\n")
	}
	b.WriteString(s.Muted.Render(fmt.Sprintf("Today: %s · %d tasks", v.Today, v.Summary.Total)))
	b.WriteString("\n\n")

	b.WriteString(s.Section.Render("Mission Overview"))
	b.WriteString("\n")
	cards := make([]string, 0, 3)
	for _, c := range v.Cards() {
		cards = append(cards, s.Card.Render(s.Label.Render(c.Label)+"\n"+s.Value.Render(c.Value)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n")
	b.WriteString(s.Muted.Render(fmt.Sprintf("Average sentiment %+.2f · %.0f%% on track", v.Summary.AverageSentiment, v.Summary.OnTrackPercent)))
	b.WriteString("\n\n")

	b.WriteString(s.Section.Render("Insights for You"))
	b.WriteString("\n")
	for _, in := range v.Insights {
		b.WriteString("  ")
		b.WriteString(s.Accent.Render(fmt.Sprintf("Insight %d:", in.Index)))
		b.WriteString(" ")
		b.WriteString(in.Text)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(s.Section.Render("Tasks Overview"))
	b.WriteString("  ")
	b.WriteString(s.Muted.Render(v.Selection.String()))
	b.WriteString("\n")
	b.WriteString(TaskTable(s, v.Rows))
	b.WriteString("\n")

	b.WriteString(s.Section.Render("Status Breakdown"))
	b.WriteString("\n")
	b.WriteString(BarChart(s, v, 30))
	b.WriteString("\n")

	b.WriteString(s.Section.Render("Team"))
	b.WriteString("\n")
	for _, l := range v.OwnerLoads {
		b.WriteString(fmt.Sprintf("  %-12s %s %d   %s %d   %s %d\n",
			l.Owner,
			s.Label.Render("tasks"), l.Total,
			s.Label.Render("overdue"), l.Overdue,
			s.Label.Render("due soon"), l.Upcoming,
		))
	}

	return b.String()
}

// TaskTable renders task rows as aligned columns.
func TaskTable(s Styles, rows []tasks.Task) string {
	if len(rows) == 0 {
		return s.Muted.Render("  No tasks match the current filters.") + "\n"
	}

	var b strings.Builder
	b.WriteString(s.Label.Render(fmt.Sprintf("  %-9s %-12s %-12s %-11s %s", "Task", "Owner", "Status", "Deadline", "Sentiment")))
	b.WriteString("\n")
	for _, t := range rows {
		status := fmt.Sprintf("%-12s", t.Status)
		if st, ok := s.Status[t.Status]; ok {
			status = st.Render(status)
		}
		b.WriteString(fmt.Sprintf("  %-9s %-12s %s %-11s %s %s\n",
			t.Name, t.Owner, status, t.Deadline, t.Sentiment.Icon(), t.Sentiment))
	}
	return b.String()
}

// BarChart renders the status breakdown as horizontal bars scaled to width.
func BarChart(s Styles, v dashboard.View, width int) string {
	if len(v.StatusCounts) == 0 {
		return s.Muted.Render("  No tasks.") + "\n"
	}

	maxCount := v.MaxStatusCount()
	var b strings.Builder
	for _, c := range v.StatusCounts {
		n := BarLength(c.Count, maxCount, width)
		bar := strings.Repeat("█", n)
		if st, ok := s.Status[c.Status]; ok {
			bar = st.Render(bar)
		}
		b.WriteString(fmt.Sprintf("  %-12s %s %d\n", c.Status, bar, c.Count))
	}
	return b.String()
}

// BarLength scales count against maxCount to at most width cells. Non-zero
// counts always get at least one cell.
func BarLength(count, maxCount, width int) int {
	if count <= 0 || maxCount <= 0 || width <= 0 {
		return 0
	}
	n := count * width / maxCount
	if n == 0 {
		n = 1
	}
	return n
}
