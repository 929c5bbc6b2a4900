package reporting

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/marcus/missioncontrol/internal/dashboard"
	"github.com/marcus/missioncontrol/internal/filter"
	"github.com/marcus/missioncontrol/internal/tasks"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

var today = tasks.Date{Year: 2026, Month: time.October, Day: 18}

func sampleView(sel filter.Selection) dashboard.View {
	return dashboard.Build(dashboard.Input{
		Title:   "Mission Control",
		Caption: "Team Manager Dashboard",
		Tasks: []tasks.Task{
			{ID: 1, Name: "Task #1", Owner: "Zainab", Status: tasks.StatusBlocked, Deadline: today.AddDays(-1), Sentiment: tasks.SentimentNeutral},
			{ID: 2, Name: "Task #2", Owner: "Nadia", Status: tasks.StatusOnTrack, Deadline: today.AddDays(5), Sentiment: tasks.SentimentPositive},
			{ID: 3, Name: "Task #3", Owner: "Nadia", Status: tasks.StatusOnTrack, Deadline: today.AddDays(1), Sentiment: tasks.SentimentVeryPositive},
		},
		Selection: sel,
		Today:     today,
		Roster:    []string{"Zainab", "Nadia"},
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"fancy", FormatFancy, false},
		{"PLAIN", FormatPlain, false},
		{" markdown ", FormatMarkdown, false},
		{"json", FormatJSON, false},
		{"html", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFancy(t *testing.T) {
	out := Fancy(NewStyles(), sampleView(filter.Selection{}))

	for _, want := range []string{
		"Mission Control",
		"Team Manager Dashboard",
		"Today: 2026-10-18",
		"Urgent Issues",
		"Upcoming Deadlines (3 days)",
		"Insight 1: There are 1 tasks that are either blocked, at risk, or overdue.",
		"Insight 2: Nadia has 1 tasks due in the next 3 days.",
		"Team sentiment looks positive.",
		"Task #2",
		"On Track",
		"owner: All, status: all statuses",
		"Zainab",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("fancy output missing %q\n%s", want, out)
		}
	}
}

func TestFancyEmptyRows(t *testing.T) {
	out := Fancy(NewStyles(), sampleView(filter.Selection{Owner: "Ruksana"}))
	if !strings.Contains(out, "No tasks match the current filters.") {
		t.Errorf("expected empty-table notice\n%s", out)
	}
	// Metrics still cover the whole collection.
	if !strings.Contains(out, "There are 1 tasks") {
		t.Errorf("insights should ignore the owner filter\n%s", out)
	}
}

func TestBarChart(t *testing.T) {
	out := BarChart(NewStyles(), sampleView(filter.Selection{}), 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 bars, got %d:\n%s", len(lines), out)
	}
	// Largest count first.
	if !strings.Contains(lines[0], "On Track") || !strings.Contains(lines[0], strings.Repeat("█", 10)) {
		t.Errorf("first bar = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Blocked") || strings.Contains(lines[1], strings.Repeat("█", 6)) {
		t.Errorf("second bar = %q", lines[1])
	}
}

func TestBarLength(t *testing.T) {
	tests := []struct {
		count, max, width, want int
	}{
		{0, 5, 30, 0},
		{5, 5, 30, 30},
		{1, 100, 30, 1},
		{2, 4, 30, 15},
		{3, 0, 30, 0},
		{3, 3, 0, 0},
	}
	for _, tt := range tests {
		if got := BarLength(tt.count, tt.max, tt.width); got != tt.want {
			t.Errorf("BarLength(%d, %d, %d) = %d, want %d", tt.count, tt.max, tt.width, got, tt.want)
		}
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleView(filter.Selection{Statuses: []tasks.Status{tasks.StatusBlocked}}))

	for _, want := range []string{
		"# Mission Control - 2026-10-18",
		"_Team Manager Dashboard_",
		"- Urgent Issues: **1**",
		"- Team Sentiment: **Positive**",
		"1. There are 1 tasks",
		"| Task #1 | Zainab | Blocked | 2026-10-17 | Neutral |",
		"| On Track | 2 | #################### |",
		"- Zainab - Overdue Tasks: 1 (of 1, 0 due soon)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
	if strings.Contains(md, "| Task #2 |") {
		t.Error("status filter should hide On Track rows")
	}
}

func TestWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, FormatJSON)
	if err := w.Render(context.Background(), sampleView(filter.Selection{})); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	var got struct {
		Title   string `json:"title"`
		Today   string `json:"today"`
		Summary struct {
			Label string `json:"sentiment_label"`
		} `json:"summary"`
		Rows []struct {
			Status    string `json:"status"`
			Sentiment string `json:"sentiment"`
		} `json:"rows"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got.Title != "Mission Control" || got.Today != "2026-10-18" || got.Summary.Label != "Positive" {
		t.Errorf("decoded = %+v", got)
	}
	if len(got.Rows) != 3 || got.Rows[0].Status != "Blocked" || got.Rows[0].Sentiment != "Neutral" {
		t.Errorf("rows = %+v", got.Rows)
	}
}

func TestWriterFormats(t *testing.T) {
	v := sampleView(filter.Selection{})
	for _, f := range []Format{FormatFancy, FormatPlain, FormatMarkdown} {
		var buf bytes.Buffer
		if err := NewWriter(&buf, f).Render(context.Background(), v); err != nil {
			t.Errorf("%s: Render() error = %v", f, err)
		}
		if !strings.Contains(buf.String(), "Mission Control") {
			t.Errorf("%s: output missing title", f)
		}
	}

	if err := NewWriter(&bytes.Buffer{}, Format("xml")).Render(context.Background(), v); err == nil {
		t.Error("expected error for unknown format")
	}
}
