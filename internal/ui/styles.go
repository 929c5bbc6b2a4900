package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/missioncontrol/internal/config"
	"github.com/marcus/missioncontrol/internal/tasks"
)

// Styles holds lipgloss styles for the UI.
type Styles struct {
	// Panel borders
	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style

	// Text styles
	Header    lipgloss.Style
	Title     lipgloss.Style
	Caption   lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style

	// Cards and insights
	Card    lipgloss.Style
	Insight lipgloss.Style

	// Task table
	RowSelected lipgloss.Style
	Status      map[tasks.Status]lipgloss.Style

	// Progress bar
	BarFilled lipgloss.Style
	BarEmpty  lipgloss.Style

	// Help bar
	HelpKey  lipgloss.Style
	HelpText lipgloss.Style
}

type palette struct {
	accent, subtle, text, surface, border lipgloss.Color
}

var palettes = map[string]palette{
	config.ThemeLight: {
		accent:  "#1a3e72",
		subtle:  "#666666",
		text:    "#1f2328",
		surface: "#e6edf6",
		border:  "#c9d4e2",
	},
	config.ThemeDark: {
		accent:  "#6db9ff",
		subtle:  "#8b949e",
		text:    "#e6edf3",
		surface: "#1f2937",
		border:  "#30363d",
	},
}

// statusColors match the status colours of the web dashboard.
var statusColors = map[tasks.Status]lipgloss.Color{
	tasks.StatusBlocked:    "#eb1818",
	tasks.StatusAtRisk:     "#ffcf6d",
	tasks.StatusInProgress: "#6db9ff",
	tasks.StatusOnTrack:    "#16c44c",
}

// newStyles creates the style set for theme; unknown themes fall back to light.
func newStyles(theme string) *Styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[config.ThemeLight]
	}

	status := make(map[tasks.Status]lipgloss.Style, len(statusColors))
	for s, c := range statusColors {
		status[s] = lipgloss.NewStyle().Foreground(c).Bold(s.NeedsAttention())
	}

	return &Styles{
		ActiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.accent),

		InactiveBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.accent).
			MarginBottom(1),

		Caption: lipgloss.NewStyle().
			Italic(true).
			Foreground(p.subtle),

		Label: lipgloss.NewStyle().
			Foreground(p.subtle),

		Value: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.text),

		Highlight: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(p.subtle),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border).
			Padding(0, 1).
			MarginRight(1),

		Insight: lipgloss.NewStyle().
			Foreground(p.text).
			Background(p.surface).
			Padding(0, 1),

		RowSelected: lipgloss.NewStyle().
			Background(p.accent).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true),

		Status: status,

		BarFilled: lipgloss.NewStyle().Foreground(statusColors[tasks.StatusOnTrack]),
		BarEmpty:  lipgloss.NewStyle().Foreground(p.border),

		HelpKey: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true),

		HelpText: lipgloss.NewStyle().
			Foreground(p.subtle),
	}
}

// statusStyle returns the colour for s, or Muted for unknown statuses.
func (s *Styles) statusStyle(st tasks.Status) lipgloss.Style {
	if style, ok := s.Status[st]; ok {
		return style
	}
	return s.Muted
}
