// Package dashboard assembles everything a presentation layer shows from a
// task collection, a filter selection and the current day.
package dashboard

import (
	"context"
	"fmt"

	"github.com/marcus/missioncontrol/internal/filter"
	"github.com/marcus/missioncontrol/internal/insights"
	"github.com/marcus/missioncontrol/internal/metrics"
	"github.com/marcus/missioncontrol/internal/tasks"
)

// Input is everything Build needs.
type Input struct {
	Title     string
	Caption   string
	SessionID string
	Tasks     []tasks.Task
	Selection filter.Selection
	Today     tasks.Date
	// Roster orders the owner breakdown; owners with no tasks still get a row.
	Roster []string
}

// Card is one of the headline numbers at the top of the dashboard.
type Card struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// View is the complete render model handed to a Renderer.
type View struct {
	Title        string                `json:"title"`
	Caption      string                `json:"caption,omitempty"`
	SessionID    string                `json:"session_id,omitempty"`
	Today        tasks.Date            `json:"today"`
	Selection    filter.Selection      `json:"selection"`
	Summary      metrics.Summary       `json:"summary"`
	Insights     []insights.Insight    `json:"insights"`
	Rows         []tasks.Task          `json:"rows"`
	StatusCounts []metrics.StatusCount `json:"status_counts"`
	OwnerLoads   []metrics.OwnerLoad   `json:"owner_loads"`
}

// Renderer is a presentation sink: a terminal, a report writer, an HTTP response.
type Renderer interface {
	Render(ctx context.Context, v View) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, v View) error

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, v View) error {
	return f(ctx, v)
}

// Build computes the view. Metrics, insights and the status breakdown cover
// the whole collection; only Rows honour the selection.
func Build(in Input) View {
	summary := metrics.Aggregate(in.Tasks, in.Today)
	return View{
		Title:        in.Title,
		Caption:      in.Caption,
		SessionID:    in.SessionID,
		Today:        in.Today,
		Selection:    in.Selection,
		Summary:      summary,
		Insights:     insights.Compose(summary),
		Rows:         filter.Apply(in.Tasks, in.Selection),
		StatusCounts: summary.StatusCounts,
		OwnerLoads:   metrics.OwnerBreakdown(in.Tasks, in.Today, in.Roster),
	}
}

// Cards returns the three headline numbers: urgent issues, upcoming
// deadlines and team sentiment.
func (v View) Cards() []Card {
	return []Card{
		{Label: "Urgent Issues", Value: fmt.Sprintf("%d", len(v.Summary.Urgent))},
		{Label: fmt.Sprintf("Upcoming Deadlines (%d days)", metrics.UpcomingHorizonDays), Value: fmt.Sprintf("%d", len(v.Summary.Upcoming))},
		{Label: "Team Sentiment", Value: v.Summary.Label.String()},
	}
}

// MaxStatusCount returns the largest status count, for scaling bar charts.
func (v View) MaxStatusCount() int {
	maxCount := 0
	for _, c := range v.StatusCounts {
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}
	return maxCount
}
