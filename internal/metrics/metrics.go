// Package metrics derives dashboard summary statistics from a task collection.
// Everything here is a pure function of its inputs.
package metrics

import (
	"sort"

	"github.com/marcus/missioncontrol/internal/tasks"
)

// UpcomingHorizonDays is how far ahead of today a deadline counts as upcoming.
const UpcomingHorizonDays = 3

// Label is the team-level sentiment indicator.
type Label string

const (
	LabelNegative Label = "Negative"
	LabelNeutral  Label = "Neutral"
	LabelPositive Label = "Positive"
)

func (l Label) String() string {
	return string(l)
}

// StatusCount is one row of the status breakdown.
type StatusCount struct {
	Status tasks.Status `json:"status"`
	Count  int          `json:"count"`
}

// Summary holds the aggregate view of a task collection on a given day.
type Summary struct {
	Today            tasks.Date    `json:"today"`
	Total            int           `json:"total"`
	Urgent           []tasks.Task  `json:"urgent"`
	Upcoming         []tasks.Task  `json:"upcoming"`
	AverageSentiment float64       `json:"average_sentiment"`
	Label            Label         `json:"sentiment_label"`
	StatusCounts     []StatusCount `json:"status_counts"`
	// OnTrackPercent is the share of tasks with status On Track (0-100).
	OnTrackPercent float64 `json:"on_track_percent"`
}

// Aggregate computes the summary of all as of today. The input is not modified.
func Aggregate(all []tasks.Task, today tasks.Date) Summary {
	s := Summary{
		Today:        today,
		Total:        len(all),
		Urgent:       Urgent(all, today),
		Upcoming:     Upcoming(all, today),
		StatusCounts: CountByStatus(all),
	}

	s.AverageSentiment = AverageSentiment(all)
	s.Label = LabelFor(s.AverageSentiment)

	if len(all) > 0 {
		onTrack := 0
		for _, t := range all {
			if t.Status == tasks.StatusOnTrack {
				onTrack++
			}
		}
		s.OnTrackPercent = float64(onTrack) / float64(len(all)) * 100
	}

	return s
}

// IsUrgent reports whether t is blocked, at risk, or past its deadline.
func IsUrgent(t tasks.Task, today tasks.Date) bool {
	return t.Status.NeedsAttention() || t.Overdue(today)
}

// IsUpcoming reports whether t is due between today and the horizon, inclusive.
func IsUpcoming(t tasks.Task, today tasks.Date) bool {
	return !t.Deadline.Before(today) && !t.Deadline.After(today.AddDays(UpcomingHorizonDays))
}

// Urgent returns the urgent tasks of all in collection order. A task matching
// more than one criterion appears once.
func Urgent(all []tasks.Task, today tasks.Date) []tasks.Task {
	out := make([]tasks.Task, 0)
	for _, t := range all {
		if IsUrgent(t, today) {
			out = append(out, t)
		}
	}
	return out
}

// Upcoming returns the tasks due within the upcoming horizon in collection order.
func Upcoming(all []tasks.Task, today tasks.Date) []tasks.Task {
	out := make([]tasks.Task, 0)
	for _, t := range all {
		if IsUpcoming(t, today) {
			out = append(out, t)
		}
	}
	return out
}

// AverageSentiment is the mean sentiment score over all. An empty collection
// averages to 0.
func AverageSentiment(all []tasks.Task) float64 {
	if len(all) == 0 {
		return 0
	}
	total := 0
	for _, t := range all {
		total += t.Sentiment.Score()
	}
	return float64(total) / float64(len(all))
}

// LabelFor maps an average score to a label. Both boundaries are inclusive:
// -1 is Negative and 1 is Positive.
func LabelFor(avg float64) Label {
	switch {
	case avg <= -1:
		return LabelNegative
	case avg >= 1:
		return LabelPositive
	default:
		return LabelNeutral
	}
}

// CountByStatus counts tasks per status, highest count first. Ties keep the
// order in which each status was first seen; absent statuses are omitted.
func CountByStatus(all []tasks.Task) []StatusCount {
	index := make(map[tasks.Status]int)
	counts := make([]StatusCount, 0, len(tasks.Statuses))
	for _, t := range all {
		i, ok := index[t.Status]
		if !ok {
			i = len(counts)
			index[t.Status] = i
			counts = append(counts, StatusCount{Status: t.Status})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}
