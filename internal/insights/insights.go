// Package insights turns dashboard metrics into numbered advisory messages.
package insights

import (
	"fmt"

	"github.com/marcus/missioncontrol/internal/metrics"
	"github.com/marcus/missioncontrol/internal/tasks"
)

// Kind identifies which rule produced an insight.
type Kind string

const (
	KindUrgent    Kind = "urgent"
	KindOverload  Kind = "overload"
	KindSentiment Kind = "sentiment"
	KindAllClear  Kind = "all_clear"
)

// Insight is one advisory line. Index starts at 1.
type Insight struct {
	Index int    `json:"index"`
	Kind  Kind   `json:"kind"`
	Text  string `json:"text"`
}

func (i Insight) String() string {
	return fmt.Sprintf("Insight %d: %s", i.Index, i.Text)
}

const (
	negativeText = "Team sentiment is trending negative. You may want to check in with the team."
	neutralText  = "Team sentiment is neutral. There might be hidden friction; review blocked or at-risk tasks."
	positiveText = "Team sentiment looks positive. Keep an eye on upcoming deadlines to maintain momentum."
	allClearText = "No major issues detected. This is a good time for strategic planning."
)

// Compose evaluates every rule against s in a fixed order: urgent count,
// upcoming overload, then sentiment trend. All matching rules are emitted.
func Compose(s metrics.Summary) []Insight {
	var out []Insight
	add := func(kind Kind, text string) {
		out = append(out, Insight{Index: len(out) + 1, Kind: kind, Text: text})
	}

	if n := len(s.Urgent); n > 0 {
		add(KindUrgent, fmt.Sprintf("There are %d tasks that are either blocked, at risk, or overdue.", n))
	}

	if owner, count, ok := OverloadedOwner(s.Upcoming); ok {
		add(KindOverload, fmt.Sprintf("%s has %d tasks due in the next %d days. Consider rebalancing workload.",
			owner, count, metrics.UpcomingHorizonDays))
	}

	if text, ok := sentimentText(s.Label); ok {
		add(KindSentiment, text)
	}

	if len(out) == 0 {
		add(KindAllClear, allClearText)
	}
	return out
}

// OverloadedOwner returns the owner with the most tasks in upcoming. When
// several owners share the maximum, the one seen first wins. ok is false for
// an empty set.
func OverloadedOwner(upcoming []tasks.Task) (owner string, count int, ok bool) {
	counts := make(map[string]int)
	var order []string
	for _, t := range upcoming {
		if _, seen := counts[t.Owner]; !seen {
			order = append(order, t.Owner)
		}
		counts[t.Owner]++
	}

	for _, o := range order {
		if counts[o] > count {
			owner, count = o, counts[o]
		}
	}
	return owner, count, count > 0
}

func sentimentText(l metrics.Label) (string, bool) {
	switch l {
	case metrics.LabelNegative:
		return negativeText, true
	case metrics.LabelNeutral:
		return neutralText, true
	case metrics.LabelPositive:
		return positiveText, true
	default:
		return "", false
	}
}
