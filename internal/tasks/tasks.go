// Package tasks defines the task records shown on the dashboard and the
// generator that produces synthetic collections of them.
package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownStatus is returned when a status name does not match any Status.
	ErrUnknownStatus = errors.New("unknown status")
	// ErrUnknownSentiment is returned when a sentiment name does not match any Sentiment.
	ErrUnknownSentiment = errors.New("unknown sentiment")
)

// Status is the delivery state of a task.
type Status string

const (
	StatusBlocked    Status = "Blocked"
	StatusInProgress Status = "In Progress"
	StatusAtRisk     Status = "At Risk"
	StatusOnTrack    Status = "On Track"
)

// Statuses lists every status in canonical order.
var Statuses = []Status{StatusBlocked, StatusInProgress, StatusAtRisk, StatusOnTrack}

func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// NeedsAttention reports whether the status alone makes a task urgent.
func (s Status) NeedsAttention() bool {
	return s == StatusBlocked || s == StatusAtRisk
}

// ParseStatus resolves a status name case-insensitively. Dashes and
// underscores are accepted in place of spaces ("at-risk", "on_track").
func ParseStatus(name string) (Status, error) {
	norm := normalizeName(name)
	for _, s := range Statuses {
		if normalizeName(string(s)) == norm {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, name)
}

// Sentiment is a five-level ordered mood category attached to a task.
// The underlying value is the sentiment score.
type Sentiment int

const (
	SentimentVeryNegative Sentiment = -2
	SentimentNegative     Sentiment = -1
	SentimentNeutral      Sentiment = 0
	SentimentPositive     Sentiment = 1
	SentimentVeryPositive Sentiment = 2
)

// Sentiments lists every sentiment from most negative to most positive.
var Sentiments = []Sentiment{
	SentimentVeryNegative,
	SentimentNegative,
	SentimentNeutral,
	SentimentPositive,
	SentimentVeryPositive,
}

func (s Sentiment) String() string {
	switch s {
	case SentimentVeryNegative:
		return "Very Negative"
	case SentimentNegative:
		return "Negative"
	case SentimentNeutral:
		return "Neutral"
	case SentimentPositive:
		return "Positive"
	case SentimentVeryPositive:
		return "Very Positive"
	default:
		return "Unknown"
	}
}

// Score returns the integer encoding of s in [-2, 2].
func (s Sentiment) Score() int {
	return int(s)
}

// Valid reports whether s is one of the five categories.
func (s Sentiment) Valid() bool {
	return s >= SentimentVeryNegative && s <= SentimentVeryPositive
}

// Icon returns the marker shown next to the sentiment in task tables.
func (s Sentiment) Icon() string {
	switch s {
	case SentimentVeryNegative:
		return "!!"
	case SentimentNegative:
		return "!"
	case SentimentNeutral:
		return "~"
	case SentimentPositive:
		return "+"
	case SentimentVeryPositive:
		return "++"
	default:
		return "?"
	}
}

// MarshalJSON encodes the sentiment by name.
func (s Sentiment) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a sentiment name.
func (s *Sentiment) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	parsed, err := ParseSentiment(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSentiment resolves a sentiment name case-insensitively.
func ParseSentiment(name string) (Sentiment, error) {
	norm := normalizeName(name)
	for _, s := range Sentiments {
		if normalizeName(s.String()) == norm {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSentiment, name)
}

// DefaultOwners is the team roster used when none is configured.
var DefaultOwners = []string{"Zainab", "Zunaira", "Ruksana", "Nadia"}

// Task is a single tracked unit of work.
type Task struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	Status    Status    `json:"status"`
	Deadline  Date      `json:"deadline"`
	Sentiment Sentiment `json:"sentiment"`
}

// Overdue reports whether the task's deadline is before today.
func (t Task) Overdue(today Date) bool {
	return t.Deadline.Before(today)
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", " ", "_", " ").Replace(name)
}
