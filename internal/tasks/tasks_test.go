package tasks

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"Blocked", StatusBlocked, false},
		{"in progress", StatusInProgress, false},
		{"at-risk", StatusAtRisk, false},
		{"ON_TRACK", StatusOnTrack, false},
		{"  On Track ", StatusOnTrack, false},
		{"done", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, ErrUnknownStatus) {
			t.Errorf("ParseStatus(%q) error = %v, want ErrUnknownStatus", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStatusNeedsAttention(t *testing.T) {
	want := map[Status]bool{
		StatusBlocked:    true,
		StatusInProgress: false,
		StatusAtRisk:     true,
		StatusOnTrack:    false,
	}
	for s, w := range want {
		if got := s.NeedsAttention(); got != w {
			t.Errorf("%s.NeedsAttention() = %v, want %v", s, got, w)
		}
	}
}

func TestSentimentScore(t *testing.T) {
	tests := []struct {
		s     Sentiment
		name  string
		score int
	}{
		{SentimentVeryNegative, "Very Negative", -2},
		{SentimentNegative, "Negative", -1},
		{SentimentNeutral, "Neutral", 0},
		{SentimentPositive, "Positive", 1},
		{SentimentVeryPositive, "Very Positive", 2},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.name {
			t.Errorf("Sentiment(%d).String() = %q, want %q", tt.s, got, tt.name)
		}
		if got := tt.s.Score(); got != tt.score {
			t.Errorf("%s.Score() = %d, want %d", tt.name, got, tt.score)
		}
	}
	if Sentiment(5).Valid() {
		t.Error("Sentiment(5) should not be valid")
	}
	if Sentiment(5).String() != "Unknown" {
		t.Errorf("Sentiment(5).String() = %q, want Unknown", Sentiment(5).String())
	}
}

func TestParseSentiment(t *testing.T) {
	got, err := ParseSentiment("very-positive")
	if err != nil {
		t.Fatalf("ParseSentiment: %v", err)
	}
	if got != SentimentVeryPositive {
		t.Errorf("got %s, want Very Positive", got)
	}

	if _, err := ParseSentiment("ecstatic"); !errors.Is(err, ErrUnknownSentiment) {
		t.Errorf("expected ErrUnknownSentiment, got %v", err)
	}
}

func TestTaskJSON(t *testing.T) {
	task := Task{
		ID:        3,
		Name:      "Task #3",
		Owner:     "Nadia",
		Status:    StatusAtRisk,
		Deadline:  Date{2026, time.March, 9},
		Sentiment: SentimentNegative,
	}
	b, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":3,"name":"Task #3","owner":"Nadia","status":"At Risk","deadline":"2026-03-09","sentiment":"Negative"}`
	if string(b) != want {
		t.Errorf("json = %s\nwant   %s", b, want)
	}

	var back Task
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != task {
		t.Errorf("round trip = %+v, want %+v", back, task)
	}
}

func TestTaskOverdue(t *testing.T) {
	today := Date{2026, time.January, 10}
	tests := []struct {
		deadline Date
		want     bool
	}{
		{today.AddDays(-1), true},
		{today, false},
		{today.AddDays(1), false},
	}
	for _, tt := range tests {
		task := Task{Deadline: tt.deadline}
		if got := task.Overdue(today); got != tt.want {
			t.Errorf("Overdue(deadline=%s) = %v, want %v", tt.deadline, got, tt.want)
		}
	}
}
